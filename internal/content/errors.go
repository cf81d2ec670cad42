// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures so the HTTP layer can map them to
// status codes without inspecting messages.
type Kind int

const (
	// KindValidation covers missing or malformed required fields,
	// including unresolvable category references.
	KindValidation Kind = iota + 1
	// KindUnauthorized means no principal was presented.
	KindUnauthorized
	// KindForbidden means the principal lacks the capability.
	KindForbidden
	// KindConflict means a slug collision.
	KindConflict
	// KindNotFound means an unknown id or slug.
	KindNotFound
)

// Error is a classified pipeline failure with a user-facing message.
// Anything that is not an *Error is treated as an internal server error
// and its detail never reaches the client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// ErrDuplicateSlug is returned by Store implementations when the storage
// layer rejects a write on the slug uniqueness constraint. It is the
// safety net behind the advisory SlugExists check.
var ErrDuplicateSlug = errors.New("duplicate slug")

func validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func unauthorized() error {
	return &Error{Kind: KindUnauthorized, Message: "authentication required"}
}

func forbidden() error {
	return &Error{Kind: KindForbidden, Message: "you do not own this item"}
}

func conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func notFound(what string) error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

// KindOf returns the Kind of a pipeline error, or 0 for unclassified
// (internal) errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
