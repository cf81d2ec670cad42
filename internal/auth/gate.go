// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements the authorization gate for content operations.
// It is a pure capability check evaluated fresh per request from the
// current principal and the target item; policy changes happen here and
// nowhere else.
package auth

import (
	"github.com/google/uuid"

	"newsdesk/internal/models"
	"newsdesk/internal/session"
)

// Action is the operation a principal attempts on a content item.
type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

// Verdict is the outcome of a gate check.
type Verdict int

const (
	// Allow permits the action.
	Allow Verdict = iota
	// DenyUnauthenticated means no principal was presented. Maps to 401.
	DenyUnauthenticated
	// DenyForbidden means the principal lacks the capability. Maps to 403.
	DenyForbidden
)

// Check decides whether principal p may perform action on item.
// item is nil for ActionCreate.
//
// Rules: unauthenticated principals get read-only access to published
// items; editors create items (becoming their author) and mutate only
// items they authored; admins do anything.
func Check(p *session.Principal, action Action, item *models.Content) Verdict {
	switch action {
	case ActionRead:
		if item == nil || item.Published {
			return Allow
		}
		if p == nil {
			return DenyUnauthenticated
		}
		if p.IsAdmin() || item.AuthorID == p.UserID {
			return Allow
		}
		return DenyForbidden

	case ActionCreate:
		if p == nil {
			return DenyUnauthenticated
		}
		return Allow

	case ActionUpdate, ActionDelete:
		if p == nil {
			return DenyUnauthenticated
		}
		if p.IsAdmin() {
			return Allow
		}
		if item != nil && item.AuthorID == p.UserID {
			return Allow
		}
		return DenyForbidden
	}

	return DenyForbidden
}

// Scope describes which items a principal may see in listings.
type Scope struct {
	// PublishedOnly restricts the listing to published items.
	PublishedOnly bool
	// OwnAuthorID, when set alongside PublishedOnly, additionally admits
	// unpublished items authored by this principal.
	OwnAuthorID *uuid.UUID
}

// VisibleScope returns the listing visibility for a principal: the public
// sees published items only, editors additionally see their own
// unpublished drafts, admins see everything.
func VisibleScope(p *session.Principal) Scope {
	if p == nil {
		return Scope{PublishedOnly: true}
	}
	if p.IsAdmin() {
		return Scope{}
	}
	id := p.UserID
	return Scope{PublishedOnly: true, OwnAuthorID: &id}
}
