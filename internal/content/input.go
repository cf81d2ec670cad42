// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"github.com/google/uuid"

	"newsdesk/internal/auth"
	"newsdesk/internal/models"
)

// CreateInput is the payload for creating a content item. Empty Slug and
// Excerpt mean "derive for me"; nil Published and Priority mean "use the
// type default". AuthorRef is never part of the payload — it always comes
// from the requesting principal.
type CreateInput struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Body       string `json:"body"`
	BodyFormat string `json:"body_format"`
	Published  *bool  `json:"published"`
	Featured   bool   `json:"featured"`
	Priority   *int   `json:"priority"`
	WriterName string `json:"writer_name"`
	Reviewer   string `json:"reviewer"`
	VideoURL   string `json:"video_url"`
	Category   string `json:"category"` // category id or slug (news only)
}

// UpdateInput is the payload for a partial update. Nil fields are left
// untouched; non-nil fields are applied even when empty or false.
type UpdateInput struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Body       *string `json:"body"`
	BodyFormat *string `json:"body_format"`
	Published  *bool   `json:"published"`
	Featured   *bool   `json:"featured"`
	Priority   *int    `json:"priority"`
	WriterName *string `json:"writer_name"`
	Reviewer   *string `json:"reviewer"`
	VideoURL   *string `json:"video_url"`
	Category   *string `json:"category"`
}

// ListOptions carries the caller-facing listing filters before visibility
// scoping is applied.
type ListOptions struct {
	Page     int
	Limit    int
	Search   string
	Category string // category id or slug
	Reviewer string
	Author   string // author user id
	Featured *bool
}

// ListQuery is the scoped, resolved query handed to the Store.
type ListQuery struct {
	Type       models.ContentType
	Search     string
	CategoryID *uuid.UUID
	Reviewer   string
	AuthorID   *uuid.UUID
	Featured   *bool
	Scope      auth.Scope

	// RecentFirst orders purely by creation time descending, ignoring
	// priority. Used for homepage category previews.
	RecentFirst bool

	Offset int
	Limit  int
}
