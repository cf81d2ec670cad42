// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes the editorial content kinds sharing the unified
// content table.
type ContentType string

const (
	ContentTypeNews       ContentType = "news"
	ContentTypeOpinion    ContentType = "opinion"
	ContentTypeBookReview ContentType = "bookreview"
	ContentTypeVideo      ContentType = "video"
)

// BodyFormat indicates how the Body field should be interpreted.
type BodyFormat string

const (
	BodyFormatMarkdown BodyFormat = "markdown"
	BodyFormatHTML     BodyFormat = "html"
)

// PriorityUnset is the sentinel stored when an editor gives no explicit
// priority. Listings sort ascending by priority, so unset items land after
// every explicitly prioritized one. The sentinel is a valid integer an
// editor could also set by hand; the two cases are indistinguishable on
// purpose, for compatibility with existing data.
const PriorityUnset = 9999

// Content represents one editorial item. News, opinion pieces, book reviews
// and videos share the same table, differentiated by the Type field. The
// type-specific columns (WriterName, Reviewer, VideoURL, CategoryID) are
// null for the types that do not use them.
type Content struct {
	ID         uuid.UUID   `json:"id"`
	Type       ContentType `json:"type"`
	Title      string      `json:"title"`
	Slug       string      `json:"slug"`
	Excerpt    string      `json:"excerpt"`
	Body       string      `json:"body"`
	BodyFormat BodyFormat  `json:"body_format"`
	Published  bool        `json:"published"`
	Featured   bool        `json:"featured"`
	Priority   int         `json:"priority"`
	WriterName *string     `json:"writer_name,omitempty"`
	Reviewer   *string     `json:"reviewer,omitempty"`
	VideoURL   *string     `json:"video_url,omitempty"`
	CategoryID *uuid.UUID  `json:"category_id,omitempty"`
	AuthorID   uuid.UUID   `json:"author_id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// HasPriority reports whether an explicit listing priority is stored.
// See the sentinel caveat on PriorityUnset.
func (c *Content) HasPriority() bool {
	return c.Priority != PriorityUnset
}

// ValidType reports whether t names one of the four content types.
func ValidType(t ContentType) bool {
	switch t {
	case ContentTypeNews, ContentTypeOpinion, ContentTypeBookReview, ContentTypeVideo:
		return true
	}
	return false
}
