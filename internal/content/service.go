// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content implements the publishing pipeline: the rules that turn
// a raw submitted title and body into an addressable, uniquely identified,
// orderable, access-controlled record. One generic Service parameterized
// by a per-type Policy serves all four content types.
package content

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"newsdesk/internal/auth"
	"newsdesk/internal/excerpt"
	"newsdesk/internal/markdown"
	"newsdesk/internal/models"
	"newsdesk/internal/session"
	"newsdesk/internal/slug"
)

// maxListLimit caps caller-supplied page sizes.
const maxListLimit = 100

// Store is the persistence collaborator for content items. The SQL
// implementation lives in internal/store; tests substitute an in-memory
// fake.
type Store interface {
	List(q ListQuery) ([]models.Content, int, error)
	FindByID(t models.ContentType, id uuid.UUID) (*models.Content, error)
	FindBySlug(t models.ContentType, slug string) (*models.Content, error)
	// SlugExists reports whether another record of the same type already
	// uses candidate, excluding the record with id exclude (uuid.Nil for
	// creates). The check is advisory: the storage unique index is the
	// actual guarantee, surfaced as ErrDuplicateSlug from Create/Update.
	SlugExists(t models.ContentType, candidate string, exclude uuid.UUID) (bool, error)
	Create(c *models.Content) (*models.Content, error)
	Update(c *models.Content) error
	Delete(t models.ContentType, id uuid.UUID) error
}

// CategoryFinder resolves the category references carried by news items.
type CategoryFinder interface {
	FindByID(id uuid.UUID) (*models.Category, error)
	FindBySlug(slug string) (*models.Category, error)
}

// Service runs the publishing pipeline against a Store.
type Service struct {
	store      Store
	categories CategoryFinder
}

// NewService creates a pipeline service over the given collaborators.
func NewService(store Store, categories CategoryFinder) *Service {
	return &Service{store: store, categories: categories}
}

// Create runs the full pipeline for a new item: authorization, required
// field validation, category resolution, slug derivation, uniqueness,
// excerpt derivation, then persistence. The checks run in exactly that
// order — an unauthorized caller never triggers validation or uniqueness
// work.
func (s *Service) Create(principal *session.Principal, pol Policy, in CreateInput) (*models.Content, error) {
	if err := verdictErr(auth.Check(principal, auth.ActionCreate, nil)); err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, validationf("title is required")
	}
	if pol.RequiresBody && strings.TrimSpace(in.Body) == "" {
		return nil, validationf("body is required")
	}
	if pol.RequiresWriter && strings.TrimSpace(in.WriterName) == "" {
		return nil, validationf("writer_name is required")
	}
	if pol.RequiresVideoURL && strings.TrimSpace(in.VideoURL) == "" {
		return nil, validationf("video_url is required")
	}

	var categoryID *uuid.UUID
	if pol.RequiresCategory {
		cat, err := s.resolveCategory(in.Category)
		if err != nil {
			return nil, err
		}
		categoryID = &cat.ID
	}

	candidate := strings.TrimSpace(in.Slug)
	if candidate == "" {
		candidate = slug.Generate(in.Title, string(pol.Type))
	}
	taken, err := s.store.SlugExists(pol.Type, candidate, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflictf("slug %q is already in use", candidate)
	}

	format := models.BodyFormat(in.BodyFormat)
	if format != models.BodyFormatHTML {
		format = models.BodyFormatMarkdown
	}

	summary := in.Excerpt
	if summary == "" {
		summary = deriveExcerpt(in.Body, format)
	}

	published := pol.DefaultPublished
	if in.Published != nil {
		published = *in.Published
	}
	priority := models.PriorityUnset
	if in.Priority != nil {
		priority = *in.Priority
	}

	c := &models.Content{
		Type:       pol.Type,
		Title:      in.Title,
		Slug:       candidate,
		Excerpt:    summary,
		Body:       in.Body,
		BodyFormat: format,
		Published:  published,
		Featured:   in.Featured,
		Priority:   priority,
		CategoryID: categoryID,
		AuthorID:   principal.UserID,
	}
	setOptional(&c.WriterName, in.WriterName)
	setOptional(&c.Reviewer, in.Reviewer)
	setOptional(&c.VideoURL, in.VideoURL)

	created, err := s.store.Create(c)
	if errors.Is(err, ErrDuplicateSlug) {
		// Lost the check-then-write race; the unique index caught it.
		return nil, conflictf("slug %q is already in use", candidate)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update: nil input fields are left untouched,
// non-nil ones are applied even when empty or false. A title change
// without an explicit slug regenerates the slug; an explicit slug is
// re-validated against the uniqueness check excluding this item. A body
// change without an explicit excerpt regenerates the excerpt. AuthorRef
// is immutable.
func (s *Service) Update(principal *session.Principal, pol Policy, id uuid.UUID, in UpdateInput) (*models.Content, error) {
	item, err := s.store.FindByID(pol.Type, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound(string(pol.Type))
	}

	if err := verdictErr(auth.Check(principal, auth.ActionUpdate, item)); err != nil {
		return nil, err
	}

	titleChanged := false
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, validationf("title cannot be empty")
		}
		titleChanged = t != item.Title
		item.Title = t
	}

	bodyChanged := false
	if in.Body != nil {
		if pol.RequiresBody && strings.TrimSpace(*in.Body) == "" {
			return nil, validationf("body cannot be empty")
		}
		bodyChanged = *in.Body != item.Body
		item.Body = *in.Body
	}
	if in.BodyFormat != nil {
		format := models.BodyFormat(*in.BodyFormat)
		if format != models.BodyFormatHTML {
			format = models.BodyFormatMarkdown
		}
		item.BodyFormat = format
	}

	if pol.RequiresCategory && in.Category != nil {
		cat, err := s.resolveCategory(*in.Category)
		if err != nil {
			return nil, err
		}
		item.CategoryID = &cat.ID
	}

	newSlug := item.Slug
	switch {
	case in.Slug != nil && strings.TrimSpace(*in.Slug) != "":
		newSlug = strings.TrimSpace(*in.Slug)
	case (in.Slug != nil || titleChanged):
		// Explicit empty slug, or a title change with no slug given:
		// derive from the (possibly new) title.
		newSlug = slug.Generate(item.Title, string(pol.Type))
	}
	if newSlug != item.Slug {
		taken, err := s.store.SlugExists(pol.Type, newSlug, item.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, conflictf("slug %q is already in use", newSlug)
		}
		item.Slug = newSlug
	}

	switch {
	case in.Excerpt != nil:
		item.Excerpt = *in.Excerpt
	case bodyChanged:
		item.Excerpt = deriveExcerpt(item.Body, item.BodyFormat)
	}

	if in.Published != nil {
		item.Published = *in.Published
	}
	if in.Featured != nil {
		item.Featured = *in.Featured
	}
	if in.Priority != nil {
		item.Priority = *in.Priority
	}
	if in.WriterName != nil {
		if pol.RequiresWriter && strings.TrimSpace(*in.WriterName) == "" {
			return nil, validationf("writer_name cannot be empty")
		}
		setOptional(&item.WriterName, *in.WriterName)
	}
	if in.Reviewer != nil {
		setOptional(&item.Reviewer, *in.Reviewer)
	}
	if in.VideoURL != nil {
		if pol.RequiresVideoURL && strings.TrimSpace(*in.VideoURL) == "" {
			return nil, validationf("video_url cannot be empty")
		}
		setOptional(&item.VideoURL, *in.VideoURL)
	}

	if err := s.store.Update(item); err != nil {
		if errors.Is(err, ErrDuplicateSlug) {
			return nil, conflictf("slug %q is already in use", item.Slug)
		}
		return nil, err
	}
	return item, nil
}

// Delete hard-deletes an item after the ownership gate.
func (s *Service) Delete(principal *session.Principal, pol Policy, id uuid.UUID) error {
	item, err := s.store.FindByID(pol.Type, id)
	if err != nil {
		return err
	}
	if item == nil {
		return notFound(string(pol.Type))
	}
	if err := verdictErr(auth.Check(principal, auth.ActionDelete, item)); err != nil {
		return err
	}
	return s.store.Delete(pol.Type, id)
}

// Get resolves key as a UUID first and falls back to a slug lookup.
// Unpublished items are only visible to their author and admins; to
// everyone else they are indistinguishable from missing records.
func (s *Service) Get(principal *session.Principal, pol Policy, key string) (*models.Content, error) {
	var item *models.Content
	var err error
	if id, parseErr := uuid.Parse(key); parseErr == nil {
		item, err = s.store.FindByID(pol.Type, id)
	} else {
		item, err = s.store.FindBySlug(pol.Type, key)
	}
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound(string(pol.Type))
	}
	if auth.Check(principal, auth.ActionRead, item) != auth.Allow {
		return nil, notFound(string(pol.Type))
	}
	return item, nil
}

// List applies the type-specific filters, the visibility scope of the
// principal, the priority order, and pagination.
func (s *Service) List(principal *session.Principal, pol Policy, opts ListOptions) ([]models.Content, Pagination, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = pol.DefaultLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	q := ListQuery{
		Type:     pol.Type,
		Search:   strings.TrimSpace(opts.Search),
		Reviewer: strings.TrimSpace(opts.Reviewer),
		Featured: opts.Featured,
		Scope:    auth.VisibleScope(principal),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}

	if opts.Category != "" {
		cat, err := s.resolveCategory(opts.Category)
		if err != nil {
			return nil, Pagination{}, err
		}
		q.CategoryID = &cat.ID
	}
	if opts.Author != "" {
		authorID, err := uuid.Parse(opts.Author)
		if err != nil {
			return nil, Pagination{}, validationf("author must be a user id")
		}
		q.AuthorID = &authorID
	}

	items, total, err := s.store.List(q)
	if err != nil {
		return nil, Pagination{}, err
	}
	return items, NewPagination(page, limit, total), nil
}

// ListRecent returns up to limit published items of the given type,
// newest first, optionally restricted to one category. Used for homepage
// category previews, where recency beats priority.
func (s *Service) ListRecent(pol Policy, categoryID *uuid.UUID, limit int) ([]models.Content, error) {
	items, _, err := s.store.List(ListQuery{
		Type:        pol.Type,
		CategoryID:  categoryID,
		Scope:       auth.Scope{PublishedOnly: true},
		RecentFirst: true,
		Limit:       limit,
	})
	return items, err
}

// resolveCategory looks a category up by id or slug. A missing category is
// a validation failure, not a NotFound — the item payload is what is wrong.
func (s *Service) resolveCategory(ref string) (*models.Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, validationf("category is required")
	}

	var cat *models.Category
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		cat, err = s.categories.FindByID(id)
	} else {
		cat, err = s.categories.FindBySlug(ref)
	}
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, validationf("category %q not found", ref)
	}
	return cat, nil
}

// deriveExcerpt builds the plain-text summary for a body. Markdown is
// rendered to HTML first so markup syntax never leaks into the excerpt.
func deriveExcerpt(body string, format models.BodyFormat) string {
	if format == models.BodyFormatMarkdown {
		if html, err := markdown.ToHTML(body); err == nil {
			body = html
		}
	}
	return excerpt.Synthesize(body, excerpt.DefaultMaxLength)
}

// verdictErr maps a gate verdict to a pipeline error.
func verdictErr(v auth.Verdict) error {
	switch v {
	case auth.Allow:
		return nil
	case auth.DenyUnauthenticated:
		return unauthorized()
	default:
		return forbidden()
	}
}

// setOptional stores a trimmed string into a nullable field, clearing it
// when the value is empty.
func setOptional(dst **string, v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		*dst = nil
		return
	}
	*dst = &v
}
