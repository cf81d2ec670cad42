// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"newsdesk/internal/content"
	"newsdesk/internal/markdown"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
)

// Content serves one content type's CRUD surface. The same handler code
// runs for news, opinions, book reviews and videos — the policy carries
// every per-type divergence.
type Content struct {
	service *content.Service
	policy  content.Policy
}

// NewContent creates a content handler group for one type policy.
func NewContent(service *content.Service, policy content.Policy) *Content {
	return &Content{service: service, policy: policy}
}

// Routes returns the chi subrouter for this content type. Reads are
// public; writes require a fully authenticated session before the
// per-item gate runs.
func (h *Content) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{key}", h.Get)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		// id-in-query variants kept for older portal clients.
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
	return r
}

// itemResponse is a content item plus the rendered HTML body for
// markdown items.
type itemResponse struct {
	models.Content
	BodyHTML string `json:"body_html,omitempty"`
}

func newItemResponse(c *models.Content) itemResponse {
	resp := itemResponse{Content: *c}
	if c.BodyFormat == models.BodyFormatMarkdown {
		if html, err := markdown.ToHTML(c.Body); err == nil {
			resp.BodyHTML = html
		}
	}
	return resp
}

// listResponse is the listing envelope.
type listResponse struct {
	Items      []models.Content   `json:"items"`
	Pagination content.Pagination `json:"pagination"`
}

// List returns a filtered, ordered, paginated listing. When the caller
// narrows by slug or id, the single-item shape is returned instead of an
// envelope around one element.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())
	qs := r.URL.Query()

	// slug/id narrow the listing to a single record.
	if key := qs.Get("slug"); key != "" {
		h.getByKey(w, r, key)
		return
	}
	if key := qs.Get("id"); key != "" {
		h.getByKey(w, r, key)
		return
	}

	opts := content.ListOptions{
		Search:   qs.Get("search"),
		Category: qs.Get("category"),
		Reviewer: qs.Get("reviewer"),
		Author:   qs.Get("author"),
	}
	if v := qs.Get("page"); v != "" {
		opts.Page, _ = strconv.Atoi(v)
	}
	if v := qs.Get("limit"); v != "" {
		opts.Limit, _ = strconv.Atoi(v)
	}
	if v := qs.Get("featured"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.Featured = &b
		}
	}

	items, pagination, err := h.service.List(principal, h.policy, opts)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []models.Content{}
	}

	render.JSON(w, r, listResponse{Items: items, Pagination: pagination})
}

// Get returns one item by slug or id.
func (h *Content) Get(w http.ResponseWriter, r *http.Request) {
	h.getByKey(w, r, chi.URLParam(r, "key"))
}

func (h *Content) getByKey(w http.ResponseWriter, r *http.Request, key string) {
	principal := middleware.PrincipalFromCtx(r.Context())
	item, err := h.service.Get(principal, h.policy, key)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newItemResponse(item))
}

// Create runs the publishing pipeline for a new item and returns it with 201.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	var in content.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondValidation(w, r, "invalid JSON payload")
		return
	}

	created, err := h.service.Create(principal, h.policy, in)
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newItemResponse(created))
}

// Update applies a partial update to an item.
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var in content.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondValidation(w, r, "invalid JSON payload")
		return
	}

	updated, err := h.service.Update(principal, h.policy, id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, newItemResponse(updated))
}

// Delete removes an item permanently.
func (h *Content) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromCtx(r.Context())

	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(principal, h.policy, id); err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"message": "deleted"})
}

// itemID reads the target id from the URL path, falling back to the id
// query parameter. Writes a 400 and returns false when neither parses.
func (h *Content) itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		idStr = r.URL.Query().Get("id")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		respondValidation(w, r, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
