// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"newsdesk/internal/models"
	"newsdesk/internal/slug"
	"newsdesk/internal/store"
)

// Categories serves the category sub-resource. Reads are public; writes
// are admin-gated at the router.
type Categories struct {
	store *store.CategoryStore
}

// NewCategories creates the category handler group.
func NewCategories(s *store.CategoryStore) *Categories {
	return &Categories{store: s}
}

// categoryPayload is the create/update request body. Nil fields on update
// are left untouched.
type categoryPayload struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Serial      *int    `json:"serial"`
}

// List returns all categories in homepage order with item counts.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	render.JSON(w, r, map[string]any{"items": items})
}

// GetBySerial looks a category up by its serial value, used by category
// landing pages.
func (h *Categories) GetBySerial(w http.ResponseWriter, r *http.Request) {
	serial, err := strconv.Atoi(chi.URLParam(r, "serial"))
	if err != nil {
		respondValidation(w, r, "serial must be an integer")
		return
	}

	cat, err := h.store.FindBySerial(serial)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if cat == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: "category not found"})
		return
	}
	render.JSON(w, r, cat)
}

// Create inserts a new category. Name is required and unique; the slug is
// derived from the name unless given explicitly.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondValidation(w, r, "invalid JSON payload")
		return
	}

	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		respondValidation(w, r, "name is required")
		return
	}

	cat := &models.Category{
		Name:   name,
		Serial: models.PriorityUnset,
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		cat.Slug = strings.TrimSpace(*in.Slug)
	} else {
		cat.Slug = slug.Generate(name, "category")
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	if in.Serial != nil {
		cat.Serial = *in.Serial
	}

	created, err := h.store.Create(cat)
	if errors.Is(err, store.ErrDuplicateCategory) {
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, errorResponse{Error: "a category with that name or slug already exists"})
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// Update applies a partial update to a category.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondValidation(w, r, "invalid id")
		return
	}

	cat, err := h.store.FindByID(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if cat == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: "category not found"})
		return
	}

	var in categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondValidation(w, r, "invalid JSON payload")
		return
	}

	nameChanged := false
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			respondValidation(w, r, "name cannot be empty")
			return
		}
		nameChanged = name != cat.Name
		cat.Name = name
	}
	switch {
	case in.Slug != nil && strings.TrimSpace(*in.Slug) != "":
		cat.Slug = strings.TrimSpace(*in.Slug)
	case nameChanged:
		cat.Slug = slug.Generate(cat.Name, "category")
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	if in.Serial != nil {
		cat.Serial = *in.Serial
	}

	if err := h.store.Update(cat); err != nil {
		if errors.Is(err, store.ErrDuplicateCategory) {
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, errorResponse{Error: "a category with that name or slug already exists"})
			return
		}
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, cat)
}

// Delete removes a category. News items referencing it keep their rows
// but lose the reference.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondValidation(w, r, "invalid id")
		return
	}

	cat, err := h.store.FindByID(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if cat == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: "category not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"message": "deleted"})
}
