// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"newsdesk/internal/content"
	"newsdesk/internal/models"
)

// homeCategoryCount is how many categories the homepage previews.
const homeCategoryCount = 4

// homePreviewSize is how many items each category preview pulls: one
// featured plus up to three others.
const homePreviewSize = 4

// CategoryLister is the category collaborator of the homepage.
type CategoryLister interface {
	List() ([]models.Category, error)
}

// Home composes the public homepage aggregation: the top categories in
// serial order, each previewed with its most recent published items.
type Home struct {
	categories CategoryLister
	service    *content.Service
}

// NewHome creates the homepage handler.
func NewHome(categories CategoryLister, service *content.Service) *Home {
	return &Home{categories: categories, service: service}
}

// homeSection is one category preview. Featured is the most recent
// published item; Others hold up to three more, newest first.
type homeSection struct {
	Category models.Category  `json:"category"`
	Featured *models.Content  `json:"featured"`
	Others   []models.Content `json:"others"`
}

// Homepage returns the per-category homepage preview. Categories are
// ordered ascending by serial (unset last) and capped at four. The
// category carrying the reserved opinion serial previews opinion pieces
// instead of news.
func (h *Home) Homepage(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List()
	if err != nil {
		respondError(w, r, err)
		return
	}

	content.SortCategories(cats)
	if len(cats) > homeCategoryCount {
		cats = cats[:homeCategoryCount]
	}

	sections := make([]homeSection, 0, len(cats))
	for _, cat := range cats {
		pol := content.Policies[models.ContentTypeNews]
		categoryID := &cat.ID
		if cat.IsOpinion() {
			// Opinion pieces carry no category reference; the reserved
			// serial is what ties them to this homepage slot.
			pol = content.Policies[models.ContentTypeOpinion]
			categoryID = nil
		}

		items, err := h.service.ListRecent(pol, categoryID, homePreviewSize)
		if err != nil {
			respondError(w, r, err)
			return
		}

		section := homeSection{Category: cat, Others: []models.Content{}}
		if len(items) > 0 {
			section.Featured = &items[0]
			section.Others = items[1:]
		}
		sections = append(sections, section)
	}

	render.JSON(w, r, map[string]any{"sections": sections})
}
