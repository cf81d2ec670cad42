// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"sort"

	"newsdesk/internal/models"
)

// SortItems orders items for public listings: ascending priority, with the
// unset sentinel sorting after every explicitly prioritized item, then
// newest first as the tie-break. SQL listings mirror this order; the
// in-memory version serves homepage composition and anything already
// holding a slice.
func SortItems(items []models.Content) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority < items[j].Priority
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// SortCategories orders categories the same way the homepage shows them:
// ascending serial (unset sorts last), then by name for stability.
func SortCategories(cats []models.Category) {
	sort.SliceStable(cats, func(i, j int) bool {
		if cats[i].Serial != cats[j].Serial {
			return cats[i].Serial < cats[j].Serial
		}
		return cats[i].Name < cats[j].Name
	})
}

// Pagination is the listing envelope metadata returned with every page.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the envelope for a page of a total result set.
// Pages is ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
