// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SerialOpinion is the reserved serial value that marks the opinion
// category. The homepage previews that category with opinion pieces
// instead of news items.
const SerialOpinion = 99

// Category is a named grouping applied to news items. Serial orders
// categories on the homepage (ascending, PriorityUnset sorts last) and
// doubles as the key for category landing-page lookups.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Serial      int       `json:"serial"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Virtual field populated by store methods.
	ItemCount int `json:"item_count"`
}

// IsOpinion reports whether this category carries the reserved opinion serial.
func (c *Category) IsOpinion() bool {
	return c.Serial == SerialOpinion
}
