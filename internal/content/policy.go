// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import "newsdesk/internal/models"

// Policy captures the per-type divergences of the publishing pipeline.
// One generic pipeline parameterized by a Policy replaces four
// near-identical handler sets.
type Policy struct {
	Type models.ContentType

	// PathName is the URL segment serving this type ("news", "opinions", ...).
	PathName string

	// DefaultPublished is stored when the payload omits the published flag.
	DefaultPublished bool

	// RequiresCategory makes a resolvable category reference mandatory.
	RequiresCategory bool

	// RequiresWriter makes writer_name mandatory (opinion pieces carry the
	// byline of external contributors, not the submitting editor).
	RequiresWriter bool

	// RequiresBody makes a non-empty body mandatory.
	RequiresBody bool

	// RequiresVideoURL makes video_url mandatory.
	RequiresVideoURL bool

	// DefaultLimit is the listing page size when the caller gives none.
	DefaultLimit int
}

// Policies holds the pipeline policy for each content type.
var Policies = map[models.ContentType]Policy{
	models.ContentTypeNews: {
		Type:             models.ContentTypeNews,
		PathName:         "news",
		RequiresCategory: true,
		RequiresBody:     true,
		DefaultLimit:     10,
	},
	models.ContentTypeOpinion: {
		Type:           models.ContentTypeOpinion,
		PathName:       "opinions",
		RequiresWriter: true,
		RequiresBody:   true,
		DefaultLimit:   10,
	},
	models.ContentTypeBookReview: {
		Type:         models.ContentTypeBookReview,
		PathName:     "bookreviews",
		RequiresBody: true,
		DefaultLimit: 10,
	},
	models.ContentTypeVideo: {
		Type:             models.ContentTypeVideo,
		PathName:         "videos",
		DefaultPublished: true,
		RequiresVideoURL: true,
		DefaultLimit:     20,
	},
}

// PolicyForPath resolves a URL segment to its policy.
func PolicyForPath(path string) (Policy, bool) {
	for _, p := range Policies {
		if p.PathName == path {
			return p, true
		}
	}
	return Policy{}, false
}
