// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from content titles.
// Titles may be written in Latin script, Bengali script, or a mix of both,
// so the allowed character set covers ASCII alphanumerics and the Bengali
// Unicode block.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// separators matches whitespace runs and sentence terminators, all of
	// which become a single hyphen. The danda (।) is the Bengali full stop.
	separators = regexp.MustCompile(`[\s.,!?;:।]+`)
	// disallowed matches anything that isn't an ASCII alphanumeric, a
	// hyphen, or a character in the Bengali block.
	disallowed = regexp.MustCompile(`[^a-z0-9\x{0980}-\x{09FF}-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given title.
// Example: "Hello, World! 2026" → "hello-world-2026"
//
// The result is never empty: titles with no indexable characters fall back
// to "<prefix>-<epoch millis>", which is time-dependent but only triggers
// for titles a human could not have addressed anyway. prefix is the
// content type of the item being slugged.
func Generate(title, prefix string) string {
	result := strings.ToLower(strings.TrimSpace(title))
	result = separators.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if result == "" {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixMilli())
	}
	return result
}
