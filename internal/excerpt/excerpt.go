// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package excerpt derives short plain-text summaries from rich content
// bodies. Editors can always supply an explicit excerpt; this package
// covers the common case where they don't.
package excerpt

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxLength is the excerpt length limit, in runes, including the
// appended ellipsis.
const DefaultMaxLength = 300

// ellipsis is appended when the plain text is truncated.
const ellipsis = "..."

// Synthesize strips markup from body and truncates the plain text to
// maxLength runes. Truncated excerpts always end with "..." and never
// exceed maxLength including it. maxLength values below the ellipsis
// length fall back to DefaultMaxLength.
//
// Synthesize never fails: malformed input yields an empty string so
// callers always get a usable value.
func Synthesize(body string, maxLength int) string {
	if maxLength <= len(ellipsis) {
		maxLength = DefaultMaxLength
	}

	text := StripTags(body)
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	runes := []rune(text)
	return string(runes[:maxLength-len(ellipsis)]) + ellipsis
}

// StripTags removes all markup from body and returns the remaining plain
// text, trimmed of surrounding whitespace. Returns an empty string when
// the body cannot be parsed.
func StripTags(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}
