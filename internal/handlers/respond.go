// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers for the Newsdesk
// portal. Handlers are grouped by concern (content, categories, homepage,
// auth) and receive their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"newsdesk/internal/content"
)

// errorResponse is the uniform JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps a pipeline error to its HTTP status and writes the
// JSON body. Unclassified errors are logged with full detail and
// downgraded to a generic 500 message so internals never reach the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch content.KindOf(err) {
	case content.KindValidation:
		status = http.StatusBadRequest
	case content.KindUnauthorized:
		status = http.StatusUnauthorized
	case content.KindForbidden:
		status = http.StatusForbidden
	case content.KindConflict:
		status = http.StatusConflict
	case content.KindNotFound:
		status = http.StatusNotFound
	default:
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "internal server error"})
		return
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

// respondValidation writes a 400 with the given user-facing message.
func respondValidation(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: msg})
}
