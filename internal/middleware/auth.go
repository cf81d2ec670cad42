// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"newsdesk/internal/session"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// PrincipalKey is the context key for the authenticated principal.
	PrincipalKey contextKey = "principal"
)

// LoadPrincipal retrieves the session from Valkey and stores the principal
// in the request context. Downstream handlers access it via
// PrincipalFromCtx(). This middleware does NOT enforce authentication —
// a missing or expired session simply leaves the request unauthenticated.
func LoadPrincipal(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := store.Get(r.Context(), r)
			if err != nil {
				// Log-free degrade: treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			if p != nil {
				ctx := context.WithValue(r.Context(), PrincipalKey, p)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401. 2FA must be
// complete — a session created by password login alone does not count.
// Must be applied after LoadPrincipal in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFromCtx(r.Context())
		if p == nil || !p.TwoFADone {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose principal is not an admin with 403.
// Must be applied after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := PrincipalFromCtx(r.Context())
		if p == nil || !p.IsAdmin() {
			writeJSONError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// PrincipalFromCtx extracts the principal from the request context.
// Returns nil if no session is loaded (the request is unauthenticated).
func PrincipalFromCtx(ctx context.Context) *session.Principal {
	p, _ := ctx.Value(PrincipalKey).(*session.Principal)
	return p
}
