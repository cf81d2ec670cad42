// Package router sets up all HTTP routes and middleware chains for the
// Newsdesk portal. It organizes routes into public and authenticated
// groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/content"
	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/session"
)

// loginRateLimit allows this many login attempts per IP per window.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// New creates and returns the configured chi router with all middleware
// and route groups wired up.
func New(
	sessionStore *session.Store,
	contentHandlers map[models.ContentType]*handlers.Content,
	categories *handlers.Categories,
	home *handlers.Home,
	auth *handlers.Auth,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadPrincipal(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Authentication flow. Login is rate-limited per IP.
	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)
	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
		r.Get("/2fa/setup", auth.TwoFASetup)
		r.Post("/2fa/verify", auth.TwoFAVerify)
	})

	// Homepage aggregation.
	r.Get("/home", home.Homepage)

	// Categories — public reads, admin-gated writes.
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categories.List)
		r.Get("/serial/{serial}", categories.GetBySerial)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Post("/", categories.Create)
			r.Put("/{id}", categories.Update)
			r.Delete("/{id}", categories.Delete)
		})
	})

	// One identical route set per content type; the policy inside each
	// handler carries the type-specific behavior.
	for _, pol := range content.Policies {
		if h, ok := contentHandlers[pol.Type]; ok {
			r.Mount("/"+pol.PathName, h.Routes())
		}
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
