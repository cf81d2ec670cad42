package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pquerna/otp/totp"
	"github.com/redis/go-redis/v9"

	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/session"
	"newsdesk/internal/store"
)

// The login flow test needs both PostgreSQL and Valkey; it skips when
// either is unreachable.

func testValkey(t *testing.T) *redis.Client {
	t.Helper()

	host := testEnvOr("VALKEY_HOST", "localhost")
	port := testEnvOr("VALKEY_PORT", "6379")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestLoginAndTwoFAFlow(t *testing.T) {
	db := testDB(t)
	sessions := session.NewStore(testValkey(t), false)

	users := store.NewUserStore(db)
	email := fmt.Sprintf("auth-flow-%d@test.local", time.Now().UnixNano())
	user, err := users.Create(email, "correct horse", "Flow Tester", models.RoleEditor)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", user.ID) })

	authHandler := NewAuth(sessions, users)
	r := chi.NewRouter()
	r.Use(middleware.LoadPrincipal(sessions))
	r.Post("/auth/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)
	r.Get("/auth/2fa/setup", authHandler.TwoFASetup)
	r.Post("/auth/2fa/verify", authHandler.TwoFAVerify)
	r.With(middleware.RequireAuth).Get("/protected", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		payload := fmt.Sprintf(`{"email": %q, "password": "nope"}`, email)
		rec := doRequest(r, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(payload)))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	// Log in with the correct password; the session is pending 2FA.
	payload := fmt.Sprintf(`{"email": %q, "password": "correct horse"}`, email)
	rec := doRequest(r, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d\n%s", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if body["two_fa_required"] != true || body["two_fa_setup"] != true {
		t.Fatalf("login response = %v, want 2FA setup required", body)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want the session cookie", len(cookies))
	}
	sessionCookie := cookies[0]
	withSession := func(req *http.Request) *http.Request {
		req.AddCookie(sessionCookie)
		return req
	}

	t.Run("pending session cannot write", func(t *testing.T) {
		rec := doRequest(r, withSession(httptest.NewRequest(http.MethodGet, "/protected", nil)))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401 before 2FA", rec.Code)
		}
	})

	// Run TOTP enrollment.
	rec = doRequest(r, withSession(httptest.NewRequest(http.MethodGet, "/auth/2fa/setup", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("2fa setup status = %d\n%s", rec.Code, rec.Body.String())
	}
	setup := decodeJSON(t, rec)
	secret, _ := setup["secret"].(string)
	if secret == "" || setup["qr_png"] == "" || setup["otpauth_url"] == "" {
		t.Fatalf("setup response incomplete: %v", setup)
	}

	t.Run("wrong code rejected", func(t *testing.T) {
		rec := doRequest(r, withSession(httptest.NewRequest(http.MethodPost, "/auth/2fa/verify",
			strings.NewReader(`{"code": "000000"}`))))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	code, err := totp.GenerateCode(secret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	rec = doRequest(r, withSession(httptest.NewRequest(http.MethodPost, "/auth/2fa/verify",
		strings.NewReader(fmt.Sprintf(`{"code": %q}`, code)))))
	if rec.Code != http.StatusOK {
		t.Fatalf("2fa verify status = %d\n%s", rec.Code, rec.Body.String())
	}

	// Enrollment persisted and the session is now fully usable.
	enrolled, err := users.FindByID(user.ID)
	if err != nil || enrolled == nil {
		t.Fatalf("reload user: %v", err)
	}
	if !enrolled.TOTPEnabled {
		t.Error("TOTP not enabled after first successful verify")
	}

	rec = doRequest(r, withSession(httptest.NewRequest(http.MethodGet, "/protected", nil)))
	if rec.Code != http.StatusOK {
		t.Errorf("protected after 2FA = %d, want 200", rec.Code)
	}

	// Logout invalidates the session.
	rec = doRequest(r, withSession(httptest.NewRequest(http.MethodPost, "/auth/logout", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	rec = doRequest(r, withSession(httptest.NewRequest(http.MethodGet, "/protected", nil)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("protected after logout = %d, want 401", rec.Code)
	}
}
