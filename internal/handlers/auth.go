package handlers

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"newsdesk/internal/middleware"
	"newsdesk/internal/session"
	"newsdesk/internal/store"
)

// Auth groups all authentication-related HTTP handlers. The login flow is
// password plus mandatory TOTP: a fresh session is not usable for writes
// until the second factor is verified.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		sessions:  sessions,
		userStore: userStore,
	}
}

// loginRequest is the login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and opens a session with the second factor
// still pending. The response tells the client whether to verify an
// existing TOTP enrollment or run setup first.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid JSON payload")
		return
	}

	user, err := a.userStore.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, r, err)
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, req.Password) {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorResponse{Error: "invalid email or password"})
		return
	}

	// TwoFADone starts as false — the user must complete 2FA before the
	// session counts as authenticated.
	_, err = a.sessions.Create(r.Context(), w, &session.Principal{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		TwoFADone:   false,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"two_fa_required": true,
		"two_fa_setup":    user.Needs2FASetup(),
	})
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	render.JSON(w, r, map[string]string{"message": "logged out"})
}

// TwoFASetup generates a TOTP secret for the pending principal and
// returns the provisioning data, including a QR code PNG.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())
	if p == nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorResponse{Error: "authentication required"})
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Newsdesk",
		AccountName: p.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondError(w, r, err)
		return
	}

	if err := a.userStore.SetTOTPSecret(p.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		respondError(w, r, err)
		return
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr encode failed", "error", err)
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{
		"secret":      key.Secret(),
		"otpauth_url": key.URL(),
		"qr_png":      base64.StdEncoding.EncodeToString(png),
	})
}

// twoFAVerifyRequest carries the TOTP code.
type twoFAVerifyRequest struct {
	Code string `json:"code"`
}

// TwoFAVerify validates a TOTP code, completes enrollment on first use,
// and marks the session fully authenticated.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	p := middleware.PrincipalFromCtx(r.Context())
	if p == nil {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorResponse{Error: "authentication required"})
		return
	}

	var req twoFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid JSON payload")
		return
	}

	user, err := a.userStore.FindByID(p.UserID)
	if err != nil || user == nil || user.TOTPSecret == nil {
		slog.Error("2fa verify lookup failed", "error", err)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "2FA is not set up"})
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorResponse{Error: "invalid code"})
		return
	}

	if user.Needs2FASetup() {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			respondError(w, r, err)
			return
		}
	}

	p.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, p); err != nil {
		slog.Error("session update failed", "error", err)
		respondError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]any{
		"user_id":      p.UserID,
		"display_name": p.DisplayName,
		"role":         p.Role,
	})
}
