// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/kq-awards/voting-api/auth"
	"github.com/kq-awards/voting-api/cliparse"
	"github.com/kq-awards/voting-api/middleware"
	"github.com/kq-awards/voting-api/models"
)

type AuthHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAuthHandler(database *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: database, cfg: cfg}
}

// SignIn handles GET /auth/sign-in
// Redirects to Google's consent screen with a fresh state cookie.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	state := auth.GenerateState()

	http.SetCookie(w, &http.Cookie{
		Name:     auth.StateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute) / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	conf := auth.OAuthConfig(h.cfg)
	http.Redirect(w, r, conf.AuthCodeURL(state), http.StatusFound)
}

// Callback handles GET /auth/callback
// Exchanges the authorization code, loads the Google identity, and issues
// the session cookie. Anyone may sign in; eligibility is checked per gate.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")

	stateCookie, err := r.Cookie(auth.StateCookie)
	if err != nil || state == "" || stateCookie.Value != state {
		slog.Warn("oauth state mismatch", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}

	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	conf := auth.OAuthConfig(h.cfg)

	token, err := conf.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("oauth code exchange failed", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Sign-in failed")
		return
	}

	user, err := auth.FetchUserInfo(r.Context(), conf, token)
	if err != nil {
		slog.Error("failed to fetch userinfo", "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Sign-in failed")
		return
	}

	session, err := auth.IssueSession(user, h.cfg.SessionSecret)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Sign-in failed")
		return
	}
	auth.SetSessionCookie(w, session)

	// State cookie is single-use
	http.SetCookie(w, &http.Cookie{Name: auth.StateCookie, Value: "", Path: "/", MaxAge: -1})

	canVote := "0"
	if auth.EligibleEmail(user.Email, h.cfg.EmailDomain) {
		canVote = "1"
	}

	slog.Info("user signed in", "user_id", user.ID, "eligible", canVote == "1")

	http.Redirect(w, r, "/?toast=login&canVote="+canVote, http.StatusFound)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Me handles GET /auth/me
// Returns the session identity plus eligibility and stored role.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r, h.cfg)
	if user == nil {
		rejectGate(w, models.Decision{Reason: models.ReasonUnauthorized})
		return
	}

	role, err := getProfileRole(h.db, user.ID)
	if err != nil {
		slog.Error("failed to query profile role", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Eligible: auth.EligibleEmail(user.Email, h.cfg.EmailDomain),
		Role:     role,
	})
}
