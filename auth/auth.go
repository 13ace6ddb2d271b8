// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kq-awards/voting-api/models"
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "kq_session"

// SessionTTL is how long a login stays valid. Votes are cast within days of
// signing in, so a short-lived session is fine.
const SessionTTL = 7 * 24 * time.Hour

// SessionClaims are the JWT claims for a signed-in voter. Subject holds the
// stable Google user ID.
type SessionClaims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// IssueSession signs a session token for the given identity
func IssueSession(user models.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	})

	return token.SignedString([]byte(secret))
}

// ParseSession validates a session token and returns the identity it carries
func ParseSession(tokenString, secret string) (models.User, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return models.User{}, ErrInvalidSession
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.Subject == "" {
		return models.User{}, ErrInvalidSession
	}

	return models.User{
		ID:       claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName,
	}, nil
}

// CurrentUser extracts the signed-in identity from the request cookie.
// Returns ErrNoSession when the cookie is absent.
func CurrentUser(r *http.Request, secret string) (models.User, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return models.User{}, ErrNoSession
	}
	return ParseSession(cookie.Value, secret)
}

// SetSessionCookie attaches the session token to the response
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// EligibleEmail reports whether an email belongs to the institutional domain.
// The domain suffix is the sole authorization signal for voting and results.
func EligibleEmail(email, domain string) bool {
	if email == "" || domain == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(domain))
}
