// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/kq-awards/voting-api/cliparse"
	"github.com/kq-awards/voting-api/models"
)

// StateCookie carries the anti-CSRF state value across the OAuth redirect.
const StateCookie = "kq_oauth_state"

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthConfig builds the Google code-flow configuration
func OAuthConfig(cfg cliparse.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// GenerateState returns a fresh state value for the authorization redirect
func GenerateState() string {
	return uuid.NewString()
}

// googleUserinfo is the subset of the userinfo payload we consume
type googleUserinfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FetchUserInfo loads the voter identity from Google's userinfo endpoint
// using an already-exchanged token.
func FetchUserInfo(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) (models.User, error) {
	client := conf.Client(ctx, token)

	resp, err := client.Get(userinfoURL)
	if err != nil {
		return models.User{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.User{}, fmt.Errorf("userinfo request failed: status %d", resp.StatusCode)
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return models.User{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return models.User{}, fmt.Errorf("userinfo response missing id or email")
	}

	return models.User{
		ID:       info.ID,
		Email:    info.Email,
		FullName: info.Name,
	}, nil
}
