// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session tokens, the Google OAuth flow, and the
institutional-domain eligibility check.

# Sessions

Sessions are HS256 JWTs in an HttpOnly cookie. The subject claim is the
stable Google user ID; email and name ride along so request handling never
needs a round trip to the identity provider:

	token, err := auth.IssueSession(user, cfg.SessionSecret)
	auth.SetSessionCookie(w, token)

	user, err := auth.CurrentUser(r, cfg.SessionSecret)

CurrentUser returns ErrNoSession for anonymous requests and
ErrInvalidSession for expired or tampered tokens.

# OAuth

The standard authorization-code flow against Google:

	conf := auth.OAuthConfig(cfg)
	url := conf.AuthCodeURL(state)
	token, err := conf.Exchange(ctx, code)
	user, err := auth.FetchUserInfo(ctx, conf, token)

State is a random UUID held in a short-lived cookie across the redirect.

# Eligibility

	auth.EligibleEmail("ok@ucu.edu.ua", "ucu.edu.ua") // true

The email domain is the sole authorization signal for voting and results;
anyone can sign in, only institutional accounts can participate.
*/
package auth
