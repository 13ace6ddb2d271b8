// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the KQ Awards voting API server.

KQ Awards is a single-election voting service: students sign in with their
institutional Google account, cast one vote per award category, and see the
results once the reveal date passes. Admins control the voting window and
read participation statistics.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SESSION_SECRET=... go run .

Or with flags:

	go run . -p 8080 -d "postgres://..." -t postgres

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string
  - SESSION_SECRET (--session-secret): Secret for session token signing
  - GOOGLE_CLIENT_ID (--google-client-id): Google OAuth client ID
  - GOOGLE_CLIENT_SECRET (--google-client-secret): Google OAuth client secret

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - OAUTH_REDIRECT_URL (--redirect-url): OAuth callback (default derived from port)
  - EMAIL_DOMAIN (--email-domain): Eligible voter domain (default: ucu.edu.ua)

Running with -stats prints a tally report to the terminal and exits instead
of serving HTTP; Google credentials are not needed in that mode.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers, gate decisions, and tallying
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Google OAuth flow and session tokens
  - db: Schema creation and driver error mapping
  - metrics: Prometheus instrumentation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
