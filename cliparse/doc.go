// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment variables.

# Precedence

CLI flags win over environment variables. Missing required values are errors.

# Settings

Required:

  - DATABASE_URL (-d): Postgres connection string or SQLite path
  - SESSION_SECRET (--session-secret): HS256 signing key for session cookies
  - GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET: OAuth client credentials
    (not required for -stats)

Optional:

  - PORT (-p): server port (default 8080)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - EMAIL_DOMAIN (--email-domain): eligible domain (default ucu.edu.ua)
  - OAUTH_REDIRECT_URL (--redirect-url): defaults to localhost callback

# Modes

	kq-voting                 start the API server
	kq-voting -stats          print the tally report to the terminal and exit
*/
package cliparse
