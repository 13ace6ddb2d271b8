// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the voting API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health and observability:

	GET /health
	GET /metrics

Authentication:

	GET  /auth/sign-in   - Redirect to Google
	GET  /auth/callback  - Code exchange, session cookie
	POST /auth/logout    - Clear session
	GET  /auth/me        - Session identity, eligibility, role

Catalog (public):

	GET /candidates      - Categories and published candidates
	GET /candidates/{id} - One candidate

Voting (institutional accounts):

	GET  /status   - Voting window and this viewer's gate decision
	POST /vote     - Submit the whole ballot (atomic, final)
	GET  /my-votes - The voter's locked-in selections

Results (gated by results_date / results_public):

	GET /results

Administration (profile role admin):

	POST /admin/settings - Overwrite election configuration
	GET  /admin/stats    - Voter participation report
*/
package router
