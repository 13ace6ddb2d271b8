// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the voting API, plus the
election's core decision and tallying logic.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: Google sign-in, OAuth callback, logout, session identity
  - CatalogHandler: category and candidate catalog
  - VoteHandler: voting status and ballot submission
  - ResultsHandler: gated tally output
  - AdminHandler: settings updates and voter statistics

Handlers are created via constructor functions that accept *sql.DB and Config:

	voteHandler := handlers.NewVoteHandler(db, cfg)

# Gates

Whether an action is currently permitted is decided by pure functions in
gates.go, evaluated against a settings snapshot and the wall clock:

	decision := handlers.CanVote(user, domain, settings, time.Now())
	decision := handlers.CanSeeResults(user, domain, settings, time.Now())

Rejections carry a reason constant from models, surfaced to clients in the
error payload (401 unauthorized, 403 otherwise).

# Vote Submission

POST /vote accepts the whole ballot at once, one selection per category, and
inserts it in a single transaction. The primary key on (voter_id,
category_id) makes re-submission fail atomically: the ledger keeps the first
ballot and the request gets 409 duplicate_vote. There is no update path.

# Tallying

ComputeResults in tally.go folds the vote_counts view into per-category
rankings. Every published candidate appears, zero-vote candidates included;
ties keep catalog order via a stable sort; percentages round to integers and
an empty category yields 0 for everyone.

# Admin

POST /admin/settings overwrites the singleton settings row (role admin
required, checked against the profiles table). GET /admin/stats reports
distinct voters, hourly participation, and each voter's choices.
*/
package handlers
