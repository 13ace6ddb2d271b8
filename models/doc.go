// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SubmitVotesRequest: selections (map of category_id -> candidate_id)

The admin settings form is posted as url-encoded form fields, not JSON,
and is parsed directly in the admin handler.

# Response Types

Types for JSON responses:

  - SubmitVotesResponse: message
  - MeResponse: user_id, email, full_name, eligible, role
  - StatusResponse: voting window snapshot plus the viewer's gate decision
  - CatalogResponse: categories, candidates
  - ResultsResponse: per-category ranked tallies
  - AdminStatsResponse: total_voters, chart, voters
  - ErrorResponse: error, reason, message

# Domain Types

Internal data structures:

  - User: session identity from the auth cookie
  - Profile: voter profile row (role defaults to student)
  - Category, Candidate: the award catalog
  - Vote: one (voter, category) -> candidate choice
  - Settings: singleton election configuration
  - Decision: gate check outcome
  - CategoryResult, CandidateResult: derived tallies, never stored

# Constants

Roles:

	RoleStudent = "student"
	RoleAdmin   = "admin"

Gate reasons:

	ReasonUnauthorized, ReasonForbidden, ReasonVotingClosed,
	ReasonNotStartedYet, ReasonVotingEnded, ReasonNotYetRevealed,
	ReasonDuplicateVote
*/
package models
