// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Profile role constants
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Gate rejection reasons, returned in error payloads so clients can
// render the right state (countdown, closed banner, login prompt).
const (
	ReasonUnauthorized   = "unauthorized"
	ReasonForbidden      = "forbidden"
	ReasonVotingClosed   = "voting_closed"
	ReasonNotStartedYet  = "not_started_yet"
	ReasonVotingEnded    = "voting_ended"
	ReasonNotYetRevealed = "not_yet_revealed"
	ReasonDuplicateVote  = "duplicate_vote"
)

// Request types

// category_id -> candidate_id
type SubmitVotesRequest struct {
	Selections map[string]string `json:"selections"`
}

// Response types

type SubmitVotesResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Eligible bool   `json:"eligible"`
	Role     string `json:"role"`
}

type StatusResponse struct {
	VotingOpen  bool       `json:"voting_open"`
	VotingStart *time.Time `json:"voting_start,omitempty"`
	VotingEnd   *time.Time `json:"voting_end,omitempty"`
	ResultsDate *time.Time `json:"results_date,omitempty"`
	CanVote     Decision   `json:"can_vote"`
}

type CatalogResponse struct {
	Categories []Category  `json:"categories"`
	Candidates []Candidate `json:"candidates"`
}

type ResultsResponse struct {
	Categories []CategoryResult `json:"categories"`
}

type AdminStatsResponse struct {
	TotalVoters int          `json:"total_voters"`
	Chart       []ChartPoint `json:"chart"`
	Voters      []VoterRow   `json:"voters"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// Domain types

// User is the session identity extracted from the auth cookie. It is not a
// database row; the matching profiles row is created lazily on first vote.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SortOrder *int   `json:"sort_order,omitempty"`
}

type Candidate struct {
	ID               string    `json:"id"`
	CategoryID       string    `json:"category_id"`
	FullName         string    `json:"full_name"`
	City             *string   `json:"city,omitempty"`
	PhotoURL         *string   `json:"photo_url,omitempty"`
	ShortDescription *string   `json:"short_description,omitempty"`
	LongDescription  *string   `json:"long_description,omitempty"`
	IsWide           bool      `json:"is_wide"`
	IsPublished      bool      `json:"is_published"`
	CreatedAt        time.Time `json:"created_at"`
}

type Vote struct {
	VoterID     string    `json:"voter_id"`
	CategoryID  string    `json:"category_id"`
	CandidateID string    `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Settings is the singleton election configuration row. A missing row reads
// as everything closed.
type Settings struct {
	VotingOpen    bool       `json:"voting_open"`
	ResultsPublic bool       `json:"results_public"`
	VotingStart   *time.Time `json:"voting_start,omitempty"`
	VotingEnd     *time.Time `json:"voting_end,omitempty"`
	ResultsDate   *time.Time `json:"results_date,omitempty"`
}

// VoteCount is one row of the vote_counts view.
type VoteCount struct {
	CategoryID  string `json:"category_id"`
	CandidateID string `json:"candidate_id"`
	TotalVotes  int    `json:"total_votes"`
}

// Decision is the outcome of a gate check. Reason is empty when allowed.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Tally result types

type CandidateResult struct {
	CandidateID string  `json:"candidate_id"`
	CategoryID  string  `json:"category_id"`
	FullName    string  `json:"full_name"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Votes       int     `json:"votes"`
	Percent     int     `json:"percent"`
	Rank        int     `json:"rank"` // 1-indexed within category
}

type CategoryResult struct {
	CategoryID string            `json:"category_id"`
	Title      string            `json:"title"`
	TotalVotes int               `json:"total_votes"`
	Candidates []CandidateResult `json:"candidates"`
}

// Admin stats types

type ChartPoint struct {
	Label  string `json:"label"` // hourly bucket, e.g. "22.01 14:00"
	Voters int    `json:"voters"`
}

type VoterRow struct {
	VoterID  string            `json:"voter_id"`
	Email    string            `json:"email"`
	FullName *string           `json:"full_name,omitempty"`
	VotedAt  time.Time         `json:"voted_at"`
	Choices  map[string]string `json:"choices"` // category title -> candidate name
}
