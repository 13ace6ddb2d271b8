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
	"github.com/kq-awards/voting-api/db"
	"github.com/kq-awards/voting-api/metrics"
	"github.com/kq-awards/voting-api/middleware"
	"github.com/kq-awards/voting-api/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(database *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: database, cfg: cfg}
}

// gateMessages are the user-facing explanations for gate rejections
var gateMessages = map[string]string{
	models.ReasonUnauthorized:   "Sign in with your institutional account to vote",
	models.ReasonVotingClosed:   "Voting is closed",
	models.ReasonNotStartedYet:  "Voting has not started yet",
	models.ReasonVotingEnded:    "Voting has ended",
	models.ReasonForbidden:      "Restricted to institutional accounts",
	models.ReasonNotYetRevealed: "Results are not revealed yet",
}

// gateStatus maps a gate reason to its HTTP status
func gateStatus(reason string) int {
	if reason == models.ReasonUnauthorized {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

// rejectGate writes the standard response for a failed gate decision
func rejectGate(w http.ResponseWriter, d models.Decision) {
	middleware.GateResponse(w, gateStatus(d.Reason), d.Reason, gateMessages[d.Reason])
}

// sessionUser resolves the request's session, or nil for anonymous/expired
func sessionUser(r *http.Request, cfg cliparse.Config) *models.User {
	user, err := auth.CurrentUser(r, cfg.SessionSecret)
	if err != nil {
		return nil
	}
	return &user
}

// Status handles GET /status
// Returns the voting window snapshot plus this viewer's gate decision, so
// the client can render the form, a countdown, or a closed banner.
func (h *VoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	settings, err := getSettings(h.db)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StatusResponse{
		VotingOpen:  settings.VotingOpen,
		VotingStart: settings.VotingStart,
		VotingEnd:   settings.VotingEnd,
		ResultsDate: settings.ResultsDate,
		CanVote:     CanVote(sessionUser(r, h.cfg), h.cfg.EmailDomain, settings, time.Now()),
	})
}

// Submit handles POST /vote
// The whole ballot is inserted in one transaction: any uniqueness conflict
// aborts the batch and the voter keeps their original ballot.
func (h *VoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r, h.cfg)

	settings, err := getSettings(h.db)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if decision := CanVote(user, h.cfg.EmailDomain, settings, time.Now()); !decision.Allowed {
		metrics.VotesSubmitted.WithLabelValues(metrics.OutcomeRejected).Inc()
		rejectGate(w, decision)
		return
	}

	var req models.SubmitVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Selections) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "selections cannot be empty")
		return
	}

	// Every submitted pair must name a published candidate in the claimed
	// category; a mismatched pair rejects the whole ballot.
	candidateCategory, err := h.candidateCategories()
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for categoryID, candidateID := range req.Selections {
		actual, ok := candidateCategory[candidateID]
		if !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown candidate: "+candidateID)
			return
		}
		if actual != categoryID {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				"Candidate "+candidateID+" does not belong to category "+categoryID)
			return
		}
	}

	now := time.Now()

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Profile row must exist before the votes FK; first write wins
	if err := ensureProfile(tx, *user, now); err != nil {
		slog.Error("failed to ensure profile", "error", err, "voter_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save votes")
		return
	}

	for categoryID, candidateID := range req.Selections {
		_, err := tx.Exec(`
			INSERT INTO votes (voter_id, category_id, candidate_id, created_at)
			VALUES ($1, $2, $3, $4)
		`, user.ID, categoryID, candidateID, now)

		if err != nil {
			if db.IsUniqueViolation(err) {
				metrics.VotesSubmitted.WithLabelValues(metrics.OutcomeDuplicate).Inc()
				slog.Info("duplicate vote rejected", "voter_id", user.ID, "category_id", categoryID)
				middleware.GateResponse(w, http.StatusConflict, models.ReasonDuplicateVote,
					"You have already voted")
				return
			}
			metrics.VotesSubmitted.WithLabelValues(metrics.OutcomeError).Inc()
			slog.Error("failed to insert vote", "error", err, "voter_id", user.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save votes")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.VotesSubmitted.WithLabelValues(metrics.OutcomeError).Inc()
		slog.Error("failed to commit votes", "error", err, "voter_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save votes")
		return
	}

	metrics.VotesSubmitted.WithLabelValues(metrics.OutcomeAccepted).Inc()
	slog.Info("votes submitted", "voter_id", user.ID, "categories", len(req.Selections))

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVotesResponse{
		Message: "Votes submitted successfully",
	})
}

// MyVotes handles GET /my-votes
// Returns the session voter's locked-in ballot as category -> candidate.
func (h *VoteHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	user := sessionUser(r, h.cfg)
	if user == nil {
		rejectGate(w, models.Decision{Reason: models.ReasonUnauthorized})
		return
	}

	selections, err := getUserVotes(h.db, user.ID)
	if err != nil {
		slog.Error("failed to query votes", "error", err, "voter_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, selections)
}

// candidateCategories maps published candidate IDs to their category
func (h *VoteHandler) candidateCategories() (map[string]string, error) {
	rows, err := h.db.Query(`
		SELECT id, category_id FROM candidates WHERE is_published = TRUE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var id, categoryID string
		if err := rows.Scan(&id, &categoryID); err != nil {
			return nil, err
		}
		m[id] = categoryID
	}

	return m, rows.Err()
}
