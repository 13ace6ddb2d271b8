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
	"github.com/kq-awards/voting-api/metrics"
	"github.com/kq-awards/voting-api/middleware"
	"github.com/kq-awards/voting-api/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(database *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: database, cfg: cfg}
}

// GetResults handles GET /results
// Results are recomputed from the ledger on every request; nothing is cached.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	var user *models.User
	if u, err := auth.CurrentUser(r, h.cfg.SessionSecret); err == nil {
		user = &u
	}

	settings, err := getSettings(h.db)
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if decision := CanSeeResults(user, h.cfg.EmailDomain, settings, time.Now()); !decision.Allowed {
		metrics.ResultsRequests.WithLabelValues(metrics.OutcomeGated).Inc()
		rejectGate(w, decision)
		return
	}

	categories, err := getCategories(h.db)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	candidates, err := getCandidates(h.db)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	counts, err := getVoteCounts(h.db)
	if err != nil {
		slog.Error("failed to query vote counts", "error", err)
		metrics.ResultsRequests.WithLabelValues(metrics.OutcomeError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	metrics.ResultsRequests.WithLabelValues(metrics.OutcomeRevealed).Inc()

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Categories: ComputeResults(categories, candidates, counts),
	})
}
