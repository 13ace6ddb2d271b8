// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/kq-awards/voting-api/cliparse"
	"github.com/kq-awards/voting-api/middleware"
	"github.com/kq-awards/voting-api/models"
)

type CatalogHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCatalogHandler(database *sql.DB, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{db: database, cfg: cfg}
}

// List handles GET /candidates
// The catalog is public: categories in display order plus all published
// candidates. Unpublished candidates never leave the database.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, models.CatalogResponse{
		Categories: categories,
		Candidates: candidates,
	})
}

// Get handles GET /candidates/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	candidate, err := getCandidateByID(h.db, id)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to query candidate", "error", err, "candidate_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidate)
}
