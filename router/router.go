// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kq-awards/voting-api/cliparse"
	"github.com/kq-awards/voting-api/handlers"
	"github.com/kq-awards/voting-api/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// Authentication
	mux.HandleFunc("GET /auth/sign-in", middleware.WithLogging(authHandler.SignIn))
	mux.HandleFunc("GET /auth/callback", middleware.WithLogging(authHandler.Callback))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(authHandler.Me))

	// Candidate catalog (public)
	mux.HandleFunc("GET /candidates", middleware.WithLogging(catalogHandler.List))
	mux.HandleFunc("GET /candidates/{id}", middleware.WithLogging(catalogHandler.Get))

	// Voting
	mux.HandleFunc("GET /status", middleware.WithLogging(voteHandler.Status))
	mux.HandleFunc("POST /vote", middleware.WithLogging(voteHandler.Submit))
	mux.HandleFunc("GET /my-votes", middleware.WithLogging(voteHandler.MyVotes))

	// Results (gated)
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))

	// Administration (role admin)
	mux.HandleFunc("POST /admin/settings", middleware.WithLogging(adminHandler.UpdateSettings))
	mux.HandleFunc("GET /admin/stats", middleware.WithLogging(adminHandler.GetStats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("kq-voting API v1"))
	})

	return mux
}
