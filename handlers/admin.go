// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/kq-awards/voting-api/cliparse"
	"github.com/kq-awards/voting-api/middleware"
	"github.com/kq-awards/voting-api/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(database *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: database, cfg: cfg}
}

// requireAdmin resolves the session and checks the stored profile role.
// Writes the rejection itself and returns false when the caller must stop.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user := sessionUser(r, h.cfg)
	if user == nil {
		rejectGate(w, models.Decision{Reason: models.ReasonUnauthorized})
		return models.User{}, false
	}

	role, err := getProfileRole(h.db, user.ID)
	if err != nil {
		slog.Error("failed to query profile role", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.User{}, false
	}
	if role != models.RoleAdmin {
		rejectGate(w, models.Decision{Reason: models.ReasonForbidden})
		return models.User{}, false
	}

	return *user, true
}

// UpdateSettings handles POST /admin/settings
// Full overwrite of the singleton row from the admin form: an absent
// checkbox means false, an empty timestamp means null. Last writer wins.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	votingOpen := checkboxOn(r.FormValue("voting_open"))
	resultsPublic := checkboxOn(r.FormValue("results_public"))

	votingStart, err := parseFormTime(r.FormValue("voting_start"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid voting_start timestamp")
		return
	}
	votingEnd, err := parseFormTime(r.FormValue("voting_end"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid voting_end timestamp")
		return
	}
	resultsDate, err := parseFormTime(r.FormValue("results_date"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid results_date timestamp")
		return
	}

	_, err = h.db.Exec(`
		UPDATE settings
		SET voting_open = $1, results_public = $2,
		    voting_start = $3, voting_end = $4, results_date = $5
		WHERE id = 1
	`, votingOpen, resultsPublic, votingStart, votingEnd, resultsDate)

	if err != nil {
		slog.Error("failed to update settings", "error", err, "admin_id", admin.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	slog.Info("settings updated",
		"admin_id", admin.ID,
		"voting_open", votingOpen,
		"results_public", resultsPublic,
	)

	middleware.JSONResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// GetStats handles GET /admin/stats
// Distinct-voter total, hourly participation buckets, and the voter table
// with each voter's per-category choices.
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireAdmin(w, r); !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT v.created_at, v.voter_id, p.email, p.full_name, cat.title, cand.full_name
		FROM votes v
		JOIN profiles p ON p.id = v.voter_id
		JOIN categories cat ON cat.id = v.category_id
		JOIN candidates cand ON cand.id = v.candidate_id
		ORDER BY v.created_at ASC
	`)
	if err != nil {
		slog.Error("failed to query votes for stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	voters := map[string]*models.VoterRow{}
	buckets := map[time.Time]map[string]bool{}

	for rows.Next() {
		var createdAt time.Time
		var voterID, email, categoryTitle, candidateName string
		var fullName sql.NullString

		if err := rows.Scan(&createdAt, &voterID, &email, &fullName, &categoryTitle, &candidateName); err != nil {
			slog.Error("failed to scan stats row", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		hour := createdAt.Truncate(time.Hour)
		if buckets[hour] == nil {
			buckets[hour] = map[string]bool{}
		}
		buckets[hour][voterID] = true

		row, seen := voters[voterID]
		if !seen {
			row = &models.VoterRow{
				VoterID:  voterID,
				Email:    email,
				FullName: nullableString(fullName),
				VotedAt:  createdAt,
				Choices:  map[string]string{},
			}
			voters[voterID] = row
		}
		row.Choices[categoryTitle] = candidateName
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read stats rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	hours := make([]time.Time, 0, len(buckets))
	for hour := range buckets {
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })

	chart := make([]models.ChartPoint, 0, len(hours))
	for _, hour := range hours {
		chart = append(chart, models.ChartPoint{
			Label:  hour.Format("02.01 15") + ":00",
			Voters: len(buckets[hour]),
		})
	}

	table := make([]models.VoterRow, 0, len(voters))
	for _, row := range voters {
		table = append(table, *row)
	}
	sort.Slice(table, func(i, j int) bool { return table[i].VotedAt.After(table[j].VotedAt) })

	middleware.JSONResponse(w, http.StatusOK, models.AdminStatsResponse{
		TotalVoters: len(voters),
		Chart:       chart,
		Voters:      table,
	})
}

// checkboxOn accepts both HTML checkbox values and explicit booleans
func checkboxOn(v string) bool {
	return v == "on" || v == "true" || v == "1"
}

// parseFormTime parses an optional timestamp field. Accepts RFC 3339 and the
// datetime-local format browsers post. Empty means null.
func parseFormTime(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	var lastErr error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
		t, err := time.Parse(layout, v)
		if err == nil {
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
