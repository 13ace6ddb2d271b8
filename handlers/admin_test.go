package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/kq-awards/voting-api/models"
	"github.com/kq-awards/voting-api/testutil"
)

func adminForm(values url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/admin/settings", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestUpdateSettingsAuthorization(t *testing.T) {
	conn := setupTestDB(t)
	cfg := getTestConfig()
	handler := NewAdminHandler(conn, cfg)

	student := testutil.CreateTestProfile(t, conn, "vasyl@ucu.edu.ua", models.RoleStudent)

	tests := []struct {
		name           string
		user           *models.User
		expectedStatus int
	}{
		{name: "anonymous", user: nil, expectedStatus: http.StatusUnauthorized},
		{name: "student role", user: &student, expectedStatus: http.StatusForbidden},
		{
			// No profile row yet: never voted, definitely not an admin
			name:           "unknown profile",
			user:           &models.User{ID: "google-unknown", Email: "new@ucu.edu.ua"},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := adminForm(url.Values{"voting_open": {"on"}})
			if tt.user != nil {
				req = testutil.WithSession(t, req, *tt.user, cfg)
			}
			w := httptest.NewRecorder()

			handler.UpdateSettings(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// Nothing was written
	var open bool
	if err := conn.QueryRow(`SELECT voting_open FROM settings WHERE id = 1`).Scan(&open); err != nil {
		t.Fatalf("Failed to read settings: %v", err)
	}
	if open {
		t.Error("Settings must not change on rejected requests")
	}
}

func TestUpdateSettings(t *testing.T) {
	conn := setupTestDB(t)
	cfg := getTestConfig()
	handler := NewAdminHandler(conn, cfg)

	admin := testutil.CreateTestProfile(t, conn, "admin@ucu.edu.ua", models.RoleAdmin)

	req := adminForm(url.Values{
		"voting_open":  {"on"},
		"voting_start": {"2026-01-20T00:00"},
		"voting_end":   {"2026-01-22T23:59"},
		"results_date": {"2026-02-01T00:00:00Z"},
	})
	req = testutil.WithSession(t, req, admin, cfg)
	w := httptest.NewRecorder()

	handler.UpdateSettings(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	settings, err := getSettings(conn)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if !settings.VotingOpen {
		t.Error("Expected voting_open true")
	}
	if settings.ResultsPublic {
		t.Error("Absent checkbox must read as false")
	}
	if settings.VotingStart == nil || settings.VotingEnd == nil || settings.ResultsDate == nil {
		t.Fatalf("Expected all timestamps set, got %+v", settings)
	}
	if got := settings.VotingStart.Format("2006-01-02 15:04"); got != "2026-01-20 00:00" {
		t.Errorf("Unexpected voting_start: %s", got)
	}

	// Full overwrite: a second form without the fields clears them
	req = adminForm(url.Values{"results_public": {"on"}})
	req = testutil.WithSession(t, req, admin, cfg)
	w = httptest.NewRecorder()

	handler.UpdateSettings(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	settings, err = getSettings(conn)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if settings.VotingOpen {
		t.Error("Expected voting_open cleared by the overwrite")
	}
	if !settings.ResultsPublic {
		t.Error("Expected results_public true")
	}
	if settings.VotingStart != nil || settings.VotingEnd != nil || settings.ResultsDate != nil {
		t.Errorf("Expected timestamps cleared, got %+v", settings)
	}
}

func TestUpdateSettingsInvalidTimestamp(t *testing.T) {
	conn := setupTestDB(t)
	cfg := getTestConfig()
	handler := NewAdminHandler(conn, cfg)

	admin := testutil.CreateTestProfile(t, conn, "admin@ucu.edu.ua", models.RoleAdmin)

	req := adminForm(url.Values{"voting_start": {"not-a-date"}})
	req = testutil.WithSession(t, req, admin, cfg)
	w := httptest.NewRecorder()

	handler.UpdateSettings(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestAdminStats(t *testing.T) {
	conn := setupTestDB(t)
	cfg := getTestConfig()
	handler := NewAdminHandler(conn, cfg)

	admin := testutil.CreateTestProfile(t, conn, "admin@ucu.edu.ua", models.RoleAdmin)

	academicID := testutil.CreateTestCategory(t, conn, "Academic Excellence", 1)
	sportsID := testutil.CreateTestCategory(t, conn, "Sports", 2)
	cand1 := testutil.CreateTestCandidate(t, conn, academicID, "Olena")
	cand2 := testutil.CreateTestCandidate(t, conn, sportsID, "Ihor")

	base := time.Date(2026, 1, 21, 14, 10, 0, 0, time.UTC)

	voter1 := testutil.CreateTestProfile(t, conn, "vasyl@ucu.edu.ua", models.RoleStudent)
	testutil.CastTestVote(t, conn, voter1.ID, academicID, cand1, base)
	testutil.CastTestVote(t, conn, voter1.ID, sportsID, cand2, base)

	voter2 := testutil.CreateTestProfile(t, conn, "marta@ucu.edu.ua", models.RoleStudent)
	testutil.CastTestVote(t, conn, voter2.ID, academicID, cand1, base.Add(3*time.Hour))

	req := testutil.MakeRequest("GET", "/admin/stats", nil, nil)
	req = testutil.WithSession(t, req, admin, cfg)
	w := httptest.NewRecorder()

	handler.GetStats(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.AdminStatsResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.TotalVoters != 2 {
		t.Errorf("Expected 2 distinct voters, got %d", resp.TotalVoters)
	}

	// Two hourly buckets, chronological, one voter each
	if len(resp.Chart) != 2 {
		t.Fatalf("Expected 2 chart points, got %+v", resp.Chart)
	}
	if resp.Chart[0].Label != "21.01 14:00" || resp.Chart[0].Voters != 1 {
		t.Errorf("Unexpected first chart point: %+v", resp.Chart[0])
	}
	if resp.Chart[1].Label != "21.01 17:00" || resp.Chart[1].Voters != 1 {
		t.Errorf("Unexpected second chart point: %+v", resp.Chart[1])
	}

	// Voter table is newest-first with per-category choices
	if len(resp.Voters) != 2 {
		t.Fatalf("Expected 2 voter rows, got %d", len(resp.Voters))
	}
	if resp.Voters[0].Email != "marta@ucu.edu.ua" {
		t.Errorf("Expected newest voter first, got %s", resp.Voters[0].Email)
	}
	first := resp.Voters[1]
	if first.Email != "vasyl@ucu.edu.ua" {
		t.Errorf("Unexpected voter row: %+v", first)
	}
	if first.Choices["Academic Excellence"] != "Olena" || first.Choices["Sports"] != "Ihor" {
		t.Errorf("Unexpected choices: %+v", first.Choices)
	}
}

func TestAdminStatsRequiresAdmin(t *testing.T) {
	conn := setupTestDB(t)
	cfg := getTestConfig()
	handler := NewAdminHandler(conn, cfg)

	student := testutil.CreateTestProfile(t, conn, "vasyl@ucu.edu.ua", models.RoleStudent)

	req := testutil.MakeRequest("GET", "/admin/stats", nil, nil)
	req = testutil.WithSession(t, req, student, cfg)
	w := httptest.NewRecorder()

	handler.GetStats(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestCheckboxOn(t *testing.T) {
	for _, v := range []string{"on", "true", "1"} {
		if !checkboxOn(v) {
			t.Errorf("Expected %q to read as on", v)
		}
	}
	for _, v := range []string{"", "off", "false", "0"} {
		if checkboxOn(v) {
			t.Errorf("Expected %q to read as off", v)
		}
	}
}

func TestParseFormTime(t *testing.T) {
	tests := []struct {
		input   string
		want    string // empty means nil
		wantErr bool
	}{
		{input: "", want: ""},
		{input: "2026-01-20T15:04:05Z", want: "2026-01-20 15:04"},
		{input: "2026-01-20T15:04", want: "2026-01-20 15:04"},
		{input: "2026-01-20 15:04", want: "2026-01-20 15:04"},
		{input: "garbage", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseFormTime(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseFormTime(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseFormTime(%q): %v", tt.input, err)
			continue
		}
		if tt.want == "" {
			if got != nil {
				t.Errorf("parseFormTime(%q): expected nil, got %v", tt.input, got)
			}
			continue
		}
		if got == nil || got.Format("2006-01-02 15:04") != tt.want {
			t.Errorf("parseFormTime(%q): got %v, want %s", tt.input, got, tt.want)
		}
	}
}
