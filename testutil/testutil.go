// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kq-awards/voting-api/auth"
	"github.com/kq-awards/voting-api/cliparse"
	"github.com/kq-awards/voting-api/db"
	"github.com/kq-awards/voting-api/models"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each call gets its own named shared-cache database so tests can run in
// parallel without seeing each other's rows.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection keeps the memory database alive for the test
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:               8080,
		DatabaseURL:        ":memory:",
		DatabaseType:       "sqlite",
		SessionSecret:      "test-session-secret",
		GoogleClientID:     "test-client-id",
		GoogleClientSecret: "test-client-secret",
		OAuthRedirectURL:   "http://localhost:8080/auth/callback",
		EmailDomain:        "ucu.edu.ua",
	}
}

// SetTestSettings overwrites the singleton settings row
func SetTestSettings(t *testing.T, conn *sql.DB, s models.Settings) {
	t.Helper()

	_, err := conn.Exec(`
		UPDATE settings
		SET voting_open = $1, results_public = $2, voting_start = $3, voting_end = $4, results_date = $5
		WHERE id = 1
	`, s.VotingOpen, s.ResultsPublic, s.VotingStart, s.VotingEnd, s.ResultsDate)
	if err != nil {
		t.Fatalf("Failed to update test settings: %v", err)
	}
}

// CreateTestCategory inserts an award category and returns its ID
func CreateTestCategory(t *testing.T, conn *sql.DB, title string, sortOrder int) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO categories (id, title, sort_order)
		VALUES ($1, $2, $3)
	`, id, title, sortOrder)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return id
}

// CreateTestCandidate inserts a published candidate and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, categoryID, fullName string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidates (id, category_id, full_name, is_published, created_at)
		VALUES ($1, $2, $3, TRUE, $4)
	`, id, categoryID, fullName, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// CreateTestProfile inserts a profile row and returns the matching session
// identity. Role should be models.RoleStudent or models.RoleAdmin.
func CreateTestProfile(t *testing.T, conn *sql.DB, email, role string) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: "Test Voter",
	}
	_, err := conn.Exec(`
		INSERT INTO profiles (id, email, full_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, user.ID, user.Email, user.FullName, role, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	return user
}

// CastTestVote inserts a vote directly, bypassing the HTTP layer
func CastTestVote(t *testing.T, conn *sql.DB, voterID, categoryID, candidateID string, at time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO votes (voter_id, category_id, candidate_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, voterID, categoryID, candidateID, at)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithSession attaches a signed session cookie for the given identity
func WithSession(t *testing.T, req *http.Request, user models.User, cfg cliparse.Config) *http.Request {
	t.Helper()

	token, err := auth.IssueSession(user, cfg.SessionSecret)
	if err != nil {
		t.Fatalf("Failed to issue test session: %v", err)
	}
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
