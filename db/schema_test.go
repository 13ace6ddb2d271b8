// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestCreateSchema(t *testing.T) {
	conn := openMemoryDB(t)

	if err := CreateSchema(conn, DialectSQLite); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	// All tables and the view exist
	for _, table := range []string{"profiles", "categories", "candidates", "votes", "settings", "vote_counts"} {
		var n int
		if err := conn.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
			t.Errorf("Expected %s to be queryable: %v", table, err)
		}
	}

	// Settings row is seeded closed
	var open, public bool
	if err := conn.QueryRow(`SELECT voting_open, results_public FROM settings WHERE id = 1`).Scan(&open, &public); err != nil {
		t.Fatalf("Failed to read seeded settings: %v", err)
	}
	if open || public {
		t.Error("Expected the seeded election to start closed")
	}
}

func TestCreateSchemaIdempotent(t *testing.T) {
	conn := openMemoryDB(t)

	if err := CreateSchema(conn, DialectSQLite); err != nil {
		t.Fatalf("First CreateSchema failed: %v", err)
	}

	// An admin's changes survive a restart
	if _, err := conn.Exec(`UPDATE settings SET voting_open = TRUE WHERE id = 1`); err != nil {
		t.Fatalf("Failed to update settings: %v", err)
	}

	if err := CreateSchema(conn, DialectSQLite); err != nil {
		t.Fatalf("Second CreateSchema failed: %v", err)
	}

	var open bool
	if err := conn.QueryRow(`SELECT voting_open FROM settings WHERE id = 1`).Scan(&open); err != nil {
		t.Fatalf("Failed to read settings: %v", err)
	}
	if !open {
		t.Error("Re-running CreateSchema must not reset settings")
	}
}

func TestVotePrimaryKeyEnforced(t *testing.T) {
	conn := openMemoryDB(t)

	if err := CreateSchema(conn, DialectSQLite); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	setup := []string{
		`INSERT INTO profiles (id, email) VALUES ('voter-1', 'vasyl@ucu.edu.ua')`,
		`INSERT INTO categories (id, title) VALUES ('cat-1', 'Academic Excellence')`,
		`INSERT INTO candidates (id, category_id, full_name) VALUES ('cand-1', 'cat-1', 'Olena')`,
		`INSERT INTO candidates (id, category_id, full_name) VALUES ('cand-2', 'cat-1', 'Marta')`,
		`INSERT INTO votes (voter_id, category_id, candidate_id) VALUES ('voter-1', 'cat-1', 'cand-1')`,
	}
	for _, stmt := range setup {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	// Same voter, same category, different candidate
	_, err := conn.Exec(`INSERT INTO votes (voter_id, category_id, candidate_id) VALUES ('voter-1', 'cat-1', 'cand-2')`)
	if err == nil {
		t.Fatal("Expected the primary key to reject a second vote")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("Expected IsUniqueViolation to recognize %v", err)
	}
}

func TestVoteCountsView(t *testing.T) {
	conn := openMemoryDB(t)

	if err := CreateSchema(conn, DialectSQLite); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	setup := []string{
		`INSERT INTO profiles (id, email) VALUES ('voter-1', 'a@ucu.edu.ua')`,
		`INSERT INTO profiles (id, email) VALUES ('voter-2', 'b@ucu.edu.ua')`,
		`INSERT INTO categories (id, title) VALUES ('cat-1', 'Academic Excellence')`,
		`INSERT INTO candidates (id, category_id, full_name) VALUES ('cand-1', 'cat-1', 'Olena')`,
		`INSERT INTO votes (voter_id, category_id, candidate_id) VALUES ('voter-1', 'cat-1', 'cand-1')`,
		`INSERT INTO votes (voter_id, category_id, candidate_id) VALUES ('voter-2', 'cat-1', 'cand-1')`,
	}
	for _, stmt := range setup {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}

	var total int
	err := conn.QueryRow(`
		SELECT total_votes FROM vote_counts WHERE category_id = 'cat-1' AND candidate_id = 'cand-1'
	`).Scan(&total)
	if err != nil {
		t.Fatalf("Failed to query vote_counts: %v", err)
	}
	if total != 2 {
		t.Errorf("Expected 2 votes in the view, got %d", total)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Error("Unrelated errors are not unique violations")
	}
	if !IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: votes.voter_id, votes.category_id")) {
		t.Error("Expected the sqlite message to be recognized")
	}
}
