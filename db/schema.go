// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported database dialects. The DDL is shared except for the view, where
// the two engines disagree on CREATE VIEW idempotency syntax.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// CreateSchema creates all tables and the vote_counts view, and seeds the
// singleton settings row. Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	view := voteCountsViewSQLite
	if dialect == DialectPostgres {
		view = voteCountsViewPostgres
	}
	if _, err := db.Exec(view); err != nil {
		return fmt.Errorf("failed to create vote_counts view: %w", err)
	}

	// Singleton settings row, everything closed until an admin opens it.
	if _, err := db.Exec(`
		INSERT INTO settings (id, voting_open, results_public)
		VALUES (1, FALSE, FALSE)
		ON CONFLICT (id) DO NOTHING
	`); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	return nil
}

const schema = `
-- Voter profiles, created lazily on first vote
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    full_name TEXT,
    role TEXT NOT NULL DEFAULT 'student' CHECK (role IN ('student', 'admin')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Award categories
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    sort_order INTEGER
);

-- Candidates, each belongs to exactly one category
CREATE TABLE IF NOT EXISTS candidates (
    id TEXT PRIMARY KEY,
    category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    full_name TEXT NOT NULL,
    city TEXT,
    photo_url TEXT,
    short_description TEXT,
    long_description TEXT,
    is_wide BOOLEAN NOT NULL DEFAULT FALSE,
    is_published BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_candidates_category_id ON candidates(category_id);

-- Votes: the primary key IS the one-vote-per-category invariant
CREATE TABLE IF NOT EXISTS votes (
    voter_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (voter_id, category_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_category_candidate ON votes(category_id, candidate_id);
CREATE INDEX IF NOT EXISTS idx_votes_created_at ON votes(created_at);

-- Singleton election configuration
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    voting_open BOOLEAN NOT NULL DEFAULT FALSE,
    results_public BOOLEAN NOT NULL DEFAULT FALSE,
    voting_start TIMESTAMP,
    voting_end TIMESTAMP,
    results_date TIMESTAMP
);
`

const voteCountsViewPostgres = `
CREATE OR REPLACE VIEW vote_counts AS
SELECT category_id, candidate_id, COUNT(*) AS total_votes
FROM votes
GROUP BY category_id, candidate_id;
`

const voteCountsViewSQLite = `
CREATE VIEW IF NOT EXISTS vote_counts AS
SELECT category_id, candidate_id, COUNT(*) AS total_votes
FROM votes
GROUP BY category_id, candidate_id;
`
