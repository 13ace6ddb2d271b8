// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"time"

	"github.com/kq-awards/voting-api/models"
)

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// getSettings loads the singleton settings row. A missing row reads as
// everything closed, matching the conservative default of the gates.
func getSettings(db *sql.DB) (models.Settings, error) {
	var s models.Settings
	var start, end, reveal sql.NullTime

	err := db.QueryRow(`
		SELECT voting_open, results_public, voting_start, voting_end, results_date
		FROM settings WHERE id = 1
	`).Scan(&s.VotingOpen, &s.ResultsPublic, &start, &end, &reveal)

	if err == sql.ErrNoRows {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}

	s.VotingStart = nullableTime(start)
	s.VotingEnd = nullableTime(end)
	s.ResultsDate = nullableTime(reveal)
	return s, nil
}

// getCategories returns the catalog categories in display order
func getCategories(db *sql.DB) ([]models.Category, error) {
	rows, err := db.Query(`
		SELECT id, title, sort_order
		FROM categories
		ORDER BY sort_order ASC, title ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		var sortOrder sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Title, &sortOrder); err != nil {
			return nil, err
		}
		if sortOrder.Valid {
			n := int(sortOrder.Int64)
			c.SortOrder = &n
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// getCandidates returns published candidates in catalog order (newest first,
// the order the voting page shows them)
func getCandidates(db *sql.DB) ([]models.Candidate, error) {
	rows, err := db.Query(`
		SELECT id, category_id, full_name, city, photo_url,
		       short_description, long_description, is_wide, is_published, created_at
		FROM candidates
		WHERE is_published = TRUE
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

// getCandidateByID returns one published candidate, or sql.ErrNoRows
func getCandidateByID(db *sql.DB, id string) (models.Candidate, error) {
	row := db.QueryRow(`
		SELECT id, category_id, full_name, city, photo_url,
		       short_description, long_description, is_wide, is_published, created_at
		FROM candidates
		WHERE id = $1 AND is_published = TRUE
	`, id)
	return scanCandidate(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (models.Candidate, error) {
	var c models.Candidate
	var city, photo, short, long sql.NullString

	err := row.Scan(&c.ID, &c.CategoryID, &c.FullName, &city, &photo,
		&short, &long, &c.IsWide, &c.IsPublished, &c.CreatedAt)
	if err != nil {
		return models.Candidate{}, err
	}

	c.City = nullableString(city)
	c.PhotoURL = nullableString(photo)
	c.ShortDescription = nullableString(short)
	c.LongDescription = nullableString(long)
	return c, nil
}

// getVoteCounts reads the derived vote_counts view
func getVoteCounts(db *sql.DB) ([]models.VoteCount, error) {
	rows, err := db.Query(`
		SELECT category_id, candidate_id, total_votes FROM vote_counts
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := []models.VoteCount{}
	for rows.Next() {
		var vc models.VoteCount
		if err := rows.Scan(&vc.CategoryID, &vc.CandidateID, &vc.TotalVotes); err != nil {
			return nil, err
		}
		counts = append(counts, vc)
	}

	return counts, rows.Err()
}

// getUserVotes returns the voter's locked-in ballot as category -> candidate
func getUserVotes(db *sql.DB, voterID string) (map[string]string, error) {
	rows, err := db.Query(`
		SELECT category_id, candidate_id FROM votes WHERE voter_id = $1
	`, voterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	selections := map[string]string{}
	for rows.Next() {
		var categoryID, candidateID string
		if err := rows.Scan(&categoryID, &candidateID); err != nil {
			return nil, err
		}
		selections[categoryID] = candidateID
	}

	return selections, rows.Err()
}

// getProfileRole looks up the stored role; an absent profile is a student
func getProfileRole(db *sql.DB, userID string) (string, error) {
	var role string
	err := db.QueryRow(`SELECT role FROM profiles WHERE id = $1`, userID).Scan(&role)
	if err == sql.ErrNoRows {
		return models.RoleStudent, nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

// ensureProfile creates the voter's profile row if absent. First write wins:
// an existing row's role and identity fields are never overwritten.
func ensureProfile(q execer, user models.User, now time.Time) error {
	var fullName sql.NullString
	if user.FullName != "" {
		fullName = sql.NullString{String: user.FullName, Valid: true}
	}

	_, err := q.Exec(`
		INSERT INTO profiles (id, email, full_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, user.ID, user.Email, fullName, models.RoleStudent, now)
	return err
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
