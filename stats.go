// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/kq-awards/voting-api/handlers"
	"github.com/kq-awards/voting-api/models"
)

// runStatsReport prints the current tallies to the terminal, one table per
// category. Ops view of the election for when nobody wants to open the
// admin dashboard over SSH port-forwarding.
func runStatsReport(dbConn *sql.DB) error {
	categories, candidates, counts, err := loadTallyInputs(dbConn)
	if err != nil {
		return err
	}

	results := handlers.ComputeResults(categories, candidates, counts)

	var totalVoters int64
	if err := dbConn.QueryRow(`SELECT COUNT(DISTINCT voter_id) FROM votes`).Scan(&totalVoters); err != nil {
		return fmt.Errorf("failed to count voters: %w", err)
	}

	var lastVote sql.NullTime
	if err := dbConn.QueryRow(`SELECT MAX(created_at) FROM votes`).Scan(&lastVote); err != nil {
		return fmt.Errorf("failed to read last vote time: %w", err)
	}

	heading := color.New(color.FgCyan, color.Bold)
	heading.Println("KQ Awards — election tally")

	fmt.Printf("Voters: %s", humanize.Comma(totalVoters))
	if lastVote.Valid {
		fmt.Printf("   Last vote: %s", humanize.Time(lastVote.Time))
	}
	fmt.Println()
	fmt.Println()

	for _, category := range results {
		heading.Printf("%s (%s votes)\n", category.Title, humanize.Comma(int64(category.TotalVotes)))

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Rank", "Candidate", "Votes", "Share"})
		for _, c := range category.Candidates {
			table.Append([]string{
				fmt.Sprintf("%d", c.Rank),
				c.FullName,
				humanize.Comma(int64(c.Votes)),
				fmt.Sprintf("%d%%", c.Percent),
			})
		}
		table.Render()
		fmt.Println()
	}

	return nil
}

// loadTallyInputs pulls the catalog and the vote_counts view
func loadTallyInputs(dbConn *sql.DB) ([]models.Category, []models.Candidate, []models.VoteCount, error) {
	catRows, err := dbConn.Query(`
		SELECT id, title FROM categories ORDER BY sort_order ASC, title ASC
	`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer catRows.Close()

	categories := []models.Category{}
	for catRows.Next() {
		var c models.Category
		if err := catRows.Scan(&c.ID, &c.Title); err != nil {
			return nil, nil, nil, err
		}
		categories = append(categories, c)
	}
	if err := catRows.Err(); err != nil {
		return nil, nil, nil, err
	}

	candRows, err := dbConn.Query(`
		SELECT id, category_id, full_name, created_at
		FROM candidates
		WHERE is_published = TRUE
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer candRows.Close()

	candidates := []models.Candidate{}
	for candRows.Next() {
		var c models.Candidate
		var createdAt time.Time
		if err := candRows.Scan(&c.ID, &c.CategoryID, &c.FullName, &createdAt); err != nil {
			return nil, nil, nil, err
		}
		c.CreatedAt = createdAt
		candidates = append(candidates, c)
	}
	if err := candRows.Err(); err != nil {
		return nil, nil, nil, err
	}

	countRows, err := dbConn.Query(`
		SELECT category_id, candidate_id, total_votes FROM vote_counts
	`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query vote counts: %w", err)
	}
	defer countRows.Close()

	counts := []models.VoteCount{}
	for countRows.Next() {
		var vc models.VoteCount
		if err := countRows.Scan(&vc.CategoryID, &vc.CandidateID, &vc.TotalVotes); err != nil {
			return nil, nil, nil, err
		}
		counts = append(counts, vc)
	}
	if err := countRows.Err(); err != nil {
		return nil, nil, nil, err
	}

	return categories, candidates, counts, nil
}
