// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"
	"sort"

	"github.com/kq-awards/voting-api/models"
)

// ComputeResults folds vote counts into per-category rankings.
//
// Every candidate in the catalog appears in the output, zero-vote candidates
// included. Within a category candidates are ordered by votes descending;
// ties keep the catalog order of the candidates slice, so the sort must be
// stable. Category order follows the categories slice.
func ComputeResults(categories []models.Category, candidates []models.Candidate, counts []models.VoteCount) []models.CategoryResult {
	type key struct{ categoryID, candidateID string }

	votes := make(map[key]int, len(counts))
	for _, c := range counts {
		votes[key{c.CategoryID, c.CandidateID}] = c.TotalVotes
	}

	byCategory := make(map[string][]models.Candidate)
	for _, c := range candidates {
		byCategory[c.CategoryID] = append(byCategory[c.CategoryID], c)
	}

	results := make([]models.CategoryResult, 0, len(categories))
	for _, cat := range categories {
		entry := models.CategoryResult{
			CategoryID: cat.ID,
			Title:      cat.Title,
			Candidates: []models.CandidateResult{},
		}

		for _, cand := range byCategory[cat.ID] {
			n := votes[key{cat.ID, cand.ID}]
			entry.Candidates = append(entry.Candidates, models.CandidateResult{
				CandidateID: cand.ID,
				CategoryID:  cat.ID,
				FullName:    cand.FullName,
				PhotoURL:    cand.PhotoURL,
				Votes:       n,
			})
			entry.TotalVotes += n
		}

		sort.SliceStable(entry.Candidates, func(i, j int) bool {
			return entry.Candidates[i].Votes > entry.Candidates[j].Votes
		})

		for i := range entry.Candidates {
			entry.Candidates[i].Rank = i + 1
			entry.Candidates[i].Percent = percent(entry.Candidates[i].Votes, entry.TotalVotes)
		}

		results = append(results, entry)
	}

	return results
}

// percent is the rounded vote share; 0 for an empty category.
func percent(votes, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(votes) / float64(total)))
}
