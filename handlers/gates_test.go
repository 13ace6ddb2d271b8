// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kq-awards/voting-api/models"
)

const testDomain = "ucu.edu.ua"

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func student(email string) *models.User {
	return &models.User{ID: "user-1", Email: email, FullName: "Test Voter"}
}

func TestCanVote(t *testing.T) {
	windowed := models.Settings{
		VotingOpen:  true,
		VotingStart: ts("2026-01-20T00:00:00Z"),
		VotingEnd:   ts("2026-01-22T23:59:59Z"),
	}

	tests := []struct {
		name     string
		user     *models.User
		settings models.Settings
		now      time.Time
		allowed  bool
		reason   string
	}{
		{
			name:     "eligible voter inside window",
			user:     student("vasyl@ucu.edu.ua"),
			settings: windowed,
			now:      *ts("2026-01-21T12:00:00Z"),
			allowed:  true,
		},
		{
			name:     "anonymous viewer",
			user:     nil,
			settings: windowed,
			now:      *ts("2026-01-21T12:00:00Z"),
			reason:   models.ReasonUnauthorized,
		},
		{
			name:     "outside email domain",
			user:     student("stranger@gmail.com"),
			settings: windowed,
			now:      *ts("2026-01-21T12:00:00Z"),
			reason:   models.ReasonUnauthorized,
		},
		{
			name:     "domain check is case-insensitive",
			user:     student("Vasyl@UCU.EDU.UA"),
			settings: windowed,
			now:      *ts("2026-01-21T12:00:00Z"),
			allowed:  true,
		},
		{
			name: "flag closed overrides the window",
			user: student("vasyl@ucu.edu.ua"),
			settings: models.Settings{
				VotingOpen:  false,
				VotingStart: windowed.VotingStart,
				VotingEnd:   windowed.VotingEnd,
			},
			now:    *ts("2026-01-21T12:00:00Z"),
			reason: models.ReasonVotingClosed,
		},
		{
			name:     "before the window",
			user:     student("vasyl@ucu.edu.ua"),
			settings: windowed,
			now:      *ts("2026-01-19T12:00:00Z"),
			reason:   models.ReasonNotStartedYet,
		},
		{
			name:     "after the window",
			user:     student("vasyl@ucu.edu.ua"),
			settings: windowed,
			now:      *ts("2026-01-23T12:00:00Z"),
			reason:   models.ReasonVotingEnded,
		},
		{
			name:     "exactly at voting_start",
			user:     student("vasyl@ucu.edu.ua"),
			settings: windowed,
			now:      *windowed.VotingStart,
			allowed:  true,
		},
		{
			name:     "exactly at voting_end",
			user:     student("vasyl@ucu.edu.ua"),
			settings: windowed,
			now:      *windowed.VotingEnd,
			allowed:  true,
		},
		{
			name:     "one millisecond past voting_end",
			user:     student("vasyl@ucu.edu.ua"),
			settings: windowed,
			now:      windowed.VotingEnd.Add(time.Millisecond),
			reason:   models.ReasonVotingEnded,
		},
		{
			name:     "flag open with no window bounds",
			user:     student("vasyl@ucu.edu.ua"),
			settings: models.Settings{VotingOpen: true},
			now:      *ts("2026-01-21T12:00:00Z"),
			allowed:  true,
		},
		{
			name:     "missing settings row reads as closed",
			user:     student("vasyl@ucu.edu.ua"),
			settings: models.Settings{},
			now:      *ts("2026-01-21T12:00:00Z"),
			reason:   models.ReasonVotingClosed,
		},
		{
			name: "unauthorized wins over closed",
			user: nil,
			settings: models.Settings{
				VotingOpen: false,
			},
			now:    *ts("2026-01-21T12:00:00Z"),
			reason: models.ReasonUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanVote(tt.user, testDomain, tt.settings, tt.now)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestCanSeeResults(t *testing.T) {
	scheduled := models.Settings{ResultsDate: ts("2026-02-01T00:00:00Z")}

	tests := []struct {
		name     string
		user     *models.User
		settings models.Settings
		now      time.Time
		allowed  bool
		reason   string
	}{
		{
			name:     "anonymous viewer is unauthorized",
			user:     nil,
			settings: models.Settings{ResultsPublic: true},
			now:      *ts("2026-02-02T00:00:00Z"),
			reason:   models.ReasonUnauthorized,
		},
		{
			name:     "outside domain is forbidden, not unauthorized",
			user:     student("stranger@gmail.com"),
			settings: models.Settings{ResultsPublic: true},
			now:      *ts("2026-02-02T00:00:00Z"),
			reason:   models.ReasonForbidden,
		},
		{
			name:     "before reveal date",
			user:     student("vasyl@ucu.edu.ua"),
			settings: scheduled,
			now:      *ts("2026-01-25T00:00:00Z"),
			reason:   models.ReasonNotYetRevealed,
		},
		{
			name:     "after reveal date",
			user:     student("vasyl@ucu.edu.ua"),
			settings: scheduled,
			now:      *ts("2026-02-02T00:00:00Z"),
			allowed:  true,
		},
		{
			name:     "exactly at reveal date",
			user:     student("vasyl@ucu.edu.ua"),
			settings: scheduled,
			now:      *scheduled.ResultsDate,
			allowed:  true,
		},
		{
			name: "public flag overrides a future date",
			user: student("vasyl@ucu.edu.ua"),
			settings: models.Settings{
				ResultsPublic: true,
				ResultsDate:   ts("2030-01-01T00:00:00Z"),
			},
			now:     *ts("2026-01-25T00:00:00Z"),
			allowed: true,
		},
		{
			name:     "unset date means never revealed",
			user:     student("vasyl@ucu.edu.ua"),
			settings: models.Settings{},
			now:      *ts("2026-02-02T00:00:00Z"),
			reason:   models.ReasonNotYetRevealed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanSeeResults(tt.user, testDomain, tt.settings, tt.now)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

// While the flag is off, no combination of window bounds opens voting.
func TestCanVoteClosedFlagIgnoresWindow(t *testing.T) {
	user := student("vasyl@ucu.edu.ua")
	now := *ts("2026-01-21T12:00:00Z")

	windows := []struct {
		start, end *time.Time
	}{
		{nil, nil},
		{ts("2020-01-01T00:00:00Z"), ts("2030-01-01T00:00:00Z")},
		{ts("2020-01-01T00:00:00Z"), nil},
		{nil, ts("2030-01-01T00:00:00Z")},
	}

	for _, w := range windows {
		settings := models.Settings{VotingOpen: false, VotingStart: w.start, VotingEnd: w.end}
		d := CanVote(user, testDomain, settings, now)
		assert.False(t, d.Allowed)
		assert.Equal(t, models.ReasonVotingClosed, d.Reason)
	}
}

// For a fixed settings snapshot the vote gate flips exactly twice as time
// advances across the window: closed before it, open inside, closed after.
// It never flickers back open once the window has passed.
func TestCanVoteWindowMonotonic(t *testing.T) {
	settings := models.Settings{
		VotingOpen:  true,
		VotingStart: ts("2026-01-20T00:00:00Z"),
		VotingEnd:   ts("2026-01-22T00:00:00Z"),
	}
	user := student("vasyl@ucu.edu.ua")

	var transitions int
	prev := CanVote(user, testDomain, settings, ts("2026-01-19T00:00:00Z").Add(0))
	for hour := 1; hour <= 96; hour++ {
		now := ts("2026-01-19T00:00:00Z").Add(time.Duration(hour) * time.Hour)
		cur := CanVote(user, testDomain, settings, now)
		if cur.Allowed != prev.Allowed {
			transitions++
		}
		prev = cur
	}

	assert.Equal(t, 2, transitions)
}
