// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"time"

	"github.com/kq-awards/voting-api/auth"
	"github.com/kq-awards/voting-api/models"
)

// CanVote decides whether a vote submission is accepted right now.
// Pure function over its inputs; first failing check wins.
//
// The voting_open flag and the start/end window are independent controls:
// an admin can force-close voting inside the window, and the window still
// constrains while the flag is on. Boundary instants count as inside, so
// now == voting_end is still allowed.
func CanVote(user *models.User, emailDomain string, settings models.Settings, now time.Time) models.Decision {
	if user == nil || !auth.EligibleEmail(user.Email, emailDomain) {
		return models.Decision{Reason: models.ReasonUnauthorized}
	}
	if !settings.VotingOpen {
		return models.Decision{Reason: models.ReasonVotingClosed}
	}
	if settings.VotingStart != nil && now.Before(*settings.VotingStart) {
		return models.Decision{Reason: models.ReasonNotStartedYet}
	}
	if settings.VotingEnd != nil && now.After(*settings.VotingEnd) {
		return models.Decision{Reason: models.ReasonVotingEnded}
	}
	return models.Decision{Allowed: true}
}

// CanSeeResults decides whether tally output may be shown to this viewer.
//
// An anonymous viewer is unauthorized (client redirects to login); a
// signed-in viewer outside the institutional domain is forbidden (client
// shows a restricted message, no redirect). The results_public flag is an
// admin override that reveals immediately; otherwise results_date rules,
// and an unset date means never revealed.
func CanSeeResults(user *models.User, emailDomain string, settings models.Settings, now time.Time) models.Decision {
	if user == nil {
		return models.Decision{Reason: models.ReasonUnauthorized}
	}
	if !auth.EligibleEmail(user.Email, emailDomain) {
		return models.Decision{Reason: models.ReasonForbidden}
	}
	if settings.ResultsPublic {
		return models.Decision{Allowed: true}
	}
	if settings.ResultsDate == nil || now.Before(*settings.ResultsDate) {
		return models.Decision{Reason: models.ReasonNotYetRevealed}
	}
	return models.Decision{Allowed: true}
}
