// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and store error classification.

# Schema Creation

CreateSchema initializes all required tables, the vote_counts view, and the
singleton settings row:

	if err := db.CreateSchema(conn, db.DialectPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for tables and indexes.
The dialect argument only switches the view DDL; everything else is shared
between Postgres and SQLite.

# Tables

  - profiles: voter identity and role (created lazily on first vote)
  - categories: award nomination tracks
  - candidates: nominees, each in exactly one category
  - votes: one row per (voter, category), primary key enforces uniqueness
  - settings: singleton election configuration (id = 1)

# Derived View

	vote_counts(category_id, candidate_id, total_votes)

Recomputed by the engine on every read; tallies are never stored.

# The Uniqueness Invariant

The PRIMARY KEY on votes(voter_id, category_id) is the system's only
concurrency-safety mechanism. Two concurrent submissions for the same pair:
exactly one insert succeeds, the other surfaces through IsUniqueViolation
and is reported as a duplicate vote.
*/
package db
