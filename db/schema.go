// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to the dialect both SQLite and PostgreSQL accept: TEXT
// primary keys (UUIDs assigned by the application), BOOLEAN flags,
// CURRENT_TIMESTAMP defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Regions
CREATE TABLE IF NOT EXISTS region (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    total_population INTEGER NOT NULL DEFAULT 0
);

-- Constituencies
CREATE TABLE IF NOT EXISTS constituency (
    id TEXT PRIMARY KEY,
    region_id TEXT NOT NULL REFERENCES region(id),
    const_number INTEGER NOT NULL,
    total_eligible_voters INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_constituency_region_id ON constituency(region_id);

-- Parties
CREATE TABLE IF NOT EXISTS party (
    id TEXT PRIMARY KEY,
    party_name TEXT NOT NULL UNIQUE,
    party_leader TEXT,
    party_logo_url TEXT
);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    const_id TEXT NOT NULL REFERENCES constituency(id),
    party_id TEXT NOT NULL REFERENCES party(id),
    candidate_number INTEGER NOT NULL,
    full_name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_const_id ON candidate(const_id);
CREATE INDEX IF NOT EXISTS idx_candidate_party_id ON candidate(party_id);

-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    citizen_id TEXT NOT NULL UNIQUE,
    full_name TEXT NOT NULL,
    const_id TEXT NOT NULL REFERENCES constituency(id),
    has_voted_const BOOLEAN NOT NULL DEFAULT FALSE,
    has_voted_list BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_voter_citizen_id ON voter(citizen_id);
CREATE INDEX IF NOT EXISTS idx_voter_const_id ON voter(const_id);

-- Ballots (append-only; never updated after insert)
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id),
    const_id TEXT NOT NULL REFERENCES constituency(id),
    candidate_id TEXT REFERENCES candidate(id),
    party_id TEXT REFERENCES party(id),
    vote_type TEXT NOT NULL,
    is_valid BOOLEAN NOT NULL DEFAULT TRUE,
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_ballot_voter_id ON ballot(voter_id);
CREATE INDEX IF NOT EXISTS idx_ballot_const_id ON ballot(const_id);
CREATE INDEX IF NOT EXISTS idx_ballot_type_valid ON ballot(vote_type, is_valid);
`
