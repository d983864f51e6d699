// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"

	"github.com/electorate/ballotbox/models"
)

// Tally queries. All views count valid ballots only - spoiled ballots exist
// in the table for audit but never reach a result. Reads run outside any
// transaction; each query sees a committed snapshot.

// ComputeConstituencyResults tallies valid constituency ballots per
// (constituency, candidate). Ordered by constituency number, then votes
// descending, with candidate ballot position breaking ties.
func ComputeConstituencyResults(db *sql.DB) ([]models.ConstituencyResult, error) {
	rows, err := db.Query(`
		SELECT co.const_number, c.id, c.full_name, p.party_name, COUNT(*) AS total_votes
		FROM ballot b
		JOIN candidate c ON b.candidate_id = c.id
		JOIN party p ON c.party_id = p.id
		JOIN constituency co ON b.const_id = co.id
		WHERE b.vote_type = $1 AND b.is_valid = TRUE
		GROUP BY co.const_number, c.id, c.full_name, p.party_name, c.candidate_number
		ORDER BY co.const_number, total_votes DESC, c.candidate_number
	`, models.VoteTypeConstituency)
	if err != nil {
		return nil, fmt.Errorf("failed to query constituency results: %w", err)
	}
	defer rows.Close()

	results := []models.ConstituencyResult{}
	for rows.Next() {
		var res models.ConstituencyResult
		if err := rows.Scan(&res.ConstNumber, &res.CandidateID, &res.CandidateName,
			&res.PartyName, &res.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan constituency result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// ComputePartyListResults tallies valid party-list ballots per
// (constituency, party).
func ComputePartyListResults(db *sql.DB) ([]models.PartyListResult, error) {
	rows, err := db.Query(`
		SELECT co.const_number, p.id, p.party_name, COUNT(*) AS total_votes
		FROM ballot b
		JOIN party p ON b.party_id = p.id
		JOIN constituency co ON b.const_id = co.id
		WHERE b.vote_type = $1 AND b.is_valid = TRUE
		GROUP BY co.const_number, p.id, p.party_name
		ORDER BY co.const_number, total_votes DESC, p.party_name
	`, models.VoteTypePartyList)
	if err != nil {
		return nil, fmt.Errorf("failed to query party-list results: %w", err)
	}
	defer rows.Close()

	results := []models.PartyListResult{}
	for rows.Next() {
		var res models.PartyListResult
		if err := rows.Scan(&res.ConstNumber, &res.PartyID, &res.PartyName,
			&res.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan party-list result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// ComputeOverallCandidateResults tallies valid constituency ballots
// nationwide per candidate.
func ComputeOverallCandidateResults(db *sql.DB) ([]models.OverallCandidateResult, error) {
	rows, err := db.Query(`
		SELECT c.id, c.full_name, p.id, p.party_name, COUNT(*) AS total_votes
		FROM ballot b
		JOIN candidate c ON b.candidate_id = c.id
		JOIN party p ON c.party_id = p.id
		WHERE b.vote_type = $1 AND b.is_valid = TRUE
		GROUP BY c.id, c.full_name, p.id, p.party_name, c.candidate_number
		ORDER BY total_votes DESC, c.candidate_number
	`, models.VoteTypeConstituency)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall candidate results: %w", err)
	}
	defer rows.Close()

	results := []models.OverallCandidateResult{}
	for rows.Next() {
		var res models.OverallCandidateResult
		if err := rows.Scan(&res.CandidateID, &res.CandidateName, &res.PartyID,
			&res.PartyName, &res.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan overall candidate result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// ComputeOverallPartyResults tallies valid party-list ballots nationwide
// per party.
func ComputeOverallPartyResults(db *sql.DB) ([]models.OverallPartyResult, error) {
	rows, err := db.Query(`
		SELECT p.id, p.party_name, COUNT(*) AS total_votes
		FROM ballot b
		JOIN party p ON b.party_id = p.id
		WHERE b.vote_type = $1 AND b.is_valid = TRUE
		GROUP BY p.id, p.party_name
		ORDER BY total_votes DESC, p.party_name
	`, models.VoteTypePartyList)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall party results: %w", err)
	}
	defer rows.Close()

	results := []models.OverallPartyResult{}
	for rows.Next() {
		var res models.OverallPartyResult
		if err := rows.Scan(&res.PartyID, &res.PartyName, &res.TotalVotes); err != nil {
			return nil, fmt.Errorf("failed to scan overall party result: %w", err)
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// ComputeBallotSummary builds the administrative summary: totals and the
// valid/spoiled split, broken down by vote type. Unrecognized vote types
// show up under their literal tag.
func ComputeBallotSummary(db *sql.DB) (models.BallotSummary, error) {
	rows, err := db.Query(`
		SELECT vote_type, COUNT(*), SUM(CASE WHEN is_valid THEN 1 ELSE 0 END)
		FROM ballot
		GROUP BY vote_type
		ORDER BY vote_type
	`)
	if err != nil {
		return models.BallotSummary{}, fmt.Errorf("failed to query ballot summary: %w", err)
	}
	defer rows.Close()

	summary := models.BallotSummary{ByType: []models.VoteTypeBreakdown{}}
	for rows.Next() {
		var bd models.VoteTypeBreakdown
		if err := rows.Scan(&bd.VoteType, &bd.Total, &bd.Valid); err != nil {
			return models.BallotSummary{}, fmt.Errorf("failed to scan ballot summary: %w", err)
		}
		bd.Spoiled = bd.Total - bd.Valid

		summary.TotalBallots += bd.Total
		summary.ValidBallots += bd.Valid
		summary.SpoiledBallots += bd.Spoiled
		summary.ByType = append(summary.ByType, bd)
	}

	return summary, rows.Err()
}
