// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/electorate/ballotbox/models"
)

// Hard rejections. Anything else that goes wrong with a submission is
// spoilage, which persists a ballot and is not an error.
var (
	ErrVoterNotFound            = errors.New("voter not found")
	ErrAlreadyVotedConstituency = errors.New("voter has already cast a constituency ballot")
	ErrAlreadyVotedPartyList    = errors.New("voter has already cast a party-list ballot")
)

// voteKind abstracts the per-type differences of the two ballot kinds:
// which participation flag guards it, which conflict it raises, and what
// makes a ballot of that kind good. Everything else in admission is shared.
type voteKind interface {
	flagColumn() string
	errAlreadyVoted() error
	// good evaluates the validity predicate against registry state. It
	// never writes; a false result means spoilage, never rejection.
	good(tx *sql.Tx, sub models.SubmitBallotRequest, voter models.Voter) (bool, error)
	markVoted(v *models.Voter)
}

type constituencyKind struct{}

func (constituencyKind) flagColumn() string { return "has_voted_const" }
func (constituencyKind) errAlreadyVoted() error { return ErrAlreadyVotedConstituency }
func (constituencyKind) markVoted(v *models.Voter) { v.HasVotedConst = true }

// good for a constituency ballot: a candidate (and only a candidate) is
// selected, the candidate exists and stands in the ballot's constituency,
// and the ballot was cast in the voter's home constituency.
func (constituencyKind) good(tx *sql.Tx, sub models.SubmitBallotRequest, voter models.Voter) (bool, error) {
	if sub.CandidateID == nil || sub.PartyID != nil {
		return false, nil
	}
	if sub.ConstID != voter.ConstID {
		return false, nil
	}

	var candConstID string
	err := tx.QueryRow(`
		SELECT const_id FROM candidate WHERE id = $1
	`, *sub.CandidateID).Scan(&candConstID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query candidate: %w", err)
	}

	return candConstID == sub.ConstID, nil
}

type partyListKind struct{}

func (partyListKind) flagColumn() string { return "has_voted_list" }
func (partyListKind) errAlreadyVoted() error { return ErrAlreadyVotedPartyList }
func (partyListKind) markVoted(v *models.Voter) { v.HasVotedList = true }

// good for a party-list ballot: a party (and only a party) is selected,
// the party exists, and the ballot was cast in the voter's home
// constituency. Parties are national, so no venue check against the party.
func (partyListKind) good(tx *sql.Tx, sub models.SubmitBallotRequest, voter models.Voter) (bool, error) {
	if sub.PartyID == nil || sub.CandidateID != nil {
		return false, nil
	}
	if sub.ConstID != voter.ConstID {
		return false, nil
	}

	var exists bool
	err := tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM party WHERE id = $1)
	`, *sub.PartyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to query party: %w", err)
	}

	return exists, nil
}

// kindFor returns the voteKind for a recognized vote type, or nil for an
// unrecognized one.
func kindFor(voteType string) voteKind {
	switch voteType {
	case models.VoteTypeConstituency:
		return constituencyKind{}
	case models.VoteTypePartyList:
		return partyListKind{}
	default:
		return nil
	}
}

// AdmitBallot runs the full admission sequence for one submission inside a
// single transaction: hard preconditions first (voter exists, right not yet
// consumed), then the validity determination. Every submission that passes
// the hard preconditions persists a ballot - good ones with their linkage,
// spoiled ones with linkage cleared.
//
// An unrecognized vote type persists a spoiled ballot without touching
// either participation flag: the clerk cannot tell which right the voter
// meant to spend, so neither is consumed.
func AdmitBallot(db *sql.DB, sub models.SubmitBallotRequest) (models.Ballot, models.Voter, error) {
	tx, err := db.Begin()
	if err != nil {
		return models.Ballot{}, models.Voter{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Hard precondition: the voter must exist
	var voter models.Voter
	err = tx.QueryRow(`
		SELECT id, citizen_id, full_name, const_id, has_voted_const, has_voted_list
		FROM voter
		WHERE id = $1
	`, sub.VoterID).Scan(&voter.ID, &voter.CitizenID, &voter.FullName, &voter.ConstID,
		&voter.HasVotedConst, &voter.HasVotedList)

	if err == sql.ErrNoRows {
		return models.Ballot{}, models.Voter{}, ErrVoterNotFound
	}
	if err != nil {
		return models.Ballot{}, models.Voter{}, fmt.Errorf("failed to query voter: %w", err)
	}

	kind := kindFor(sub.VoteType)
	if kind == nil {
		// Unrecognized vote type: spoiled ballot, no flag consumed
		ballot, err := insertBallot(tx, sub, nil, nil, false)
		if err != nil {
			return models.Ballot{}, models.Voter{}, err
		}
		if err := tx.Commit(); err != nil {
			return models.Ballot{}, models.Voter{}, fmt.Errorf("failed to commit transaction: %w", err)
		}
		slog.Warn("ballot spoiled: unrecognized vote type",
			"ballot_id", ballot.ID, "vote_type", sub.VoteType)
		return ballot, voter, nil
	}

	// Hard precondition: the right must not have been consumed. The
	// conditional UPDATE is the serialization point - under concurrent
	// submissions exactly one transaction sees a row change.
	res, err := tx.Exec(`
		UPDATE voter SET `+kind.flagColumn()+` = TRUE
		WHERE id = $1 AND `+kind.flagColumn()+` = FALSE
	`, voter.ID)
	if err != nil {
		return models.Ballot{}, models.Voter{}, fmt.Errorf("failed to update voter flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Ballot{}, models.Voter{}, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return models.Ballot{}, models.Voter{}, kind.errAlreadyVoted()
	}

	isGood, err := kind.good(tx, sub, voter)
	if err != nil {
		return models.Ballot{}, models.Voter{}, err
	}

	candidateID, partyID := sub.CandidateID, sub.PartyID
	if !isGood {
		// Spoiled ballots carry no linkage
		candidateID, partyID = nil, nil
	}

	ballot, err := insertBallot(tx, sub, candidateID, partyID, isGood)
	if err != nil {
		return models.Ballot{}, models.Voter{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Ballot{}, models.Voter{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	kind.markVoted(&voter)

	if isGood {
		slog.Info("ballot admitted",
			"ballot_id", ballot.ID, "vote_type", sub.VoteType, "const_id", sub.ConstID)
	} else {
		slog.Warn("ballot spoiled",
			"ballot_id", ballot.ID, "vote_type", sub.VoteType, "const_id", sub.ConstID)
	}

	return ballot, voter, nil
}

// insertBallot persists one ballot row within the admission transaction.
func insertBallot(tx *sql.Tx, sub models.SubmitBallotRequest, candidateID, partyID *string, isValid bool) (models.Ballot, error) {
	ballot := models.Ballot{
		ID:          uuid.NewString(),
		VoterID:     sub.VoterID,
		ConstID:     sub.ConstID,
		CandidateID: candidateID,
		PartyID:     partyID,
		VoteType:    sub.VoteType,
		IsValid:     isValid,
		VotedAt:     time.Now().UTC(),
	}

	_, err := tx.Exec(`
		INSERT INTO ballot (id, voter_id, const_id, candidate_id, party_id, vote_type, is_valid, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, ballot.ID, ballot.VoterID, ballot.ConstID, ballot.CandidateID, ballot.PartyID,
		ballot.VoteType, ballot.IsValid, ballot.VotedAt)

	if err != nil {
		return models.Ballot{}, fmt.Errorf("failed to insert ballot: %w", err)
	}

	return ballot, nil
}
