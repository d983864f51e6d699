// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/electorate/ballotbox/cliparse"
	"github.com/electorate/ballotbox/middleware"
	"github.com/electorate/ballotbox/models"
)

type BallotHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBallotHandler(db *sql.DB, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{db: db, cfg: cfg}
}

// SubmitBallot handles POST /ballots
// Hard rejections map to 404/409; everything else that persists (good or
// spoiled) returns 201.
func (h *BallotHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id is required")
		return
	}
	if req.ConstID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "const_id is required")
		return
	}
	if req.VoteType == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote_type is required")
		return
	}

	ballot, voter, err := AdmitBallot(h.db, req)
	switch {
	case err == ErrVoterNotFound:
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	case err == ErrAlreadyVotedConstituency:
		middleware.ErrorResponse(w, http.StatusConflict, "Voter has already cast a constituency ballot")
		return
	case err == ErrAlreadyVotedPartyList:
		middleware.ErrorResponse(w, http.StatusConflict, "Voter has already cast a party-list ballot")
		return
	case err != nil:
		slog.Error("ballot admission failed", "error", err, "voter_id", req.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit ballot")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitBallotResponse{
		Ballot: ballot,
		Voter:  voter,
	})
}

// ListBallots handles GET /ballots
// Anonymous audit listing: each ballot with a good/spoiled note and the
// joined candidate/party names. For constituency votes the party is resolved
// through the candidate; for list votes through the ballot's own party.
// Spoiled ballots carry no linkage, so their names come back empty.
func (h *BallotHandler) ListBallots(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT b.id, b.voted_at, b.vote_type, b.is_valid,
		       c.full_name,
		       COALESCE(bp.party_name, cp.party_name)
		FROM ballot b
		LEFT JOIN candidate c ON b.candidate_id = c.id
		LEFT JOIN party bp ON b.party_id = bp.id
		LEFT JOIN party cp ON c.party_id = cp.id
		ORDER BY b.voted_at
	`)
	if err != nil {
		slog.Error("failed to query ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	entries := []models.BallotAuditEntry{}
	for rows.Next() {
		var entry models.BallotAuditEntry
		var isValid bool
		var candidateName, partyName sql.NullString
		if err := rows.Scan(&entry.BallotID, &entry.VotedAt, &entry.VoteType,
			&isValid, &candidateName, &partyName); err != nil {
			slog.Error("failed to scan ballot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		if isValid {
			entry.BallotNote = models.BallotNoteGood
		} else {
			entry.BallotNote = models.BallotNoteSpoiled
		}
		if candidateName.Valid {
			entry.CandidateName = &candidateName.String
		}
		if partyName.Valid {
			entry.PartyName = &partyName.String
		}

		entries = append(entries, entry)
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// CountBallots handles GET /ballots/count
func (h *BallotHandler) CountBallots(w http.ResponseWriter, r *http.Request) {
	var count int
	err := h.db.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&count)
	if err != nil {
		slog.Error("failed to count ballots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotCountResponse{
		TotalBallots: count,
	})
}
