// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/electorate/ballotbox/citizenid"
	"github.com/electorate/ballotbox/cliparse"
	"github.com/electorate/ballotbox/middleware"
	"github.com/electorate/ballotbox/models"
)

// VoterHandler manages the voter ledger. Registration is the only write;
// the has_voted flags are owned by the admission engine and cannot be set
// through this handler.
type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// RegisterVoter handles POST /voters
func (h *VoterHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.FullName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "full_name is required")
		return
	}
	if err := citizenid.Validate(req.CitizenID); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "citizen_id failed checksum validation")
		return
	}
	if req.ConstID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "const_id is required")
		return
	}

	// Verify the home constituency exists
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM constituency WHERE id = $1)
	`, req.ConstID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query constituency", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Constituency not found")
		return
	}

	voter := models.Voter{
		ID:        uuid.NewString(),
		CitizenID: req.CitizenID,
		FullName:  req.FullName,
		ConstID:   req.ConstID,
	}

	// UNIQUE constraint on citizen_id prevents double registration
	_, err = h.db.Exec(`
		INSERT INTO voter (id, citizen_id, full_name, const_id, has_voted_const, has_voted_list)
		VALUES ($1, $2, $3, $4, FALSE, FALSE)
	`, voter.ID, voter.CitizenID, voter.FullName, voter.ConstID)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Citizen ID already registered")
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	slog.Info("voter registered", "voter_id", voter.ID, "const_id", voter.ConstID)

	middleware.JSONResponse(w, http.StatusCreated, voter)
}

// ListVoters handles GET /voters
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, citizen_id, full_name, const_id, has_voted_const, has_voted_list
		FROM voter
		ORDER BY full_name
	`)
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.ID, &v.CitizenID, &v.FullName, &v.ConstID, &v.HasVotedConst, &v.HasVotedList); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		voters = append(voters, v)
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

// GetVoter handles GET /voters/{id}
func (h *VoterHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var v models.Voter
	err := h.db.QueryRow(`
		SELECT id, citizen_id, full_name, const_id, has_voted_const, has_voted_list
		FROM voter
		WHERE id = $1
	`, voterID).Scan(&v.ID, &v.CitizenID, &v.FullName, &v.ConstID, &v.HasVotedConst, &v.HasVotedList)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, v)
}
