// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/electorate/ballotbox/cliparse"
	"github.com/electorate/ballotbox/middleware"
	"github.com/electorate/ballotbox/models"
)

// RegistryHandler manages the electoral registry: regions, constituencies,
// parties, and candidates. Registry rows are reference data - created before
// the election opens, read by the admission and tally engines.
type RegistryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRegistryHandler(db *sql.DB, cfg cliparse.Config) *RegistryHandler {
	return &RegistryHandler{db: db, cfg: cfg}
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
// Matched by message because database/sql exposes no portable error code
// across the sqlite and pq drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// CreateRegion handles POST /regions
func (h *RegistryHandler) CreateRegion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRegionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	region := models.Region{
		ID:              uuid.NewString(),
		Name:            req.Name,
		TotalPopulation: req.TotalPopulation,
	}

	_, err := h.db.Exec(`
		INSERT INTO region (id, name, total_population)
		VALUES ($1, $2, $3)
	`, region.ID, region.Name, region.TotalPopulation)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Region name already exists")
			return
		}
		slog.Error("failed to insert region", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create region")
		return
	}

	slog.Info("region created", "region_id", region.ID, "name", region.Name)

	middleware.JSONResponse(w, http.StatusCreated, region)
}

// ListRegions handles GET /regions
func (h *RegistryHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, total_population
		FROM region
		ORDER BY name
	`)
	if err != nil {
		slog.Error("failed to query regions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	regions := []models.Region{}
	for rows.Next() {
		var reg models.Region
		if err := rows.Scan(&reg.ID, &reg.Name, &reg.TotalPopulation); err != nil {
			slog.Error("failed to scan region", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		regions = append(regions, reg)
	}

	middleware.JSONResponse(w, http.StatusOK, regions)
}

// CreateConstituency handles POST /constituencies
// The parent region must already exist (404 otherwise, nothing persisted).
func (h *RegistryHandler) CreateConstituency(w http.ResponseWriter, r *http.Request) {
	var req models.CreateConstituencyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.RegionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "region_id is required")
		return
	}
	if req.ConstNumber <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "const_number must be positive")
		return
	}

	// Verify the region exists
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM region WHERE id = $1)
	`, req.RegionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query region", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Region not found")
		return
	}

	cons := models.Constituency{
		ID:                  uuid.NewString(),
		RegionID:            req.RegionID,
		ConstNumber:         req.ConstNumber,
		TotalEligibleVoters: req.TotalEligibleVoters,
	}

	_, err = h.db.Exec(`
		INSERT INTO constituency (id, region_id, const_number, total_eligible_voters)
		VALUES ($1, $2, $3, $4)
	`, cons.ID, cons.RegionID, cons.ConstNumber, cons.TotalEligibleVoters)

	if err != nil {
		slog.Error("failed to insert constituency", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create constituency")
		return
	}

	slog.Info("constituency created", "const_id", cons.ID, "const_number", cons.ConstNumber)

	middleware.JSONResponse(w, http.StatusCreated, cons)
}

// ListConstituencies handles GET /constituencies
func (h *RegistryHandler) ListConstituencies(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, region_id, const_number, total_eligible_voters
		FROM constituency
		ORDER BY const_number
	`)
	if err != nil {
		slog.Error("failed to query constituencies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	constituencies := []models.Constituency{}
	for rows.Next() {
		var cons models.Constituency
		if err := rows.Scan(&cons.ID, &cons.RegionID, &cons.ConstNumber, &cons.TotalEligibleVoters); err != nil {
			slog.Error("failed to scan constituency", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		constituencies = append(constituencies, cons)
	}

	middleware.JSONResponse(w, http.StatusOK, constituencies)
}

// CreateParty handles POST /parties
func (h *RegistryHandler) CreateParty(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePartyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.PartyName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "party_name is required")
		return
	}

	party := models.Party{
		ID:           uuid.NewString(),
		PartyName:    req.PartyName,
		PartyLeader:  req.PartyLeader,
		PartyLogoURL: req.PartyLogoURL,
	}

	_, err := h.db.Exec(`
		INSERT INTO party (id, party_name, party_leader, party_logo_url)
		VALUES ($1, $2, $3, $4)
	`, party.ID, party.PartyName, party.PartyLeader, party.PartyLogoURL)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Party name already exists")
			return
		}
		slog.Error("failed to insert party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create party")
		return
	}

	slog.Info("party created", "party_id", party.ID, "party_name", party.PartyName)

	middleware.JSONResponse(w, http.StatusCreated, party)
}

// ListParties handles GET /parties
func (h *RegistryHandler) ListParties(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, party_name, party_leader, party_logo_url
		FROM party
		ORDER BY party_name
	`)
	if err != nil {
		slog.Error("failed to query parties", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	parties := []models.Party{}
	for rows.Next() {
		var party models.Party
		if err := rows.Scan(&party.ID, &party.PartyName, &party.PartyLeader, &party.PartyLogoURL); err != nil {
			slog.Error("failed to scan party", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		parties = append(parties, party)
	}

	middleware.JSONResponse(w, http.StatusOK, parties)
}

// CreateCandidate handles POST /candidates
// Both the constituency and the party must exist (404 otherwise).
func (h *RegistryHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ConstID == "" || req.PartyID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "const_id and party_id are required")
		return
	}
	if req.FullName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "full_name is required")
		return
	}
	if req.CandidateNumber <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_number must be positive")
		return
	}

	var constExists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM constituency WHERE id = $1)
	`, req.ConstID).Scan(&constExists)
	if err != nil {
		slog.Error("failed to query constituency", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !constExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Constituency not found")
		return
	}

	var partyExists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM party WHERE id = $1)
	`, req.PartyID).Scan(&partyExists)
	if err != nil {
		slog.Error("failed to query party", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !partyExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Party not found")
		return
	}

	cand := models.Candidate{
		ID:              uuid.NewString(),
		ConstID:         req.ConstID,
		PartyID:         req.PartyID,
		CandidateNumber: req.CandidateNumber,
		FullName:        req.FullName,
	}

	_, err = h.db.Exec(`
		INSERT INTO candidate (id, const_id, party_id, candidate_number, full_name)
		VALUES ($1, $2, $3, $4, $5)
	`, cand.ID, cand.ConstID, cand.PartyID, cand.CandidateNumber, cand.FullName)

	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", cand.ID, "const_id", cand.ConstID)

	middleware.JSONResponse(w, http.StatusCreated, cand)
}

// ListCandidates handles GET /candidates
func (h *RegistryHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, const_id, party_id, candidate_number, full_name
		FROM candidate
		ORDER BY const_id, candidate_number
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var cand models.Candidate
		if err := rows.Scan(&cand.ID, &cand.ConstID, &cand.PartyID, &cand.CandidateNumber, &cand.FullName); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, cand)
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}
