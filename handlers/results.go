// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/electorate/ballotbox/cliparse"
	"github.com/electorate/ballotbox/middleware"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetConstituencyResults handles GET /results/constituency
func (h *ResultsHandler) GetConstituencyResults(w http.ResponseWriter, r *http.Request) {
	results, err := ComputeConstituencyResults(h.db)
	if err != nil {
		slog.Error("failed to compute constituency results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetPartyListResults handles GET /results/party
func (h *ResultsHandler) GetPartyListResults(w http.ResponseWriter, r *http.Request) {
	results, err := ComputePartyListResults(h.db)
	if err != nil {
		slog.Error("failed to compute party-list results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetOverallCandidateResults handles GET /results/constituency/overall
func (h *ResultsHandler) GetOverallCandidateResults(w http.ResponseWriter, r *http.Request) {
	results, err := ComputeOverallCandidateResults(h.db)
	if err != nil {
		slog.Error("failed to compute overall candidate results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetOverallPartyResults handles GET /results/party/overall
func (h *ResultsHandler) GetOverallPartyResults(w http.ResponseWriter, r *http.Request) {
	results, err := ComputeOverallPartyResults(h.db)
	if err != nil {
		slog.Error("failed to compute overall party results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}

// GetSummary handles GET /results/summary
func (h *ResultsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := ComputeBallotSummary(h.db)
	if err != nil {
		slog.Error("failed to compute ballot summary", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("ballot summary computed",
		"total", humanize.Comma(int64(summary.TotalBallots)),
		"valid", humanize.Comma(int64(summary.ValidBallots)),
		"spoiled", humanize.Comma(int64(summary.SpoiledBallots)),
	)

	middleware.JSONResponse(w, http.StatusOK, summary)
}
