// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/electorate/ballotbox/cliparse"
	"github.com/electorate/ballotbox/handlers"
	"github.com/electorate/ballotbox/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	registryHandler := handlers.NewRegistryHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)
	ballotHandler := handlers.NewBallotHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Electoral registry (pre-election setup)
	mux.HandleFunc("POST /regions", middleware.WithLogging(registryHandler.CreateRegion))
	mux.HandleFunc("GET /regions", middleware.WithLogging(registryHandler.ListRegions))
	mux.HandleFunc("POST /constituencies", middleware.WithLogging(registryHandler.CreateConstituency))
	mux.HandleFunc("GET /constituencies", middleware.WithLogging(registryHandler.ListConstituencies))
	mux.HandleFunc("POST /parties", middleware.WithLogging(registryHandler.CreateParty))
	mux.HandleFunc("GET /parties", middleware.WithLogging(registryHandler.ListParties))
	mux.HandleFunc("POST /candidates", middleware.WithLogging(registryHandler.CreateCandidate))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(registryHandler.ListCandidates))

	// Voter ledger
	mux.HandleFunc("POST /voters", middleware.WithLogging(voterHandler.RegisterVoter))
	mux.HandleFunc("GET /voters", middleware.WithLogging(voterHandler.ListVoters))
	mux.HandleFunc("GET /voters/{id}", middleware.WithLogging(voterHandler.GetVoter))

	// Ballot admission and audit
	mux.HandleFunc("POST /ballots", middleware.WithLogging(ballotHandler.SubmitBallot))
	mux.HandleFunc("GET /ballots", middleware.WithLogging(ballotHandler.ListBallots))
	mux.HandleFunc("GET /ballots/count", middleware.WithLogging(ballotHandler.CountBallots))

	// Results
	mux.HandleFunc("GET /results/constituency", middleware.WithLogging(resultsHandler.GetConstituencyResults))
	mux.HandleFunc("GET /results/party", middleware.WithLogging(resultsHandler.GetPartyListResults))
	mux.HandleFunc("GET /results/constituency/overall", middleware.WithLogging(resultsHandler.GetOverallCandidateResults))
	mux.HandleFunc("GET /results/party/overall", middleware.WithLogging(resultsHandler.GetOverallPartyResults))
	mux.HandleFunc("GET /results/summary", middleware.WithLogging(resultsHandler.GetSummary))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
