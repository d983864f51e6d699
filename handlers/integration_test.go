// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/electorate/ballotbox/citizenid"
	"github.com/electorate/ballotbox/models"
	"github.com/electorate/ballotbox/testutil"
)

// TestFullElectionWorkflow tests the complete end-to-end workflow:
// 1. Create region and constituency
// 2. Create parties and candidates
// 3. Register voters
// 4. Submit ballots (good, spoiled, and duplicate)
// 5. Verify results and summary
func TestFullElectionWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	registryHandler := NewRegistryHandler(conn, cfg)
	voterHandler := NewVoterHandler(conn, cfg)
	ballotHandler := NewBallotHandler(conn, cfg)
	resultsHandler := NewResultsHandler(conn, cfg)

	post := func(path string, reqBody interface{}, handler http.HandlerFunc) *httptest.ResponseRecorder {
		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest("POST", path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler(w, req)
		return w
	}

	// Step 1: Region and constituency
	w := post("/regions", models.CreateRegionRequest{Name: "Capital", TotalPopulation: 8000000}, registryHandler.CreateRegion)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create region failed: %d - %s", w.Code, w.Body.String())
	}
	var region models.Region
	json.NewDecoder(w.Body).Decode(&region)

	w = post("/constituencies", models.CreateConstituencyRequest{
		RegionID: region.ID, ConstNumber: 1, TotalEligibleVoters: 100000,
	}, registryHandler.CreateConstituency)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create constituency failed: %d - %s", w.Code, w.Body.String())
	}
	var cons models.Constituency
	json.NewDecoder(w.Body).Decode(&cons)
	t.Logf("Step 1 - Created region %s, constituency %s", region.ID, cons.ID)

	// Step 2: Two parties, one candidate each
	partyIDs := make([]string, 0, 2)
	candidateIDs := make([]string, 0, 2)
	for i, name := range []string{"First Party", "Second Party"} {
		w = post("/parties", models.CreatePartyRequest{PartyName: name}, registryHandler.CreateParty)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Create party '%s' failed: %d - %s", name, w.Code, w.Body.String())
		}
		var party models.Party
		json.NewDecoder(w.Body).Decode(&party)
		partyIDs = append(partyIDs, party.ID)

		w = post("/candidates", models.CreateCandidateRequest{
			ConstID: cons.ID, PartyID: party.ID, CandidateNumber: i + 1, FullName: name + " Candidate",
		}, registryHandler.CreateCandidate)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Create candidate failed: %d - %s", w.Code, w.Body.String())
		}
		var cand models.Candidate
		json.NewDecoder(w.Body).Decode(&cand)
		candidateIDs = append(candidateIDs, cand.ID)
	}
	t.Logf("Step 2 - Created %d parties and %d candidates", len(partyIDs), len(candidateIDs))

	// Step 3: Register three voters
	voterIDs := make([]string, 0, 3)
	for _, name := range []string{"Voter One", "Voter Two", "Voter Three"} {
		citizenID, err := citizenid.Generate()
		if err != nil {
			t.Fatalf("Step 3 - Failed to generate citizen id: %v", err)
		}
		w = post("/voters", models.RegisterVoterRequest{
			CitizenID: citizenID, FullName: name, ConstID: cons.ID,
		}, voterHandler.RegisterVoter)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 3 - Register voter '%s' failed: %d - %s", name, w.Code, w.Body.String())
		}
		var voter models.Voter
		json.NewDecoder(w.Body).Decode(&voter)
		voterIDs = append(voterIDs, voter.ID)
	}
	t.Logf("Step 3 - Registered %d voters", len(voterIDs))

	// Step 4: Ballots. Voters one and two vote for candidate one, voter
	// three submits a malformed constituency ballot (spoiled). Voter one
	// also casts a list vote, then tries to vote again.
	for _, voterID := range voterIDs[:2] {
		w = post("/ballots", models.SubmitBallotRequest{
			VoterID: voterID, ConstID: cons.ID,
			VoteType: models.VoteTypeConstituency, CandidateID: &candidateIDs[0],
		}, ballotHandler.SubmitBallot)
		if w.Code != http.StatusCreated {
			t.Fatalf("Step 4 - Submit ballot failed: %d - %s", w.Code, w.Body.String())
		}
	}

	w = post("/ballots", models.SubmitBallotRequest{
		VoterID: voterIDs[2], ConstID: cons.ID,
		VoteType: models.VoteTypeConstituency, PartyID: &partyIDs[0], // party on a constituency ballot
	}, ballotHandler.SubmitBallot)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Spoiled ballot submission failed: %d - %s", w.Code, w.Body.String())
	}
	var spoiledResp models.SubmitBallotResponse
	json.NewDecoder(w.Body).Decode(&spoiledResp)
	if spoiledResp.Ballot.IsValid {
		t.Fatal("Step 4 - Expected the malformed ballot to be spoiled")
	}

	w = post("/ballots", models.SubmitBallotRequest{
		VoterID: voterIDs[0], ConstID: cons.ID,
		VoteType: models.VoteTypePartyList, PartyID: &partyIDs[1],
	}, ballotHandler.SubmitBallot)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - List ballot failed: %d - %s", w.Code, w.Body.String())
	}

	w = post("/ballots", models.SubmitBallotRequest{
		VoterID: voterIDs[0], ConstID: cons.ID,
		VoteType: models.VoteTypeConstituency, CandidateID: &candidateIDs[1],
	}, ballotHandler.SubmitBallot)
	if w.Code != http.StatusConflict {
		t.Fatalf("Step 4 - Expected 409 on duplicate constituency vote, got %d", w.Code)
	}
	t.Log("Step 4 - Ballots submitted")

	// Step 5: Results
	results, err := ComputeConstituencyResults(conn)
	if err != nil {
		t.Fatalf("Step 5 - ComputeConstituencyResults failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Step 5 - Expected 1 result row, got %d", len(results))
	}
	if results[0].CandidateID != candidateIDs[0] || results[0].TotalVotes != 2 {
		t.Errorf("Step 5 - Unexpected winner row: %+v", results[0])
	}

	partyResults, err := ComputeOverallPartyResults(conn)
	if err != nil {
		t.Fatalf("Step 5 - ComputeOverallPartyResults failed: %v", err)
	}
	if len(partyResults) != 1 || partyResults[0].PartyID != partyIDs[1] || partyResults[0].TotalVotes != 1 {
		t.Errorf("Step 5 - Unexpected party results: %+v", partyResults)
	}

	req := httptest.NewRequest("GET", "/results/summary", nil)
	rec := httptest.NewRecorder()
	resultsHandler.GetSummary(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Step 5 - Summary failed: %d", rec.Code)
	}
	var summary models.BallotSummary
	json.NewDecoder(rec.Body).Decode(&summary)
	if summary.TotalBallots != 4 || summary.ValidBallots != 3 || summary.SpoiledBallots != 1 {
		t.Errorf("Step 5 - Unexpected summary: %+v", summary)
	}
	t.Logf("Step 5 - Summary: %d total, %d valid, %d spoiled",
		summary.TotalBallots, summary.ValidBallots, summary.SpoiledBallots)
}
