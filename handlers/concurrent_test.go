// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/electorate/ballotbox/models"
	"github.com/electorate/ballotbox/testutil"
)

// TestConcurrentDuplicateSubmissions verifies that when one voter submits
// the same vote type from multiple goroutines, exactly one submission wins
// and exactly one ballot is persisted.
func TestConcurrentDuplicateSubmissions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	fix := setupElection(t, conn)
	handler := NewBallotHandler(conn, testutil.GetTestConfig())

	numAttempts := 8

	var created, conflicted atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := submitBallot(t, handler, models.SubmitBallotRequest{
				VoterID:     fix.voterID,
				ConstID:     fix.constID1,
				VoteType:    models.VoteTypeConstituency,
				CandidateID: &fix.candidateID,
			})

			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicted.Add(1)
			}
		}()
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 successful submission, got %d", created.Load())
	}
	if int(conflicted.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflicted.Load())
	}

	var ballotCount int
	err := conn.QueryRow(`SELECT COUNT(*) FROM ballot WHERE voter_id = $1`, fix.voterID).Scan(&ballotCount)
	if err != nil {
		t.Fatalf("Failed to count ballots: %v", err)
	}
	if ballotCount != 1 {
		t.Errorf("Expected exactly 1 ballot in database, got %d", ballotCount)
	}
}

// TestConcurrentDistinctVoters verifies that simultaneous submissions from
// different voters all succeed without corruption.
func TestConcurrentDistinctVoters(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	fix := setupElection(t, conn)
	handler := NewBallotHandler(conn, testutil.GetTestConfig())

	numVoters := 10
	voterIDs := make([]string, numVoters)
	for i := 0; i < numVoters; i++ {
		voterIDs[i] = testutil.RegisterTestVoter(t, conn, fix.constID1, "ConcurrentVoter"+string(rune('A'+i)))
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			w := submitBallot(t, handler, models.SubmitBallotRequest{
				VoterID:     voterIDs[voterIdx],
				ConstID:     fix.constID1,
				VoteType:    models.VoteTypeConstituency,
				CandidateID: &fix.candidateID,
			})

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful submissions, got %d", numVoters, successCount.Load())
	}

	var ballotCount int
	err := conn.QueryRow(`SELECT COUNT(*) FROM ballot`).Scan(&ballotCount)
	if err != nil {
		t.Fatalf("Failed to count ballots: %v", err)
	}
	if ballotCount != numVoters {
		t.Errorf("Expected %d ballots in database, got %d", numVoters, ballotCount)
	}

	// No voter got more than one ballot through
	var maxPerVoter int
	err = conn.QueryRow(`
		SELECT MAX(n) FROM (SELECT COUNT(*) AS n FROM ballot GROUP BY voter_id)
	`).Scan(&maxPerVoter)
	if err != nil {
		t.Fatalf("Failed to check per-voter counts: %v", err)
	}
	if maxPerVoter != 1 {
		t.Errorf("Expected at most 1 ballot per voter, got %d", maxPerVoter)
	}
}

// TestConcurrentMixedVoteTypes verifies that the two rights are independent:
// one voter submitting both vote types concurrently gets both admitted.
func TestConcurrentMixedVoteTypes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	fix := setupElection(t, conn)
	handler := NewBallotHandler(conn, testutil.GetTestConfig())

	var wg sync.WaitGroup
	var created atomic.Int32

	wg.Add(2)
	go func() {
		defer wg.Done()
		w := submitBallot(t, handler, models.SubmitBallotRequest{
			VoterID:     fix.voterID,
			ConstID:     fix.constID1,
			VoteType:    models.VoteTypeConstituency,
			CandidateID: &fix.candidateID,
		})
		if w.Code == http.StatusCreated {
			created.Add(1)
		}
	}()
	go func() {
		defer wg.Done()
		w := submitBallot(t, handler, models.SubmitBallotRequest{
			VoterID:  fix.voterID,
			ConstID:  fix.constID1,
			VoteType: models.VoteTypePartyList,
			PartyID:  &fix.partyID,
		})
		if w.Code == http.StatusCreated {
			created.Add(1)
		}
	}()
	wg.Wait()

	if created.Load() != 2 {
		t.Errorf("Expected both vote types to be admitted, got %d", created.Load())
	}

	var hasConst, hasList bool
	err := conn.QueryRow(`
		SELECT has_voted_const, has_voted_list FROM voter WHERE id = $1
	`, fix.voterID).Scan(&hasConst, &hasList)
	if err != nil {
		t.Fatalf("Failed to query voter: %v", err)
	}
	if !hasConst || !hasList {
		t.Errorf("Expected both flags set, got const=%v list=%v", hasConst, hasList)
	}
}
