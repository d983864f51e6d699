// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/electorate/ballotbox/citizenid"
	"github.com/electorate/ballotbox/cliparse"
	"github.com/electorate/ballotbox/db"
)

// SetupTestDB creates a fresh file-backed SQLite database in the test's
// temp directory with the full schema. File-backed rather than in-memory so
// concurrent-submission tests exercise the real single-writer behavior;
// MaxOpenConns(1) plus the busy-timeout pragma keep writers queued instead
// of failing.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "election_test.db") +
		"?_pragma=busy_timeout(10000)&_time_format=sqlite"

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := conn.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4000,
		DatabaseURL:  cliparse.DefaultSQLiteURL,
		DatabaseType: "sqlite",
	}
}

// CreateTestRegion inserts a region and returns its ID
func CreateTestRegion(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	regionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO region (id, name, total_population)
		VALUES ($1, $2, $3)
	`, regionID, name, 1000000)
	if err != nil {
		t.Fatalf("Failed to create test region: %v", err)
	}

	return regionID
}

// CreateTestConstituency inserts a constituency and returns its ID
func CreateTestConstituency(t *testing.T, conn *sql.DB, regionID string, constNumber int) string {
	t.Helper()

	constID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO constituency (id, region_id, const_number, total_eligible_voters)
		VALUES ($1, $2, $3, $4)
	`, constID, regionID, constNumber, 50000)
	if err != nil {
		t.Fatalf("Failed to create test constituency: %v", err)
	}

	return constID
}

// CreateTestParty inserts a party and returns its ID
func CreateTestParty(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()

	partyID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO party (id, party_name, party_leader, party_logo_url)
		VALUES ($1, $2, NULL, NULL)
	`, partyID, name)
	if err != nil {
		t.Fatalf("Failed to create test party: %v", err)
	}

	return partyID
}

// CreateTestCandidate inserts a candidate and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, constID, partyID string, number int, name string) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, const_id, party_id, candidate_number, full_name)
		VALUES ($1, $2, $3, $4, $5)
	`, candidateID, constID, partyID, number, name)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// RegisterTestVoter inserts a voter with a generated citizen ID and returns
// the voter ID
func RegisterTestVoter(t *testing.T, conn *sql.DB, constID, name string) string {
	t.Helper()

	citizenID, err := citizenid.Generate()
	if err != nil {
		t.Fatalf("Failed to generate citizen id: %v", err)
	}

	voterID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO voter (id, citizen_id, full_name, const_id, has_voted_const, has_voted_list)
		VALUES ($1, $2, $3, $4, FALSE, FALSE)
	`, voterID, citizenID, name, constID)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterID
}

// InsertTestBallot inserts a ballot row directly, bypassing admission.
// Used by tally tests to build precise vote distributions. candidateID and
// partyID may be empty; isValid is stored as given. Does not touch the
// voter's participation flags.
func InsertTestBallot(t *testing.T, conn *sql.DB, voterID, constID, candidateID, partyID, voteType string, isValid bool) string {
	t.Helper()

	var candPtr, partyPtr *string
	if candidateID != "" {
		candPtr = &candidateID
	}
	if partyID != "" {
		partyPtr = &partyID
	}

	ballotID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO ballot (id, voter_id, const_id, candidate_id, party_id, vote_type, is_valid, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, ballotID, voterID, constID, candPtr, partyPtr, voteType, isValid, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to insert test ballot: %v", err)
	}

	return ballotID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
