package models

import "time"

// Vote type constants
const (
	VoteTypeConstituency = "Constituency"
	VoteTypePartyList    = "PartyList"
)

// Ballot note constants (audit listing)
const (
	BallotNoteGood    = "good"
	BallotNoteSpoiled = "spoiled"
)

// Request types

type CreateRegionRequest struct {
	Name            string `json:"name"`
	TotalPopulation int    `json:"total_population"`
}

type CreateConstituencyRequest struct {
	RegionID            string `json:"region_id"`
	ConstNumber         int    `json:"const_number"`
	TotalEligibleVoters int    `json:"total_eligible_voters"`
}

type CreatePartyRequest struct {
	PartyName    string  `json:"party_name"`
	PartyLeader  *string `json:"party_leader,omitempty"`
	PartyLogoURL *string `json:"party_logo_url,omitempty"`
}

type CreateCandidateRequest struct {
	ConstID         string `json:"const_id"`
	PartyID         string `json:"party_id"`
	CandidateNumber int    `json:"candidate_number"`
	FullName        string `json:"full_name"`
}

type RegisterVoterRequest struct {
	CitizenID string `json:"citizen_id"`
	FullName  string `json:"full_name"`
	ConstID   string `json:"const_id"`
}

// SubmitBallotRequest is the proposed ballot. Exactly one of candidate_id and
// party_id is expected depending on vote_type; the admission engine decides
// what a mismatch means (spoilage, not rejection).
type SubmitBallotRequest struct {
	VoterID     string  `json:"voter_id"`
	ConstID     string  `json:"const_id"`
	VoteType    string  `json:"vote_type"`
	CandidateID *string `json:"candidate_id,omitempty"`
	PartyID     *string `json:"party_id,omitempty"`
}

// Response types

type SubmitBallotResponse struct {
	Ballot Ballot `json:"ballot"`
	Voter  Voter  `json:"voter"`
}

type BallotCountResponse struct {
	TotalBallots int `json:"total_ballots"`
}

// Domain types

type Region struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	TotalPopulation int    `json:"total_population"`
}

type Constituency struct {
	ID                  string `json:"id"`
	RegionID            string `json:"region_id"`
	ConstNumber         int    `json:"const_number"`
	TotalEligibleVoters int    `json:"total_eligible_voters"`
}

type Party struct {
	ID           string  `json:"id"`
	PartyName    string  `json:"party_name"`
	PartyLeader  *string `json:"party_leader,omitempty"`
	PartyLogoURL *string `json:"party_logo_url,omitempty"`
}

type Candidate struct {
	ID              string `json:"id"`
	ConstID         string `json:"const_id"`
	PartyID         string `json:"party_id"`
	CandidateNumber int    `json:"candidate_number"`
	FullName        string `json:"full_name"`
}

type Voter struct {
	ID            string `json:"id"`
	CitizenID     string `json:"citizen_id"`
	FullName      string `json:"full_name"`
	ConstID       string `json:"const_id"`
	HasVotedConst bool   `json:"has_voted_const"`
	HasVotedList  bool   `json:"has_voted_list"`
}

type Ballot struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"-"` // Kept for audit and duplicate prevention, never exposed in JSON
	ConstID     string    `json:"const_id"`
	CandidateID *string   `json:"candidate_id,omitempty"`
	PartyID     *string   `json:"party_id,omitempty"`
	VoteType    string    `json:"vote_type"`
	IsValid     bool      `json:"is_valid"`
	VotedAt     time.Time `json:"voted_at"`
}

// BallotAuditEntry is one row of the anonymous audit listing. Names are only
// populated for good ballots; spoiled ballots carry no linkage.
type BallotAuditEntry struct {
	BallotID      string    `json:"ballot_id"`
	VotedAt       time.Time `json:"voted_at"`
	VoteType      string    `json:"vote_type"`
	BallotNote    string    `json:"ballot_note"`
	CandidateName *string   `json:"candidate_name,omitempty"`
	PartyName     *string   `json:"party_name,omitempty"`
}

// Result view types

type ConstituencyResult struct {
	ConstNumber   int    `json:"const_number"`
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyName     string `json:"party_name"`
	TotalVotes    int    `json:"total_votes"`
}

type PartyListResult struct {
	ConstNumber int    `json:"const_number"`
	PartyID     string `json:"party_id"`
	PartyName   string `json:"party_name"`
	TotalVotes  int    `json:"total_votes"`
}

type OverallCandidateResult struct {
	CandidateID   string `json:"candidate_id"`
	CandidateName string `json:"candidate_name"`
	PartyID       string `json:"party_id"`
	PartyName     string `json:"party_name"`
	TotalVotes    int    `json:"total_votes"`
}

type OverallPartyResult struct {
	PartyID    string `json:"party_id"`
	PartyName  string `json:"party_name"`
	TotalVotes int    `json:"total_votes"`
}

// VoteTypeBreakdown is one per-vote-type slice of the administrative summary.
// Unrecognized vote types appear under their literal tag.
type VoteTypeBreakdown struct {
	VoteType string `json:"vote_type"`
	Total    int    `json:"total"`
	Valid    int    `json:"valid"`
	Spoiled  int    `json:"spoiled"`
}

type BallotSummary struct {
	TotalBallots   int                 `json:"total_ballots"`
	ValidBallots   int                 `json:"valid_ballots"`
	SpoiledBallots int                 `json:"spoiled_ballots"`
	ByType         []VoteTypeBreakdown `json:"by_type"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
