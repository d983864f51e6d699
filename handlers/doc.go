// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the election API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - RegistryHandler: Regions, constituencies, parties, candidates
  - VoterHandler: Voter registration and lookup
  - BallotHandler: Ballot submission, audit listing, counts
  - ResultsHandler: Tally views

Handlers are created via constructor functions that accept *sql.DB and Config:

	ballotHandler := handlers.NewBallotHandler(db, cfg)

# Ballot Admission

The admission engine is implemented in admission.go:

	ballot, voter, err := handlers.AdmitBallot(db, submission)

A submission goes through hard preconditions first (voter exists,
participation right not yet consumed), then a validity determination.
Hard rejections persist nothing. Everything else persists a ballot:
good ballots keep their candidate/party linkage, spoiled ballots are
stored with the linkage cleared and is_valid = FALSE. Spoilage is a
successful outcome (201), not an error.

The two ballot kinds - constituency-seat and party-list - differ only in
which participation flag they consume and what makes them good; the
voteKind interface captures exactly that, and the rest of the sequence
is shared.

Duplicate prevention is a conditional UPDATE on the voter's flag inside
the admission transaction. Concurrent submissions for the same voter and
vote type serialize there: exactly one sees a row change, the rest get a
conflict and persist nothing.

# Tally

Tally computations are implemented in tally.go as plain query functions:

	results, err := handlers.ComputeConstituencyResults(db)

All tallies count valid ballots only. Orderings are deterministic: votes
descending, ties broken by candidate ballot position or party name.
*/
package handlers
