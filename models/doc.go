// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the data types used throughout the application.

# Domain Types

Region, Constituency, Party, Candidate, Voter, and Ballot mirror the
database tables. All IDs are UUID strings. Ballot.VoterID is retained for
audit and duplicate prevention but never serialized to JSON - published
ballots are anonymous.

# Vote Types

Two recognized vote types:

	models.VoteTypeConstituency  // constituency-seat ballot
	models.VoteTypePartyList     // nationwide party-list ballot

Any other string on a submission is an unrecognized type and results in a
spoiled ballot that consumes no voting right.

# Request/Response Types

Create*Request and RegisterVoterRequest shape the write endpoints;
result-view structs (ConstituencyResult, PartyListResult, the Overall*
variants, BallotSummary) shape the tally endpoints. BallotAuditEntry is
one row of the anonymous GET /ballots listing, tagged good or spoiled.
*/
package models
