// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Ballotbox is a national election backend.

# Domain

Regions subdivide into constituencies. Parties field candidates per
constituency. Each registered voter holds two independent voting rights:
one constituency-seat ballot and one nationwide party-list ballot.

# Admission Model

Every submission that passes the hard preconditions (the voter exists and
has not yet spent that right) persists a ballot. Validity is decided after
admission: a ballot that names a wrong, missing, or out-of-venue selection
is stored spoiled with its linkage cleared, and still consumes the right -
exactly as a physical ballot box accepts a badly marked paper.

Submissions with an unrecognized vote type are the one exception: they are
stored spoiled but consume neither right, because the system cannot tell
which right the voter meant to spend.

# Running

	ballotbox                          # SQLite file election.db, port 4000
	ballotbox -p 8080 -t postgres -d postgres://...

Configuration also comes from PORT, DATABASE_TYPE, and DATABASE_URL
environment variables (and a local .env file in development).

# Endpoints

	POST/GET /regions, /constituencies, /parties, /candidates
	POST/GET /voters, GET /voters/{id}
	POST/GET /ballots, GET /ballots/count
	GET /results/constituency[/overall], /results/party[/overall], /results/summary
*/
package main
