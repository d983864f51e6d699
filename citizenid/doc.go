// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package citizenid validates national citizen identifiers.

An identifier is 13 digits; the final digit is a mod-11 checksum over the
first 12. Validation happens once, at voter registration - the admission
path trusts the ledger and never re-validates.

	if err := citizenid.Validate(req.CitizenID); err != nil {
		// reject registration
	}

Generate produces random valid identifiers for test fixtures.
*/
package citizenid
