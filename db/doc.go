// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db manages the database schema.

The DDL is a single idempotent script (IF NOT EXISTS throughout) valid
under both SQLite and PostgreSQL: TEXT primary keys holding
application-assigned UUIDs, BOOLEAN flags, CURRENT_TIMESTAMP defaults.

	if err := db.CreateSchema(conn); err != nil {
		...
	}

The ballot table is append-only. Invalidity is recorded at insert time in
is_valid; rows are never updated or deleted afterwards.
*/
package db
