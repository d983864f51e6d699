// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line flag and environment configuration.

Flags take precedence over environment variables:

	-p PORT            server port (env PORT, default 4000)
	-d DATABASE_URL    database connection string (env DATABASE_URL)
	-t DATABASE_TYPE   sqlite or postgres (env DATABASE_TYPE, default sqlite)

When the type is sqlite and no URL is given, a local election.db file is
used. A postgres type with no URL is a configuration error.
*/
package cliparse
