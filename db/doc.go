// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the durable ledger store and schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The SQL sticks to the subset shared by SQLite
(modernc.org/sqlite) and PostgreSQL (lib/pq).

# Tables

  - poll: metadata and lifecycle state
  - option: ordered options (position column fixes display order)
  - vote: append-only log; UNIQUE (poll_id, voter_id) is the dedup set

# Store

SQLStore implements ledger.Store. Vote dedup relies on the unique
constraint rather than an in-process lock, so the atomicity contract
survives multiple processes sharing one database:

	store := db.NewSQLStore(conn)
	led := ledger.New(store)

Note that the live fan-out registry is still per-process; multi-process
deployments need an external broadcast relay in front of it.
*/
package db
