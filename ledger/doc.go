// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger owns canonical poll state: metadata, lifecycle, the
append-only vote log, and the per-voter dedup set.

# Operations

	led := ledger.New(ledger.NewMemoryStore())
	view, err := led.CreatePoll("Lunch?", "alice", []string{"Sushi", "Ramen"})
	vote, view, err := led.CastVote(view.ID, view.Options[0].ID, "v1")
	view, ended, err := led.EndPoll(view.ID, "alice")

# Storage

The Ledger is built over the Store interface so the same business rules
run against any backend that preserves the atomic check-then-append
contract for votes. MemoryStore (this package) is the default; package
db provides a database/sql implementation backed by SQLite or
PostgreSQL.

# Concurrency

MemoryStore serializes CastVote per poll: the dedup check and the
append happen under one per-poll mutex, so two concurrent votes with the
same voter ID can never both succeed. Reads take the same mutex briefly
to copy a consistent snapshot. A vote racing EndPoll lands on whichever
side of the transition acquires the mutex first; it is never lost or
double-counted.
*/
package ledger
