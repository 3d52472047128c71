// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements stick to the SQL subset shared by SQLite and
// PostgreSQL; timestamps are always supplied by the application.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    creator_id TEXT NOT NULL,
    status TEXT NOT NULL CHECK (status IN ('active', 'ended')),
    created_at TIMESTAMP NOT NULL,
    ended_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_status ON poll(status);

-- Options (position preserves the creation-time display order)
CREATE TABLE IF NOT EXISTS option (
    id TEXT NOT NULL,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    label TEXT NOT NULL,
    PRIMARY KEY (poll_id, id)
);

CREATE INDEX IF NOT EXISTS idx_option_poll_id ON option(poll_id);

-- Votes (the unique constraint is the durable dedup set)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL,
    voter_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (poll_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
`
