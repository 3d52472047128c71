// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Livepoll API server.

Livepoll is a live-results polling service: a creator publishes a poll
with 2-10 options, voters cast exactly one vote each, and everyone
watching the poll sees tallies update in real time over WebSocket.

# Starting the Server

The memory backend needs no configuration:

	go run main.go

With a durable store:

	DATABASE_TYPE=sqlite DATABASE_URL=file:livepoll.db go run main.go

Or with flags:

	go run main.go -p 4117 -t postgres -d "postgres://..."

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 4117)
  - DATABASE_TYPE (-t): memory, sqlite, or postgres (default: memory)
  - DATABASE_URL (-d): connection string (required for sqlite/postgres)
  - IP_HASH_SALT (-ip-salt): salt for hashed connection logs

A .env file is loaded if present (real env vars take precedence).

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ledger: authoritative poll state, vote log, per-voter dedup
  - tally: pure aggregation of counts and percentages
  - broadcast: per-poll subscription registry and notification fan-out
  - handlers: HTTP request handlers (polls, voting, live)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain types, DTOs, error kinds
  - db: durable ledger store (SQLite/PostgreSQL) and schema
  - auth: identifier utilities (option IDs, IP hashing)
  - cliparse: Configuration parsing
  - client: reconnecting WebSocket watcher for observers

See package documentation for each component.
*/
package main
