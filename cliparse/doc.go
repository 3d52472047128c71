// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4117)
  - DatabaseType: Storage backend, one of memory (default), sqlite, postgres
  - DatabaseURL: Connection string (required for sqlite/postgres)
  - IPHashSalt: Secret for IP hashing on connection logs (optional)

# CLI Flags

	-p        Server port
	-d        Database URL
	-t        Storage backend
	-ip-salt  IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	IP_HASH_SALT  → -ip-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DatabaseType is not one of the known
backends, or if a durable backend is selected without a DATABASE_URL.
The memory backend needs no configuration at all.
*/
package cliparse
