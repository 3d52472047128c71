// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, creator_id, options
  - CastVoteRequest: option_id

# Response Types

Types for JSON responses:

  - CastVoteResponse: vote_id, poll
  - WatcherCountResponse: poll_id, watchers
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata, ordered options, lifecycle state
  - Option: one selectable choice
  - Vote: a voter's immutable choice (voter_id never serialized)
  - PollView: aggregated snapshot with per-option counts and percentages
  - Notification: pushed to subscribers ("updated" or "ended")

# Error Kinds

Sentinel errors shared across the ledger and HTTP layer:

	ErrInvalidInput  → 400
	ErrInvalidOption → 400
	ErrUnauthorized  → 403
	ErrNotFound      → 404
	ErrPollEnded     → 409
	ErrDuplicateVote → 409

These are business outcomes, not faults: none is retried internally and
none crashes the process.

# Constants

Lifecycle values:

	StatusActive = "active"
	StatusEnded  = "ended"

Notification kinds:

	NotifyUpdated = "updated"
	NotifyEnded   = "ended"
*/
package models
