// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"time"

	"github.com/evanrosten/livepoll/models"
)

// Store is the persistence boundary for the ledger. Implementations must
// keep AppendVote atomic: the lifecycle check, option membership check,
// one-vote-per-voter check, and the append itself must not interleave
// with a concurrent AppendVote for the same poll. The in-memory store
// does this with a per-poll mutex; a SQL store does it with a
// transaction plus a UNIQUE(poll_id, voter_id) constraint.
type Store interface {
	// CreatePoll records a new poll. The poll's option sequence is
	// immutable after this call.
	CreatePoll(poll models.Poll) error

	// GetPoll returns the poll's current metadata, or models.ErrNotFound.
	GetPoll(pollID string) (models.Poll, error)

	// Snapshot returns the poll and a consistent copy of its vote log.
	Snapshot(pollID string) (models.Poll, []models.Vote, error)

	// AppendVote validates and appends atomically. Returns
	// models.ErrNotFound, models.ErrPollEnded, models.ErrInvalidOption,
	// or models.ErrDuplicateVote on rejection.
	AppendVote(vote models.Vote) error

	// EndPoll transitions the poll to ended. The bool reports whether
	// this call performed the transition; ending an already-ended poll
	// is a success no-op with false.
	EndPoll(pollID string, endedAt time.Time) (models.Poll, bool, error)
}
