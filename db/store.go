// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/evanrosten/livepoll/models"
)

// SQLStore implements ledger.Store over database/sql. The atomic
// check-then-append contract for votes rests on a transaction plus the
// UNIQUE (poll_id, voter_id) constraint, so it holds across processes
// sharing one database.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) CreatePoll(poll models.Poll) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, title, creator_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, poll.ID, poll.Title, poll.CreatorID, poll.Status, poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for i, opt := range poll.Options {
		_, err = tx.Exec(`
			INSERT INTO option (id, poll_id, position, label)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, poll.ID, i, opt.Label)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLStore) GetPoll(pollID string) (models.Poll, error) {
	return s.getPoll(s.db, pollID)
}

func (s *SQLStore) Snapshot(pollID string) (models.Poll, []models.Vote, error) {
	poll, err := s.getPoll(s.db, pollID)
	if err != nil {
		return models.Poll{}, nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, option_id, voter_id, created_at
		FROM vote WHERE poll_id = $1
		ORDER BY created_at, id
	`, pollID)
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		v := models.Vote{PollID: pollID}
		if err := rows.Scan(&v.ID, &v.OptionID, &v.VoterID, &v.CreatedAt); err != nil {
			return models.Poll{}, nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return poll, votes, nil
}

func (s *SQLStore) AppendVote(vote models.Vote) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM poll WHERE id = $1`, vote.PollID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}
	if status != models.StatusActive {
		return models.ErrPollEnded
	}

	var optionExists bool
	err = tx.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM option WHERE poll_id = $1 AND id = $2)
	`, vote.PollID, vote.OptionID).Scan(&optionExists)
	if err != nil {
		return fmt.Errorf("failed to verify option: %w", err)
	}
	if !optionExists {
		return models.ErrInvalidOption
	}

	_, err = tx.Exec(`
		INSERT INTO vote (id, poll_id, option_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, vote.ID, vote.PollID, vote.OptionID, vote.VoterID, vote.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateVote
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}

	return tx.Commit()
}

func (s *SQLStore) EndPoll(pollID string, endedAt time.Time) (models.Poll, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM poll WHERE id = $1`, pollID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.Poll{}, false, models.ErrNotFound
	}
	if err != nil {
		return models.Poll{}, false, fmt.Errorf("failed to query poll: %w", err)
	}

	transitioned := false
	if status == models.StatusActive {
		_, err = tx.Exec(`
			UPDATE poll SET status = $1, ended_at = $2 WHERE id = $3
		`, models.StatusEnded, endedAt, pollID)
		if err != nil {
			return models.Poll{}, false, fmt.Errorf("failed to end poll: %w", err)
		}
		transitioned = true
	}

	poll, err := s.getPoll(tx, pollID)
	if err != nil {
		return models.Poll{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return poll, transitioned, nil
}

// querier lets getPoll run against either the pool or a transaction.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func (s *SQLStore) getPoll(q querier, pollID string) (models.Poll, error) {
	var poll models.Poll
	var endedAt sql.NullTime

	err := q.QueryRow(`
		SELECT id, title, creator_id, status, created_at, ended_at
		FROM poll WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Title, &poll.CreatorID, &poll.Status, &poll.CreatedAt, &endedAt)
	if err == sql.ErrNoRows {
		return models.Poll{}, models.ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}
	if endedAt.Valid {
		poll.EndedAt = &endedAt.Time
	}

	rows, err := q.Query(`
		SELECT id, label FROM option WHERE poll_id = $1 ORDER BY position
	`, pollID)
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.Label); err != nil {
			return models.Poll{}, fmt.Errorf("failed to scan option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return models.Poll{}, fmt.Errorf("failed to read options: %w", err)
	}

	return poll, nil
}

// isUniqueViolation matches the constraint error text of both backends
// (SQLite: "UNIQUE constraint failed", PostgreSQL: "duplicate key value
// violates unique constraint").
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
