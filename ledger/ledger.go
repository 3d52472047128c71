// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/evanrosten/livepoll/auth"
	"github.com/evanrosten/livepoll/models"
	"github.com/evanrosten/livepoll/tally"
)

// Ledger is the single source of truth for poll existence, lifecycle,
// and votes. It is the only component that decides whether a vote is
// accepted. All reads return aggregated views recomputed from the vote
// log via the tally package.
type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// CreatePoll registers a new active poll with zero votes. The option
// sequence is fixed at creation; its order is display-significant.
func (l *Ledger) CreatePoll(title, creatorID string, optionLabels []string) (models.PollView, error) {
	if strings.TrimSpace(title) == "" {
		return models.PollView{}, fmt.Errorf("%w: title is required", models.ErrInvalidInput)
	}
	if creatorID == "" {
		return models.PollView{}, fmt.Errorf("%w: creator_id is required", models.ErrInvalidInput)
	}
	if len(optionLabels) < models.MinOptions || len(optionLabels) > models.MaxOptions {
		return models.PollView{}, fmt.Errorf("%w: need %d-%d options, got %d",
			models.ErrInvalidInput, models.MinOptions, models.MaxOptions, len(optionLabels))
	}

	options := make([]models.Option, len(optionLabels))
	for i, label := range optionLabels {
		if strings.TrimSpace(label) == "" {
			return models.PollView{}, fmt.Errorf("%w: option %d label is empty", models.ErrInvalidInput, i)
		}
		optionID, err := auth.GenerateID(6)
		if err != nil {
			return models.PollView{}, fmt.Errorf("failed to generate option ID: %w", err)
		}
		options[i] = models.Option{ID: optionID, Label: label}
	}

	poll := models.Poll{
		ID:        uuid.New().String(),
		Title:     title,
		CreatorID: creatorID,
		Status:    models.StatusActive,
		Options:   options,
		CreatedAt: time.Now(),
	}

	if err := l.store.CreatePoll(poll); err != nil {
		return models.PollView{}, fmt.Errorf("failed to store poll: %w", err)
	}

	return tally.Aggregate(poll, nil), nil
}

// GetPoll returns the aggregated view of a poll.
func (l *Ledger) GetPoll(pollID string) (models.PollView, error) {
	poll, votes, err := l.store.Snapshot(pollID)
	if err != nil {
		return models.PollView{}, err
	}
	return tally.Aggregate(poll, votes), nil
}

// CastVote records one vote by voterID for optionID. The store performs
// the lifecycle, option-membership, and one-vote-per-voter checks
// atomically with the append. On success the refreshed aggregated view
// is returned alongside the recorded vote.
func (l *Ledger) CastVote(pollID, optionID, voterID string) (models.Vote, models.PollView, error) {
	if optionID == "" {
		return models.Vote{}, models.PollView{}, fmt.Errorf("%w: option_id is required", models.ErrInvalidInput)
	}
	if voterID == "" {
		return models.Vote{}, models.PollView{}, fmt.Errorf("%w: voter_id is required", models.ErrInvalidInput)
	}

	vote := models.Vote{
		ID:        uuid.New().String(),
		PollID:    pollID,
		OptionID:  optionID,
		VoterID:   voterID,
		CreatedAt: time.Now(),
	}

	if err := l.store.AppendVote(vote); err != nil {
		return models.Vote{}, models.PollView{}, err
	}

	view, err := l.GetPoll(pollID)
	if err != nil {
		return models.Vote{}, models.PollView{}, err
	}
	return vote, view, nil
}

// EndPoll transitions a poll to its terminal state. Only the creator may
// end a poll; a second end by the creator is a success no-op. The bool
// reports whether this call performed the transition, so callers publish
// the terminal notification exactly once.
func (l *Ledger) EndPoll(pollID, requesterID string) (models.PollView, bool, error) {
	poll, err := l.store.GetPoll(pollID)
	if err != nil {
		return models.PollView{}, false, err
	}
	if poll.CreatorID != requesterID {
		return models.PollView{}, false, models.ErrUnauthorized
	}

	_, transitioned, err := l.store.EndPoll(pollID, time.Now())
	if err != nil {
		return models.PollView{}, false, err
	}

	view, err := l.GetPoll(pollID)
	if err != nil {
		return models.PollView{}, false, err
	}
	return view, transitioned, nil
}
