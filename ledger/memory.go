// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"sync"
	"time"

	"github.com/evanrosten/livepoll/models"
)

// MemoryStore is the default single-process Store. The outer lock guards
// the poll index; each poll record carries its own mutex so votes on
// different polls never contend.
type MemoryStore struct {
	mu    sync.RWMutex
	polls map[string]*pollRecord
}

type pollRecord struct {
	mu     sync.Mutex
	poll   models.Poll
	votes  []models.Vote
	voters map[string]struct{} // dedup set, keyed by voter ID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		polls: make(map[string]*pollRecord),
	}
}

func (s *MemoryStore) CreatePoll(poll models.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.polls[poll.ID] = &pollRecord{
		poll:   poll,
		voters: make(map[string]struct{}),
	}
	return nil
}

func (s *MemoryStore) GetPoll(pollID string) (models.Poll, error) {
	rec, ok := s.record(pollID)
	if !ok {
		return models.Poll{}, models.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.poll, nil
}

func (s *MemoryStore) Snapshot(pollID string) (models.Poll, []models.Vote, error) {
	rec, ok := s.record(pollID)
	if !ok {
		return models.Poll{}, nil, models.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	votes := make([]models.Vote, len(rec.votes))
	copy(votes, rec.votes)
	return rec.poll, votes, nil
}

// AppendVote performs the check-then-append sequence under the poll's
// mutex, so two concurrent votes by the same voter can never both pass
// the dedup check.
func (s *MemoryStore) AppendVote(vote models.Vote) error {
	rec, ok := s.record(vote.PollID)
	if !ok {
		return models.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.poll.Status != models.StatusActive {
		return models.ErrPollEnded
	}
	if !hasOption(rec.poll, vote.OptionID) {
		return models.ErrInvalidOption
	}
	if _, voted := rec.voters[vote.VoterID]; voted {
		return models.ErrDuplicateVote
	}

	rec.votes = append(rec.votes, vote)
	rec.voters[vote.VoterID] = struct{}{}
	return nil
}

func (s *MemoryStore) EndPoll(pollID string, endedAt time.Time) (models.Poll, bool, error) {
	rec, ok := s.record(pollID)
	if !ok {
		return models.Poll{}, false, models.ErrNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.poll.Status == models.StatusEnded {
		return rec.poll, false, nil
	}

	rec.poll.Status = models.StatusEnded
	rec.poll.EndedAt = &endedAt
	return rec.poll, true, nil
}

func (s *MemoryStore) record(pollID string) (*pollRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.polls[pollID]
	return rec, ok
}

func hasOption(poll models.Poll, optionID string) bool {
	for _, opt := range poll.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}
