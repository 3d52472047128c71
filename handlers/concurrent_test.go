// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/evanrosten/livepoll/models"
	"github.com/evanrosten/livepoll/testutil"
)

// TestConcurrentVoteSubmissions verifies that simultaneous votes from
// different voters all land and the tally stays consistent.
func TestConcurrentVoteSubmissions(t *testing.T) {
	handler, led, _ := newVotingHandler(t)
	poll := testutil.CreateTestPoll(t, led, models.StatusActive, "A", "B", "C")

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			voterID := fmt.Sprintf("ConcurrentVoter%d", voterIdx)
			optionID := poll.Options[voterIdx%3].ID

			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest(poll.ID, optionID, voterID))

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	// All submissions should succeed
	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful submissions, got %d", numVoters, successCount.Load())
	}

	// Verify the ledger holds exactly numVoters votes
	view, err := led.GetPoll(poll.ID)
	if err != nil {
		t.Fatalf("Failed to read poll: %v", err)
	}
	if view.TotalVotes != numVoters {
		t.Errorf("Expected %d votes in ledger, got %d", numVoters, view.TotalVotes)
	}
}

// TestConcurrentSameVoter verifies that when many requests race with
// the same voter ID, exactly one succeeds.
func TestConcurrentSameVoter(t *testing.T) {
	handler, led, _ := newVotingHandler(t)
	poll := testutil.CreateTestPoll(t, led, models.StatusActive, "A", "B")

	numAttempts := 10
	var created atomic.Int32
	var conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			handler.CastVote(w, castVoteRequest(poll.ID, poll.Options[n%2].ID, "RaceVoter"))

			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			default:
				t.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted vote, got %d", created.Load())
	}
	if int(conflicts.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflicts.Load())
	}

	view, err := led.GetPoll(poll.ID)
	if err != nil {
		t.Fatalf("Failed to read poll: %v", err)
	}
	if view.TotalVotes != 1 {
		t.Errorf("Expected 1 vote in ledger, got %d", view.TotalVotes)
	}
}
