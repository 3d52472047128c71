// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/evanrosten/livepoll/models"
)

func newTestLedger() *Ledger {
	return New(NewMemoryStore())
}

func createPoll(t *testing.T, led *Ledger, options ...string) models.PollView {
	t.Helper()
	view, err := led.CreatePoll("Test Poll", "creator-1", options)
	if err != nil {
		t.Fatalf("CreatePoll failed: %v", err)
	}
	return view
}

func TestCreatePoll_Valid(t *testing.T) {
	led := newTestLedger()

	view := createPoll(t, led, "A", "B", "C")

	if view.Status != models.StatusActive {
		t.Errorf("expected active status, got %s", view.Status)
	}
	if view.TotalVotes != 0 {
		t.Errorf("expected 0 votes, got %d", view.TotalVotes)
	}
	if len(view.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(view.Options))
	}
	for i, label := range []string{"A", "B", "C"} {
		if view.Options[i].Label != label {
			t.Errorf("position %d: expected %s, got %s", i, label, view.Options[i].Label)
		}
		if view.Options[i].ID == "" {
			t.Errorf("option %s has empty ID", label)
		}
	}
}

func TestCreatePoll_InvalidInput(t *testing.T) {
	led := newTestLedger()

	tests := []struct {
		name    string
		title   string
		creator string
		options []string
	}{
		{"empty title", "", "creator-1", []string{"A", "B"}},
		{"whitespace title", "   ", "creator-1", []string{"A", "B"}},
		{"empty creator", "Test", "", []string{"A", "B"}},
		{"one option", "Test", "creator-1", []string{"A"}},
		{"zero options", "Test", "creator-1", nil},
		{"eleven options", "Test", "creator-1", []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}},
		{"empty option label", "Test", "creator-1", []string{"A", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := led.CreatePoll(tt.title, tt.creator, tt.options)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCreatePoll_BoundaryOptionCounts(t *testing.T) {
	led := newTestLedger()

	two := []string{"A", "B"}
	if _, err := led.CreatePoll("Two", "creator-1", two); err != nil {
		t.Errorf("2 options should be accepted: %v", err)
	}

	ten := make([]string, 10)
	for i := range ten {
		ten[i] = fmt.Sprintf("Option %d", i+1)
	}
	if _, err := led.CreatePoll("Ten", "creator-1", ten); err != nil {
		t.Errorf("10 options should be accepted: %v", err)
	}
}

func TestGetPoll_NotFound(t *testing.T) {
	led := newTestLedger()

	_, err := led.GetPoll("no-such-poll")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCastVote_Success(t *testing.T) {
	led := newTestLedger()
	poll := createPoll(t, led, "A", "B")

	vote, view, err := led.CastVote(poll.ID, poll.Options[0].ID, "v1")
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	if vote.ID == "" {
		t.Error("expected vote ID to be set")
	}
	if view.TotalVotes != 1 {
		t.Errorf("expected 1 total vote, got %d", view.TotalVotes)
	}
	if view.Options[0].Count != 1 || view.Options[0].Percentage != 100.0 {
		t.Errorf("option A: expected 1/100%%, got %d/%f", view.Options[0].Count, view.Options[0].Percentage)
	}
	if view.Options[1].Count != 0 || view.Options[1].Percentage != 0.0 {
		t.Errorf("option B: expected 0/0%%, got %d/%f", view.Options[1].Count, view.Options[1].Percentage)
	}
}

func TestCastVote_ErrorKinds(t *testing.T) {
	led := newTestLedger()
	poll := createPoll(t, led, "A", "B")

	// Unknown poll
	if _, _, err := led.CastVote("no-such-poll", poll.Options[0].ID, "v1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Unknown option
	if _, _, err := led.CastVote(poll.ID, "no-such-option", "v1"); !errors.Is(err, models.ErrInvalidOption) {
		t.Errorf("expected ErrInvalidOption, got %v", err)
	}

	// Missing identifiers
	if _, _, err := led.CastVote(poll.ID, "", "v1"); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty option, got %v", err)
	}
	if _, _, err := led.CastVote(poll.ID, poll.Options[0].ID, ""); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty voter, got %v", err)
	}
}

func TestCastVote_Duplicate(t *testing.T) {
	led := newTestLedger()
	poll := createPoll(t, led, "A", "B")

	if _, _, err := led.CastVote(poll.ID, poll.Options[0].ID, "v1"); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	// Same voter, different option: still rejected
	_, _, err := led.CastVote(poll.ID, poll.Options[1].ID, "v1")
	if !errors.Is(err, models.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}

	// Tally unchanged
	view, err := led.GetPoll(poll.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.TotalVotes != 1 {
		t.Errorf("expected tally unchanged at 1, got %d", view.TotalVotes)
	}
}

func TestCastVote_AfterEnd(t *testing.T) {
	led := newTestLedger()
	poll := createPoll(t, led, "A", "B")

	if _, _, err := led.EndPoll(poll.ID, "creator-1"); err != nil {
		t.Fatalf("EndPoll failed: %v", err)
	}

	_, _, err := led.CastVote(poll.ID, poll.Options[0].ID, "v1")
	if !errors.Is(err, models.ErrPollEnded) {
		t.Errorf("expected ErrPollEnded, got %v", err)
	}
}

func TestEndPoll_Unauthorized(t *testing.T) {
	led := newTestLedger()
	poll := createPoll(t, led, "A", "B")

	_, _, err := led.EndPoll(poll.ID, "someone-else")
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// Lifecycle unchanged
	view, err := led.GetPoll(poll.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.Status != models.StatusActive {
		t.Errorf("unauthorized end must not change lifecycle, got %s", view.Status)
	}
}

func TestEndPoll_Idempotent(t *testing.T) {
	led := newTestLedger()
	poll := createPoll(t, led, "A", "B")

	view, transitioned, err := led.EndPoll(poll.ID, "creator-1")
	if err != nil {
		t.Fatalf("first end failed: %v", err)
	}
	if !transitioned {
		t.Error("first end should report the transition")
	}
	if view.Status != models.StatusEnded || view.EndedAt == nil {
		t.Errorf("expected ended with timestamp, got %s / %v", view.Status, view.EndedAt)
	}

	// Second end by the creator: success no-op, no transition
	view, transitioned, err = led.EndPoll(poll.ID, "creator-1")
	if err != nil {
		t.Fatalf("second end should succeed: %v", err)
	}
	if transitioned {
		t.Error("second end must not report a transition")
	}
	if view.Status != models.StatusEnded {
		t.Errorf("expected status to stay ended, got %s", view.Status)
	}
}

func TestEndPoll_NotFound(t *testing.T) {
	led := newTestLedger()

	_, _, err := led.EndPoll("no-such-poll", "creator-1")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCastVote_ManyVotersPercentages(t *testing.T) {
	led := newTestLedger()
	poll := createPoll(t, led, "A", "B")

	for i := 0; i < 3; i++ {
		voter := fmt.Sprintf("voter-a-%d", i)
		if _, _, err := led.CastVote(poll.ID, poll.Options[0].ID, voter); err != nil {
			t.Fatalf("vote %s failed: %v", voter, err)
		}
	}
	_, view, err := led.CastVote(poll.ID, poll.Options[1].ID, "voter-b")
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	if view.TotalVotes != 4 {
		t.Fatalf("expected 4 votes, got %d", view.TotalVotes)
	}
	if view.Options[0].Percentage != 75.0 {
		t.Errorf("expected A at 75%%, got %f", view.Options[0].Percentage)
	}
	if view.Options[1].Percentage != 25.0 {
		t.Errorf("expected B at 25%%, got %f", view.Options[1].Percentage)
	}
}
