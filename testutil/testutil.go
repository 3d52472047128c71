// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/evanrosten/livepoll/cliparse"
	"github.com/evanrosten/livepoll/ledger"
	"github.com/evanrosten/livepoll/models"
)

// TestCreatorID is the creator identity used by CreateTestPoll
const TestCreatorID = "test-creator"

// NewTestLedger returns a ledger over a fresh in-memory store
func NewTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	return ledger.New(ledger.NewMemoryStore())
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         4117,
		DatabaseType: cliparse.StoreMemory,
		IPHashSalt:   "test-ip-salt",
	}
}

// CreateTestPoll creates a poll with the given option labels and
// returns its aggregated view. status should be "active" or "ended".
func CreateTestPoll(t *testing.T, led *ledger.Ledger, status string, options ...string) models.PollView {
	t.Helper()

	if len(options) == 0 {
		options = []string{"Option A", "Option B", "Option C"}
	}

	view, err := led.CreatePoll("Test Poll", TestCreatorID, options)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	if status == models.StatusEnded {
		view, _, err = led.EndPoll(view.ID, TestCreatorID)
		if err != nil {
			t.Fatalf("Failed to end test poll: %v", err)
		}
	}

	return view
}

// CastTestVote records a vote and returns the refreshed view
func CastTestVote(t *testing.T, led *ledger.Ledger, pollID, optionID, voterID string) models.PollView {
	t.Helper()

	_, view, err := led.CastVote(pollID, optionID, voterID)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}

	return view
}

// RecordingSubscriber captures delivered notifications for assertions.
// Set Fail to make Send report the subscriber as dead.
type RecordingSubscriber struct {
	mu    sync.Mutex
	notes []models.Notification

	Fail error
}

func (s *RecordingSubscriber) Send(n models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Fail != nil {
		return s.Fail
	}
	s.notes = append(s.notes, n)
	return nil
}

// Received returns a copy of everything delivered so far
func (s *RecordingSubscriber) Received() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, len(s.notes))
	copy(out, s.notes)
	return out
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
