// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evanrosten/livepoll/broadcast"
	"github.com/evanrosten/livepoll/ledger"
	"github.com/evanrosten/livepoll/models"
	"github.com/evanrosten/livepoll/testutil"
)

// liveTestEnv wires the live handler into a real HTTP server so the
// WebSocket upgrade path is exercised end to end.
type liveTestEnv struct {
	led      *ledger.Ledger
	registry *broadcast.Registry
	pub      *broadcast.Publisher
	server   *httptest.Server
}

func newLiveTestEnv(t *testing.T) *liveTestEnv {
	t.Helper()

	led := testutil.NewTestLedger(t)
	registry := broadcast.NewRegistry()
	pub := broadcast.NewPublisher(registry)
	cfg := testutil.GetTestConfig()

	liveHandler := NewLiveHandler(led, registry, cfg)
	votingHandler := NewVotingHandler(led, pub)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /polls/{id}/live", liveHandler.Watch)
	mux.HandleFunc("POST /polls/{id}/votes", votingHandler.CastVote)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &liveTestEnv{led: led, registry: registry, pub: pub, server: server}
}

func (env *liveTestEnv) dial(t *testing.T, pollID string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/polls/" + pollID + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readNotification(t *testing.T, conn *websocket.Conn) models.Notification {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var n models.Notification
	if err := conn.ReadJSON(&n); err != nil {
		t.Fatalf("Failed to read notification: %v", err)
	}
	return n
}

func TestWatch_InitialSnapshot(t *testing.T) {
	env := newLiveTestEnv(t)
	poll := testutil.CreateTestPoll(t, env.led, models.StatusActive, "A", "B")
	testutil.CastTestVote(t, env.led, poll.ID, poll.Options[0].ID, "early-bird")

	conn := env.dial(t, poll.ID)

	n := readNotification(t, conn)
	if n.Kind != models.NotifyUpdated {
		t.Errorf("expected initial snapshot kind updated, got %s", n.Kind)
	}
	if n.Poll.ID != poll.ID || n.Poll.TotalVotes != 1 {
		t.Errorf("initial snapshot should carry current state, got %+v", n.Poll)
	}
}

func TestWatch_ReceivesVoteUpdates(t *testing.T) {
	env := newLiveTestEnv(t)
	poll := testutil.CreateTestPoll(t, env.led, models.StatusActive, "A", "B")

	conn := env.dial(t, poll.ID)
	readNotification(t, conn) // initial snapshot; also proves we are subscribed

	// Cast a vote through the HTTP API
	body, _ := json.Marshal(models.CastVoteRequest{OptionID: poll.Options[1].ID})
	req, err := http.NewRequest("POST", env.server.URL+"/polls/"+poll.ID+"/votes", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Voter-ID", "v1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("vote request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	n := readNotification(t, conn)
	if n.Kind != models.NotifyUpdated {
		t.Errorf("expected updated notification, got %s", n.Kind)
	}
	if n.Poll.TotalVotes != 1 || n.Poll.Options[1].Count != 1 {
		t.Errorf("notification should carry the refreshed tally, got %+v", n.Poll)
	}
}

func TestWatch_ReceivesEndedNotification(t *testing.T) {
	env := newLiveTestEnv(t)
	poll := testutil.CreateTestPoll(t, env.led, models.StatusActive, "A", "B")

	conn := env.dial(t, poll.ID)
	readNotification(t, conn) // initial snapshot

	view, transitioned, err := env.led.EndPoll(poll.ID, testutil.TestCreatorID)
	if err != nil || !transitioned {
		t.Fatalf("EndPoll failed: %v (transitioned=%v)", err, transitioned)
	}
	env.pub.PollEnded(view)

	n := readNotification(t, conn)
	if n.Kind != models.NotifyEnded {
		t.Errorf("expected ended notification, got %s", n.Kind)
	}
	if n.Poll.Status != models.StatusEnded {
		t.Errorf("terminal notification should carry ended state, got %s", n.Poll.Status)
	}
}

func TestWatch_UnknownPollRejectedBeforeUpgrade(t *testing.T) {
	env := newLiveTestEnv(t)

	url := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/polls/missing/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown poll")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 before upgrade, got %+v", resp)
	}
}

func TestWatch_DisconnectPrunesRegistry(t *testing.T) {
	env := newLiveTestEnv(t)
	poll := testutil.CreateTestPoll(t, env.led, models.StatusActive, "A", "B")

	conn := env.dial(t, poll.ID)
	readNotification(t, conn) // subscribed

	if env.registry.Count(poll.ID) != 1 {
		t.Fatalf("expected 1 watcher, got %d", env.registry.Count(poll.ID))
	}

	conn.Close()

	// The server notices the close asynchronously
	deadline := time.Now().Add(2 * time.Second)
	for env.registry.Count(poll.ID) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("watcher not unsubscribed after disconnect, count %d", env.registry.Count(poll.ID))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatch_TwoWatchersBothNotified(t *testing.T) {
	env := newLiveTestEnv(t)
	poll := testutil.CreateTestPoll(t, env.led, models.StatusActive, "A", "B")

	conn1 := env.dial(t, poll.ID)
	conn2 := env.dial(t, poll.ID)
	readNotification(t, conn1)
	readNotification(t, conn2)

	_, view, err := env.led.CastVote(poll.ID, poll.Options[0].ID, "v1")
	if err != nil {
		t.Fatal(err)
	}
	env.pub.PollUpdated(view)

	for i, conn := range []*websocket.Conn{conn1, conn2} {
		n := readNotification(t, conn)
		if n.Poll.TotalVotes != 1 {
			t.Errorf("watcher %d: expected refreshed tally, got %+v", i+1, n.Poll)
		}
	}
}
