// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evanrosten/livepoll/models"
)

// Watcher connection states
const (
	StateDisconnected = "disconnected"
	StateConnecting   = "connecting"
	StateConnected    = "connected"
)

// ErrRetriesExhausted is returned by Run when the capped retry count is
// reached without a successful connection.
var ErrRetriesExhausted = errors.New("watcher retries exhausted")

const (
	defaultBaseDelay  = 500 * time.Millisecond
	defaultMaxDelay   = 30 * time.Second
	defaultMaxRetries = 8
)

// Watcher maintains a live subscription to one poll's notification
// stream, reconnecting with exponential backoff when the connection
// drops. It is purely an observer-side transport concern: the server
// keeps no state for a disconnected watcher.
type Watcher struct {
	URL        string        // ws:// or wss:// URL of the poll's live endpoint
	BaseDelay  time.Duration // first reconnect delay
	MaxDelay   time.Duration // backoff cap
	MaxRetries int           // consecutive failed connects before giving up

	mu    sync.Mutex
	state string

	notifications chan models.Notification
}

func NewWatcher(url string) *Watcher {
	return &Watcher{
		URL:           url,
		BaseDelay:     defaultBaseDelay,
		MaxDelay:      defaultMaxDelay,
		MaxRetries:    defaultMaxRetries,
		state:         StateDisconnected,
		notifications: make(chan models.Notification, 16),
	}
}

// Notifications delivers every payload received from the server,
// including the initial snapshot sent on each (re)connect.
func (w *Watcher) Notifications() <-chan models.Notification {
	return w.notifications
}

// State reports the current connection state.
func (w *Watcher) State() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Run drives the Disconnected → Connecting → Connected loop until ctx
// is cancelled or the retry budget is spent. Returns ctx.Err() on
// cancellation, ErrRetriesExhausted (wrapping the last dial error)
// otherwise.
func (w *Watcher) Run(ctx context.Context) error {
	attempt := 0

	for {
		w.setState(StateConnecting)

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, w.URL, nil)
		if err != nil {
			w.setState(StateDisconnected)
			attempt++
			if attempt > w.MaxRetries {
				return fmt.Errorf("%w: %v", ErrRetriesExhausted, err)
			}

			delay := backoffDelay(w.BaseDelay, w.MaxDelay, attempt)
			slog.Debug("watcher reconnecting", "url", w.URL, "attempt", attempt, "delay", delay)

			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		w.setState(StateConnected)
		attempt = 0

		err = w.readLoop(ctx, conn)
		conn.Close()
		w.setState(StateDisconnected)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Debug("watcher connection lost", "url", w.URL, "error", err)
	}
}

// readLoop forwards server notifications until the connection drops or
// ctx is cancelled.
func (w *Watcher) readLoop(ctx context.Context, conn *websocket.Conn) error {
	// Unblock ReadJSON when the context ends
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var n models.Notification
		if err := conn.ReadJSON(&n); err != nil {
			return err
		}

		select {
		case w.notifications <- n:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Watcher) setState(state string) {
	w.mu.Lock()
	w.state = state
	w.mu.Unlock()
}

// backoffDelay doubles from base per consecutive failure, capped at max.
// attempt is 1-based.
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			return max
		}
	}
	if delay > max {
		return max
	}
	return delay
}
