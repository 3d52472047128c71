// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evanrosten/livepoll/auth"
	"github.com/evanrosten/livepoll/broadcast"
	"github.com/evanrosten/livepoll/cliparse"
	"github.com/evanrosten/livepoll/ledger"
	"github.com/evanrosten/livepoll/middleware"
	"github.com/evanrosten/livepoll/models"
)

// Package-level WebSocket upgrader
var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// pingInterval keeps intermediaries from timing out idle connections.
const pingInterval = 15 * time.Second

type LiveHandler struct {
	ledger   *ledger.Ledger
	registry *broadcast.Registry
	cfg      cliparse.Config
}

func NewLiveHandler(led *ledger.Ledger, registry *broadcast.Registry, cfg cliparse.Config) *LiveHandler {
	return &LiveHandler{ledger: led, registry: registry, cfg: cfg}
}

// Watch handles GET /polls/:id/live
//
// Upgrades to a WebSocket, registers the connection for the poll, sends
// an initial snapshot, then streams notifications until the client
// disconnects. The write loop drains the subscriber channel so the
// publisher never blocks on this connection.
func (h *LiveHandler) Watch(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	// Reject unknown polls before upgrading
	view, err := h.ledger.GetPoll(pollID)
	if err != nil {
		ledgerError(w, err)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own error response
		slog.Warn("websocket upgrade failed", "poll_id", pollID, "error", err)
		return
	}
	defer conn.Close()

	sub := broadcast.NewChanSubscriber()
	h.registry.Subscribe(pollID, sub)
	defer h.registry.Unsubscribe(pollID, sub)

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	slog.Info("watcher connected", "poll_id", pollID, "ip_hash", ipHash, "watchers", h.registry.Count(pollID))

	// Send initial poll state
	initial := models.Notification{
		Kind: models.NotifyUpdated,
		Poll: view,
	}
	if err := conn.WriteJSON(initial); err != nil {
		return
	}

	// Setup ping ticker for keep-alive
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	// Create a channel to handle client disconnections
	done := make(chan struct{})

	// Discard incoming messages in a separate goroutine; its only job
	// is to notice the close
	go readUntilClose(conn, done)

	// Main event loop
	for {
		select {
		case n := <-sub.C():
			if err := conn.WriteJSON(n); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
				return
			}
		case <-done:
			slog.Info("watcher disconnected", "poll_id", pollID, "ip_hash", ipHash)
			return
		}
	}
}

// readUntilClose consumes client frames until the connection drops.
func readUntilClose(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
