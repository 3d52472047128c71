// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/evanrosten/livepoll/broadcast"
	"github.com/evanrosten/livepoll/ledger"
	"github.com/evanrosten/livepoll/middleware"
	"github.com/evanrosten/livepoll/models"
)

type PollHandler struct {
	ledger   *ledger.Ledger
	pub      *broadcast.Publisher
	registry *broadcast.Registry
}

func NewPollHandler(led *ledger.Ledger, pub *broadcast.Publisher, registry *broadcast.Registry) *PollHandler {
	return &PollHandler{ledger: led, pub: pub, registry: registry}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	view, err := h.ledger.CreatePoll(req.Title, req.CreatorID, req.Options)
	if err != nil {
		ledgerError(w, err)
		return
	}

	slog.Info("poll created", "poll_id", view.ID, "creator", req.CreatorID, "options", len(view.Options))

	middleware.JSONResponse(w, http.StatusCreated, view)
}

// GetPoll handles GET /polls/:id
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	view, err := h.ledger.GetPoll(pollID)
	if err != nil {
		ledgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// EndPoll handles POST /polls/:id/end
func (h *PollHandler) EndPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	requesterID := r.Header.Get("X-Requester-ID")
	if requesterID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Requester-ID header required")
		return
	}

	view, transitioned, err := h.ledger.EndPoll(pollID, requesterID)
	if err != nil {
		ledgerError(w, err)
		return
	}

	// Terminal notification fires only on the call that actually closed
	// the poll; re-ending an already-ended poll is a quiet success.
	if transitioned {
		h.pub.PollEnded(view)
		slog.Info("poll ended", "poll_id", pollID, "requester", requesterID)
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// GetWatchers handles GET /polls/:id/watchers
func (h *PollHandler) GetWatchers(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	// Verify the poll exists so unknown IDs 404 instead of showing 0
	if _, err := h.ledger.GetPoll(pollID); err != nil {
		ledgerError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WatcherCountResponse{
		PollID:   pollID,
		Watchers: h.registry.Count(pollID),
	})
}
