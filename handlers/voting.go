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

type VotingHandler struct {
	ledger *ledger.Ledger
	pub    *broadcast.Publisher
}

func NewVotingHandler(led *ledger.Ledger, pub *broadcast.Publisher) *VotingHandler {
	return &VotingHandler{ledger: led, pub: pub}
}

// CastVote handles POST /polls/:id/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	// Get voter ID from header
	voterID := r.Header.Get("X-Voter-ID")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-ID header required")
		return
	}

	// Parse request
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	vote, view, err := h.ledger.CastVote(pollID, req.OptionID, voterID)
	if err != nil {
		ledgerError(w, err)
		return
	}

	// Fan the refreshed view out to everyone watching this poll. A
	// delivery failure drops that watcher; it never surfaces here.
	h.pub.PollUpdated(view)

	slog.Info("vote cast", "poll_id", pollID, "vote_id", vote.ID, "total_votes", view.TotalVotes)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID: vote.ID,
		Poll:   view,
	})
}
