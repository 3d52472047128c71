// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/evanrosten/livepoll/broadcast"
	"github.com/evanrosten/livepoll/cliparse"
	"github.com/evanrosten/livepoll/handlers"
	"github.com/evanrosten/livepoll/ledger"
	"github.com/evanrosten/livepoll/middleware"
)

func NewRouter(led *ledger.Ledger, registry *broadcast.Registry, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pub := broadcast.NewPublisher(registry)
	pollHandler := handlers.NewPollHandler(led, pub, registry)
	votingHandler := handlers.NewVotingHandler(led, pub)
	liveHandler := handlers.NewLiveHandler(led, registry, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll lifecycle
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("POST /polls/{id}/end", middleware.WithLogging(pollHandler.EndPoll))

	// Voting
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.CastVote))

	// Live updates (no logging wrapper: the connection is long-lived)
	mux.HandleFunc("GET /polls/{id}/live", liveHandler.Watch)
	mux.HandleFunc("GET /polls/{id}/watchers", middleware.WithLogging(pollHandler.GetWatchers))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livepoll API v1"))
	})

	return mux
}
