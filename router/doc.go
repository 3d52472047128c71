// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Livepoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(led, registry, cfg)

# Endpoints

Health:

	GET /health

Poll lifecycle:

	POST /polls          - Create poll (title, creator_id, 2-10 options)
	GET  /polls/{id}     - Aggregated view (counts, percentages)
	POST /polls/{id}/end - End poll (X-Requester-ID must match creator)

Voting:

	POST /polls/{id}/votes - Cast vote (X-Voter-ID, option_id)

Live updates:

	GET /polls/{id}/live     - WebSocket subscription
	GET /polls/{id}/watchers - Current subscriber count

# Handler Initialization

The router creates handler instances with dependency injection:

	pub := broadcast.NewPublisher(registry)
	pollHandler := handlers.NewPollHandler(led, pub, registry)
	votingHandler := handlers.NewVotingHandler(led, pub)
	liveHandler := handlers.NewLiveHandler(led, registry, cfg)

The ledger and registry are created once at service start and shared by
every handler; there is no package-level state.
*/
package router
