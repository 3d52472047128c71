// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Livepoll API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - PollHandler: Poll lifecycle (create, get, end, watcher count)
  - VotingHandler: Vote casting with live fan-out
  - LiveHandler: WebSocket subscriptions for live tallies

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(led, pub, registry)

# Poll Lifecycle

Polls are active from creation until the creator ends them:

	POST /polls            → CreatePoll
	GET  /polls/{id}       → GetPoll (aggregated view)
	POST /polls/{id}/end   → EndPoll (X-Requester-ID must match creator)

# Voting

	POST /polls/{id}/votes → CastVote

The X-Voter-ID header carries the opaque voter identifier; one vote per
voter per poll, enforced atomically by the ledger. An accepted vote
broadcasts the refreshed view to every watcher of that poll.

# Live Updates

	GET /polls/{id}/live     → Watch (WebSocket)
	GET /polls/{id}/watchers → GetWatchers (subscriber count)

Watch sends an initial "updated" snapshot on connect, then one
notification per accepted vote and a final "ended" notification when the
poll closes. Slow or dead connections are pruned, never waited on.

# Error Mapping

Ledger error kinds map to statuses in errors.go: invalid input and
unknown options are 400, unauthorized end is 403, unknown polls are 404,
ended-poll votes and duplicate votes are 409.
*/
package handlers
