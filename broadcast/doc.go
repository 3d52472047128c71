// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package broadcast fans poll notifications out to live observers.

# Registry

Registry maps a poll ID to its set of subscribers. A subscriber is
registered to at most one poll; re-subscribing moves it. Deliver is
best-effort per subscriber and prunes any subscriber whose Send fails.

# Subscribers

Subscriber is transport-independent. ChanSubscriber is the standard
implementation: a buffered channel with a non-blocking Send, drained by
the transport goroutine (see the WebSocket handler). A full buffer means
the consumer is too slow and the registry drops it.

# Publisher

Publisher is the thin layer between the ledger and the registry:

	pub := broadcast.NewPublisher(registry)
	pub.PollUpdated(view) // after every accepted vote
	pub.PollEnded(view)   // once per Active→Ended transition

The publisher never blocks on a slow observer and never retries; a
subscriber either takes the notification immediately or is removed.

The registry instance is created at service start and passed explicitly
to the components that need it. There is no package-level singleton, so
tests construct isolated registries.
*/
package broadcast
