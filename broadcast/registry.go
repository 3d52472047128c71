// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"log/slog"
	"sync"

	"github.com/evanrosten/livepoll/models"
)

// Subscriber receives notifications for the one poll it is registered
// to. Send must not block: a subscriber that cannot accept a
// notification returns an error and is presumed dead.
type Subscriber interface {
	Send(n models.Notification) error
}

// Registry tracks, per poll ID, the set of live subscribers,
// independent of the transport carrying them. It exclusively owns the
// subscriber sets; the transport layer owns the underlying sockets.
type Registry struct {
	mu    sync.Mutex
	polls map[string]map[Subscriber]struct{}
	subs  map[Subscriber]string // current poll per subscriber
}

func NewRegistry() *Registry {
	return &Registry{
		polls: make(map[string]map[Subscriber]struct{}),
		subs:  make(map[Subscriber]string),
	}
}

// Subscribe registers sub under pollID. Idempotent for the same poll.
// A subscriber belongs to at most one poll at a time: subscribing to a
// new poll drops the previous registration.
func (r *Registry) Subscribe(pollID string, sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.subs[sub]; ok {
		if prev == pollID {
			return
		}
		r.removeLocked(prev, sub)
	}

	set, ok := r.polls[pollID]
	if !ok {
		set = make(map[Subscriber]struct{})
		r.polls[pollID] = set
	}
	set[sub] = struct{}{}
	r.subs[sub] = pollID
}

// Unsubscribe removes the registration. No-op if sub is not registered
// under pollID.
func (r *Registry) Unsubscribe(pollID string, sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.subs[sub] != pollID {
		return
	}
	r.removeLocked(pollID, sub)
}

// Deliver sends n to every subscriber currently registered for pollID.
// Delivery is best-effort per subscriber: one failure does not stop the
// others, and a failing subscriber is removed from the registry.
func (r *Registry) Deliver(pollID string, n models.Notification) {
	r.mu.Lock()
	set := r.polls[pollID]
	targets := make([]Subscriber, 0, len(set))
	for sub := range set {
		targets = append(targets, sub)
	}
	r.mu.Unlock()

	var dead []Subscriber
	for _, sub := range targets {
		if err := sub.Send(n); err != nil {
			dead = append(dead, sub)
		}
	}

	if len(dead) == 0 {
		return
	}

	r.mu.Lock()
	for _, sub := range dead {
		if r.subs[sub] == pollID {
			r.removeLocked(pollID, sub)
		}
	}
	r.mu.Unlock()

	slog.Debug("pruned dead subscribers", "poll_id", pollID, "count", len(dead))
}

// Count returns the number of subscribers registered for pollID.
// Observability only; never used for correctness.
func (r *Registry) Count(pollID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.polls[pollID])
}

// removeLocked drops sub from pollID's set and garbage-collects the set
// when it empties. Caller holds r.mu.
func (r *Registry) removeLocked(pollID string, sub Subscriber) {
	if set, ok := r.polls[pollID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(r.polls, pollID)
		}
	}
	delete(r.subs, sub)
}
