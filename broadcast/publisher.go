// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"log/slog"

	"github.com/evanrosten/livepoll/models"
)

// Publisher translates ledger state transitions into notifications and
// drives fan-out through the registry. It holds no queue and performs no
// retries: delivery failures are handled inside Deliver by pruning the
// failing subscriber.
type Publisher struct {
	registry *Registry
}

func NewPublisher(registry *Registry) *Publisher {
	return &Publisher{registry: registry}
}

// PollUpdated broadcasts the refreshed view after an accepted vote.
func (p *Publisher) PollUpdated(view models.PollView) {
	p.registry.Deliver(view.ID, models.Notification{
		Kind: models.NotifyUpdated,
		Poll: view,
	})
}

// PollEnded broadcasts the terminal view. Callers invoke this exactly
// once per successful Active→Ended transition.
func (p *Publisher) PollEnded(view models.PollView) {
	p.registry.Deliver(view.ID, models.Notification{
		Kind: models.NotifyEnded,
		Poll: view,
	})
	slog.Info("poll ended notification published", "poll_id", view.ID, "watchers", p.registry.Count(view.ID))
}
