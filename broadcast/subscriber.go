// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broadcast

import (
	"errors"

	"github.com/evanrosten/livepoll/models"
)

// ErrSlowSubscriber indicates the subscriber's buffer was full at send
// time. The registry treats this as a dead connection.
var ErrSlowSubscriber = errors.New("subscriber buffer full")

// subscriberBuffer is the per-connection notification backlog. A
// consumer that falls this far behind is pruned rather than waited on.
const subscriberBuffer = 16

// ChanSubscriber adapts a buffered channel to the Subscriber interface.
// Send never blocks; when the buffer is full it fails so the registry
// prunes the subscriber. The transport goroutine drains C and writes to
// the actual connection.
type ChanSubscriber struct {
	ch chan models.Notification
}

func NewChanSubscriber() *ChanSubscriber {
	return &ChanSubscriber{
		ch: make(chan models.Notification, subscriberBuffer),
	}
}

func (s *ChanSubscriber) Send(n models.Notification) error {
	select {
	case s.ch <- n:
		return nil
	default:
		return ErrSlowSubscriber
	}
}

// C is the channel the transport goroutine reads notifications from.
func (s *ChanSubscriber) C() <-chan models.Notification {
	return s.ch
}
