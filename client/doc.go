// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package client provides a reconnecting observer for a poll's live
notification stream.

	w := client.NewWatcher("ws://localhost:4117/polls/" + pollID + "/live")
	go func() {
		for n := range w.Notifications() {
			fmt.Println(n.Kind, n.Poll.TotalVotes)
		}
	}()
	err := w.Run(ctx)

Run cycles Disconnected → Connecting → Connected, driven by connection
close events. Failed connects back off exponentially (BaseDelay doubled
per consecutive failure, capped at MaxDelay) and give up after
MaxRetries, returning ErrRetriesExhausted. A successful connect resets
the budget. The server resends a full snapshot on every connect, so a
watcher that missed updates while disconnected is current again
immediately after reconnecting.
*/
package client
