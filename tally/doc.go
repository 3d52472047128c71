// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally computes per-option vote counts and percentages.

Aggregate is a pure function over a poll and its vote log:

	view := tally.Aggregate(poll, votes)

It holds no state of its own, so the view is always exactly consistent
with the log it was given. See Aggregate for the rounding and ordering
contract.
*/
package tally
