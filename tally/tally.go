// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "github.com/evanrosten/livepoll/models"

// Aggregate derives the current view of a poll from its full vote log.
// Counts are recomputed from scratch on every call rather than kept as
// running totals, which keeps the view trivially consistent with the log.
//
// Percentage is count/total*100, or 0 when the poll has no votes.
// Percentages are not renormalized, so their sum may deviate from 100 by
// floating-point rounding. Output options keep the poll's creation-time
// order regardless of vote arrival order.
func Aggregate(poll models.Poll, votes []models.Vote) models.PollView {
	counts := make(map[string]int, len(poll.Options))
	for _, v := range votes {
		counts[v.OptionID]++
	}

	total := len(votes)
	results := make([]models.OptionResult, len(poll.Options))
	for i, opt := range poll.Options {
		count := counts[opt.ID]

		var pct float64
		if total > 0 {
			pct = float64(count) / float64(total) * 100.0
		}

		results[i] = models.OptionResult{
			ID:         opt.ID,
			Label:      opt.Label,
			Count:      count,
			Percentage: pct,
		}
	}

	return models.PollView{
		ID:         poll.ID,
		Title:      poll.Title,
		CreatorID:  poll.CreatorID,
		Status:     poll.Status,
		CreatedAt:  poll.CreatedAt,
		EndedAt:    poll.EndedAt,
		TotalVotes: total,
		Options:    results,
	}
}
