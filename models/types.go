package models

import "time"

// Poll lifecycle constants
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// Notification kind constants
const (
	NotifyUpdated = "updated"
	NotifyEnded   = "ended"
)

// Option count bounds enforced at poll creation
const (
	MinOptions = 2
	MaxOptions = 10
)

// Request types

type CreatePollRequest struct {
	Title     string   `json:"title"`
	CreatorID string   `json:"creator_id"`
	Options   []string `json:"options"`
}

type CastVoteRequest struct {
	OptionID string `json:"option_id"`
}

// Response types

type CastVoteResponse struct {
	VoteID string   `json:"vote_id"`
	Poll   PollView `json:"poll"`
}

type WatcherCountResponse struct {
	PollID   string `json:"poll_id"`
	Watchers int    `json:"watchers"`
}

// Domain types

type Poll struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatorID string     `json:"creator_id"`
	Status    string     `json:"status"`
	Options   []Option   `json:"options"`
	CreatedAt time.Time  `json:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Vote struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	OptionID  string    `json:"option_id"`
	VoterID   string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// Aggregated view types

// OptionResult is one option's tally within a PollView. Count and
// Percentage are derived from the vote log, never stored.
type OptionResult struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PollView is the aggregated snapshot returned from reads and pushed to
// observers. Options preserve the poll's creation-time order.
type PollView struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	CreatorID  string         `json:"creator_id"`
	Status     string         `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	EndedAt    *time.Time     `json:"ended_at,omitempty"`
	TotalVotes int            `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

// Notification is the payload fanned out to every subscription of a poll.
// Kind discriminates "updated" (a vote landed) from "ended" (terminal).
type Notification struct {
	Kind string   `json:"kind"`
	Poll PollView `json:"poll"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
