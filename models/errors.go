package models

import "errors"

// Business outcomes returned by the ledger. Callers discriminate with
// errors.Is; the HTTP layer maps each kind to a status code.
var (
	ErrInvalidInput  = errors.New("invalid poll input")
	ErrNotFound      = errors.New("poll not found")
	ErrInvalidOption = errors.New("option does not belong to poll")
	ErrPollEnded     = errors.New("poll is no longer accepting votes")
	ErrDuplicateVote = errors.New("voter has already voted on this poll")
	ErrUnauthorized  = errors.New("requester is not the poll creator")
)
