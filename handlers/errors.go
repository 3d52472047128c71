// Copyright (c) 2026 Evan Rosten.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/evanrosten/livepoll/middleware"
	"github.com/evanrosten/livepoll/models"
)

// ledgerError maps the ledger's business outcomes to HTTP statuses.
// Anything outside the known kinds is a programming defect, logged and
// reported as a 500.
func ledgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		middleware.ErrorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrPollEnded), errors.Is(err, models.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error("unexpected ledger error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
