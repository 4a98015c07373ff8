// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/gimnis/middleware"
	"github.com/danielhkuo/gimnis/models"
)

// writeError maps engine errors to HTTP responses. Anything unrecognised
// is logged and reported as a database error without details.
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrOutOfRange), errors.Is(err, models.ErrInvalidScoreType):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrScoreTypeNotAllowed):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyValidated),
		errors.Is(err, models.ErrNotValidated),
		errors.Is(err, models.ErrCompetitorLocked),
		errors.Is(err, models.ErrNoActiveVote):
		status = http.StatusConflict
	case errors.Is(err, models.ErrIncompleteScores):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		slog.Error("failed to "+action, "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, status, "Database error")
		return
	}
	middleware.ErrorResponse(w, status, err.Error())
}

// pathID parses a positive integer path value.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
