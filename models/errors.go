// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

var (
	ErrOutOfRange          = errors.New("mark out of range")
	ErrIncompleteScores    = errors.New("incomplete scores")
	ErrAlreadyValidated    = errors.New("competitor already validated")
	ErrNotValidated        = errors.New("competitor not validated")
	ErrNotFound            = errors.New("not found")
	ErrInvalidScoreType    = errors.New("invalid score type")
	ErrScoreTypeNotAllowed = errors.New("score type not allowed for judge role")
	ErrCompetitorLocked    = errors.New("competitor is validated; unvalidate before editing")
	ErrNoActiveVote        = errors.New("competitor is not open for voting")
)
