// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package validation freezes a competitor's final score.
//
// Validate takes the competitor row lock through scores.LockCompetitor, so
// it is a compare-and-set on the validated flag: of two concurrent calls
// exactly one succeeds and the other gets models.ErrAlreadyValidated. While
// validated, score writes for the competitor are rejected. Unvalidate
// reopens the competitor and the next Validate recomputes from the current
// marks.
//
// A competitor with a missing or extra mark in any panel is never frozen;
// Validate returns models.ErrIncompleteScores naming the short panels.
package validation
