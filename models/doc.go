// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request and response types for the API.

# Domain Types

  - Judge: id, display name and Role
  - Competitor, Member: a registered entry and the people performing it
  - ScoreRecord: one judge's mark of one ScoreType for one competitor
  - VoteSession: the competitor currently open for voting
  - Section, Breakdown: aggregated panel values and the final total
  - RankingEntry, Rankings: validated competitors ordered per category

# Roles and Score Types

Each Role may write a fixed set of score types:

	execution  -> execution
	artistry   -> artistry
	difficulty -> difficulty, difficulty_penalization (mirrored)
	principal  -> line_penalization, principal_penalization

Marks are bounded by MinMark and MaxMark.

# Request Types

  - SubmitScoreRequest: judge_id, competitor_id, score_type, value
  - DeleteScoreRequest: judge_id, competitor_id, score_type
  - UpdateScoresRequest: scores keyed by label
  - StartVoteRequest: competitor_id

# Response Types

  - CompetitorScores, CompetitorWithScores, JudgeScore, ScoreListing
  - ValidateResponse, UpdateScoresResponse, MessageResponse, ErrorResponse

# Errors

Sentinel errors (ErrOutOfRange, ErrIncompleteScores, ErrAlreadyValidated,
ErrNotValidated, ErrNotFound and friends) are wrapped by the engine packages
and matched with errors.Is by the handlers.
*/
package models
