// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Gimnis scoring API.

# Handler Types

Each handler is a struct wrapping the engine packages it needs:

  - ScoreHandler: Mark submission, deletion, listings, bulk edit, preview
  - VoteHandler: Which competitor is open for voting
  - CompetitorHandler: Validation and competitor listings
  - RankingHandler: Standings from frozen totals
  - JudgeHandler: Judge roster and per-judge history

Handlers are created via constructor functions that accept *sql.DB and,
where needed, the Config or scoring Rules:

	scoreHandler := handlers.NewScoreHandler(db, cfg, rules)

# Judge Flow

	GET  /votes/current?judge_id= → CurrentVote (active competitor, already_voted)
	POST /scores                  → SubmitScore (201, difficulty marks mirrored)
	DELETE /scores                → DeleteScore

# Secretary Flow

	POST   /votes/start                → StartVote
	POST   /votes/stop                 → StopVote
	PUT    /scores/{competitorId}      → UpdateScores (bulk edit by label)
	POST   /competitors/{id}/validate  → Validate (freezes the total)
	DELETE /competitors/{id}/validate  → Unvalidate

Secretary routes require the X-Secretary-Key header when a key is configured.

# Errors

Engine errors map to status codes: out of range and unknown score types
400, role mismatch 403, unknown ids 404, validated/unvalidated/locked/not
on the vote 409, incomplete panels 422. Anything else is logged and
returned as 500 "Database error".
*/
package handlers
