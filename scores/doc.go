// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scores stores judge marks.

A mark is keyed by (judge, competitor, score type) and written with a single
upsert, so a resubmission overwrites the previous value instead of adding a
row. Values outside [models.MinMark, models.MaxMark] are rejected before any
write.

# Submitting

	store := scores.New(conn)
	rec, err := store.Submit(ctx, judgeID, competitorID, models.ScoreExecution, 8.7)

Submit checks that the judge's role allows the score type. Marks of a
mirrored type (difficulty, difficulty_penalization) from a difficulty judge
are written for every difficulty judge in one transaction.

With RequireActiveVote(true), Submit also requires the competitor to be the
one in current_vote.

# Locking

Every write starts with LockCompetitor, which bumps the competitor's revision
only while it is not validated. A validated competitor rejects writes with
models.ErrCompetitorLocked, and validation uses the same lock to serialize
against in-flight writes.

# Labels

Get and ListScores key marks by a display label:

	"Ana Ruiz (#3) execution"

BulkEdit takes the same labels, so the secretary can correct marks exactly
as they are shown.
*/
package scores
