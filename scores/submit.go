// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/directory"
	"github.com/danielhkuo/gimnis/models"
)

// Submit is the judge submission path. The judge's role must allow the
// score type; difficulty-panel marks go through SubmitMirrored.
func (s *Store) Submit(ctx context.Context, judgeID, competitorID int64, scoreType models.ScoreType, value float64) (models.ScoreRecord, error) {
	if err := checkMark(scoreType, value); err != nil {
		s.reject(err)
		return models.ScoreRecord{}, err
	}

	var rec models.ScoreRecord
	var mirrored int
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := LockCompetitor(ctx, tx, competitorID); err != nil {
			return err
		}
		if s.requireActive {
			if err := checkActive(ctx, tx, competitorID); err != nil {
				return err
			}
		}

		judge, err := directory.LoadJudge(ctx, tx, judgeID)
		if err != nil {
			return err
		}
		if !judge.Role.Allows(scoreType) {
			return fmt.Errorf("%w: %s judge cannot submit %s", models.ErrScoreTypeNotAllowed, judge.Role, scoreType)
		}

		if scoreType.Mirrored() {
			rec, mirrored, err = s.mirror(ctx, tx, judge, competitorID, scoreType, value)
			return err
		}
		rec, err = s.upsert(ctx, tx, judgeID, competitorID, scoreType, value)
		return err
	})
	if err != nil {
		s.reject(err)
		return models.ScoreRecord{}, err
	}

	s.metrics.ScoreSubmitted(string(scoreType), mirrored)
	slog.Info("score submitted",
		"judge_id", judgeID, "competitor_id", competitorID,
		"score_type", scoreType, "value", value, "mirrored", mirrored)
	return rec, nil
}

// SubmitMirrored writes a difficulty-panel mark for the submitting judge
// and, with the same value, for every other difficulty judge on the same
// competitor. All rows commit together or not at all.
func (s *Store) SubmitMirrored(ctx context.Context, judgeID, competitorID int64, scoreType models.ScoreType, value float64) (models.ScoreRecord, error) {
	if !scoreType.Mirrored() {
		return models.ScoreRecord{}, fmt.Errorf("%w: %s is not a difficulty-panel mark", models.ErrScoreTypeNotAllowed, scoreType)
	}
	return s.Submit(ctx, judgeID, competitorID, scoreType, value)
}

// mirror returns the submitter's record and the number of extra rows written.
func (s *Store) mirror(ctx context.Context, tx *sql.Tx, judge models.Judge, competitorID int64, scoreType models.ScoreType, value float64) (models.ScoreRecord, int, error) {
	panel, err := directory.JudgesByRole(ctx, tx, models.RoleDifficulty)
	if err != nil {
		return models.ScoreRecord{}, 0, err
	}

	rec, err := s.upsert(ctx, tx, judge.ID, competitorID, scoreType, value)
	if err != nil {
		return models.ScoreRecord{}, 0, err
	}

	mirrored := 0
	for _, twin := range panel {
		if twin.ID == judge.ID {
			continue
		}
		if _, err := s.upsert(ctx, tx, twin.ID, competitorID, scoreType, value); err != nil {
			return models.ScoreRecord{}, 0, fmt.Errorf("mirror to judge %d: %w", twin.ID, err)
		}
		mirrored++
	}
	return rec, mirrored, nil
}

func checkActive(ctx context.Context, q db.Querier, competitorID int64) error {
	var active sql.NullInt64
	err := q.QueryRowContext(ctx, `SELECT competitor_id FROM current_vote WHERE id = 1`).Scan(&active)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read current vote: %w", err)
	}
	if !active.Valid || active.Int64 != competitorID {
		return fmt.Errorf("competitor %d: %w", competitorID, models.ErrNoActiveVote)
	}
	return nil
}

func (s *Store) reject(err error) {
	reason := "internal"
	switch {
	case errors.Is(err, models.ErrOutOfRange):
		reason = "out_of_range"
	case errors.Is(err, models.ErrInvalidScoreType):
		reason = "invalid_score_type"
	case errors.Is(err, models.ErrScoreTypeNotAllowed):
		reason = "not_allowed"
	case errors.Is(err, models.ErrCompetitorLocked):
		reason = "locked"
	case errors.Is(err, models.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, models.ErrNoActiveVote):
		reason = "no_active_vote"
	}
	s.metrics.ScoreRejected(reason)
}
