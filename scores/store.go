// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/directory"
	"github.com/danielhkuo/gimnis/metrics"
	"github.com/danielhkuo/gimnis/models"
)

// Store is the durable score fact table keyed by (judge, competitor, score type).
type Store struct {
	db      *sql.DB
	metrics *metrics.Manager
	now     func() time.Time

	// requireActive rejects judge submissions for anyone but the
	// competitor currently on the vote.
	requireActive bool
}

func New(conn *sql.DB) *Store {
	return &Store{db: conn, metrics: metrics.Get(), now: time.Now}
}

// RequireActiveVote turns the active-vote gate on or off for Submit.
func (s *Store) RequireActiveVote(on bool) *Store {
	s.requireActive = on
	return s
}

// Label names one mark for display and for addressing it in bulk edits.
func Label(judgeName string, judgeID int64, scoreType models.ScoreType) string {
	return fmt.Sprintf("%s (#%d) %s", judgeName, judgeID, scoreType)
}

// Upsert inserts or replaces a single (judge, competitor, score type) row.
// It does not consult judge roles; Submit is the judge-facing entry point.
func (s *Store) Upsert(ctx context.Context, judgeID, competitorID int64, scoreType models.ScoreType, value float64) (models.ScoreRecord, error) {
	if err := checkMark(scoreType, value); err != nil {
		return models.ScoreRecord{}, err
	}

	var rec models.ScoreRecord
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := LockCompetitor(ctx, tx, competitorID); err != nil {
			return err
		}
		if _, err := directory.LoadJudge(ctx, tx, judgeID); err != nil {
			return err
		}

		var err error
		rec, err = s.upsert(ctx, tx, judgeID, competitorID, scoreType, value)
		return err
	})
	if err != nil {
		return models.ScoreRecord{}, err
	}

	s.metrics.ScoreSubmitted(string(scoreType), 0)
	return rec, nil
}

// Get returns every mark for a competitor keyed by Label, plus the judge
// each label belongs to.
func (s *Store) Get(ctx context.Context, competitorID int64) (map[string]float64, map[string]int64, error) {
	rows, err := labelled(ctx, s.db, competitorID)
	if err != nil {
		return nil, nil, err
	}

	scores := make(map[string]float64, len(rows))
	judgeIDs := make(map[string]int64, len(rows))
	for _, r := range rows {
		scores[r.label] = r.value
		judgeIDs[r.label] = r.judgeID
	}
	return scores, judgeIDs, nil
}

// Delete removes one mark. The judge's role must allow the score type.
// Difficulty and difficulty penalization marks are removed for the whole
// difficulty panel in the same statement.
func (s *Store) Delete(ctx context.Context, judgeID, competitorID int64, scoreType models.ScoreType) (int64, error) {
	if !scoreType.Valid() {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidScoreType, scoreType)
	}

	var deleted int64
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := LockCompetitor(ctx, tx, competitorID); err != nil {
			return err
		}
		judge, err := directory.LoadJudge(ctx, tx, judgeID)
		if err != nil {
			return err
		}
		if !judge.Role.Allows(scoreType) {
			return fmt.Errorf("%w: %s judge cannot delete %s", models.ErrScoreTypeNotAllowed, judge.Role, scoreType)
		}

		var res sql.Result
		if scoreType.Mirrored() {
			res, err = tx.ExecContext(ctx, `
				DELETE FROM scores
				WHERE competitor_id = $1 AND score_type = $2
				  AND judge_id IN (SELECT id FROM judges WHERE role = $3)
			`, competitorID, scoreType, models.RoleDifficulty)
		} else {
			res, err = tx.ExecContext(ctx, `
				DELETE FROM scores
				WHERE judge_id = $1 AND competitor_id = $2 AND score_type = $3
			`, judgeID, competitorID, scoreType)
		}
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	s.metrics.ScoresDeleted(deleted)
	slog.Info("score deleted",
		"judge_id", judgeID, "competitor_id", competitorID,
		"score_type", scoreType, "rows", deleted)
	return deleted, nil
}

// Marks groups a competitor's mark values by score type.
func Marks(ctx context.Context, q db.Querier, competitorID int64) (map[models.ScoreType][]float64, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT score_type, value
		FROM scores
		WHERE competitor_id = $1
		ORDER BY score_type, judge_id
	`, competitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	marks := make(map[models.ScoreType][]float64)
	for rows.Next() {
		var t models.ScoreType
		var v float64
		if err := rows.Scan(&t, &v); err != nil {
			return nil, err
		}
		marks[t] = append(marks[t], v)
	}
	return marks, rows.Err()
}

func (s *Store) upsert(ctx context.Context, q db.Querier, judgeID, competitorID int64, scoreType models.ScoreType, value float64) (models.ScoreRecord, error) {
	now := s.now().UTC()
	_, err := q.ExecContext(ctx, `
		INSERT INTO scores (judge_id, competitor_id, score_type, value, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (judge_id, competitor_id, score_type)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, judgeID, competitorID, scoreType, value, now)
	if err != nil {
		return models.ScoreRecord{}, fmt.Errorf("upsert score: %w", err)
	}

	return models.ScoreRecord{
		JudgeID:      judgeID,
		CompetitorID: competitorID,
		ScoreType:    scoreType,
		Value:        value,
		UpdatedAt:    now,
	}, nil
}

// LockCompetitor takes the competitor row's write lock and fails when the
// competitor is unknown or validated. Every score write and Validate go
// through it first, so edits and freezes never interleave.
func LockCompetitor(ctx context.Context, q db.Querier, competitorID int64) error {
	res, err := q.ExecContext(ctx, `
		UPDATE competitors SET revision = revision + 1
		WHERE id = $1 AND validated = FALSE
	`, competitorID)
	if err != nil {
		return fmt.Errorf("lock competitor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var validated bool
	err = q.QueryRowContext(ctx, `SELECT validated FROM competitors WHERE id = $1`, competitorID).Scan(&validated)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("competitor %d: %w", competitorID, models.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("competitor %d: %w", competitorID, models.ErrCompetitorLocked)
}

func checkMark(scoreType models.ScoreType, value float64) error {
	if !scoreType.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidScoreType, scoreType)
	}
	// NaN fails both comparisons, so test for the in-range case
	if !(value >= models.MinMark && value <= models.MaxMark) {
		return fmt.Errorf("%w: %v not in [%v, %v]", models.ErrOutOfRange, value, models.MinMark, models.MaxMark)
	}
	return nil
}

type labelledRow struct {
	label     string
	judgeID   int64
	judgeRole models.Role
	scoreType models.ScoreType
	value     float64
}

func labelled(ctx context.Context, q db.Querier, competitorID int64) ([]labelledRow, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT s.judge_id, j.display_name, j.role, s.score_type, s.value
		FROM scores s
		JOIN judges j ON j.id = s.judge_id
		WHERE s.competitor_id = $1
		ORDER BY s.score_type, s.judge_id
	`, competitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []labelledRow
	for rows.Next() {
		var r labelledRow
		var name string
		if err := rows.Scan(&r.judgeID, &name, &r.judgeRole, &r.scoreType, &r.value); err != nil {
			return nil, err
		}
		r.label = Label(name, r.judgeID, r.scoreType)
		out = append(out, r)
	}
	return out, rows.Err()
}
