// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/gimnis/directory"
	"github.com/danielhkuo/gimnis/metrics"
	"github.com/danielhkuo/gimnis/models"
)

type Coordinator struct {
	db      *sql.DB
	metrics *metrics.Manager
	now     func() time.Time
}

func New(conn *sql.DB) *Coordinator {
	return &Coordinator{db: conn, metrics: metrics.Get(), now: time.Now}
}

// StartVote opens voting for a competitor, replacing whichever competitor
// was active.
func (c *Coordinator) StartVote(ctx context.Context, competitorID int64) error {
	// The foreign key would reject an unknown id too, but the error text
	// differs per driver.
	if _, err := directory.LoadCompetitor(ctx, c.db, competitorID); err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, `
		UPDATE current_vote SET competitor_id = $1, started_at = $2 WHERE id = 1
	`, competitorID, c.now().UTC()); err != nil {
		return fmt.Errorf("start vote: %w", err)
	}

	c.metrics.VoteChanged(competitorID)
	slog.Info("vote started", "competitor_id", competitorID)
	return nil
}

// StopVote clears the active competitor. Stopping with nothing active is a no-op.
func (c *Coordinator) StopVote(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `
		UPDATE current_vote SET competitor_id = NULL, started_at = NULL WHERE id = 1
	`); err != nil {
		return fmt.Errorf("stop vote: %w", err)
	}

	c.metrics.VoteChanged(0)
	slog.Info("vote stopped")
	return nil
}

// Active returns the active competitor id, or nil.
func (c *Coordinator) Active(ctx context.Context) (*int64, error) {
	var id sql.NullInt64
	err := c.db.QueryRowContext(ctx, `SELECT competitor_id FROM current_vote WHERE id = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read current vote: %w", err)
	}
	if !id.Valid {
		return nil, nil
	}
	return &id.Int64, nil
}

// CurrentVote returns the active competitor. When judgeID is given,
// AlreadyVoted reports whether that judge has every mark its role requires
// for the active competitor.
func (c *Coordinator) CurrentVote(ctx context.Context, judgeID *int64) (models.VoteSession, error) {
	var judge models.Judge
	if judgeID != nil {
		var err error
		if judge, err = directory.LoadJudge(ctx, c.db, *judgeID); err != nil {
			return models.VoteSession{}, err
		}
	}

	active, err := c.Active(ctx)
	if err != nil || active == nil {
		return models.VoteSession{}, err
	}

	comp, err := directory.LoadCompetitor(ctx, c.db, *active)
	if err != nil {
		return models.VoteSession{}, err
	}
	vs := models.VoteSession{CompetitorID: active, Competitor: &comp}

	if judgeID != nil {
		vs.AlreadyVoted, err = c.hasVoted(ctx, judge, *active)
		if err != nil {
			return models.VoteSession{}, err
		}
	}
	return vs, nil
}

func (c *Coordinator) hasVoted(ctx context.Context, judge models.Judge, competitorID int64) (bool, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT score_type FROM scores
		WHERE judge_id = $1 AND competitor_id = $2
	`, judge.ID, competitorID)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	present := make(map[models.ScoreType]bool)
	for rows.Next() {
		var t models.ScoreType
		if err := rows.Scan(&t); err != nil {
			return false, err
		}
		present[t] = true
	}
	if err := rows.Err(); err != nil {
		return false, err
	}

	for _, t := range judge.Role.ScoreTypes() {
		if !present[t] {
			return false, nil
		}
	}
	return true, nil
}
