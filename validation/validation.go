// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/directory"
	"github.com/danielhkuo/gimnis/metrics"
	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/scores"
	"github.com/danielhkuo/gimnis/scoring"
)

type Manager struct {
	db      *sql.DB
	rules   scoring.Rules
	scores  *scores.Store
	dir     *directory.Directory
	metrics *metrics.Manager
	now     func() time.Time
}

func New(conn *sql.DB, rules scoring.Rules) *Manager {
	return &Manager{
		db:      conn,
		rules:   rules,
		scores:  scores.New(conn),
		dir:     directory.New(conn),
		metrics: metrics.Get(),
		now:     time.Now,
	}
}

// Validate aggregates the competitor's marks and freezes the total.
func (m *Manager) Validate(ctx context.Context, competitorID int64) (models.Breakdown, error) {
	var b models.Breakdown
	err := db.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		if err := scores.LockCompetitor(ctx, tx, competitorID); err != nil {
			if errors.Is(err, models.ErrCompetitorLocked) {
				return fmt.Errorf("competitor %d: %w", competitorID, models.ErrAlreadyValidated)
			}
			return err
		}

		in, err := input(ctx, tx, competitorID)
		if err != nil {
			return err
		}
		b, err = m.rules.Aggregate(in)
		if err != nil {
			return fmt.Errorf("competitor %d: %w", competitorID, err)
		}

		payload, err := json.Marshal(b)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE competitors
			SET validated = TRUE, frozen_total = $1, breakdown = $2, validated_at = $3
			WHERE id = $4
		`, b.Total, string(payload), m.now().UTC(), competitorID)
		return err
	})
	if err != nil {
		m.metrics.Validation(outcome(err))
		if !errors.Is(err, models.ErrIncompleteScores) && !errors.Is(err, models.ErrAlreadyValidated) && !errors.Is(err, models.ErrNotFound) {
			slog.Error("validate failed", "competitor_id", competitorID, "error", err)
		}
		return models.Breakdown{}, err
	}

	m.metrics.Validation(metrics.OutcomeValidated)
	slog.Info("competitor validated",
		"competitor_id", competitorID, "total", b.Total,
		"discrepant", b.Execution.Discrepant || b.Artistry.Discrepant || b.Difficulty.Discrepant)
	return b, nil
}

// Unvalidate reopens a validated competitor for edits and clears the
// frozen total.
func (m *Manager) Unvalidate(ctx context.Context, competitorID int64) error {
	res, err := m.db.ExecContext(ctx, `
		UPDATE competitors
		SET validated = FALSE, frozen_total = NULL, breakdown = NULL, validated_at = NULL,
		    revision = revision + 1
		WHERE id = $1 AND validated = TRUE
	`, competitorID)
	if err != nil {
		return fmt.Errorf("unvalidate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := directory.LoadCompetitor(ctx, m.db, competitorID); err != nil {
			return err
		}
		return fmt.Errorf("competitor %d: %w", competitorID, models.ErrNotValidated)
	}

	m.metrics.Validation(metrics.OutcomeUnvalidated)
	slog.Info("competitor unvalidated", "competitor_id", competitorID)
	return nil
}

// Preview returns a provisional breakdown without validating. A validated
// competitor returns its frozen breakdown.
func (m *Manager) Preview(ctx context.Context, competitorID int64) (models.Breakdown, error) {
	f, err := loadFrozen(ctx, m.db, competitorID)
	if err != nil {
		return models.Breakdown{}, err
	}
	if f.validated && f.breakdown != nil {
		return *f.breakdown, nil
	}

	in, err := input(ctx, m.db, competitorID)
	if err != nil {
		return models.Breakdown{}, err
	}
	return m.rules.Preview(in), nil
}

func input(ctx context.Context, q db.Querier, competitorID int64) (scoring.Input, error) {
	comp, err := directory.LoadCompetitor(ctx, q, competitorID)
	if err != nil {
		return scoring.Input{}, err
	}
	marks, err := scores.Marks(ctx, q, competitorID)
	if err != nil {
		return scoring.Input{}, err
	}
	return scoring.Input{Category: comp.Category, Sexes: comp.Sexes(), Marks: marks}, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, models.ErrIncompleteScores):
		return metrics.OutcomeIncomplete
	case errors.Is(err, models.ErrAlreadyValidated):
		return metrics.OutcomeConflict
	}
	return metrics.OutcomeError
}
