// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/models"
)

type frozen struct {
	validated bool
	total     *float64
	breakdown *models.Breakdown
}

func loadFrozen(ctx context.Context, q db.Querier, competitorID int64) (frozen, error) {
	var f frozen
	var total sql.NullFloat64
	var payload sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT validated, frozen_total, breakdown FROM competitors WHERE id = $1
	`, competitorID).Scan(&f.validated, &total, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return frozen{}, fmt.Errorf("competitor %d: %w", competitorID, models.ErrNotFound)
	}
	if err != nil {
		return frozen{}, err
	}

	if total.Valid {
		f.total = &total.Float64
	}
	if payload.Valid && payload.String != "" {
		var b models.Breakdown
		if err := json.Unmarshal([]byte(payload.String), &b); err != nil {
			return frozen{}, fmt.Errorf("decode breakdown for competitor %d: %w", competitorID, err)
		}
		f.breakdown = &b
	}
	return f, nil
}

// CompetitorScores returns the labelled marks for a competitor together
// with its validation state and, once validated, the frozen breakdown.
func (m *Manager) CompetitorScores(ctx context.Context, competitorID int64) (models.CompetitorScores, error) {
	f, err := loadFrozen(ctx, m.db, competitorID)
	if err != nil {
		return models.CompetitorScores{}, err
	}

	values, judgeIDs, err := m.scores.Get(ctx, competitorID)
	if err != nil {
		return models.CompetitorScores{}, err
	}

	return models.CompetitorScores{
		CompetitorID: competitorID,
		Scores:       values,
		JudgeIDs:     judgeIDs,
		Validated:    f.validated,
		FrozenTotal:  f.total,
		Breakdown:    f.breakdown,
	}, nil
}

// ListCompetitors returns the competitors of a category (all when empty)
// with their current marks and, when validated, the frozen breakdown.
func (m *Manager) ListCompetitors(ctx context.Context, category string) ([]models.CompetitorWithScores, error) {
	comps, err := m.dir.ListCompetitors(ctx, category)
	if err != nil {
		return nil, err
	}

	out := make([]models.CompetitorWithScores, 0, len(comps))
	for _, c := range comps {
		values, _, err := m.scores.Get(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		f, err := loadFrozen(ctx, m.db, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, models.CompetitorWithScores{Competitor: c, Scores: values, Breakdown: f.breakdown})
	}
	return out, nil
}
