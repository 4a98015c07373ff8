// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ranking builds per-category standings from frozen totals.
// Unvalidated competitors never appear. Equal totals keep competitor id
// order, and positions run 1..n without gaps.
package ranking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/gimnis/models"
)

type Engine struct {
	db *sql.DB
}

func New(conn *sql.DB) *Engine {
	return &Engine{db: conn}
}

// GetRankings returns the standings of every category that has at least
// one validated competitor.
func (e *Engine) GetRankings(ctx context.Context) (models.Rankings, error) {
	return e.rank(ctx, "")
}

// Category returns the standings of one category, empty when nothing in
// it is validated.
func (e *Engine) Category(ctx context.Context, category string) ([]models.RankingEntry, error) {
	r, err := e.rank(ctx, category)
	if err != nil {
		return nil, err
	}
	if entries, ok := r[category]; ok {
		return entries, nil
	}
	return []models.RankingEntry{}, nil
}

func (e *Engine) rank(ctx context.Context, category string) (models.Rankings, error) {
	query := `
		SELECT id, category, club, frozen_total
		FROM competitors
		WHERE validated = TRUE`
	args := []any{}
	if category != "" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY category, frozen_total DESC, id`

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rankings: %w", err)
	}
	defer rows.Close()

	rankings := models.Rankings{}
	for rows.Next() {
		var cat string
		var entry models.RankingEntry
		if err := rows.Scan(&entry.CompetitorID, &cat, &entry.Club, &entry.Score); err != nil {
			return nil, err
		}
		entry.Position = len(rankings[cat]) + 1
		entry.Place = humanize.Ordinal(entry.Position)
		rankings[cat] = append(rankings[cat], entry)
	}
	return rankings, rows.Err()
}
