// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scores

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"

	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/directory"
	"github.com/danielhkuo/gimnis/models"
)

// BulkEdit changes existing marks addressed by the labels Get returns.
// Every edit applies in one transaction; difficulty-panel labels mirror
// to the whole panel. Labels apply in sorted order, so when two twin
// difficulty labels disagree the later label wins for both.
func (s *Store) BulkEdit(ctx context.Context, competitorID int64, edits map[string]float64) (int, error) {
	labels := make([]string, 0, len(edits))
	for label := range edits {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := LockCompetitor(ctx, tx, competitorID); err != nil {
			return err
		}

		existing, err := labelled(ctx, tx, competitorID)
		if err != nil {
			return err
		}
		byLabel := make(map[string]labelledRow, len(existing))
		for _, r := range existing {
			byLabel[r.label] = r
		}

		for _, label := range labels {
			row, ok := byLabel[label]
			if !ok {
				return fmt.Errorf("score %q: %w", label, models.ErrNotFound)
			}
			value := edits[label]
			if err := checkMark(row.scoreType, value); err != nil {
				return fmt.Errorf("score %q: %w", label, err)
			}

			if row.scoreType.Mirrored() && row.judgeRole == models.RoleDifficulty {
				judge := models.Judge{ID: row.judgeID, Role: row.judgeRole}
				if _, _, err := s.mirror(ctx, tx, judge, competitorID, row.scoreType, value); err != nil {
					return err
				}
				continue
			}
			if _, err := s.upsert(ctx, tx, row.judgeID, competitorID, row.scoreType, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("scores edited", "competitor_id", competitorID, "count", len(labels))
	return len(labels), nil
}

// JudgeScores lists every mark one judge gave, with competitor details.
func (s *Store) JudgeScores(ctx context.Context, judgeID int64) ([]models.JudgeScore, error) {
	if _, err := directory.LoadJudge(ctx, s.db, judgeID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.category, c.club, s.score_type, s.value
		FROM scores s
		JOIN competitors c ON c.id = s.competitor_id
		WHERE s.judge_id = $1
		ORDER BY c.category, c.club, c.id, s.score_type
	`, judgeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.JudgeScore{}
	for rows.Next() {
		var js models.JudgeScore
		if err := rows.Scan(&js.CompetitorID, &js.Category, &js.Club, &js.ScoreType, &js.Value); err != nil {
			return nil, err
		}
		out = append(out, js)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	members := make(map[int64][]models.Member)
	for i := range out {
		id := out[i].CompetitorID
		if _, ok := members[id]; !ok {
			m, err := directory.LoadMembers(ctx, s.db, id)
			if err != nil {
				return nil, err
			}
			members[id] = m
		}
		out[i].Members = members[id]
	}
	return out, nil
}

// ListScores lists every mark across all judges and competitors.
func (s *Store) ListScores(ctx context.Context) ([]models.ScoreListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.category, c.club, s.score_type, s.value,
		       j.id, j.display_name, j.role
		FROM scores s
		JOIN competitors c ON c.id = s.competitor_id
		JOIN judges j ON j.id = s.judge_id
		ORDER BY c.category, c.club, c.id, j.display_name, s.score_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ScoreListing{}
	for rows.Next() {
		var l models.ScoreListing
		if err := rows.Scan(&l.CompetitorID, &l.Category, &l.Club, &l.ScoreType, &l.Value,
			&l.JudgeID, &l.JudgeName, &l.JudgeRole); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
