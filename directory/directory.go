// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package directory looks up judges and competitors.
package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/models"
)

// Directory is the read-only view of judges and competitors.
type Directory struct {
	db *sql.DB
}

func New(conn *sql.DB) *Directory {
	return &Directory{db: conn}
}

// Judge returns one judge or models.ErrNotFound.
func (d *Directory) Judge(ctx context.Context, id int64) (models.Judge, error) {
	return LoadJudge(ctx, d.db, id)
}

// ListJudges returns every scoring judge (principal excluded), ordered by
// role then name.
func (d *Directory) ListJudges(ctx context.Context) ([]models.Judge, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, display_name, role
		FROM judges
		WHERE role != $1
		ORDER BY role, display_name, id
	`, models.RolePrincipal)
	if err != nil {
		return nil, err
	}
	return scanJudges(rows)
}

// Competitor returns one competitor with its members, or models.ErrNotFound.
func (d *Directory) Competitor(ctx context.Context, id int64) (models.Competitor, error) {
	return LoadCompetitor(ctx, d.db, id)
}

// ListCompetitors returns competitors in a category (all when empty),
// ordered by id.
func (d *Directory) ListCompetitors(ctx context.Context, category string) ([]models.Competitor, error) {
	query := `
		SELECT id, category, club, validated, frozen_total, validated_at
		FROM competitors`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitors := []models.Competitor{}
	for rows.Next() {
		c, err := scanCompetitor(rows)
		if err != nil {
			return nil, err
		}
		competitors = append(competitors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range competitors {
		members, err := LoadMembers(ctx, d.db, competitors[i].ID)
		if err != nil {
			return nil, err
		}
		competitors[i].Members = members
	}
	return competitors, nil
}

// LoadJudge looks up a judge through q.
func LoadJudge(ctx context.Context, q db.Querier, id int64) (models.Judge, error) {
	var j models.Judge
	err := q.QueryRowContext(ctx, `
		SELECT id, display_name, role FROM judges WHERE id = $1
	`, id).Scan(&j.ID, &j.DisplayName, &j.Role)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Judge{}, fmt.Errorf("judge %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Judge{}, err
	}
	return j, nil
}

// JudgesByRole returns every judge holding role, ordered by id.
func JudgesByRole(ctx context.Context, q db.Querier, role models.Role) ([]models.Judge, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, display_name, role FROM judges WHERE role = $1 ORDER BY id
	`, role)
	if err != nil {
		return nil, err
	}
	return scanJudges(rows)
}

// LoadCompetitor looks up a competitor and its members through q.
func LoadCompetitor(ctx context.Context, q db.Querier, id int64) (models.Competitor, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, category, club, validated, frozen_total, validated_at
		FROM competitors
		WHERE id = $1
	`, id)

	c, err := scanCompetitor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Competitor{}, fmt.Errorf("competitor %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Competitor{}, err
	}

	c.Members, err = LoadMembers(ctx, q, id)
	if err != nil {
		return models.Competitor{}, err
	}
	return c, nil
}

// LoadMembers returns a competitor's roster in id order.
func LoadMembers(ctx context.Context, q db.Querier, competitorID int64) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, age, sex
		FROM competitor_members
		WHERE competitor_id = $1
		ORDER BY id
	`, competitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Age, &m.Sex); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCompetitor(s scanner) (models.Competitor, error) {
	var c models.Competitor
	var frozen sql.NullFloat64
	var validatedAt sql.NullTime

	if err := s.Scan(&c.ID, &c.Category, &c.Club, &c.Validated, &frozen, &validatedAt); err != nil {
		return models.Competitor{}, err
	}
	if frozen.Valid {
		c.FrozenTotal = &frozen.Float64
	}
	if validatedAt.Valid {
		c.ValidatedAt = &validatedAt.Time
	}
	return c, nil
}

func scanJudges(rows *sql.Rows) ([]models.Judge, error) {
	defer rows.Close()

	judges := []models.Judge{}
	for rows.Next() {
		var j models.Judge
		if err := rows.Scan(&j.ID, &j.DisplayName, &j.Role); err != nil {
			return nil, err
		}
		judges = append(judges, j)
	}
	return judges, rows.Err()
}
