// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package registry loads the judge roster and competitor list from a YAML
// seed file. Competitor registration belongs to another system; the seed
// is how its output reaches this one.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/scoring"
)

// Member ids default to competitor id * memberIDStride + position.
const memberIDStride = 1000

// ErrRoleLocked is returned when a seed changes the role of a judge who has
// already recorded marks.
var ErrRoleLocked = errors.New("judge role cannot change once marks are recorded")

var panelRoles = []models.Role{
	models.RoleExecution,
	models.RoleArtistry,
	models.RoleDifficulty,
	models.RolePrincipal,
}

// PanelSize is the number of judges a role needs for a competitor to be
// scorable: one per mark of the role's first score type.
func PanelSize(role models.Role) int {
	types := role.ScoreTypes()
	if len(types) == 0 {
		return 0
	}
	return scoring.RequiredMarks[types[0]]
}

func checkPanel(counts map[models.Role]int) error {
	var errs []error
	for _, role := range panelRoles {
		if got, want := counts[role], PanelSize(role); got != want {
			errs = append(errs, fmt.Errorf("%s panel has %d judges, want %d", role, got, want))
		}
	}
	return errors.Join(errs...)
}

type Seed struct {
	Judges      []JudgeSeed      `koanf:"judges"`
	Competitors []CompetitorSeed `koanf:"competitors"`
}

type JudgeSeed struct {
	ID   int64       `koanf:"id"`
	Name string      `koanf:"name"`
	Role models.Role `koanf:"role"`
}

type CompetitorSeed struct {
	ID       int64        `koanf:"id"`
	Category string       `koanf:"category"`
	Club     string       `koanf:"club"`
	Members  []MemberSeed `koanf:"members"`
}

type MemberSeed struct {
	ID   int64  `koanf:"id"`
	Name string `koanf:"name"`
	Age  int    `koanf:"age"`
	Sex  string `koanf:"sex"`
}

// Load reads and checks a seed file.
func Load(path string) (Seed, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Seed{}, fmt.Errorf("load seed file: %w", err)
	}

	var seed Seed
	if err := k.UnmarshalWithConf("", &seed, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	if err := seed.Validate(); err != nil {
		return Seed{}, err
	}
	return seed, nil
}

// Validate rejects unknown roles and sexes, non-positive ids and duplicates.
// A seed that lists judges must list the whole panel.
func (s Seed) Validate() error {
	var errs []error

	judges := make(map[int64]bool)
	roles := make(map[models.Role]int)
	for _, j := range s.Judges {
		roles[j.Role]++
		switch {
		case j.ID <= 0:
			errs = append(errs, fmt.Errorf("judge %q: id must be positive", j.Name))
		case judges[j.ID]:
			errs = append(errs, fmt.Errorf("judge %d: duplicate id", j.ID))
		}
		if !j.Role.Valid() {
			errs = append(errs, fmt.Errorf("judge %d: unknown role %q", j.ID, j.Role))
		}
		judges[j.ID] = true
	}
	if len(s.Judges) > 0 {
		if err := checkPanel(roles); err != nil {
			errs = append(errs, err)
		}
	}

	comps := make(map[int64]bool)
	for _, c := range s.Competitors {
		switch {
		case c.ID <= 0:
			errs = append(errs, fmt.Errorf("competitor %q: id must be positive", c.Club))
		case comps[c.ID]:
			errs = append(errs, fmt.Errorf("competitor %d: duplicate id", c.ID))
		}
		comps[c.ID] = true

		if c.Category == "" {
			errs = append(errs, fmt.Errorf("competitor %d: category is required", c.ID))
		}
		if len(c.Members) >= memberIDStride {
			errs = append(errs, fmt.Errorf("competitor %d: too many members", c.ID))
		}
		for _, m := range c.Members {
			if m.Sex != models.SexMale && m.Sex != models.SexFemale {
				errs = append(errs, fmt.Errorf("competitor %d: member %q has sex %q, want M or F", c.ID, m.Name, m.Sex))
			}
		}
	}

	return errors.Join(errs...)
}

// Apply upserts the seed in one transaction. Judge names and competitor
// details are overwritten; validation state and marks are left alone. A
// validated competitor keeps its category, club and roster, and a judge with
// recorded marks keeps its role. When the seed lists judges, the stored
// roster must form a complete panel afterwards.
func Apply(ctx context.Context, conn *sql.DB, seed Seed) error {
	err := db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		for _, j := range seed.Judges {
			if err := applyJudge(ctx, tx, j); err != nil {
				return fmt.Errorf("seed judge %d: %w", j.ID, err)
			}
		}
		if len(seed.Judges) > 0 {
			if err := checkRoster(ctx, tx); err != nil {
				return fmt.Errorf("seed judges: %w", err)
			}
		}

		for _, c := range seed.Competitors {
			if err := applyCompetitor(ctx, tx, c); err != nil {
				return fmt.Errorf("seed competitor %d: %w", c.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("seed applied", "judges", len(seed.Judges), "competitors", len(seed.Competitors))
	return nil
}

func applyJudge(ctx context.Context, tx *sql.Tx, j JudgeSeed) error {
	var role models.Role
	err := tx.QueryRowContext(ctx, `SELECT role FROM judges WHERE id = $1`, j.ID).Scan(&role)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	case role != j.Role:
		var marks int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM scores WHERE judge_id = $1`, j.ID).Scan(&marks); err != nil {
			return err
		}
		if marks > 0 {
			return fmt.Errorf("%w: %s -> %s with %d marks", ErrRoleLocked, role, j.Role, marks)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO judges (id, display_name, role) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name, role = EXCLUDED.role
	`, j.ID, j.Name, j.Role)
	return err
}

func checkRoster(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `SELECT role, COUNT(*) FROM judges GROUP BY role`)
	if err != nil {
		return err
	}
	defer rows.Close()

	counts := make(map[models.Role]int)
	for rows.Next() {
		var role models.Role
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return err
		}
		counts[role] = n
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return checkPanel(counts)
}

func applyCompetitor(ctx context.Context, tx *sql.Tx, c CompetitorSeed) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO competitors (id, category, club) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET category = EXCLUDED.category, club = EXCLUDED.club
		WHERE competitors.validated = FALSE
	`, c.ID, c.Category, c.Club); err != nil {
		return err
	}

	var validated bool
	if err := tx.QueryRowContext(ctx, `SELECT validated FROM competitors WHERE id = $1`, c.ID).Scan(&validated); err != nil {
		return err
	}
	if validated {
		slog.Warn("seed skipped validated competitor", "competitor_id", c.ID)
		return nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM competitor_members WHERE competitor_id = $1`, c.ID); err != nil {
		return err
	}
	for i, m := range c.Members {
		id := m.ID
		if id == 0 {
			id = c.ID*memberIDStride + int64(i) + 1
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO competitor_members (id, competitor_id, name, age, sex)
			VALUES ($1, $2, $3, $4, $5)
		`, id, c.ID, m.Name, m.Age, m.Sex); err != nil {
			return err
		}
	}
	return nil
}
