// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// DropSchema removes every table, children first. Used by tests.
func DropSchema(db *sql.DB) error {
	for _, table := range []string{"current_vote", "scores", "competitor_members", "competitors", "judges"} {
		if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

// One statement per entry, written in the SQL subset shared by PostgreSQL
// and SQLite.
var schema = []string{
	// Judges (seeded, immutable)
	`CREATE TABLE IF NOT EXISTS judges (
    id BIGINT PRIMARY KEY,
    display_name TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('execution', 'artistry', 'difficulty', 'principal'))
)`,
	`CREATE INDEX IF NOT EXISTS idx_judges_role ON judges(role)`,

	// Competitors: registered by the seed, validation columns owned by the engine
	`CREATE TABLE IF NOT EXISTS competitors (
    id BIGINT PRIMARY KEY,
    category TEXT NOT NULL,
    club TEXT NOT NULL,
    validated BOOLEAN NOT NULL DEFAULT FALSE,
    frozen_total DOUBLE PRECISION,
    breakdown TEXT,
    validated_at TIMESTAMP,
    revision BIGINT NOT NULL DEFAULT 0,
    CHECK (validated = FALSE OR frozen_total IS NOT NULL)
)`,
	`CREATE INDEX IF NOT EXISTS idx_competitors_category ON competitors(category)`,

	// Members
	`CREATE TABLE IF NOT EXISTS competitor_members (
    id BIGINT PRIMARY KEY,
    competitor_id BIGINT NOT NULL REFERENCES competitors(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    age INTEGER NOT NULL DEFAULT 0,
    sex TEXT NOT NULL CHECK (sex IN ('M', 'F'))
)`,
	`CREATE INDEX IF NOT EXISTS idx_competitor_members_competitor_id ON competitor_members(competitor_id)`,

	// Scores
	`CREATE TABLE IF NOT EXISTS scores (
    judge_id BIGINT NOT NULL REFERENCES judges(id) ON DELETE CASCADE,
    competitor_id BIGINT NOT NULL REFERENCES competitors(id) ON DELETE CASCADE,
    score_type TEXT NOT NULL,
    value DOUBLE PRECISION NOT NULL CHECK (value >= 0 AND value <= 10),
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (judge_id, competitor_id, score_type)
)`,
	`CREATE INDEX IF NOT EXISTS idx_scores_competitor_id ON scores(competitor_id)`,

	// Current vote (single row)
	`CREATE TABLE IF NOT EXISTS current_vote (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    competitor_id BIGINT REFERENCES competitors(id) ON DELETE SET NULL,
    started_at TIMESTAMP
)`,
	`INSERT INTO current_vote (id, competitor_id) VALUES (1, NULL)
ON CONFLICT (id) DO NOTHING`,
}
