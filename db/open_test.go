// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"scores.db", "file:scores.db?_pragma=foreign_keys(1)"},
		{"file:scores.db", "file:scores.db?_pragma=foreign_keys(1)"},
		{"sqlite://data/scores.db?mode=rwc", "file:data/scores.db?mode=rwc&_pragma=foreign_keys(1)"},
	}

	for _, tt := range tests {
		got := sqliteDSN(tt.in)
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("sqliteDSN(%q) = %q, want prefix %q", tt.in, got, tt.want)
		}
	}
}

func TestOpenUnsupportedType(t *testing.T) {
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("Expected error for unsupported database type")
	}
}

func TestCreateSchemaIsIdempotent(t *testing.T) {
	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema run %d: %v", i+1, err)
		}
	}

	var rows int
	if err := conn.QueryRow("SELECT COUNT(*) FROM current_vote").Scan(&rows); err != nil {
		t.Fatalf("Failed to count current_vote rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected exactly 1 current_vote row, got %d", rows)
	}

	_, err = conn.Exec(`INSERT INTO current_vote (id, competitor_id) VALUES (2, NULL)`)
	if err == nil {
		t.Error("Expected second current_vote row to be rejected")
	}
}

func TestSchemaStatementsStandAlone(t *testing.T) {
	for i, stmt := range schema {
		if strings.Contains(stmt, ";") {
			t.Errorf("schema[%d] holds more than one statement: %q", i, stmt)
		}
	}

	conn, err := Open(TypeSQLite, filepath.Join(t.TempDir(), "tables.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}

	for _, table := range []string{"judges", "competitors", "competitor_members", "scores", "current_vote"} {
		var n int
		err := conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&n)
		if err != nil {
			t.Fatalf("Failed to look up %s: %v", table, err)
		}
		if n != 1 {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}
