// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides a test database and panel fixtures.
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/gimnis/cliparse"
	"github.com/danielhkuo/gimnis/db"
	"github.com/danielhkuo/gimnis/models"
)

// TestSecretaryKey is the secretary key GetTestConfig configures.
const TestSecretaryKey = "test-secretary-key"

// SetupTestDB creates a fresh test database with the full schema.
// It uses a sqlite file in a temp dir unless TEST_DATABASE_URL points at
// a Postgres database, in which case every table is dropped and recreated.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	var conn *sql.DB
	var err error
	if url := os.Getenv("TEST_DATABASE_URL"); url != "" {
		conn, err = db.Open(db.TypePostgres, url)
		if err != nil {
			t.Fatalf("Failed to open test database: %v", err)
		}
		if err := db.DropSchema(conn); err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	} else {
		conn, err = db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "gimnis.db"))
		if err != nil {
			t.Fatalf("Failed to open test database: %v", err)
		}
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file::memory:",
		DatabaseType: db.TypeSQLite,
		SecretaryKey: TestSecretaryKey,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Panel holds the judge ids created by CreateTestPanel.
type Panel struct {
	Execution  []int64
	Artistry   []int64
	Difficulty []int64
	Principal  int64
}

// CreateTestJudge inserts a judge.
func CreateTestJudge(t *testing.T, conn *sql.DB, id int64, name string, role models.Role) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO judges (id, display_name, role) VALUES ($1, $2, $3)
	`, id, name, role)
	if err != nil {
		t.Fatalf("Failed to create test judge: %v", err)
	}
}

// CreateTestPanel inserts a full panel: judges 1-4 execution, 5-8 artistry,
// 9-10 difficulty and 11 principal.
func CreateTestPanel(t *testing.T, conn *sql.DB) Panel {
	t.Helper()

	var p Panel
	id := int64(1)
	add := func(role models.Role, name string) int64 {
		CreateTestJudge(t, conn, id, name, role)
		id++
		return id - 1
	}
	for _, name := range []string{"E1", "E2", "E3", "E4"} {
		p.Execution = append(p.Execution, add(models.RoleExecution, name))
	}
	for _, name := range []string{"A1", "A2", "A3", "A4"} {
		p.Artistry = append(p.Artistry, add(models.RoleArtistry, name))
	}
	for _, name := range []string{"D1", "D2"} {
		p.Difficulty = append(p.Difficulty, add(models.RoleDifficulty, name))
	}
	p.Principal = add(models.RolePrincipal, "Principal")
	return p
}

// CreateTestCompetitor inserts a competitor with one member per sex given
// and returns its id.
func CreateTestCompetitor(t *testing.T, conn *sql.DB, id int64, category, club string, sexes ...string) int64 {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO competitors (id, category, club) VALUES ($1, $2, $3)
	`, id, category, club)
	if err != nil {
		t.Fatalf("Failed to create test competitor: %v", err)
	}

	for i, sex := range sexes {
		_, err := conn.Exec(`
			INSERT INTO competitor_members (id, competitor_id, name, age, sex)
			VALUES ($1, $2, $3, $4, $5)
		`, id*100+int64(i), id, club+" member", 18, sex)
		if err != nil {
			t.Fatalf("Failed to create test member: %v", err)
		}
	}

	return id
}

// InsertTestScore writes a mark directly, bypassing role and mirroring rules.
func InsertTestScore(t *testing.T, conn *sql.DB, judgeID, competitorID int64, scoreType models.ScoreType, value float64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO scores (judge_id, competitor_id, score_type, value)
		VALUES ($1, $2, $3, $4)
	`, judgeID, competitorID, scoreType, value)
	if err != nil {
		t.Fatalf("Failed to create test score: %v", err)
	}
}

// FillTestScores writes a complete mark set for a competitor on panel p:
// execution and artistry 9.0, difficulty 8.0, no penalties.
func FillTestScores(t *testing.T, conn *sql.DB, p Panel, competitorID int64) {
	t.Helper()

	for _, j := range p.Execution {
		InsertTestScore(t, conn, j, competitorID, models.ScoreExecution, 9.0)
	}
	for _, j := range p.Artistry {
		InsertTestScore(t, conn, j, competitorID, models.ScoreArtistry, 9.0)
	}
	for _, j := range p.Difficulty {
		InsertTestScore(t, conn, j, competitorID, models.ScoreDifficulty, 8.0)
		InsertTestScore(t, conn, j, competitorID, models.ScoreDifficultyPenalization, 0)
	}
	InsertTestScore(t, conn, p.Principal, competitorID, models.ScoreLinePenalization, 0)
	InsertTestScore(t, conn, p.Principal, competitorID, models.ScorePrincipalPenalization, 0)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
