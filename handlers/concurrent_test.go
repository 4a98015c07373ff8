// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/scoring"
	"github.com/danielhkuo/gimnis/testutil"
)

// TestConcurrentScoreSubmissions verifies that the whole panel submitting
// at once leaves exactly one row per (judge, score type)
func TestConcurrentScoreSubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewScoreHandler(db, testutil.GetTestConfig(), scoring.DefaultRules())

	panel := testutil.CreateTestPanel(t, db)
	testutil.CreateTestCompetitor(t, db, 1, "Trio - Seniors", "Club A",
		models.SexFemale, models.SexMale, models.SexFemale)

	type submission struct {
		judge int64
		typ   models.ScoreType
		value float64
	}
	var subs []submission
	for i, j := range panel.Execution {
		subs = append(subs, submission{j, models.ScoreExecution, 8.0 + float64(i)/10})
	}
	for i, j := range panel.Artistry {
		subs = append(subs, submission{j, models.ScoreArtistry, 8.5 + float64(i)/10})
	}
	// both difficulty judges send, mirrored writes must still end as twins
	subs = append(subs,
		submission{panel.Difficulty[0], models.ScoreDifficulty, 7.0},
		submission{panel.Difficulty[1], models.ScoreDifficulty, 7.4},
		submission{panel.Difficulty[0], models.ScoreDifficultyPenalization, 0.2},
		submission{panel.Principal, models.ScoreLinePenalization, 0.1},
		submission{panel.Principal, models.ScorePrincipalPenalization, 0},
	)

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for round := 0; round < 3; round++ {
		for _, s := range subs {
			wg.Add(1)
			go func(s submission) {
				defer wg.Done()

				req := testutil.MakeRequest("POST", "/scores", models.SubmitScoreRequest{
					JudgeID: s.judge, CompetitorID: 1, ScoreType: s.typ, Value: float(s.value),
				}, nil)
				w := httptest.NewRecorder()
				handler.SubmitScore(w, req)

				if w.Code == http.StatusCreated {
					successCount.Add(1)
				}
			}(s)
		}
	}
	wg.Wait()

	if int(successCount.Load()) != 3*len(subs) {
		t.Errorf("Expected %d successful submissions, got %d", 3*len(subs), successCount.Load())
	}

	var rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM scores WHERE competitor_id = 1`).Scan(&rows); err != nil {
		t.Fatalf("Failed to count scores: %v", err)
	}
	// 4 + 4 execution/artistry, 2 + 2 difficulty panel, 2 principal
	if rows != 14 {
		t.Errorf("Expected 14 score rows, got %d", rows)
	}

	var distinct int
	db.QueryRow(`
		SELECT COUNT(DISTINCT value) FROM scores WHERE competitor_id = 1 AND score_type = 'difficulty'
	`).Scan(&distinct)
	if distinct != 1 {
		t.Errorf("Expected twin difficulty marks, got %d distinct values", distinct)
	}
}

// TestConcurrentValidation verifies that of many simultaneous validate
// calls exactly one freezes the competitor
func TestConcurrentValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewCompetitorHandler(db, scoring.DefaultRules())

	panel := testutil.CreateTestPanel(t, db)
	testutil.CreateTestCompetitor(t, db, 1, "Individual - Seniors", "Club A", models.SexMale)
	testutil.FillTestScores(t, db, panel, 1)

	numAttempts := 6
	var okCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/competitors/1/validate", nil, nil)
			req.SetPathValue("id", "1")
			w := httptest.NewRecorder()
			handler.Validate(w, req)

			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if okCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful validation, got %d", okCount.Load())
	}
	if int(conflictCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}
}

// TestConcurrentEditAndValidate races score edits against validation;
// whatever was frozen must match the marks stored afterwards
func TestConcurrentEditAndValidate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	rules := scoring.DefaultRules()
	scoreHandler := NewScoreHandler(db, cfg, rules)
	competitorHandler := NewCompetitorHandler(db, rules)

	panel := testutil.CreateTestPanel(t, db)
	testutil.CreateTestCompetitor(t, db, 1, "Individual - Seniors", "Club A", models.SexMale)
	testutil.FillTestScores(t, db, panel, 1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/scores", models.SubmitScoreRequest{
				JudgeID: panel.Principal, CompetitorID: 1, ScoreType: models.ScorePrincipalPenalization, Value: float(float64(i) / 10),
			}, nil)
			scoreHandler.SubmitScore(httptest.NewRecorder(), req)
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		req := testutil.MakeRequest("POST", "/competitors/1/validate", nil, nil)
		req.SetPathValue("id", "1")
		competitorHandler.Validate(httptest.NewRecorder(), req)
	}()
	wg.Wait()

	var frozen float64
	var penalty float64
	if err := db.QueryRow(`SELECT frozen_total FROM competitors WHERE id = 1`).Scan(&frozen); err != nil {
		t.Fatalf("Failed to read frozen total: %v", err)
	}
	db.QueryRow(`SELECT value FROM scores WHERE competitor_id = 1 AND score_type = 'principal_penalization'`).Scan(&penalty)

	// complete fill gives 9 + 9 + 8/2 = 22 before penalties
	want := scoring.Round3(22.0 - penalty)
	if frozen != want {
		t.Errorf("Frozen total %v does not match stored marks (want %v)", frozen, want)
	}
}
