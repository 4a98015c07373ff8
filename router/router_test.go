// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/scoring"
	"github.com/danielhkuo/gimnis/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, scoring.DefaultRules())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, scoring.DefaultRules())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "gimnis scoring API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	req = httptest.NewRequest("GET", "/nope", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	mux := NewRouter(db, testutil.GetTestConfig(), scoring.DefaultRules())

	// one logged request so the HTTP series exist
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/rankings", nil))

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "gimnis_scoring_http_requests_total") {
		t.Errorf("Expected HTTP request counter in metrics output")
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, scoring.DefaultRules())

	// Test that routes respond (handler is invoked)
	// Note: Some routes return 400/403/404 for missing data, which is valid handler behavior
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/metrics"},

		{"POST", "/scores"},
		{"DELETE", "/scores"},
		{"GET", "/scores"},
		{"GET", "/scores/1"},
		{"PUT", "/scores/1"},
		{"GET", "/scores/1/preview"},

		{"GET", "/competitors"},
		{"POST", "/competitors/1/validate"},
		{"DELETE", "/competitors/1/validate"},

		{"POST", "/votes/start"},
		{"POST", "/votes/stop"},
		{"GET", "/votes/current"},

		{"GET", "/judges"},
		{"GET", "/judges/1/scores"},
		{"GET", "/rankings"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, scoring.DefaultRules())

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"PUT to rankings", "PUT", "/rankings", http.StatusMethodNotAllowed},
		{"GET to vote start", "GET", "/votes/start", http.StatusMethodNotAllowed},
		{"PUT to validate", "PUT", "/competitors/1/validate", http.StatusMethodNotAllowed},
		{"POST to root", "POST", "/", http.StatusMethodNotAllowed},
		{"unknown path", "GET", "/nope", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestSecretaryRoutesRequireKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg, scoring.DefaultRules())
	testutil.CreateTestCompetitor(t, db, 1, "Individual - Seniors", "Club A", models.SexFemale)

	body := models.StartVoteRequest{CompetitorID: 1}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes/start", body, nil))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes/start", body, map[string]string{
		"X-Secretary-Key": testutil.TestSecretaryKey,
	}))
	testutil.AssertStatus(t, w, http.StatusOK)

	// judge routes stay open
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/votes/current", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	panel := testutil.CreateTestPanel(t, db)
	testutil.CreateTestCompetitor(t, db, 7, "Individual - Seniors", "Club A", models.SexFemale)
	testutil.FillTestScores(t, db, panel, 7)

	mux := NewRouter(db, cfg, scoring.DefaultRules())

	t.Run("competitor ID extraction", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/scores/7", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.CompetitorScores
		testutil.AssertJSON(t, w, &resp)
		if resp.CompetitorID != 7 || len(resp.Scores) != 14 {
			t.Errorf("Unexpected response %+v", resp)
		}
	})

	t.Run("validate by path", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("POST", "/competitors/7/validate", nil, map[string]string{
			"X-Secretary-Key": testutil.TestSecretaryKey,
		}))
		testutil.AssertStatus(t, w, http.StatusOK)
	})
}
