// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/gimnis/models"
)

func TestWithLogging(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"judge_id":3}`},
		{"Conflict", http.StatusConflict, `{"error":"Conflict"}`},
		{"Unprocessable", http.StatusUnprocessableEntity, "incomplete"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest("POST", "/scores", nil))

			if !called {
				t.Fatal("Expected handler to be called")
			}
			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	rec.Write([]byte("body"))
	if rec.status != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.status)
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected implicit 200 written, got %d", w.Code)
	}

	fresh := httptest.NewRecorder()
	rec = &statusRecorder{ResponseWriter: fresh, status: http.StatusOK}
	rec.WriteHeader(http.StatusConflict)
	if rec.status != http.StatusConflict || fresh.Code != http.StatusConflict {
		t.Errorf("Expected 409 recorded and written, got %d/%d", rec.status, fresh.Code)
	}
}

func TestWithRequestID(t *testing.T) {
	var seen string
	handler := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		if len(seen) != 36 {
			t.Errorf("Expected a UUID, got %q", seen)
		}
		if w.Header().Get(RequestIDHeader) != seen {
			t.Error("Expected response header to echo the request id")
		}
	})

	t.Run("reuses caller id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if seen != "abc-123" {
			t.Errorf("Expected caller id, got %q", seen)
		}
	})

	if RequestID(context.Background()) != "" {
		t.Error("Expected empty id outside a request")
	}
}

func TestRequireSecretary(t *testing.T) {
	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }

	testCases := []struct {
		name     string
		key      string
		header   string
		expected int
	}{
		{"no key configured", "", "", http.StatusNoContent},
		{"missing header", "desk", "", http.StatusForbidden},
		{"wrong key", "desk", "nope", http.StatusForbidden},
		{"right key", "desk", "desk", http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/votes/stop", nil)
			if tc.header != "" {
				req.Header.Set("X-Secretary-Key", tc.header)
			}
			w := httptest.NewRecorder()

			RequireSecretary(tc.key, ok)(w, req)

			if w.Code != tc.expected {
				t.Errorf("Expected status %d, got %d", tc.expected, w.Code)
			}
		})
	}
}


func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{"message", http.StatusOK, models.MessageResponse{Success: true, Message: "vote stopped"}, `{"success":true,"message":"vote stopped"}`},
		{"update count", http.StatusOK, models.UpdateScoresResponse{Success: true, Updated: 3}, `{"success":true,"updated":3}`},
		{"ranking list", http.StatusOK, []models.RankingEntry{}, `[]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
			}
			if body := strings.TrimSpace(w.Body.String()); body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusUnprocessableEntity, "difficulty_penalization: 1 of 2 marks")

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", w.Code)
	}
	expected := `{"error":"Unprocessable Entity","message":"difficulty_penalization: 1 of 2 marks"}`
	if body := strings.TrimSpace(w.Body.String()); body != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, body)
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("submit request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/scores", strings.NewReader(
			`{"judge_id":2,"competitor_id":7,"score_type":"execution","value":8.5}`))

		var got models.SubmitScoreRequest
		if err := ParseJSONBody(req, &got); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.JudgeID != 2 || got.CompetitorID != 7 || got.ScoreType != models.ScoreExecution {
			t.Errorf("Unexpected request %+v", got)
		}
	})

	for name, body := range map[string]string{
		"malformed":  `{"judge_id":`,
		"empty":      ``,
		"wrong type": `{"competitor_id":"seven"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/scores", strings.NewReader(body))
			var got models.SubmitScoreRequest
			if err := ParseJSONBody(req, &got); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS(inner)

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/votes/start", nil)
		req.Header.Set("Origin", "http://console.local")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for preflight, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://console.local" {
			t.Errorf("Expected origin echoed, got %q", got)
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "X-Secretary-Key") {
			t.Error("Expected X-Secretary-Key to be allowed")
		}
	})

	t.Run("passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/rankings", nil))

		if w.Code != http.StatusTeapot {
			t.Errorf("Expected inner handler status, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Expected '*' without Origin, got %q", got)
		}
		if got := w.Header().Get("Access-Control-Expose-Headers"); got != RequestIDHeader {
			t.Errorf("Expected request id header exposed, got %q", got)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{"remote addr", "10.0.0.4:5123", nil, "10.0.0.4"},
		{"ipv6 remote addr", "[::1]:8080", nil, "::1"},
		{"no port", "10.0.0.4", nil, "10.0.0.4"},
		{"forwarded chain", "10.0.0.4:1", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "203.0.113.9"},
		{"real ip", "10.0.0.4:1", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"forwarded wins", "10.0.0.4:1", map[string]string{"X-Forwarded-For": "203.0.113.9", "X-Real-IP": "198.51.100.2"}, "203.0.113.9"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}
