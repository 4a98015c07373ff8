// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gimnis/cliparse"
	"github.com/danielhkuo/gimnis/handlers"
	"github.com/danielhkuo/gimnis/metrics"
	"github.com/danielhkuo/gimnis/middleware"
	"github.com/danielhkuo/gimnis/scoring"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, rules scoring.Rules) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	scoreHandler := handlers.NewScoreHandler(db, cfg, rules)
	voteHandler := handlers.NewVoteHandler(db)
	competitorHandler := handlers.NewCompetitorHandler(db, rules)
	rankingHandler := handlers.NewRankingHandler(db)
	judgeHandler := handlers.NewJudgeHandler(db)

	logged := middleware.WithLogging
	secretary := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireSecretary(cfg.SecretaryKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Get().Handler())

	// Judge operations
	mux.HandleFunc("POST /scores", logged(scoreHandler.SubmitScore))
	mux.HandleFunc("DELETE /scores", logged(scoreHandler.DeleteScore))
	mux.HandleFunc("GET /votes/current", logged(voteHandler.CurrentVote))

	// Read-only views
	mux.HandleFunc("GET /scores", logged(scoreHandler.ListScores))
	mux.HandleFunc("GET /scores/{competitorId}", logged(scoreHandler.GetCompetitorScores))
	mux.HandleFunc("GET /scores/{competitorId}/preview", logged(scoreHandler.PreviewScores))
	mux.HandleFunc("GET /competitors", logged(competitorHandler.ListCompetitors))
	mux.HandleFunc("GET /judges", logged(judgeHandler.ListJudges))
	mux.HandleFunc("GET /judges/{id}/scores", logged(judgeHandler.GetJudgeScores))
	mux.HandleFunc("GET /rankings", logged(rankingHandler.GetRankings))

	// Secretary operations
	mux.HandleFunc("POST /votes/start", secretary(voteHandler.StartVote))
	mux.HandleFunc("POST /votes/stop", secretary(voteHandler.StopVote))
	mux.HandleFunc("PUT /scores/{competitorId}", secretary(scoreHandler.UpdateScores))
	mux.HandleFunc("POST /competitors/{id}/validate", secretary(competitorHandler.Validate))
	mux.HandleFunc("DELETE /competitors/{id}/validate", secretary(competitorHandler.Unvalidate))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("gimnis scoring API v1"))
	})

	return mux
}
