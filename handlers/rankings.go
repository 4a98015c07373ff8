// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gimnis/middleware"
	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/ranking"
)

type RankingHandler struct {
	ranking *ranking.Engine
}

func NewRankingHandler(db *sql.DB) *RankingHandler {
	return &RankingHandler{ranking: ranking.New(db)}
}

// GetRankings handles GET /rankings, optionally narrowed by ?category=
func (h *RankingHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		entries, err := h.ranking.Category(r.Context(), category)
		if err != nil {
			writeError(w, r, err, "get rankings")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.Rankings{category: entries})
		return
	}

	rankings, err := h.ranking.GetRankings(r.Context())
	if err != nil {
		writeError(w, r, err, "get rankings")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rankings)
}
