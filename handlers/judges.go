// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gimnis/directory"
	"github.com/danielhkuo/gimnis/middleware"
	"github.com/danielhkuo/gimnis/scores"
)

type JudgeHandler struct {
	dir   *directory.Directory
	store *scores.Store
}

func NewJudgeHandler(db *sql.DB) *JudgeHandler {
	return &JudgeHandler{dir: directory.New(db), store: scores.New(db)}
}

// ListJudges handles GET /judges
func (h *JudgeHandler) ListJudges(w http.ResponseWriter, r *http.Request) {
	judges, err := h.dir.ListJudges(r.Context())
	if err != nil {
		writeError(w, r, err, "list judges")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, judges)
}

// GetJudgeScores handles GET /judges/{id}/scores
func (h *JudgeHandler) GetJudgeScores(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid judge id")
		return
	}

	list, err := h.store.JudgeScores(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "get judge scores")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}
