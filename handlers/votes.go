// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/danielhkuo/gimnis/middleware"
	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/session"
)

type VoteHandler struct {
	session *session.Coordinator
}

func NewVoteHandler(db *sql.DB) *VoteHandler {
	return &VoteHandler{session: session.New(db)}
}

// StartVote handles POST /votes/start
func (h *VoteHandler) StartVote(w http.ResponseWriter, r *http.Request) {
	var req models.StartVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CompetitorID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "competitor_id is required")
		return
	}

	if err := h.session.StartVote(r.Context(), req.CompetitorID); err != nil {
		writeError(w, r, err, "start vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Vote started",
	})
}

// StopVote handles POST /votes/stop
func (h *VoteHandler) StopVote(w http.ResponseWriter, r *http.Request) {
	if err := h.session.StopVote(r.Context()); err != nil {
		writeError(w, r, err, "stop vote")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Vote stopped",
	})
}

// CurrentVote handles GET /votes/current?judge_id=
func (h *VoteHandler) CurrentVote(w http.ResponseWriter, r *http.Request) {
	var judgeID *int64
	if s := r.URL.Query().Get("judge_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid judge_id")
			return
		}
		judgeID = &id
	}

	vs, err := h.session.CurrentVote(r.Context(), judgeID)
	if err != nil {
		writeError(w, r, err, "read current vote")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, vs)
}
