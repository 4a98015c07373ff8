// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/gimnis/cliparse"
	"github.com/danielhkuo/gimnis/middleware"
	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/scores"
	"github.com/danielhkuo/gimnis/scoring"
	"github.com/danielhkuo/gimnis/validation"
)

type ScoreHandler struct {
	store      *scores.Store
	validation *validation.Manager
}

func NewScoreHandler(db *sql.DB, cfg cliparse.Config, rules scoring.Rules) *ScoreHandler {
	return &ScoreHandler{
		store:      scores.New(db).RequireActiveVote(cfg.RequireActiveVote),
		validation: validation.New(db, rules),
	}
}

// SubmitScore handles POST /scores
func (h *ScoreHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.JudgeID <= 0 || req.CompetitorID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "judge_id and competitor_id are required")
		return
	}
	if req.Value == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value is required")
		return
	}

	rec, err := h.store.Submit(r.Context(), req.JudgeID, req.CompetitorID, req.ScoreType, *req.Value)
	if err != nil {
		writeError(w, r, err, "submit score")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, rec)
}

// DeleteScore handles DELETE /scores
func (h *ScoreHandler) DeleteScore(w http.ResponseWriter, r *http.Request) {
	var req models.DeleteScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.JudgeID <= 0 || req.CompetitorID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "judge_id and competitor_id are required")
		return
	}

	n, err := h.store.Delete(r.Context(), req.JudgeID, req.CompetitorID, req.ScoreType)
	if err != nil {
		writeError(w, r, err, "delete score")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: fmt.Sprintf("deleted %d score(s)", n),
	})
}

// ListScores handles GET /scores
func (h *ScoreHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.ListScores(r.Context())
	if err != nil {
		writeError(w, r, err, "list scores")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, all)
}

// GetCompetitorScores handles GET /scores/{competitorId}
func (h *ScoreHandler) GetCompetitorScores(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "competitorId")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid competitor id")
		return
	}

	cs, err := h.validation.CompetitorScores(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "get competitor scores")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, cs)
}

// UpdateScores handles PUT /scores/{competitorId}
func (h *ScoreHandler) UpdateScores(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "competitorId")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid competitor id")
		return
	}

	var req models.UpdateScoresRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	edits, err := parseEdits(req.Scores)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	updated := 0
	if len(edits) > 0 {
		updated, err = h.store.BulkEdit(r.Context(), id, edits)
		if err != nil {
			writeError(w, r, err, "update scores")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.UpdateScoresResponse{
		Success: true,
		Updated: updated,
	})
}

// PreviewScores handles GET /scores/{competitorId}/preview
func (h *ScoreHandler) PreviewScores(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "competitorId")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid competitor id")
		return
	}

	b, err := h.validation.Preview(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "preview scores")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, b)
}

// parseEdits keeps numeric entries and skips "N/A", empty and null ones.
// Numbers may arrive as JSON numbers or numeric strings.
func parseEdits(raw map[string]interface{}) (map[string]float64, error) {
	edits := make(map[string]float64, len(raw))
	for label, v := range raw {
		switch val := v.(type) {
		case nil:
			continue
		case float64:
			edits[label] = val
		case string:
			s := strings.TrimSpace(val)
			if s == "" || strings.EqualFold(s, "N/A") {
				continue
			}
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("score %q: %q is not a number", label, val)
			}
			edits[label] = f
		default:
			return nil, fmt.Errorf("score %q: unsupported value %v", label, v)
		}
	}
	return edits, nil
}
