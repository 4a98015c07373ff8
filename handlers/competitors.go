// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/gimnis/middleware"
	"github.com/danielhkuo/gimnis/models"
	"github.com/danielhkuo/gimnis/scoring"
	"github.com/danielhkuo/gimnis/validation"
)

type CompetitorHandler struct {
	validation *validation.Manager
}

func NewCompetitorHandler(db *sql.DB, rules scoring.Rules) *CompetitorHandler {
	return &CompetitorHandler{validation: validation.New(db, rules)}
}

// Validate handles POST /competitors/{id}/validate
func (h *CompetitorHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid competitor id")
		return
	}

	b, err := h.validation.Validate(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "validate competitor")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ValidateResponse{
		CompetitorID: id,
		FrozenTotal:  b.Total,
		Breakdown:    b,
		Message:      "Competitor validated",
	})
}

// Unvalidate handles DELETE /competitors/{id}/validate
func (h *CompetitorHandler) Unvalidate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid competitor id")
		return
	}

	if err := h.validation.Unvalidate(r.Context(), id); err != nil {
		writeError(w, r, err, "unvalidate competitor")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: "Competitor unvalidated",
	})
}

// ListCompetitors handles GET /competitors?category=
func (h *CompetitorHandler) ListCompetitors(w http.ResponseWriter, r *http.Request) {
	list, err := h.validation.ListCompetitors(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err, "list competitors")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, list)
}
