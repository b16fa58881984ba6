package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/riftlab/build-optimizer/internal/logic"
)

// GetRecentRuns returns the most recent optimizer runs, newest first.
// An optional ?limit= query parameter caps the number of rows.
func (h *Handler) GetRecentRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	runs, err := h.runs.RecentRuns(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to fetch recent runs", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to fetch runs")
		return
	}
	h.jsonResponse(w, http.StatusOK, runs)
}

// GetRun returns a single optimizer run by ID.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.runs.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, logic.ErrRunNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Run not found")
			return
		}
		h.logger.Errorw("Failed to fetch run", "runID", id, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to fetch run")
		return
	}
	h.jsonResponse(w, http.StatusOK, run)
}

// GetChampions returns per-champion aggregates ordered by games played.
func (h *Handler) GetChampions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	champions, err := h.championStats.Champions(r.Context(), limit)
	if err != nil {
		h.logger.Errorw("Failed to fetch champion stats", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to fetch champions")
		return
	}
	h.jsonResponse(w, http.StatusOK, champions)
}

// GetChampion returns aggregates for one champion.
func (h *Handler) GetChampion(w http.ResponseWriter, r *http.Request) {
	championID, err := strconv.Atoi(chi.URLParam(r, "championID"))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid champion ID")
		return
	}

	champion, err := h.championStats.Champion(r.Context(), championID)
	if err != nil {
		h.logger.Errorw("Failed to fetch champion stats", "championID", championID, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to fetch champion")
		return
	}
	h.jsonResponse(w, http.StatusOK, champion)
}

// GetInsights returns the exploratory analysis for the optimized champion.
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.insights.Insights(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to fetch insights", "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to fetch insights")
		return
	}
	h.jsonResponse(w, http.StatusOK, insights)
}
