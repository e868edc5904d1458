package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bike-dashboard/internal/store"
	"bike-dashboard/pkg/router"
)

const runsPrefix = "/api/v1/runs/"

// ListRuns retrieves the run history
// @Summary List runs
// @Description Most recent dashboard runs first
// @Tags runs
// @Produce json
// @Param limit query int false "Maximum number of runs" default(100)
// @Success 200 {array} model.Run "Runs"
// @Failure 503 {object} ErrorResponse "Run history disabled"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /runs [get]
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	runs, err := store.ListRuns(limit)
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// GetRun retrieves a specific run with its errors
// @Summary Get run
// @Description Retrieve one run and the errors recorded against it
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} model.Run "Run details"
// @Failure 404 {object} ErrorResponse "Run not found"
// @Failure 503 {object} ErrorResponse "Run history disabled"
// @Router /runs/{id} [get]
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := router.PathParam(r.URL.Path, runsPrefix)
	if runID == "" {
		writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		h.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (h *Handler) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Errorf("Run history query failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch runs")
	}
}

// Health reports liveness and whether run history is available.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"run_history": store.Enabled(),
	})
}
