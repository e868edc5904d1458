package handler

import (
	"encoding/json"
	"net/http"

	"bike-dashboard/internal/model"
	"bike-dashboard/internal/pipeline"
	"bike-dashboard/pkg/logger"

	"github.com/google/uuid"
)

// Handler serves the dashboard and its API. Every request works on a fresh
// load of the dataset.
type Handler struct {
	opts pipeline.Options
	log  logger.Logger
}

func New(opts pipeline.Options, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	opts.Logger = log
	return &Handler{opts: opts, log: logger.WithComponent(log, "api")}
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) run(r *http.Request) (*pipeline.Result, error) {
	return pipeline.Run(r.Context(), uuid.New().String(), model.TriggerHTTP, h.opts)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
