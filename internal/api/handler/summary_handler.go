package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"bike-dashboard/internal/pipeline"
	"bike-dashboard/pkg/utils"
)

// Summary returns the derived tables.
// @Summary Get summary tables
// @Description Mean rentals per season, weather and working day plus monthly totals per year
// @Tags summary
// @Produce json
// @Success 200 {object} model.Summary "Derived tables"
// @Failure 500 {object} ErrorResponse "Load failure"
// @Router /summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := pipeline.LoadSummary(r.Context(), h.opts)
	if err != nil {
		h.log.Errorf("Summary failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ExportSummary streams the derived tables as a download.
// @Summary Export summary tables
// @Description Download the derived tables as CSV, JSON or XLSX
// @Tags summary
// @Produce octet-stream
// @Param format query string false "csv, json or xlsx" default(csv)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponse "Unsupported format"
// @Failure 500 {object} ErrorResponse "Load failure"
// @Router /summary/export [get]
func (h *Handler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatCSV
	}
	switch format {
	case pipeline.FormatCSV, pipeline.FormatJSON, pipeline.FormatXLSX:
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format: "+format)
		return
	}

	summary, err := pipeline.LoadSummary(r.Context(), h.opts)
	if err != nil {
		h.log.Errorf("Export failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Buffered so a failed export can still answer with a JSON error.
	var buf bytes.Buffer
	res, err := pipeline.WriteSummary(&buf, summary, format)
	if err != nil {
		h.log.Errorf("Export failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.log.WithFields(map[string]interface{}{
		"format": res.Format,
		"rows":   res.RecordCount,
		"bytes":  res.Bytes,
	}).Info("Summary exported")

	w.Header().Set("Content-Type", utils.ContentType(res.FileName))
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(res.Bytes))
	w.Write(buf.Bytes())
}
