package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"bike-dashboard/internal/api/handler"
	"bike-dashboard/internal/chart"
	"bike-dashboard/internal/model"
	"bike-dashboard/internal/pipeline"
	"bike-dashboard/internal/store"
	"bike-dashboard/pkg/logger"
	"bike-dashboard/pkg/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const rentalsCSV = `date,season,weathersit,is_working_day,total_rentals
2011-01-01,1,2,0,985
2011-01-03,1,1,1,1349
2011-03-01,1,1,1,1600
2011-06-15,2,1,1,5180
2011-09-30,4,3,1,4511
2012-07-04,3,1,0,7403
`

func newTestServer(t *testing.T, csvContent string, withStore bool) http.Handler {
	t.Helper()
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "day.csv")
	require.NoError(t, os.WriteFile(dataPath, []byte(csvContent), 0644))

	if withStore {
		require.NoError(t, store.InitDB(filepath.Join(dir, "runs.db")))
	}
	t.Cleanup(func() { store.Close() })

	opts := pipeline.Options{
		DataPath: dataPath,
		Summary:  pipeline.SummaryOptions{Resample: pipeline.ResampleOptions{FillGaps: true}},
		Layout:   pipeline.Layout{BarWidth: 640, BarHeight: 360, LineWidth: 640, LineHeight: 360},
		Format:   chart.PNG,
	}

	r := router.New(logger.Nop())
	RegisterRoutes(r, handler.New(opts, logger.Nop()), true)
	return r.Handler()
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestDashboardPage(t *testing.T) {
	srv := newTestServer(t, rentalsCSV, true)

	rec := get(srv, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "Bike Sharing Dashboard")
	assert.Contains(t, body, "Season and Weather Effect")
	assert.Contains(t, body, "Bike Rentals Trends in 2011 and 2012")
	assert.Equal(t, 5, bytes.Count(rec.Body.Bytes(), []byte(`src="data:image/png;base64,`)))
}

func TestChartEndpoint(t *testing.T) {
	srv := newTestServer(t, rentalsCSV, true)

	rec := get(srv, "/api/v1/charts/monthly-2011")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	runID := rec.Header().Get("X-Run-ID")
	require.NotEmpty(t, runID)

	rec = get(srv, "/api/v1/runs/"+runID)
	require.Equal(t, http.StatusOK, rec.Code)
	var run model.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, model.RunCompleted, run.Status)
	assert.Equal(t, model.TriggerHTTP, run.Trigger)
	assert.Equal(t, 6, run.RecordCount)

	rec = get(srv, "/api/v1/charts/pie")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t, rentalsCSV, false)

	rec := get(srv, "/api/v1/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var summary model.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 6, summary.RecordCount)
	assert.Equal(t, []string{"Spring", "Summer", "Fall", "Winter"}, summary.Season.Labels())
	assert.Equal(t, []string{"Not Working Day", "Working Day"}, summary.WorkingDay.Labels())
	require.Len(t, summary.Monthly, 2)
	assert.Len(t, summary.Monthly[0].Points, 9)
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t, rentalsCSV, false)

	rec := get(srv, "/api/v1/summary/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bike-rentals-summary.csv")
	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "table", rows[0][0])

	rec = get(srv, "/api/v1/summary/export?format=xlsx")
	require.Equal(t, http.StatusOK, rec.Code)
	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Season")

	rec = get(srv, "/api/v1/summary/export?format=parquet")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoadFailureIsServerError(t *testing.T) {
	srv := newTestServer(t, "date,season\n2011-01-01,1\n", true)

	for _, path := range []string{"/", "/api/v1/charts/season", "/api/v1/summary"} {
		rec := get(srv, path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)

		var body handler.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Error, "missing required column", path)
	}

	rec := get(srv, "/api/v1/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	var runs []model.Run
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 2)
	for _, run := range runs {
		assert.Equal(t, model.RunFailed, run.Status)
	}
}

func TestRunsWithoutStore(t *testing.T) {
	srv := newTestServer(t, rentalsCSV, false)

	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/api/v1/runs").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/api/v1/runs/abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(srv, "/api/v1/runs?limit=x").Code)
}

func TestRunNotFound(t *testing.T) {
	srv := newTestServer(t, rentalsCSV, true)
	assert.Equal(t, http.StatusNotFound, get(srv, "/api/v1/runs/missing").Code)
}

func TestHealthAndSwagger(t *testing.T) {
	srv := newTestServer(t, rentalsCSV, true)

	rec := get(srv, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","run_history":true}`, rec.Body.String())

	rec = get(srv, "/swagger/doc.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bike Sharing Dashboard API")

	var doc struct {
		BasePath string                     `json:"basePath"`
		Paths    map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)
	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	// every documented path is served under the base path
	assert.ElementsMatch(t, []string{"/charts/{name}", "/summary", "/summary/export", "/runs", "/runs/{id}"}, paths)
}
