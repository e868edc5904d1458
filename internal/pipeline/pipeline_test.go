package pipeline

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bike-dashboard/internal/chart"
	"bike-dashboard/internal/config"
	"bike-dashboard/internal/model"
	"bike-dashboard/internal/store"
	"bike-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions(dataPath string) Options {
	return Options{
		DataPath: dataPath,
		Summary:  SummaryOptions{Resample: ResampleOptions{FillGaps: true}},
		Layout:   Layout{BarWidth: 640, BarHeight: 360, LineWidth: 640, LineHeight: 360},
		Format:   chart.SVG,
		Logger:   logger.Nop(),
	}
}

func initStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	require.NoError(t, store.InitDB(path))
	t.Cleanup(func() { store.Close() })
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	initStore(t)

	res, err := Run(context.Background(), "run-ok", model.TriggerCLI, testOptions(writeTempCSV(t, sampleCSV)))
	require.NoError(t, err)

	assert.Equal(t, "run-ok", res.RunID)
	assert.Equal(t, 8, res.Summary.RecordCount)
	require.Len(t, res.Artifacts, 5)
	for _, a := range res.Artifacts {
		assert.Equal(t, "image/svg+xml", a.ContentType)
		assert.True(t, bytes.Contains(a.Data, []byte("<svg")), a.Name)
	}

	trend, ok := res.Artifact("monthly-2012")
	require.True(t, ok)
	assert.Equal(t, "Monthly Bike Rentals (2012)", trend.Title)
	_, ok = res.Artifact("pie")
	assert.False(t, ok)

	// 2011 spans Jan..Sep with zero-filled gaps
	require.Len(t, res.Summary.Monthly, 2)
	assert.Len(t, res.Summary.Monthly[0].Points, 9)

	require.Len(t, res.Stages, 3)
	for i, stage := range []string{StageLoad, StageAggregate, StageRender} {
		assert.Equal(t, stage, res.Stages[i].Stage)
		assert.Equal(t, "completed", res.Stages[i].Status)
	}
	assert.Equal(t, 5, res.Stages[2].RecordsProcessed)

	run, err := store.GetRun("run-ok")
	require.NoError(t, err)
	assert.Equal(t, model.RunCompleted, run.Status)
	assert.Equal(t, 8, run.RecordCount)
	assert.Equal(t, 5, run.ChartCount)
	assert.Empty(t, run.Errors)
}

func TestRun_LoadFailureIsRecorded(t *testing.T) {
	initStore(t)

	bad := writeTempCSV(t, "date,season\n2011-01-01,1\n")
	_, err := Run(context.Background(), "run-bad", model.TriggerHTTP, testOptions(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)

	run, err := store.GetRun("run-bad")
	require.NoError(t, err)
	assert.Equal(t, model.RunFailed, run.Status)
	require.Len(t, run.Errors, 1)
	assert.Contains(t, run.Errors[0].Message, "missing required column")
}

func TestRun_UnknownYear(t *testing.T) {
	opts := testOptions(writeTempCSV(t, sampleCSV))
	opts.Summary.Years = []int{2015}

	_, err := Run(context.Background(), "run-year", model.TriggerCLI, opts)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, "run-cancel", model.TriggerCLI, testOptions(writeTempCSV(t, sampleCSV)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Defaults(t *testing.T) {
	res, err := Run(context.Background(), "run-defaults", model.TriggerCLI, Options{DataPath: writeTempCSV(t, sampleCSV)})
	require.NoError(t, err)
	require.NotEmpty(t, res.Artifacts)
	assert.Equal(t, "image/png", res.Artifacts[0].ContentType)
	assert.Equal(t, DefaultLayout.BarWidth, res.Dashboard.Charts()[0].Width)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		Data:        config.DataConfig{Path: "day.csv"},
		Aggregation: config.AggregationConfig{Years: []int{2011}, ZeroFillGaps: true},
		Render:      config.RenderConfig{Format: "svg", BarWidth: 1, BarHeight: 2, LineWidth: 3, LineHeight: 4},
	}

	opts, err := OptionsFromConfig(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "day.csv", opts.DataPath)
	assert.Equal(t, chart.SVG, opts.Format)
	assert.Equal(t, []int{2011}, opts.Summary.Years)
	assert.True(t, opts.Summary.Resample.FillGaps)
	assert.Equal(t, Layout{BarWidth: 1, BarHeight: 2, LineWidth: 3, LineHeight: 4}, opts.Layout)

	cfg.Render.Format = "gif"
	_, err = OptionsFromConfig(cfg, logger.Nop())
	assert.Error(t, err)
}

func TestRun_Duration(t *testing.T) {
	res, err := Run(context.Background(), "run-duration", model.TriggerCLI, testOptions(writeTempCSV(t, sampleCSV)))
	require.NoError(t, err)
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestRun_SingleMonthYear(t *testing.T) {
	csv := `date,season,weathersit,is_working_day,total_rentals
2011-01-01,1,2,0,985
2011-02-01,1,2,1,1360
2012-07-04,3,1,0,7403
`
	res, err := Run(context.Background(), "run-single-month", model.TriggerCLI, testOptions(writeTempCSV(t, csv)))
	require.NoError(t, err)
	require.Len(t, res.Artifacts, 5)

	trend, ok := res.Artifact("monthly-2012")
	require.True(t, ok)
	assert.True(t, bytes.Contains(trend.Data, []byte("Jul")))
	require.Len(t, res.Summary.Monthly, 2)
	assert.Len(t, res.Summary.Monthly[1].Points, 1)
}

func TestRun_StoreFailuresAreLogged(t *testing.T) {
	path := initStore(t)

	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = conn.Exec(`DROP TABLE runs`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	var buf bytes.Buffer
	opts := testOptions(writeTempCSV(t, sampleCSV))
	opts.Logger = logger.NewWithWriter("warn", &buf)

	_, err = Run(context.Background(), "run-no-table", model.TriggerCLI, opts)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Failed to save run")
	assert.Equal(t, 2, strings.Count(out, "Failed to update run status"))
	assert.Contains(t, out, "Failed to finish run")
}
