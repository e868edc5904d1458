package pipeline

import (
	"context"
	"fmt"
	"time"

	"bike-dashboard/internal/chart"
	"bike-dashboard/internal/config"
	"bike-dashboard/internal/model"
	"bike-dashboard/internal/store"
	"bike-dashboard/pkg/logger"
)

// Options configures one dashboard run.
type Options struct {
	DataPath string
	Summary  SummaryOptions
	Layout   Layout
	Format   chart.Format
	Logger   logger.Logger
}

// OptionsFromConfig maps the loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config, log logger.Logger) (Options, error) {
	format, err := chart.ParseFormat(cfg.Render.Format)
	if err != nil {
		return Options{}, err
	}
	return Options{
		DataPath: cfg.Data.Path,
		Summary: SummaryOptions{
			Years:    cfg.Aggregation.Years,
			Resample: ResampleOptions{FillGaps: cfg.Aggregation.ZeroFillGaps},
		},
		Layout: Layout{
			BarWidth:   cfg.Render.BarWidth,
			BarHeight:  cfg.Render.BarHeight,
			LineWidth:  cfg.Render.LineWidth,
			LineHeight: cfg.Render.LineHeight,
		},
		Format: format,
		Logger: log,
	}, nil
}

// Result is everything a completed run produced. None of it is persisted.
type Result struct {
	RunID     string
	Summary   model.Summary
	Dashboard model.Dashboard
	Artifacts []model.Artifact
	Stages    []StageMetrics
	Duration  time.Duration
}

// Artifact returns the rendered chart with the given name.
func (r *Result) Artifact(name string) (model.Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return model.Artifact{}, false
}

// LoadSummary loads the dataset and derives the summary tables without
// rendering or recording a run.
func LoadSummary(ctx context.Context, opts Options) (model.Summary, error) {
	records, err := LoadRentals(ctx, opts.DataPath)
	if err != nil {
		return model.Summary{}, err
	}
	return Summarize(records, opts.Summary)
}

// ------------------- Dashboard Runner -------------------

// Run loads the dataset, derives the summary tables, lays out the dashboard
// and renders every chart. The run's progress is recorded in the run history
// when it is enabled.
func Run(ctx context.Context, runID, trigger string, opts Options) (res *Result, err error) {
	start := time.Now()
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithFields(map[string]interface{}{"run_id": runID, "trigger": trigger})
	if opts.Format == "" {
		opts.Format = chart.PNG
	}
	if opts.Layout == (Layout{}) {
		opts.Layout = DefaultLayout
	}

	tracker := NewRunTracker()

	log.Infof("Starting dashboard run from %s", opts.DataPath)
	if e := store.SaveRun(runID, trigger); e != nil {
		log.Warnf("Failed to save run: %v", e)
	}

	// Defer function to handle status updates on completion/error
	defer func() {
		if err != nil {
			stage, _ := tracker.Current()
			tracker.FailStage(stage)
			store.SaveRunError(runID, err)
			store.FinishRun(runID, model.RunFailed, 0, 0)
			log.WithField("stage", stage).Errorf("Dashboard run failed after %v: %v", time.Since(start), err)
		}
	}()

	// --- LOAD STAGE ---
	if e := store.UpdateRunStatus(runID, model.RunLoading); e != nil {
		log.Warnf("Failed to update run status: %v", e)
	}
	tracker.StartStage(StageLoad)
	records, err := LoadRentals(ctx, opts.DataPath)
	if err != nil {
		return nil, err
	}
	tracker.EndStage(StageLoad, len(records))
	log.WithField("records", len(records)).Info("Dataset loaded")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- AGGREGATION STAGE ---
	tracker.StartStage(StageAggregate)
	summary, err := Summarize(records, opts.Summary)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	tracker.EndStage(StageAggregate, len(records))
	log.WithField("years", len(summary.Monthly)).Debug("Summary tables derived")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- RENDER STAGE ---
	if e := store.UpdateRunStatus(runID, model.RunRendering); e != nil {
		log.Warnf("Failed to update run status: %v", e)
	}
	tracker.StartStage(StageRender)
	dash := BuildDashboard(summary, opts.Layout)
	artifacts, err := chart.RenderAll(dash.Charts(), opts.Format)
	if err != nil {
		return nil, err
	}
	tracker.EndStage(StageRender, len(artifacts))

	duration := time.Since(start)
	if e := store.FinishRun(runID, model.RunCompleted, len(records), len(artifacts)); e != nil {
		log.Warnf("Failed to finish run: %v", e)
	}
	log.WithFields(map[string]interface{}{
		"charts":      len(artifacts),
		"duration_ms": duration.Milliseconds(),
	}).Info("Dashboard run completed")

	return &Result{
		RunID:     runID,
		Summary:   summary,
		Dashboard: dash,
		Artifacts: artifacts,
		Stages:    tracker.Stages(),
		Duration:  duration,
	}, nil
}
