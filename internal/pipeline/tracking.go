package pipeline

import (
	"sync"
	"time"
)

// Run stages, in execution order.
const (
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageRender    = "render"
)

// StageMetrics tracks metrics for individual run stages
type StageMetrics struct {
	Stage            string        `json:"stage"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          *time.Time    `json:"end_time,omitempty"`
	Duration         time.Duration `json:"duration,omitempty"`
	RecordsProcessed int           `json:"records_processed"`
	Status           string        `json:"status"` // "running", "completed", "failed"
}

// RunTracker records stage timings of a single run.
type RunTracker struct {
	mu     sync.RWMutex
	stages []StageMetrics
}

func NewRunTracker() *RunTracker {
	return &RunTracker{}
}

// StartStage marks the start of a run stage
func (rt *RunTracker) StartStage(stage string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.stages = append(rt.stages, StageMetrics{
		Stage:     stage,
		StartTime: time.Now(),
		Status:    "running",
	})
}

// EndStage marks the end of the most recent stage with the given name.
func (rt *RunTracker) EndStage(stage string, recordsProcessed int) {
	rt.finish(stage, "completed", recordsProcessed)
}

// FailStage marks a stage as failed.
func (rt *RunTracker) FailStage(stage string) {
	rt.finish(stage, "failed", 0)
}

func (rt *RunTracker) finish(stage, status string, records int) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	now := time.Now()
	for i := len(rt.stages) - 1; i >= 0; i-- {
		s := &rt.stages[i]
		if s.Stage != stage || s.EndTime != nil {
			continue
		}
		s.EndTime = &now
		s.Duration = now.Sub(s.StartTime)
		s.RecordsProcessed = records
		s.Status = status
		return
	}
}

// Current returns the stage still running, if any.
func (rt *RunTracker) Current() (string, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	for i := len(rt.stages) - 1; i >= 0; i-- {
		if rt.stages[i].EndTime == nil {
			return rt.stages[i].Stage, true
		}
	}
	return "", false
}

// Stages returns a snapshot of every stage seen so far.
func (rt *RunTracker) Stages() []StageMetrics {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	out := make([]StageMetrics, len(rt.stages))
	copy(out, rt.stages)
	return out
}
