package model

import "time"

// Run statuses, in the order a successful run moves through them.
const (
	RunPending   = "pending"
	RunLoading   = "loading"
	RunRendering = "rendering"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Triggers that start a run.
const (
	TriggerHTTP = "http"
	TriggerCLI  = "cli"
)

// Run is the history entry of one dashboard execution. Derived tables are
// never part of it.
type Run struct {
	ID          string     `json:"id"`
	Trigger     string     `json:"trigger"`
	Status      string     `json:"status"`
	RecordCount int        `json:"record_count"`
	ChartCount  int        `json:"chart_count"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	Errors      []RunError `json:"errors,omitempty"`
}

// RunError is an error recorded against a run.
type RunError struct {
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
