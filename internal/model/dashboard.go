package model

import "time"

// ChartKind selects the renderer used for a chart.
type ChartKind string

const (
	ChartBar  ChartKind = "bar"
	ChartLine ChartKind = "line"
)

// ChartSpec describes one visual artifact of the dashboard.
type ChartSpec struct {
	Name    string    `json:"name"` // url-safe identifier, e.g. "season" or "monthly-2011"
	Kind    ChartKind `json:"kind"`
	Title   string    `json:"title"`
	XLabel  string    `json:"x_label,omitempty"`
	YLabel  string    `json:"y_label,omitempty"`
	Palette []string  `json:"palette,omitempty"` // hex colors, applied to bars in order
	Width   int       `json:"width"`
	Height  int       `json:"height"`

	Table  *SummaryTable  `json:"-"`
	Series *MonthlySeries `json:"-"`
}

// Section is a titled group of charts on the page.
type Section struct {
	Heading string      `json:"heading"`
	Charts  []ChartSpec `json:"charts"`
}

// Dashboard is the ordered layout handed to the display layer.
type Dashboard struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Charts flattens the sections into render order.
func (d Dashboard) Charts() []ChartSpec {
	var out []ChartSpec
	for _, s := range d.Sections {
		out = append(out, s.Charts...)
	}
	return out
}

// Artifact is a rendered chart image.
type Artifact struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	Format      string    `json:"format"` // "csv", "json", "xlsx"
	FileName    string    `json:"file_name"`
	RecordCount int       `json:"record_count"`
	Bytes       int       `json:"bytes"`
	ExportedAt  time.Time `json:"exported_at"`
}
