package model

import "time"

// CategoryKey names the column a summary table is grouped by.
type CategoryKey string

const (
	CategorySeason     CategoryKey = "season"
	CategoryWeather    CategoryKey = "weathersit"
	CategoryWorkingDay CategoryKey = "is_working_day"
)

// CategoryMean is one row of a summary table.
type CategoryMean struct {
	Code  int     `json:"code"`
	Label string  `json:"label"`
	Mean  float64 `json:"mean_total_rentals"`
	Count int     `json:"record_count"`
}

// SummaryTable maps each category value to the mean rental count of its records.
// Rows are ordered by category code.
type SummaryTable struct {
	Key  CategoryKey    `json:"key"`
	Rows []CategoryMean `json:"rows"`
}

// Lookup returns the row with the given label.
func (t SummaryTable) Lookup(label string) (CategoryMean, bool) {
	for _, r := range t.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return CategoryMean{}, false
}

// Labels returns the row labels in table order.
func (t SummaryTable) Labels() []string {
	labels := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		labels[i] = r.Label
	}
	return labels
}

// MonthlyPoint is the rental total for one calendar month.
type MonthlyPoint struct {
	Month time.Time `json:"month"` // first day of the month, UTC
	Total int64     `json:"total_rentals"`
}

// MonthlySeries is the month-by-month rental total for a single year.
type MonthlySeries struct {
	Year   int            `json:"year"`
	Points []MonthlyPoint `json:"points"`
}

// Total returns the sum over every month of the series.
func (s MonthlySeries) Total() int64 {
	var sum int64
	for _, p := range s.Points {
		sum += p.Total
	}
	return sum
}

// Summary bundles every derived table of one run.
type Summary struct {
	RecordCount int             `json:"record_count"`
	Season      SummaryTable    `json:"season"`
	Weather     SummaryTable    `json:"weather"`
	WorkingDay  SummaryTable    `json:"working_day"`
	Monthly     []MonthlySeries `json:"monthly"`
}
