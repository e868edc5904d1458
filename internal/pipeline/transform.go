package pipeline

import (
	"sort"

	"bike-dashboard/internal/model"
)

// Working-day labels shown on the dashboard.
const (
	LabelNotWorkingDay = "Not Working Day"
	LabelWorkingDay    = "Working Day"
)

// YearFilter returns the records dated within year, in input order.
func YearFilter(records []model.Rental, year int) []model.Rental {
	var out []model.Rental
	for _, r := range records {
		if r.Date.Year() == year {
			out = append(out, r)
		}
	}
	return out
}

// ObservedYears returns the distinct years present in records, ascending.
func ObservedYears(records []model.Rental) []int {
	seen := make(map[int]bool)
	var years []int
	for _, r := range records {
		y := r.Date.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

// RelabelWorkingDay returns a copy of a working-day table with readable labels.
// Tables grouped by any other key are returned unchanged.
func RelabelWorkingDay(table model.SummaryTable) model.SummaryTable {
	if table.Key != model.CategoryWorkingDay {
		return table
	}

	out := model.SummaryTable{
		Key:  table.Key,
		Rows: make([]model.CategoryMean, len(table.Rows)),
	}
	for i, row := range table.Rows {
		switch row.Code {
		case 0:
			row.Label = LabelNotWorkingDay
		case 1:
			row.Label = LabelWorkingDay
		}
		out.Rows[i] = row
	}
	return out
}
