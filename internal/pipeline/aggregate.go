package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"bike-dashboard/internal/model"
)

// ResampleOptions controls monthly resampling.
type ResampleOptions struct {
	// FillGaps emits a zero total for months between the first and last
	// observed month that have no records. Months outside that span are
	// never emitted.
	FillGaps bool
}

// SummaryOptions selects what Summarize derives.
type SummaryOptions struct {
	Years    []int // empty means every observed year
	Resample ResampleOptions
}

// GroupByCategoryMean computes the mean rental count per distinct value of key.
// Rows are ordered by category code. Empty input yields a table without rows.
func GroupByCategoryMean(records []model.Rental, key model.CategoryKey) (model.SummaryTable, error) {
	switch key {
	case model.CategorySeason, model.CategoryWeather, model.CategoryWorkingDay:
	default:
		return model.SummaryTable{}, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}

	type bucket struct {
		label  string
		totals []int64
	}

	buckets := make(map[int]*bucket)
	for _, r := range records {
		code, label, err := categoryOf(r, key)
		if err != nil {
			return model.SummaryTable{}, err
		}
		b, ok := buckets[code]
		if !ok {
			b = &bucket{label: label}
			buckets[code] = b
		}
		b.totals = append(b.totals, r.TotalRentals)
	}

	codes := make([]int, 0, len(buckets))
	for code := range buckets {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	table := model.SummaryTable{Key: key, Rows: make([]model.CategoryMean, 0, len(codes))}
	for _, code := range codes {
		b := buckets[code]
		table.Rows = append(table.Rows, model.CategoryMean{
			Code:  code,
			Label: b.label,
			Mean:  Mean(b.totals),
			Count: len(b.totals),
		})
	}
	return table, nil
}

// categoryOf extracts the group code and its raw label from a record.
func categoryOf(r model.Rental, key model.CategoryKey) (int, string, error) {
	switch key {
	case model.CategorySeason:
		return int(r.Season), r.Season.String(), nil
	case model.CategoryWeather:
		return int(r.Weather), r.Weather.String(), nil
	case model.CategoryWorkingDay:
		code := 0
		if r.WorkingDay {
			code = 1
		}
		return code, strconv.Itoa(code), nil
	default:
		return 0, "", fmt.Errorf("%w: %q", ErrUnknownCategory, key)
	}
}

// Mean is the arithmetic mean of values; NaN when values is empty.
func Mean(values []int64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

// MonthResampleSum sums rental counts per calendar month, ordered by month.
// Records are expected to be restricted to a single year already.
func MonthResampleSum(records []model.Rental, opts ResampleOptions) []model.MonthlyPoint {
	if len(records) == 0 {
		return nil
	}

	totals := make(map[time.Time]int64)
	for _, r := range records {
		totals[monthStart(r.Date)] += r.TotalRentals
	}

	months := make([]time.Time, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	if opts.FillGaps {
		first, last := months[0], months[len(months)-1]
		months = months[:0]
		for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
			months = append(months, m)
		}
	}

	points := make([]model.MonthlyPoint, 0, len(months))
	for _, m := range months {
		points = append(points, model.MonthlyPoint{Month: m, Total: totals[m]})
	}
	return points
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Summarize derives every table the dashboard shows.
func Summarize(records []model.Rental, opts SummaryOptions) (model.Summary, error) {
	summary := model.Summary{RecordCount: len(records)}

	var err error
	if summary.Season, err = GroupByCategoryMean(records, model.CategorySeason); err != nil {
		return model.Summary{}, err
	}
	if summary.Weather, err = GroupByCategoryMean(records, model.CategoryWeather); err != nil {
		return model.Summary{}, err
	}
	workingDay, err := GroupByCategoryMean(records, model.CategoryWorkingDay)
	if err != nil {
		return model.Summary{}, err
	}
	summary.WorkingDay = RelabelWorkingDay(workingDay)

	years := opts.Years
	if len(years) == 0 {
		years = ObservedYears(records)
	}
	for _, y := range years {
		inYear := YearFilter(records, y)
		if len(inYear) == 0 {
			return model.Summary{}, fmt.Errorf("%w: no records for year %d", ErrEmptyDataset, y)
		}
		summary.Monthly = append(summary.Monthly, model.MonthlySeries{
			Year:   y,
			Points: MonthResampleSum(inYear, opts.Resample),
		})
	}

	return summary, nil
}
