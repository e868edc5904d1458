package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bike-dashboard/internal/model"
	"bike-dashboard/pkg/utils"
)

// Columns the dataset must carry. Extra columns are ignored.
const (
	ColumnDate         = "date"
	ColumnSeason       = "season"
	ColumnWeather      = "weathersit"
	ColumnWorkingDay   = "is_working_day"
	ColumnTotalRentals = "total_rentals"
)

var requiredColumns = []string{
	ColumnDate,
	ColumnSeason,
	ColumnWeather,
	ColumnWorkingDay,
	ColumnTotalRentals,
}

var (
	ErrMissingColumn   = errors.New("missing required column")
	ErrInvalidValue    = errors.New("invalid value")
	ErrUnknownCategory = errors.New("unknown category key")
	ErrEmptyDataset    = errors.New("empty dataset")
)

// RowError locates a value that could not be coerced.
type RowError struct {
	Line   int // 1-based line in the CSV, header included
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{ErrInvalidValue, e.Err}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006",
	"2006/01/02",
}

type rowValues struct {
	date       string
	season     string
	weather    string
	workingDay string
	total      string
}

// resolveColumns maps each required column to the header that carries it.
// Headers are matched after trimming whitespace and quotes.
func resolveColumns(headers []string) (map[string]string, error) {
	byClean := make(map[string]string, len(headers))
	for _, h := range headers {
		clean := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), `"`, ""))
		byClean[clean] = h
	}

	columns := make(map[string]string, len(requiredColumns))
	var missing []string
	for _, name := range requiredColumns {
		h, ok := byClean[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = h
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return columns, nil
}

// coerceRow converts one row of raw cells into a typed record.
func coerceRow(v rowValues, line int) (model.Rental, error) {
	fail := func(column, value string, err error) (model.Rental, error) {
		return model.Rental{}, &RowError{Line: line, Column: column, Value: value, Err: err}
	}

	date, err := parseDate(v.date)
	if err != nil {
		return fail(ColumnDate, v.date, err)
	}
	season, err := model.ParseSeason(v.season)
	if err != nil {
		return fail(ColumnSeason, v.season, err)
	}
	weather, err := model.ParseWeather(v.weather)
	if err != nil {
		return fail(ColumnWeather, v.weather, err)
	}
	workingDay, err := model.ParseWorkingDay(v.workingDay)
	if err != nil {
		return fail(ColumnWorkingDay, v.workingDay, err)
	}
	total, err := utils.ParseCount(v.total)
	if err != nil {
		return fail(ColumnTotalRentals, v.total, err)
	}

	return model.Rental{
		Date:         date,
		Season:       season,
		Weather:      weather,
		WorkingDay:   workingDay,
		TotalRentals: total,
	}, nil
}

// parseDate accepts the layouts seen in exports of the dataset and keeps
// only the calendar day, in UTC.
func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}
