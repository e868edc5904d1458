package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"bike-dashboard/internal/model"

	"github.com/go-gota/gota/dataframe"
)

// ------------------- Ingestion -------------------

// LoadRentals reads the rental dataset from a local path or an http(s) URL.
// Any malformed row or missing column fails the whole load.
func LoadRentals(ctx context.Context, pathOrURL string) ([]model.Rental, error) {
	reader, err := openSource(ctx, pathOrURL)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	records, err := ReadRentals(reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pathOrURL, err)
	}
	return records, nil
}

// ReadRentals parses CSV content into typed rental records.
func ReadRentals(r io.Reader) ([]model.Rental, error) {
	// Every column is read as text; coercion to the typed record happens per row
	// so errors can name the offending cell.
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
	)
	if df.Err != nil {
		// gota refuses header-only input outright
		if strings.Contains(df.Err.Error(), "empty DataFrame") {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("failed to parse CSV: %w", df.Err)
	}

	columns, err := resolveColumns(df.Names())
	if err != nil {
		return nil, err
	}

	n := df.Nrow()
	if n == 0 {
		return nil, ErrEmptyDataset
	}

	cells := make(map[string][]string, len(columns))
	for name, header := range columns {
		col := df.Col(header)
		if col.Err != nil {
			return nil, fmt.Errorf("failed to read column %s: %w", name, col.Err)
		}
		cells[name] = col.Records()
	}

	records := make([]model.Rental, 0, n)
	for i := 0; i < n; i++ {
		rec, err := coerceRow(rowValues{
			date:       cells[ColumnDate][i],
			season:     cells[ColumnSeason][i],
			weather:    cells[ColumnWeather][i],
			workingDay: cells[ColumnWorkingDay][i],
			total:      cells[ColumnTotalRentals][i],
		}, i+2) // +1 for the header, +1 for 1-based line numbers
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// openSource opens a local file or performs a GET for http(s) sources.
func openSource(ctx context.Context, pathOrURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return fetchWithRetry(ctx, pathOrURL, fetchRetry)
	}

	file, err := os.Open(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	return file, nil
}
