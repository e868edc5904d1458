package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"bike-dashboard/internal/model"

	"github.com/xuri/excelize/v2"
)

// Export formats served by the summary download.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// exportRow is the long-format view of every derived table.
type exportRow struct {
	Table string
	Key   string
	Label string
	Value float64
	Count int
}

func exportRows(s model.Summary) []exportRow {
	var rows []exportRow
	for _, t := range []model.SummaryTable{s.Season, s.Weather, s.WorkingDay} {
		for _, r := range t.Rows {
			rows = append(rows, exportRow{
				Table: string(t.Key),
				Key:   strconv.Itoa(r.Code),
				Label: r.Label,
				Value: r.Mean,
				Count: r.Count,
			})
		}
	}
	for _, series := range s.Monthly {
		for _, p := range series.Points {
			rows = append(rows, exportRow{
				Table: MonthlyChartName(series.Year),
				Key:   p.Month.Format("2006-01-02"),
				Label: p.Month.Format("Jan"),
				Value: float64(p.Total),
			})
		}
	}
	return rows
}

// WriteSummary writes s in the requested format and reports what was written.
func WriteSummary(w io.Writer, s model.Summary, format string) (model.ExportResult, error) {
	cw := &countingWriter{w: w}

	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(cw, s)
	case FormatJSON:
		err = writeJSON(cw, s)
	case FormatXLSX:
		err = writeXLSX(cw, s)
	default:
		return model.ExportResult{}, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return model.ExportResult{}, err
	}

	return model.ExportResult{
		Format:      format,
		FileName:    "bike-rentals-summary." + format,
		RecordCount: len(exportRows(s)),
		Bytes:       cw.n,
		ExportedAt:  time.Now().UTC(),
	}, nil
}

// writeCSV exports data to CSV format
func writeCSV(w io.Writer, s model.Summary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"table", "key", "label", "value", "record_count"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range exportRows(s) {
		count := ""
		if r.Count > 0 {
			count = strconv.Itoa(r.Count)
		}
		row := []string{r.Table, r.Key, r.Label, strconv.FormatFloat(r.Value, 'f', -1, 64), count}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeJSON exports data to JSON format
func writeJSON(w io.Writer, s model.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"exported_at":  time.Now().UTC(),
			"record_count": s.RecordCount,
			"export_type":  "rental_summary",
		},
		"data": s,
	}

	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeXLSX writes one sheet per derived table.
func writeXLSX(w io.Writer, s model.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetDocProps(&excelize.DocProperties{
		Title:   "Bike Rentals Summary",
		Subject: "Mean rentals per category and monthly totals",
		Creator: "bike-dashboard",
		Created: time.Now().UTC().Format(time.RFC3339),
	})

	tables := []struct {
		sheet string
		table model.SummaryTable
	}{
		{"Season", s.Season},
		{"Weather", s.Weather},
		{"Working Day", s.WorkingDay},
	}
	for _, t := range tables {
		rows := [][]interface{}{{"Code", "Label", "Mean Total Rentals", "Records"}}
		for _, r := range t.table.Rows {
			rows = append(rows, []interface{}{r.Code, r.Label, r.Mean, r.Count})
		}
		if err := writeSheet(f, t.sheet, rows); err != nil {
			return err
		}
	}

	for _, series := range s.Monthly {
		rows := [][]interface{}{{"Month", "Total Rentals"}}
		for _, p := range series.Points {
			rows = append(rows, []interface{}{p.Month.Format("2006-01"), p.Total})
		}
		if err := writeSheet(f, fmt.Sprintf("Monthly %d", series.Year), rows); err != nil {
			return err
		}
	}

	f.DeleteSheet("Sheet1")

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write excel: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
