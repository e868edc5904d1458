package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"bike-dashboard/internal/model"
)

const (
	highlightColor = "#90CAF9"
	mutedColor     = "#D3D3D3"
)

// Layout holds the pixel sizes of the two chart families.
type Layout struct {
	BarWidth, BarHeight   int
	LineWidth, LineHeight int
}

// DefaultLayout matches the render defaults of the config package.
var DefaultLayout = Layout{BarWidth: 1200, BarHeight: 600, LineWidth: 1200, LineHeight: 600}

// BuildDashboard lays the derived tables out in display order: season and
// weather, then working day, then one monthly trend per year.
func BuildDashboard(summary model.Summary, layout Layout) model.Dashboard {
	season := summary.Season
	weather := summary.Weather
	workingDay := summary.WorkingDay

	dash := model.Dashboard{
		Title: "Bike Sharing Dashboard",
		Sections: []model.Section{
			{
				Heading: "Season and Weather Effect",
				Charts: []model.ChartSpec{
					{
						Name:    "season",
						Kind:    model.ChartBar,
						Title:   "Average Bike Rentals by Season",
						XLabel:  "Season",
						YLabel:  "Average Bike Rentals",
						Palette: highlightFirst(len(season.Rows)),
						Width:   layout.BarWidth,
						Height:  layout.BarHeight,
						Table:   &season,
					},
					{
						Name:    "weather",
						Kind:    model.ChartBar,
						Title:   "Average Bike Rentals by Weather",
						XLabel:  "Weather Condition",
						YLabel:  "Average Bike Rentals",
						Palette: highlightFirst(len(weather.Rows)),
						Width:   layout.BarWidth,
						Height:  layout.BarHeight,
						Table:   &weather,
					},
				},
			},
			{
				Heading: "Workingday vs Non-Workingday",
				Charts: []model.ChartSpec{
					{
						Name:    "working-day",
						Kind:    model.ChartBar,
						Title:   "Average Bike Rentals on Working Day vs Non-working Day",
						YLabel:  "Average Bike Rentals",
						Palette: []string{"#FF6347", "#1E90FF"},
						Width:   layout.BarWidth,
						Height:  layout.BarHeight,
						Table:   &workingDay,
					},
				},
			},
		},
	}

	if len(summary.Monthly) == 0 {
		return dash
	}

	trends := model.Section{Heading: "Bike Rentals Trends in " + joinYears(summary.Monthly)}
	for i := range summary.Monthly {
		series := summary.Monthly[i]
		trends.Charts = append(trends.Charts, model.ChartSpec{
			Name:    MonthlyChartName(series.Year),
			Kind:    model.ChartLine,
			Title:   fmt.Sprintf("Monthly Bike Rentals (%d)", series.Year),
			XLabel:  "Month",
			YLabel:  "Total Bike Rentals",
			Palette: []string{"#0000FF"},
			Width:   layout.LineWidth,
			Height:  layout.LineHeight,
			Series:  &series,
		})
	}
	dash.Sections = append(dash.Sections, trends)

	return dash
}

// MonthlyChartName is the chart name used for the trend of year.
func MonthlyChartName(year int) string {
	return "monthly-" + strconv.Itoa(year)
}

func highlightFirst(n int) []string {
	palette := make([]string, n)
	for i := range palette {
		palette[i] = mutedColor
	}
	if n > 0 {
		palette[0] = highlightColor
	}
	return palette
}

// joinYears renders "2011 and 2012" or "2010, 2011 and 2012".
func joinYears(series []model.MonthlySeries) string {
	years := make([]string, len(series))
	for i, s := range series {
		years[i] = strconv.Itoa(s.Year)
	}
	if len(years) == 1 {
		return years[0]
	}
	return strings.Join(years[:len(years)-1], ", ") + " and " + years[len(years)-1]
}
