package chart

import (
	"io"
	"math"

	"bike-dashboard/internal/model"

	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	maxBarWidth = 200
	sideMargin  = 160
)

func renderBar(w io.Writer, spec model.ChartSpec, format Format) error {
	if spec.Table == nil || len(spec.Table.Rows) == 0 {
		return ErrNoData
	}

	rows := spec.Table.Rows
	bars := make([]gochart.Value, 0, len(rows))
	top := 0.0
	for i, row := range rows {
		if math.IsNaN(row.Mean) {
			return ErrNoData
		}
		c := paletteColor(spec.Palette, i)
		bars = append(bars, gochart.Value{
			Label: row.Label,
			Value: row.Mean,
			Style: gochart.Style{
				FillColor:   c,
				StrokeColor: c,
				StrokeWidth: 1,
			},
		})
		top = math.Max(top, row.Mean)
	}
	top = niceMax(top)

	barWidth, spacing := barGeometry(spec.Width, len(bars))

	bc := gochart.BarChart{
		Title:      spec.Title,
		TitleStyle: gochart.Style{FontSize: 16},
		Width:      spec.Width,
		Height:     spec.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 24, Right: 24, Bottom: 24},
		},
		XAxis: gochart.Style{FontSize: 12},
		YAxis: gochart.YAxis{
			Name:  spec.YLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
			Ticks: yTicks(top),
		},
		Bars: bars,
	}

	return bc.Render(format.provider(), w)
}

// barGeometry spreads n bars over the usable width with half-bar spacing.
func barGeometry(width, n int) (barWidth, spacing int) {
	usable := width - sideMargin
	if usable < n {
		usable = n
	}
	// n bars plus n-1 gaps of half a bar, plus a half-bar margin on each side
	barWidth = int(float64(usable) / (1.5*float64(n) + 0.5))
	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}
	if barWidth < 1 {
		barWidth = 1
	}
	spacing = barWidth / 2
	if spacing < 1 {
		spacing = 1
	}
	return barWidth, spacing
}
