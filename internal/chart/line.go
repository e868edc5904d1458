package chart

import (
	"io"
	"math"
	"time"

	"bike-dashboard/internal/model"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// A half-month pad keeps a single-month series from collapsing the x range.
const monthPad = 15 * 24 * time.Hour

func renderLine(w io.Writer, spec model.ChartSpec, format Format) error {
	if spec.Series == nil || len(spec.Series.Points) == 0 {
		return ErrNoData
	}

	points := spec.Series.Points
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	top := 0.0
	for i, p := range points {
		xs[i] = p.Month
		ys[i] = float64(p.Total)
		top = math.Max(top, ys[i])
	}
	top = niceMax(top)
	ticks := monthTicks(xs)
	lo, hi := xs[0].Add(-monthPad), xs[len(xs)-1].Add(monthPad)

	// go-chart needs two distinct x values even with an explicit range
	if len(xs) == 1 {
		xs = append(xs, xs[0].Add(time.Second))
		ys = append(ys, ys[0])
	}

	c := paletteColor(spec.Palette, 0)
	grid := gochart.Style{StrokeColor: color("#E0E0E0"), StrokeWidth: 1}

	ch := gochart.Chart{
		Title:      spec.Title,
		TitleStyle: gochart.Style{FontSize: 14},
		Width:      spec.Width,
		Height:     spec.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:           spec.XLabel,
			Ticks:          ticks,
			Range:          &gochart.ContinuousRange{Min: gochart.TimeToFloat64(lo), Max: gochart.TimeToFloat64(hi)},
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Name:           spec.YLabel,
			Range:          &gochart.ContinuousRange{Min: 0, Max: top},
			Ticks:          yTicks(top),
			GridMajorStyle: grid,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: c,
					StrokeWidth: 2,
					DotColor:    c,
					DotWidth:    4,
				},
			},
		},
	}

	return ch.Render(format.provider(), w)
}

// monthTicks labels each month with its abbreviation ("Jan", "Feb", ...).
func monthTicks(months []time.Time) []gochart.Tick {
	ticks := make([]gochart.Tick, 0, len(months))
	for _, m := range months {
		ticks = append(ticks, gochart.Tick{
			Value: gochart.TimeToFloat64(m),
			Label: m.Format("Jan"),
		})
	}
	return ticks
}
