package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"bike-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seasonSpec() model.ChartSpec {
	return model.ChartSpec{
		Name:    "season",
		Kind:    model.ChartBar,
		Title:   "Average Bike Rentals by Season",
		YLabel:  "Average Bike Rentals",
		Palette: []string{"#90CAF9", "#D3D3D3", "#D3D3D3", "#D3D3D3"},
		Width:   800,
		Height:  400,
		Table: &model.SummaryTable{
			Key: model.CategorySeason,
			Rows: []model.CategoryMean{
				{Code: 1, Label: "Spring", Mean: 2604.1, Count: 181},
				{Code: 2, Label: "Summer", Mean: 4992.3, Count: 184},
				{Code: 3, Label: "Fall", Mean: 5644.3, Count: 188},
				{Code: 4, Label: "Winter", Mean: 4728.2, Count: 178},
			},
		},
	}
}

func monthlySpec(points ...model.MonthlyPoint) model.ChartSpec {
	return model.ChartSpec{
		Name:    "monthly-2011",
		Kind:    model.ChartLine,
		Title:   "Monthly Bike Rentals (2011)",
		XLabel:  "Month",
		YLabel:  "Total Bike Rentals",
		Palette: []string{"#0000FF"},
		Width:   800,
		Height:  400,
		Series:  &model.MonthlySeries{Year: 2011, Points: points},
	}
}

func month(m time.Month) time.Time {
	return time.Date(2011, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestRender_BarPNG(t *testing.T) {
	a, err := Render(seasonSpec(), PNG)
	require.NoError(t, err)

	assert.Equal(t, "season", a.Name)
	assert.Equal(t, "image/png", a.ContentType)

	img, err := png.Decode(bytes.NewReader(a.Data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestRender_BarSVG(t *testing.T) {
	a, err := Render(seasonSpec(), SVG)
	require.NoError(t, err)

	assert.Equal(t, "image/svg+xml", a.ContentType)
	assert.Contains(t, string(a.Data), "<svg")
	assert.Contains(t, string(a.Data), "Spring")
}

func TestRender_Line(t *testing.T) {
	spec := monthlySpec(
		model.MonthlyPoint{Month: month(time.January), Total: 38189},
		model.MonthlyPoint{Month: month(time.February), Total: 48215},
		model.MonthlyPoint{Month: month(time.March), Total: 64045},
	)

	a, err := Render(spec, PNG)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(a.Data))
	require.NoError(t, err)
}

func TestRender_LineSingleMonth(t *testing.T) {
	a, err := Render(monthlySpec(model.MonthlyPoint{Month: month(time.June), Total: 0}), SVG)
	require.NoError(t, err)
	assert.Contains(t, string(a.Data), "Jun")

	png, err := Render(monthlySpec(model.MonthlyPoint{Month: month(time.July), Total: 7403}), PNG)
	require.NoError(t, err)
	assert.Equal(t, "image/png", png.ContentType)
	assert.NotEmpty(t, png.Data)
}

func TestRender_NoData(t *testing.T) {
	bar := seasonSpec()
	bar.Table = &model.SummaryTable{Key: model.CategorySeason}
	_, err := Render(bar, PNG)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Render(monthlySpec(), PNG)
	assert.ErrorIs(t, err, ErrNoData)

	nan := seasonSpec()
	nan.Table.Rows[0].Mean = math.NaN()
	_, err = Render(nan, PNG)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRender_UnknownKind(t *testing.T) {
	spec := seasonSpec()
	spec.Kind = "pie"
	_, err := Render(spec, PNG)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown chart kind")
}

func TestRenderAll_StopsAtFirstFailure(t *testing.T) {
	broken := monthlySpec()
	_, err := RenderAll([]model.ChartSpec{seasonSpec(), broken}, PNG)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monthly-2011")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestNiceMax(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{-5, 1},
		{math.NaN(), 1},
		{1, 1},
		{7, 10},
		{180, 200},
		{2400, 2500},
		{5644.3, 10000},
		{4200, 5000},
		{218573, 250000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, niceMax(tt.in), "niceMax(%v)", tt.in)
	}
}

func TestYTicks(t *testing.T) {
	ticks := yTicks(5000)
	require.Len(t, ticks, 6)
	assert.Equal(t, 0.0, ticks[0].Value)
	assert.Equal(t, "0", ticks[0].Label)
	assert.Equal(t, 5000.0, ticks[5].Value)
	assert.Equal(t, "5000", ticks[5].Label)

	assert.Equal(t, "250k", formatTick(250000))
	assert.Equal(t, "1.5M", formatTick(1500000))
	assert.Equal(t, "0.5", formatTick(0.5))
}

func TestBarGeometry(t *testing.T) {
	w, s := barGeometry(1200, 4)
	assert.Equal(t, 160, w)
	assert.Equal(t, 80, s)

	w, _ = barGeometry(3000, 2)
	assert.Equal(t, maxBarWidth, w)

	w, s = barGeometry(10, 3)
	assert.GreaterOrEqual(t, w, 1)
	assert.GreaterOrEqual(t, s, 1)
}
