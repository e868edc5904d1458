package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeason(t *testing.T) {
	tests := []struct {
		in   string
		want Season
	}{
		{"1", SeasonSpring},
		{"2.0", SeasonSummer},
		{" fall ", SeasonFall},
		{"Autumn", SeasonFall},
		{"WINTER", SeasonWinter},
	}
	for _, tt := range tests {
		got, err := ParseSeason(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"0", "5", "1.5", "monsoon", ""} {
		_, err := ParseSeason(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseWeather(t *testing.T) {
	w, err := ParseWeather("3")
	require.NoError(t, err)
	assert.Equal(t, WeatherLightPrecipitation, w)
	assert.Equal(t, "Light Snow/Rain", w.String())

	w, err = ParseWeather("Heavy Rain/Ice Pallet")
	require.NoError(t, err)
	assert.Equal(t, WeatherHeavyPrecipitation, w)

	_, err = ParseWeather("9")
	assert.Error(t, err)
	_, err = ParseWeather("sunny-ish")
	assert.Error(t, err)
}

func TestParseWorkingDay(t *testing.T) {
	for _, in := range []string{"1", "1.0", "TRUE", "yes"} {
		v, err := ParseWorkingDay(in)
		require.NoError(t, err, in)
		assert.True(t, v, in)
	}
	for _, in := range []string{"0", "false", "No"} {
		v, err := ParseWorkingDay(in)
		require.NoError(t, err, in)
		assert.False(t, v, in)
	}
	_, err := ParseWorkingDay("2")
	assert.Error(t, err)
}

func TestStringFallbacks(t *testing.T) {
	assert.Equal(t, "Season(9)", Season(9).String())
	assert.Equal(t, "Weather(0)", Weather(0).String())
	assert.False(t, Season(0).Valid())
}

func TestSummaryTableLookup(t *testing.T) {
	table := SummaryTable{Key: CategorySeason, Rows: []CategoryMean{{Code: 1, Label: "Spring", Mean: 200}}}
	row, ok := table.Lookup("Spring")
	require.True(t, ok)
	assert.Equal(t, 200.0, row.Mean)
	_, ok = table.Lookup("Summer")
	assert.False(t, ok)
}
