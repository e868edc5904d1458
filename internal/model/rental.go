package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rental is one row of the rental dataset: a single day of observations.
type Rental struct {
	Date         time.Time `json:"date"`
	Season       Season    `json:"season"`
	Weather      Weather   `json:"weathersit"`
	WorkingDay   bool      `json:"is_working_day"`
	TotalRentals int64     `json:"total_rentals"`
}

// Season is the meteorological season of a record.
type Season int

const (
	SeasonSpring Season = iota + 1
	SeasonSummer
	SeasonFall
	SeasonWinter
)

var seasonNames = map[Season]string{
	SeasonSpring: "Spring",
	SeasonSummer: "Summer",
	SeasonFall:   "Fall",
	SeasonWinter: "Winter",
}

func (s Season) String() string {
	if name, ok := seasonNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Season(%d)", int(s))
}

// Valid reports whether s is one of the four known seasons.
func (s Season) Valid() bool {
	_, ok := seasonNames[s]
	return ok
}

// ParseSeason accepts either the numeric code (1-4) or the season name.
func ParseSeason(raw string) (Season, error) {
	v := strings.TrimSpace(raw)
	if code, err := parseCode(v); err == nil {
		s := Season(code)
		if !s.Valid() {
			return 0, fmt.Errorf("unknown season code %d", code)
		}
		return s, nil
	}
	for s, name := range seasonNames {
		if strings.EqualFold(v, name) {
			return s, nil
		}
	}
	// "Autumn" shows up in some cleaned exports of the dataset
	if strings.EqualFold(v, "autumn") {
		return SeasonFall, nil
	}
	return 0, fmt.Errorf("unknown season %q", raw)
}

// Weather is the weather situation of a record, from clearest to harshest.
type Weather int

const (
	WeatherClear Weather = iota + 1
	WeatherMist
	WeatherLightPrecipitation
	WeatherHeavyPrecipitation
)

var weatherNames = map[Weather]string{
	WeatherClear:              "Clear",
	WeatherMist:               "Mist",
	WeatherLightPrecipitation: "Light Snow/Rain",
	WeatherHeavyPrecipitation: "Heavy Rain/Snow",
}

// weatherAliases maps the long-form labels used by cleaned copies of the dataset.
var weatherAliases = map[string]Weather{
	"clear":                 WeatherClear,
	"clear/partly cloudy":   WeatherClear,
	"partly cloudy":         WeatherClear,
	"mist":                  WeatherMist,
	"misty":                 WeatherMist,
	"mist/cloudy":           WeatherMist,
	"cloudy":                WeatherMist,
	"light snow/rain":       WeatherLightPrecipitation,
	"light rain/snow":       WeatherLightPrecipitation,
	"light snow":            WeatherLightPrecipitation,
	"light rain":            WeatherLightPrecipitation,
	"heavy rain/snow":       WeatherHeavyPrecipitation,
	"heavy rain/ice pallet": WeatherHeavyPrecipitation,
	"heavy rain":            WeatherHeavyPrecipitation,
	"heavy snow":            WeatherHeavyPrecipitation,
}

func (w Weather) String() string {
	if name, ok := weatherNames[w]; ok {
		return name
	}
	return fmt.Sprintf("Weather(%d)", int(w))
}

// Valid reports whether w is one of the four known weather situations.
func (w Weather) Valid() bool {
	_, ok := weatherNames[w]
	return ok
}

// ParseWeather accepts either the numeric code (1-4) or a weather label.
func ParseWeather(raw string) (Weather, error) {
	v := strings.TrimSpace(raw)
	if code, err := parseCode(v); err == nil {
		w := Weather(code)
		if !w.Valid() {
			return 0, fmt.Errorf("unknown weather code %d", code)
		}
		return w, nil
	}
	if w, ok := weatherAliases[strings.ToLower(v)]; ok {
		return w, nil
	}
	return 0, fmt.Errorf("unknown weather situation %q", raw)
}

// ParseWorkingDay accepts 0/1, true/false and yes/no.
func ParseWorkingDay(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "1.0", "true", "yes", "y":
		return true, nil
	case "0", "0.0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid working day flag %q", raw)
}

// parseCode parses integral codes, tolerating a trailing ".0" from float exports.
func parseCode(v string) (int, error) {
	if i, err := strconv.Atoi(v); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("non-integral code %v", f)
	}
	return int(f), nil
}
