// Package chart renders dashboard chart specs to PNG or SVG with go-chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"bike-dashboard/internal/model"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

var ErrNoData = errors.New("chart has no data")

// ParseFormat validates a configured format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q", s)
}

// ContentType is the MIME type of images in this format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == SVG {
		return gochart.SVG
	}
	return gochart.PNG
}

// Render draws spec in the given format.
func Render(spec model.ChartSpec, format Format) (model.Artifact, error) {
	var buf bytes.Buffer
	var err error

	switch spec.Kind {
	case model.ChartBar:
		err = renderBar(&buf, spec, format)
	case model.ChartLine:
		err = renderLine(&buf, spec, format)
	default:
		err = fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	if err != nil {
		return model.Artifact{}, fmt.Errorf("render %s: %w", spec.Name, err)
	}

	return model.Artifact{
		Name:        spec.Name,
		Title:       spec.Title,
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

// RenderAll draws every spec, stopping at the first failure.
func RenderAll(specs []model.ChartSpec, format Format) ([]model.Artifact, error) {
	artifacts := make([]model.Artifact, 0, len(specs))
	for _, spec := range specs {
		a, err := Render(spec, format)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// color parses "#RRGGBB" (leading # optional).
func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// paletteColor cycles through the chart palette, falling back to blue.
func paletteColor(palette []string, i int) drawing.Color {
	if len(palette) == 0 {
		return gochart.ColorBlue
	}
	return color(palette[i%len(palette)])
}

// niceMax rounds max up to 1, 2, 2.5 or 5 times a power of ten so the
// y axis ends on a readable value. A non-positive max maps to 1.
func niceMax(max float64) float64 {
	if max <= 0 || math.IsNaN(max) {
		return 1
	}
	exp := math.Floor(math.Log10(max))
	base := math.Pow(10, exp)
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if v := m * base; v >= max {
			return v
		}
	}
	return 10 * base
}

// yTicks splits [0, top] into five labelled steps.
func yTicks(top float64) []gochart.Tick {
	const steps = 5
	ticks := make([]gochart.Tick, 0, steps+1)
	for i := 0; i <= steps; i++ {
		v := top * float64(i) / steps
		ticks = append(ticks, gochart.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

func formatTick(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("%.2f", v/1e6)) + "M"
	case v >= 1e4:
		return trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	default:
		return trimZero(fmt.Sprintf("%.2f", v))
	}
}

func trimZero(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
