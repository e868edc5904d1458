package handler

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"net/http"
	"strconv"

	"bike-dashboard/internal/model"
	"bike-dashboard/pkg/router"
)

const chartsPrefix = "/api/v1/charts/"

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0 auto; max-width: 1280px; padding: 24px; }
h1 { margin-bottom: 8px; }
section { margin-top: 32px; }
.charts { display: flex; flex-wrap: wrap; gap: 16px; }
.charts img { max-width: 100%; height: auto; }
footer { margin-top: 32px; color: #888; font-size: 12px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Sections}}
<section>
<h2>{{.Heading}}</h2>
<div class="charts">
{{range .Charts}}<img alt="{{.Title}}" src="{{.Src}}" width="{{.Width}}">
{{end}}
</div>
</section>
{{end}}
<footer>Run {{.RunID}} &middot; {{.RecordCount}} records</footer>
</body>
</html>
`))

type pageChart struct {
	Title string
	Src   template.URL
	Width int
}

type pageSection struct {
	Heading string
	Charts  []pageChart
}

type page struct {
	Title       string
	RunID       string
	RecordCount int
	Sections    []pageSection
}

// Dashboard renders the full dashboard page with every chart inline. It is
// served outside the API base path and is not part of the API docs.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	res, err := h.run(r)
	if err != nil {
		h.log.Errorf("Dashboard run failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	p := page{
		Title:       res.Dashboard.Title,
		RunID:       res.RunID,
		RecordCount: res.Summary.RecordCount,
	}
	for _, s := range res.Dashboard.Sections {
		ps := pageSection{Heading: s.Heading}
		for _, spec := range s.Charts {
			a, ok := res.Artifact(spec.Name)
			if !ok {
				continue
			}
			ps.Charts = append(ps.Charts, pageChart{Title: a.Title, Src: dataURI(a), Width: spec.Width})
		}
		p.Sections = append(p.Sections, ps)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		h.log.Errorf("Failed to render page: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Chart serves one rendered chart image.
// @Summary Get chart
// @Description Render one dashboard chart: season, weather, working-day or monthly-{year}
// @Tags charts
// @Produce png
// @Produce image/svg+xml
// @Param name path string true "Chart name"
// @Success 200 {file} file "Chart image"
// @Failure 404 {object} ErrorResponse "Unknown chart"
// @Failure 500 {object} ErrorResponse "Load or render failure"
// @Router /charts/{name} [get]
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	name := router.PathParam(r.URL.Path, chartsPrefix)
	if name == "" {
		writeError(w, http.StatusBadRequest, "chart name is required")
		return
	}

	res, err := h.run(r)
	if err != nil {
		h.log.Errorf("Chart run failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	a, ok := res.Artifact(name)
	if !ok {
		writeError(w, http.StatusNotFound, "chart not found: "+name)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	w.Header().Set("X-Run-ID", res.RunID)
	w.Write(a.Data)
}

func dataURI(a model.Artifact) template.URL {
	return template.URL("data:" + a.ContentType + ";base64," + base64.StdEncoding.EncodeToString(a.Data))
}
