package api

import (
	"bike-dashboard/internal/api/docs"
	"bike-dashboard/internal/api/handler"
	"bike-dashboard/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes wires the dashboard, its API and, optionally, the swagger UI.
func RegisterRoutes(r *router.Router, h *handler.Handler, enableSwagger bool) {
	r.GET("/", h.Dashboard)
	r.GET("/health", h.Health)

	r.GET("/api/v1/charts/*", h.Chart)
	r.GET("/api/v1/summary", h.Summary)
	r.GET("/api/v1/summary/export", h.ExportSummary)
	r.GET("/api/v1/runs", h.ListRuns)
	r.GET("/api/v1/runs/*", h.GetRun)

	if enableSwagger {
		swagger := httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
			httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		)
		r.GET("/swagger/*", router.HandlerFunc(swagger))
	}
}
