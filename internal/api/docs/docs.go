// Package docs holds the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/charts/{name}": {
            "get": {
                "description": "Render one dashboard chart: season, weather, working-day or monthly-{year}",
                "produces": ["image/png", "image/svg+xml"],
                "tags": ["charts"],
                "summary": "Get chart",
                "parameters": [
                    {"type": "string", "description": "Chart name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Chart image", "schema": {"type": "file"}},
                    "404": {"description": "Unknown chart", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Load or render failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/summary": {
            "get": {
                "description": "Mean rentals per season, weather and working day plus monthly totals per year",
                "produces": ["application/json"],
                "tags": ["summary"],
                "summary": "Get summary tables",
                "responses": {
                    "200": {"description": "Derived tables", "schema": {"$ref": "#/definitions/model.Summary"}},
                    "500": {"description": "Load failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/summary/export": {
            "get": {
                "description": "Download the derived tables as CSV, JSON or XLSX",
                "produces": ["application/octet-stream"],
                "tags": ["summary"],
                "summary": "Export summary tables",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv, json or xlsx", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Export file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Load failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/runs": {
            "get": {
                "description": "Most recent dashboard runs first",
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "List runs",
                "parameters": [
                    {"type": "integer", "default": 100, "description": "Maximum number of runs", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Runs", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Run"}}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Run history disabled", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/runs/{id}": {
            "get": {
                "description": "Retrieve one run and the errors recorded against it",
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get run",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Run details", "schema": {"$ref": "#/definitions/model.Run"}},
                    "404": {"description": "Run not found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "503": {"description": "Run history disabled", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "model.CategoryMean": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "label": {"type": "string"},
                "mean_total_rentals": {"type": "number"},
                "record_count": {"type": "integer"}
            }
        },
        "model.SummaryTable": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "rows": {"type": "array", "items": {"$ref": "#/definitions/model.CategoryMean"}}
            }
        },
        "model.MonthlyPoint": {
            "type": "object",
            "properties": {
                "month": {"type": "string"},
                "total_rentals": {"type": "integer"}
            }
        },
        "model.MonthlySeries": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "points": {"type": "array", "items": {"$ref": "#/definitions/model.MonthlyPoint"}}
            }
        },
        "model.Summary": {
            "type": "object",
            "properties": {
                "record_count": {"type": "integer"},
                "season": {"$ref": "#/definitions/model.SummaryTable"},
                "weather": {"$ref": "#/definitions/model.SummaryTable"},
                "working_day": {"$ref": "#/definitions/model.SummaryTable"},
                "monthly": {"type": "array", "items": {"$ref": "#/definitions/model.MonthlySeries"}}
            }
        },
        "model.RunError": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.Run": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "trigger": {"type": "string"},
                "status": {"type": "string"},
                "record_count": {"type": "integer"},
                "chart_count": {"type": "integer"},
                "started_at": {"type": "string"},
                "finished_at": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/model.RunError"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bike Sharing Dashboard API",
	Description:      "Charts and summary tables derived from the daily bike rental dataset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
