package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Scheduler API",
        "description": "Constraint-based weekly course timetabling: exact solve, heuristic fallback, validation and scenario comparison",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Schedules", "description": "Generate, validate and compare weekly schedules"},
        {"name": "Export", "description": "Render solve results as downloadable documents"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/schedules/generate": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Solve a scheduling input",
                "parameters": [
                    {"name": "solver_mode", "in": "query", "type": "string", "enum": ["auto", "cp_sat", "heuristic"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SchedulingInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/api/v1/schedules/generate/csv": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Solve a scheduling input uploaded as CSV files",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "courses_file", "in": "formData", "type": "file", "required": true},
                    {"name": "instructors_file", "in": "formData", "type": "file", "required": true},
                    {"name": "rooms_file", "in": "formData", "type": "file", "required": true},
                    {"name": "time_slots_file", "in": "formData", "type": "file", "required": true},
                    {"name": "options_json", "in": "formData", "type": "string"},
                    {"name": "solver_mode", "in": "query", "type": "string", "enum": ["auto", "cp_sat", "heuristic"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed CSV or options"}
                }
            }
        },
        "/api/v1/schedules/validate": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Validate an assignment list against a scheduling input",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ValidationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/api/v1/schedules/compare": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Solve independent scenarios and rank them",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CompareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/api/v1/schedules/compare/csv": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Compare scenarios over a CSV-uploaded dataset",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "courses_file", "in": "formData", "type": "file", "required": true},
                    {"name": "instructors_file", "in": "formData", "type": "file", "required": true},
                    {"name": "rooms_file", "in": "formData", "type": "file", "required": true},
                    {"name": "time_slots_file", "in": "formData", "type": "file", "required": true},
                    {"name": "scenarios_json", "in": "formData", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed CSV or scenarios"}
                }
            }
        },
        "/api/v1/schedules/export": {
            "post": {
                "tags": ["Export"],
                "summary": "Render a solve result as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Document stream"},
                    "400": {"description": "Unsupported format or invalid payload"}
                }
            }
        }
    },
    "definitions": {
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"type": "object"},
                "meta": {"type": "object"}
            }
        },
        "SchedulingInput": {
            "type": "object",
            "required": ["courses"],
            "properties": {
                "courses": {"type": "array", "items": {"type": "object"}},
                "instructors": {"type": "array", "items": {"type": "object"}},
                "rooms": {"type": "array", "items": {"type": "object"}},
                "time_slots": {"type": "array", "items": {"type": "object"}},
                "options": {"type": "object"}
            }
        },
        "ValidationRequest": {
            "type": "object",
            "required": ["data", "assignments"],
            "properties": {
                "data": {"$ref": "#/definitions/SchedulingInput"},
                "assignments": {"type": "array", "items": {"type": "object"}}
            }
        },
        "CompareRequest": {
            "type": "object",
            "required": ["data", "scenarios"],
            "properties": {
                "data": {"$ref": "#/definitions/SchedulingInput"},
                "scenarios": {"type": "array", "items": {"type": "object"}}
            }
        },
        "ExportRequest": {
            "type": "object",
            "required": ["result"],
            "properties": {
                "title": {"type": "string"},
                "result": {"type": "object"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Course Scheduler API",
	Description:      "Constraint-based weekly course timetabling",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
