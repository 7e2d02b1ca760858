package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FabLab Print Intake API",
        "description": "3D-print job intake, review and fulfillment workflow",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Workstation authentication"},
        {"name": "Jobs", "description": "Print job lifecycle"},
        {"name": "Submit", "description": "Public submission intake"},
        {"name": "Staff", "description": "Staff roster for attribution"},
        {"name": "Admin", "description": "Audit, overrides, export, retention"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Workstation login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Could not verify"}
                }
            }
        },
        "/jobs": {
            "get": {
                "tags": ["Jobs"],
                "summary": "List jobs",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "printer", "in": "query", "type": "string"},
                    {"name": "discipline", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jobs/counts": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Job counts per status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jobs/{id}": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Get job",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Jobs"],
                "summary": "Delete job (UPLOADED/PENDING only)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Not deletable in current status"}
                }
            }
        },
        "/jobs/{id}/approve": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Approve job and compute cost",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApproveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload or staff"},
                    "409": {"description": "Illegal transition"}
                }
            }
        },
        "/jobs/{id}/reject": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Reject job with reasons",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RejectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submit": {
            "post": {
                "tags": ["Submit"],
                "summary": "Submit a new print job (multipart)",
                "consumes": ["multipart/form-data"],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"},
                    "409": {"description": "Duplicate active job"},
                    "413": {"description": "File too large"}
                }
            }
        },
        "/submit/options": {
            "get": {
                "tags": ["Submit"],
                "summary": "Submission form options",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/submit/confirm/{token}": {
            "post": {
                "tags": ["Submit"],
                "summary": "Confirm an approved job via emailed link",
                "parameters": [
                    {"name": "token", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Confirmed"},
                    "410": {"description": "Link expired"}
                }
            }
        },
        "/staff": {
            "get": {
                "tags": ["Staff"],
                "summary": "List staff",
                "parameters": [
                    {"name": "include_inactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Staff"],
                "summary": "Add staff member",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Duplicate name"}
                }
            }
        },
        "/jobs/{id}/review": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Toggle staff-viewed marker",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jobs/{id}/mark-printing": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Move confirmed job onto a printer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition"}
                }
            }
        },
        "/jobs/{id}/mark-complete": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Take finished job off the printer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition"}
                }
            }
        },
        "/jobs/{id}/payment": {
            "post": {
                "tags": ["Jobs"],
                "summary": "Record payment and pickup",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition"}
                }
            }
        },
        "/jobs/{id}/notes": {
            "patch": {
                "tags": ["Jobs"],
                "summary": "Replace staff notes",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jobs/{id}/events": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Job event log",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/jobs/{id}/candidate-files": {
            "get": {
                "tags": ["Jobs"],
                "summary": "Sliced files eligible to become authoritative",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/staff/{name}": {
            "patch": {
                "tags": ["Staff"],
                "summary": "Activate or deactivate staff member",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown staff member"}
                }
            }
        },
        "/admin/override": {
            "post": {
                "tags": ["Admin"],
                "summary": "Out-of-band job correction",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/audit/report": {
            "get": {
                "tags": ["Admin"],
                "summary": "Storage audit report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/audit/orphaned-file": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete an orphaned file",
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/admin/audit/stale-file": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a stale terminal-job file",
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/admin/audit/mark-reviewed": {
            "post": {
                "tags": ["Admin"],
                "summary": "Mark a flagged job as reviewed",
                "responses": {
                    "204": {"description": "Recorded"}
                }
            }
        },
        "/admin/archive": {
            "post": {
                "tags": ["Admin"],
                "summary": "Archive terminal jobs older than a cutoff",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/export": {
            "get": {
                "tags": ["Admin"],
                "summary": "Export jobs as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/analytics/events": {
            "get": {
                "tags": ["Admin"],
                "summary": "Recent events across all jobs",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/_diag": {
            "get": {
                "tags": ["Admin"],
                "summary": "Subsystem diagnostics",
                "responses": {
                    "200": {"description": "Healthy"},
                    "503": {"description": "A required subsystem is down"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "workstation_id": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ApproveRequest": {
            "type": "object",
            "properties": {
                "staff_name": {"type": "string"},
                "weight_g": {"type": "number"},
                "time_hours": {"type": "number"},
                "authoritative_filename": {"type": "string"}
            }
        },
        "RejectRequest": {
            "type": "object",
            "properties": {
                "staff_name": {"type": "string"},
                "reasons": {"type": "array", "items": {"type": "string"}},
                "custom_reason": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
