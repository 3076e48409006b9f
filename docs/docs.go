// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/board": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Board"],
                "summary": "Board snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/board.Snapshot"}}
                }
            }
        },
        "/board/view": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Board"],
                "summary": "Board view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/board.View"}}
                }
            }
        },
        "/tasks/{id}/column": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Column holding a task",
                "parameters": [
                    {"type": "string", "description": "Task ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TaskColumnResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/tasks/{id}/move": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Tasks"],
                "summary": "Move a task",
                "parameters": [
                    {"type": "string", "description": "Task ID", "name": "id", "in": "path", "required": true},
                    {"description": "Destination", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.TaskMoveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TaskMoveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "board.TaskSnapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "priority": {"type": "string", "enum": ["low", "medium", "high", "urgent"]},
                "status": {"type": "string", "enum": ["todo", "in_progress", "review", "done"]},
                "due_date": {"type": "string", "format": "date-time"},
                "assignees": {"type": "array", "items": {"type": "string"}},
                "progress": {"type": "integer"}
            }
        },
        "board.ColumnSnapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "color": {"type": "string"},
                "capacity": {"type": "integer"},
                "tasks": {"type": "array", "items": {"$ref": "#/definitions/board.TaskSnapshot"}}
            }
        },
        "board.Snapshot": {
            "type": "object",
            "properties": {
                "version": {"type": "integer"},
                "columns": {"type": "array", "items": {"$ref": "#/definitions/board.ColumnSnapshot"}}
            }
        },
        "board.ColumnView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "color": {"type": "string"},
                "count": {"type": "integer"},
                "capacity": {"type": "integer"},
                "utilization_pct": {"type": "integer"},
                "at_capacity": {"type": "boolean"},
                "overdue_count": {"type": "integer"}
            }
        },
        "board.View": {
            "type": "object",
            "properties": {
                "version": {"type": "integer"},
                "per_column": {"type": "array", "items": {"$ref": "#/definitions/board.ColumnView"}},
                "task_count": {"type": "integer"},
                "overdue_count": {"type": "integer"}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "handler.TaskColumnResponse": {
            "type": "object",
            "properties": {
                "task_id": {"type": "string"},
                "column_id": {"type": "string"}
            }
        },
        "handler.TaskMoveRequest": {
            "type": "object",
            "required": ["column_id", "position"],
            "properties": {
                "column_id": {"type": "string"},
                "position": {"type": "integer"}
            }
        },
        "handler.TaskMoveResponse": {
            "type": "object",
            "properties": {
                "task_id": {"type": "string"},
                "column_id": {"type": "string"},
                "position": {"type": "integer"},
                "warning": {"type": "string"},
                "board": {"$ref": "#/definitions/board.Snapshot"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Task Board API",
	Description:      "Kanban board engine: snapshot, view and move commands.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
