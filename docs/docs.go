// Package docs registers the Swagger document served at /swagger/.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.CategoryResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Categories"],
                "summary": "Create a category",
                "parameters": [
                    {"description": "Category to create", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateCategoryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.CategoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "name already taken", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/categories/{categoryID}": {
            "delete": {
                "tags": ["Categories"],
                "summary": "Delete a category",
                "parameters": [
                    {"type": "integer", "description": "Category ID", "name": "categoryID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "403": {"description": "default category", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/stocks": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stocks"],
                "summary": "List stocks",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.StockResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Stocks"],
                "summary": "Create a stock",
                "parameters": [
                    {"description": "Stock to create", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.StockRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.CreateStockResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "category not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "name already taken", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/stocks/{stockID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stocks"],
                "summary": "Get a stock",
                "parameters": [
                    {"type": "integer", "description": "Stock ID", "name": "stockID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.StockDetailResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["Stocks"],
                "summary": "Update a stock",
                "parameters": [
                    {"type": "integer", "description": "Stock ID", "name": "stockID", "in": "path", "required": true},
                    {"description": "New stock state", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.StockRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "name already taken", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Stocks"],
                "summary": "Delete a stock",
                "parameters": [
                    {"type": "integer", "description": "Stock ID", "name": "stockID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["History"],
                "summary": "List history",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.HistoryResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/export": {
            "get": {
                "produces": ["application/json", "application/yaml"],
                "tags": ["Transfer"],
                "summary": "Export the inventory",
                "parameters": [
                    {"enum": ["json", "yaml"], "type": "string", "description": "Output format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Snapshot"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/import": {
            "post": {
                "consumes": ["application/json", "application/yaml"],
                "produces": ["application/json"],
                "tags": ["Transfer"],
                "summary": "Import an exported inventory",
                "parameters": [
                    {"enum": ["json", "yaml"], "type": "string", "description": "Input format", "name": "format", "in": "query"},
                    {"description": "Snapshot", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.Snapshot"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.ImportResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/debug/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Debug"],
                "summary": "Server and database info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DebugInfoResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "stock not found"},
                "code": {"type": "string", "example": "not_found"}
            }
        },
        "api.CreateCategoryRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 100, "example": "breakfast"}
            }
        },
        "api.CategoryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 2},
                "name": {"type": "string", "example": "Breakfast"},
                "stock_count": {"type": "integer", "example": 4},
                "is_default": {"type": "boolean", "example": false}
            }
        },
        "api.StockRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 100, "example": "Coffee beans"},
                "category_id": {"type": "integer", "minimum": 0, "example": 2},
                "type": {"type": "string", "enum": ["basic", "exact"], "example": "exact"},
                "full_value": {"type": "number", "example": 500},
                "unit": {"type": "string", "maxLength": 20, "example": "g"},
                "level": {"type": "string", "enum": ["full", "half", "refill"], "example": "half"},
                "percentage": {"type": "number", "maximum": 100, "minimum": 0, "example": 40},
                "current": {"type": "number", "minimum": 0, "example": 200}
            }
        },
        "api.StockResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 7},
                "name": {"type": "string", "example": "Coffee beans"},
                "category_id": {"type": "integer", "example": 2},
                "category_name": {"type": "string", "example": "Breakfast"},
                "type": {"type": "string", "example": "exact"},
                "full_value": {"type": "number", "example": 500},
                "unit": {"type": "string", "example": "g"},
                "percentage": {"type": "number", "example": 40},
                "has_history": {"type": "boolean", "example": true},
                "band": {"type": "string", "example": "Needs Refill"}
            }
        },
        "api.StockHistoryEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 31},
                "timestamp": {"type": "string", "example": "2025-03-01T09:30:00Z"},
                "percentage": {"type": "number", "example": 40}
            }
        },
        "api.StockDetailResponse": {
            "allOf": [
                {"$ref": "#/definitions/api.StockResponse"},
                {
                    "type": "object",
                    "properties": {
                        "history": {"type": "array", "items": {"$ref": "#/definitions/api.StockHistoryEntry"}}
                    }
                }
            ]
        },
        "api.CreateStockResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 7}
            }
        },
        "api.HistoryResponse": {
            "type": "object",
            "properties": {
                "stock_id": {"type": "integer", "example": 7},
                "stock_name": {"type": "string", "example": "Coffee beans"},
                "timestamp": {"type": "string", "example": "2025-03-01T09:30:00Z"},
                "percentage": {"type": "number", "example": 40}
            }
        },
        "api.DebugInfoResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "string"},
                "go_version": {"type": "string"},
                "uptime": {"type": "string"},
                "database_path": {"type": "string"},
                "categories": {"type": "integer"},
                "stocks": {"type": "integer"},
                "history_items": {"type": "integer"}
            }
        },
        "service.Snapshot": {
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "1.0"},
                "exported_at": {"type": "string"},
                "categories": {"type": "array", "items": {"$ref": "#/definitions/service.SnapshotCategory"}}
            }
        },
        "service.SnapshotCategory": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "stocks": {"type": "array", "items": {"$ref": "#/definitions/service.SnapshotStock"}}
            }
        },
        "service.SnapshotStock": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string"},
                "full_value": {"type": "number"},
                "unit": {"type": "string"},
                "percentage": {"type": "number"}
            }
        },
        "service.ImportResult": {
            "type": "object",
            "properties": {
                "categories_created": {"type": "integer"},
                "stocks_created": {"type": "integer"},
                "stocks_skipped": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pantry API",
	Description:      "Household pantry inventory: categories, items and their fill level history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
