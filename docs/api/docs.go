// Package api holds the Swagger document served at /api-docs.
package api

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/localnerve/pcnodetree",
            "email": "info@localnerve.com"
        },
        "license": {
            "name": "AGPL-3.0",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/nodes": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a root node, or a child when parentId is given",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["nodes"],
                "summary": "Create a node",
                "parameters": [
                    {"type": "string", "default": "1.0.0", "description": "API version", "name": "X-Api-Version", "in": "header"},
                    {"description": "Node to create", "name": "node", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateNodeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.SuccessResponseStruct"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Parent not found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "409": {"description": "Duplicate name", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/nodes/{nodeId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["nodes"],
                "summary": "Get a subtree by node id",
                "parameters": [
                    {"type": "string", "default": "1.0.0", "description": "API version", "name": "X-Api-Version", "in": "header"},
                    {"type": "string", "description": "Node id", "name": "nodeId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.PathResponseStruct"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Node not found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/nodes/{nodeId}/properties": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates the property, or replaces the value of an existing property with the same key",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["nodes"],
                "summary": "Set a property",
                "parameters": [
                    {"type": "string", "default": "1.0.0", "description": "API version", "name": "X-Api-Version", "in": "header"},
                    {"type": "string", "description": "Node id", "name": "nodeId", "in": "path", "required": true},
                    {"description": "Property to set", "name": "property", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AddPropertyRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.SuccessResponseStruct"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Node not found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        },
        "/paths": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Resolves a slash delimited path such as AlphaPC/Processing/CPU/Cores to a subtree or a property",
                "produces": ["application/json"],
                "tags": ["paths"],
                "summary": "Resolve a path",
                "parameters": [
                    {"type": "string", "default": "1.0.0", "description": "API version", "name": "X-Api-Version", "in": "header"},
                    {"type": "string", "description": "Path", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.PathResponseStruct"}},
                    "400": {"description": "Invalid path", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}},
                    "404": {"description": "Path not found", "schema": {"$ref": "#/definitions/utils.ErrorResponseStruct"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateNodeRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "parentId": {"type": "string"}
            }
        },
        "handlers.AddPropertyRequest": {
            "type": "object",
            "required": ["key", "value"],
            "properties": {
                "key": {"type": "string", "maxLength": 255},
                "value": {"type": "number"}
            }
        },
        "types.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "utils.SuccessResponseStruct": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {}
            }
        },
        "utils.PathResponseStruct": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "type": {"type": "string", "enum": ["node", "property"]},
                "data": {}
            }
        },
        "utils.ErrorResponseStruct": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "ok": {"type": "boolean"},
                "timestamp": {"type": "string"},
                "url": {"type": "string"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/types.FieldError"}},
                "detail": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:3000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "PC Node Tree API",
	Description:      "Hierarchical PC component node tree service with path lookups",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
