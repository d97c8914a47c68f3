// Package docs registers the OpenAPI document served at /swagger/*. The
// layout is the one swag init writes; regenerate from the handler
// annotations with go generate ./cmd/catalogadmin.
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
                "tags": ["categories"],
                "summary": "List categories",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.CategoriesEnvelope"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "integer", "description": "Page size (1-100)", "name": "limit", "in": "query"},
                    {"type": "boolean", "description": "Only featured or non-featured products", "name": "featured", "in": "query"},
                    {"type": "string", "description": "Cursor for the next page", "name": "starting_after", "in": "query"},
                    {"type": "string", "description": "Cursor for the previous page", "name": "ending_before", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ProductListResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "Product", "name": "product", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.ProductEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Get a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ProductEnvelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Multipart partial update. Omitted fields are unchanged; image parts replace the image set.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Update a product",
                "parameters": [
                    {"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Name", "name": "name", "in": "formData"},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData"},
                    {"type": "string", "description": "Category ID", "name": "category", "in": "formData"},
                    {"type": "string", "description": "Price", "name": "price", "in": "formData"},
                    {"type": "string", "description": "Stock", "name": "stock", "in": "formData"},
                    {"type": "string", "description": "ISO 4217 currency", "name": "currency", "in": "formData"},
                    {"type": "boolean", "description": "Featured", "name": "featured", "in": "formData"},
                    {"type": "file", "description": "Product image (repeatable)", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ProductEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.CategoriesEnvelope": {
            "type": "object",
            "properties": {
                "categories": {"type": "array", "items": {"$ref": "#/definitions/api.CategoryResponse"}}
            }
        },
        "api.CategoryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "api.CreateProductRequest": {
            "type": "object",
            "required": ["category_id", "currency", "description", "name", "price", "stock"],
            "properties": {
                "category_id": {"type": "integer"},
                "currency": {"type": "string"},
                "description": {"type": "string", "maxLength": 5000},
                "featured": {"type": "boolean"},
                "name": {"type": "string", "maxLength": 255},
                "price": {"type": "string"},
                "stock": {"type": "integer", "minimum": 0}
            }
        },
        "api.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "param": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/api.ErrorDetail"}
            }
        },
        "api.ProductListResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/api.ProductResponse"}},
                "has_more": {"type": "boolean"},
                "next_cursor": {"type": "string"},
                "prev_cursor": {"type": "string"}
            }
        },
        "api.ProductEnvelope": {
            "type": "object",
            "properties": {
                "product": {"$ref": "#/definitions/api.ProductResponse"}
            }
        },
        "api.ProductResponse": {
            "type": "object",
            "properties": {
                "category_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "currency": {"type": "string"},
                "description": {"type": "string"},
                "featured": {"type": "boolean"},
                "id": {"type": "string"},
                "images": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"},
                "price": {"type": "string"},
                "stock": {"type": "integer"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Catalog Admin API",
	Description:      "Product and category endpoints backing the catalog admin editor.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
