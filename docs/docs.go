// Package docs is generated by swaggo/swag from the handler annotations.
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
        "/products": {
            "get": {
                "description": "Filters, sorts and paginates the catalog. Invalid parameters fall back to defaults or are dropped.",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "integer", "description": "Page number (default 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 12, max 50)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Case-insensitive text search", "name": "search", "in": "query"},
                    {"type": "string", "description": "Comma-separated category slugs", "name": "category", "in": "query"},
                    {"type": "string", "description": "Subcategory ID", "name": "subcategory", "in": "query"},
                    {"type": "string", "description": "Navigation group ID", "name": "groupId", "in": "query"},
                    {"type": "integer", "description": "Lower price bound", "name": "minPrice", "in": "query"},
                    {"type": "integer", "description": "Upper price bound", "name": "maxPrice", "in": "query"},
                    {"type": "boolean", "description": "Only products in stock", "name": "inStock", "in": "query"},
                    {"type": "boolean", "description": "Only featured products", "name": "featured", "in": "query"},
                    {"type": "string", "description": "name, price_asc, price_desc, created_at or featured", "name": "sort", "in": "query"},
                    {"type": "boolean", "description": "Admin scope (requires admin token)", "name": "admin", "in": "query"},
                    {"type": "string", "description": "Comma-separated statuses (admin scope only)", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"},
                    "429": {"description": "Too Many Requests"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/products/price-range": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Lowest and highest effective price of active products",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
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
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Furniture Storefront API",
	Description:      "Catalog, taxonomy and content API of the furniture storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
