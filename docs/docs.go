// Package docs registers the OpenAPI document served at /swagger. The paths
// are produced from the handler annotations by `swag init -v3.1 -g
// cmd/server/main.go -o docs`, which rewrites this file.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {"url": "/api/v1"}
    ],
    "tags": [
        {"name": "branches"},
        {"name": "contacts"},
        {"name": "transactions"},
        {"name": "payables"},
        {"name": "receivables"},
        {"name": "employees"},
        {"name": "advances"},
        {"name": "payroll"},
        {"name": "inventory"},
        {"name": "audit"},
        {"name": "reports"}
    ],
    "paths": {},
    "components": {
        "securitySchemes": {
            "BearerAuth": {
                "type": "apiKey",
                "name": "Authorization",
                "in": "header",
                "description": "Bearer token authentication. Format: \"Bearer {token}\""
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "Back Office API",
	Description:      "Branch ledgers, payables and receivables, employee advances and payroll.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
