// Package swagger registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o api/swagger
package swagger

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
        "/api/customers": {"get": {"tags": ["customers"], "summary": "List customers"}, "post": {"tags": ["customers"], "summary": "Create customer"}},
        "/api/customers/{id}": {"get": {"tags": ["customers"], "summary": "Get customer"}, "put": {"tags": ["customers"], "summary": "Update customer"}, "delete": {"tags": ["customers"], "summary": "Delete customer"}},
        "/api/products": {"get": {"tags": ["products"], "summary": "List products"}, "post": {"tags": ["products"], "summary": "Create product"}},
        "/api/products/stats": {"get": {"tags": ["products"], "summary": "Product price statistics"}},
        "/api/products/{id}": {"get": {"tags": ["products"], "summary": "Get product"}, "put": {"tags": ["products"], "summary": "Update product"}, "delete": {"tags": ["products"], "summary": "Delete product"}},
        "/api/invoices": {"get": {"tags": ["invoices"], "summary": "List invoices"}, "post": {"tags": ["invoices"], "summary": "Create invoice"}},
        "/api/invoices/{id}": {"get": {"tags": ["invoices"], "summary": "Get invoice"}},
        "/api/invoices/{id}/pdf": {"get": {"tags": ["invoices"], "summary": "Download invoice PDF"}},
        "/api/drafts": {"post": {"tags": ["drafts"], "summary": "Create draft"}},
        "/api/drafts/{id}": {"get": {"tags": ["drafts"], "summary": "Get draft"}, "delete": {"tags": ["drafts"], "summary": "Discard draft"}},
        "/api/drafts/{id}/lines": {"post": {"tags": ["drafts"], "summary": "Add draft line"}, "delete": {"tags": ["drafts"], "summary": "Clear draft lines"}},
        "/api/drafts/{id}/lines/{index}": {"delete": {"tags": ["drafts"], "summary": "Remove draft line"}},
        "/api/drafts/{id}/lines/{index}/product": {"post": {"tags": ["drafts"], "summary": "Save draft line as product"}},
        "/api/drafts/{id}/submit": {"post": {"tags": ["drafts"], "summary": "Submit draft"}},
        "/api/settings": {"get": {"tags": ["settings"], "summary": "Get company settings"}, "put": {"tags": ["settings"], "summary": "Update company settings"}},
        "/api/templates": {"get": {"tags": ["settings"], "summary": "List invoice templates"}},
        "/api/reports/sales-summary": {"get": {"tags": ["reports"], "summary": "Sales summary"}},
        "/api/reports/sales-summary/export": {"get": {"tags": ["reports"], "summary": "Export sales summary"}},
        "/api/reports/dashboard": {"get": {"tags": ["reports"], "summary": "Dashboard metrics"}},
        "/api/activity-logs": {"get": {"tags": ["activity"], "summary": "List activity logs"}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "UMKM Invoice API",
	Description:      "Invoicing for small businesses: customers, products, invoices, PDF documents and sales reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
