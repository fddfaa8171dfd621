package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>equza-api — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document covering the public storefront surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "equza-api", "version": "v0.1.0" },
  "paths": {
    "/api/homepage": { "get": { "summary": "Homepage sections", "responses": { "200": { "description": "hero, featured products, collections, weave types" } } } },
    "/api/products": { "get": { "summary": "List active products", "responses": { "200": { "description": "products" } } } },
    "/api/products/{slug}": { "get": { "summary": "Get product by slug", "responses": { "200": { "description": "product" }, "404": { "description": "not found" } } } },
    "/api/products/{slug}/related": { "get": { "summary": "Related products", "responses": { "200": { "description": "products" } } } },
    "/api/collections": { "get": { "summary": "List active collections", "responses": { "200": { "description": "collections" } } } },
    "/api/collections/{slug}": { "get": { "summary": "Get collection by slug", "responses": { "200": { "description": "collection" }, "404": { "description": "not found" } } } },
    "/api/weave-types": { "get": { "summary": "List weave types", "responses": { "200": { "description": "weave types" } } } },
    "/api/pages/{slug}": { "get": { "summary": "Get static page", "responses": { "200": { "description": "page" }, "404": { "description": "not found" } } } },
    "/api/forms/contact": { "post": { "summary": "Submit contact form", "responses": { "201": { "description": "lead created" } } } },
    "/api/forms/customize": { "post": { "summary": "Submit customization request", "responses": { "201": { "description": "lead created" } } } },
    "/api/forms/enquiry": { "post": { "summary": "Submit product enquiry", "responses": { "201": { "description": "lead created" } } } },
    "/api/forms/trade": { "post": { "summary": "Submit trade enquiry", "responses": { "201": { "description": "lead created" } } } },
    "/api/admin/auth/login": { "post": { "summary": "Admin login", "responses": { "200": { "description": "token pair" }, "401": { "description": "invalid credentials" } } } },
    "/api/admin/auth/refresh": { "post": { "summary": "Refresh access token", "responses": { "200": { "description": "new token pair" }, "401": { "description": "invalid refresh" } } } },
    "/api/admin/auth/logout": { "post": { "summary": "Logout", "responses": { "200": { "description": "logged out" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
