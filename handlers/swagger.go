package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the record services.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>recordsvc - Swagger</title>
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

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "recordsvc", "version": "v1.0.0" },
  "paths": {
    "/api/config/{key}": {
      "get": { "summary": "Get one config value", "parameters": [{"name":"key","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "key and value" }, "404": { "description": "Key not found" } } }
    },
    "/api/configs": {
      "get": { "summary": "Get the whole config mapping", "responses": { "200": { "description": "mapping in document order" } } }
    },
    "/admin/api/configs": {
      "get": { "summary": "List config entries", "responses": { "200": { "description": "array of key/value entries" }, "401": { "description": "missing or invalid admin token" } } },
      "post": { "summary": "Create or overwrite a config entry", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"key":{"type":"string"},"value":{}}}}}}, "responses": { "200": { "description": "Success" }, "400": { "description": "Key is required" } } }
    },
    "/admin/api/configs/{key}": {
      "delete": { "summary": "Delete a config entry", "parameters": [{"name":"key","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "Deleted successfully" }, "404": { "description": "Key not found" } } }
    },
    "/api/register": {
      "post": { "summary": "Register a user", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"},"email":{"type":"string"}}}}}}, "responses": { "200": { "description": "registered" }, "400": { "description": "Username already exists" } } }
    },
    "/api/login": {
      "post": { "summary": "Log in", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}}, "responses": { "200": { "description": "user with favorites" }, "401": { "description": "Invalid username or password" } } }
    },
    "/api/sync": {
      "post": { "summary": "Replace a user's favorites", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"favorites":{"type":"array","items":{}}}}}}}, "responses": { "200": { "description": "Sync successful" }, "404": { "description": "User not found" } } }
    },
    "/api/favorites/{username}": {
      "get": { "summary": "Get a user's favorites", "parameters": [{"name":"username","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "favorites" }, "404": { "description": "User not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
