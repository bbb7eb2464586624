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
    <title>powerise-api — Swagger</title>
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

// Minimal OpenAPI document covering the public and admin API surface.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "powerise-api", "version": "v0.1.0" },
  "paths": {
    "/api/contacts": {
      "post": {
        "summary": "Submit the public contact form",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string","maxLength":100},"email":{"type":"string"},"phone":{"type":"string"},"company":{"type":"string"},"subject":{"type":"string","maxLength":200},"message":{"type":"string","maxLength":2000}},"required":["name","email","subject","message"]}}}},
        "responses": { "200": { "description": "accepted" }, "400": { "description": "validation error with per-field details" }, "429": { "description": "rate limited" } }
      },
      "get": { "summary": "Not supported", "responses": { "405": { "description": "method not allowed" } } }
    },
    "/api/auth/login": {
      "post": { "summary": "Admin login", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}},"required":["email","password"]}}}}, "responses": { "200": { "description": "session cookie set" }, "401": { "description": "bad credentials" }, "403": { "description": "account lacks admin privileges" } } }
    },
    "/api/auth/logout": {
      "post": { "summary": "Clear the admin session", "responses": { "200": { "description": "logged out" } } }
    },
    "/api/auth/session": {
      "get": { "summary": "Current session state", "responses": { "200": { "description": "state, initialized, isAdmin, user" } } }
    },
    "/admin/api/posts": {
      "get": { "summary": "List posts (all statuses)", "responses": { "200": { "description": "posts" } } },
      "post": { "summary": "Create a post", "responses": { "201": { "description": "created" } } }
    },
    "/admin/api/works": {
      "get": { "summary": "List works (all statuses)", "responses": { "200": { "description": "works" } } },
      "post": { "summary": "Create a work", "responses": { "201": { "description": "created" } } }
    },
    "/admin/api/contacts": {
      "get": { "summary": "List contact submissions", "responses": { "200": { "description": "contacts" } } }
    },
    "/admin/api/uploads": {
      "post": { "summary": "Upload a media file", "responses": { "201": { "description": "stored, presigned URL returned" }, "503": { "description": "media storage not configured" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
