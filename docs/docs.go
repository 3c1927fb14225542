// Package docs describes the ShelfLog HTTP API in Swagger 2.0 form. It mirrors
// the swag annotations on cmd/server and the HTTP handlers; regenerate it with
// `swag init -g cmd/server/main.go` after changing them.
package docs

import "github.com/swaggo/swag/v2"

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
        "/auth/signup": {
            "post": {
                "description": "Register an email/password credential with its profile and sign in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Account details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SignUpRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.AuthEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}}
                }
            }
        },
        "/auth/signin": {
            "post": {
                "description": "Verify an email/password pair and issue a token pair",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SignInRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "description": "Exchange a refresh token for a new pair; the old refresh token is revoked",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "parameters": [
                    {"description": "Refresh token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RefreshTokenRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}}
                }
            }
        },
        "/auth/signout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Revoke the presented access token and, if given, the refresh token",
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}}
                }
            }
        },
        "/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Return the profile resolved from the bearer token",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ProfileResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}}
                }
            }
        },
        "/items": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Every catalog item sorted by name",
                "produces": ["application/json"],
                "tags": ["items"],
                "summary": "List items",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.ItemResponse"}}}
                }
            }
        },
        "/events": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Append one event for the caller. count is optional free text; non-numeric text is ignored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Record a shelf event",
                "parameters": [
                    {"description": "Event form", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.SubmitEventRequest"}},
                    {"type": "string", "description": "Deduplicates retries", "name": "Idempotency-Key", "in": "header"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.EventResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}}
                }
            }
        },
        "/feeds/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Events recorded by the caller, newest first",
                "produces": ["application/json"],
                "tags": ["feeds"],
                "summary": "The caller's feed",
                "parameters": [
                    {"type": "integer", "description": "Page number, from 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, default 10", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "ETag of a cached page", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.FeedEventResponse"}}},
                    "304": {"description": "Not Modified"}
                }
            }
        },
        "/feeds/store": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Every event in the store, newest first. Managers only.",
                "produces": ["application/json"],
                "tags": ["feeds"],
                "summary": "Store-wide feed",
                "parameters": [
                    {"type": "integer", "description": "Page number, from 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size, default 25", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "ETag of a cached page", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.FeedEventResponse"}}},
                    "304": {"description": "Not Modified"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}}
                }
            }
        },
        "/trends": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "The six trend projections over every event. Managers only.",
                "produces": ["application/json"],
                "tags": ["trends"],
                "summary": "Trend projections",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.TrendsResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/dto.ErrorEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "The caller's feed; managers also get the store feed and trends",
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard",
                "parameters": [
                    {"type": "integer", "description": "Page of the caller's feed", "name": "user_page", "in": "query"},
                    {"type": "integer", "description": "Page of the store feed (managers)", "name": "store_page", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DashboardResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness of the database and the shared stores",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        },
        "/system/info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Get system information",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.SystemInfoResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"$ref": "#/definitions/dto.ErrorInfo"}
            }
        },
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/dto.ValidationDetail"}}
            }
        },
        "dto.ValidationDetail": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "dto.Meta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "has_next": {"type": "boolean"},
                "has_previous": {"type": "boolean"},
                "revision": {"type": "integer"}
            }
        },
        "handler.SignUpRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {
                "name": {"type": "string", "maxLength": 100},
                "email": {"type": "string", "maxLength": 254},
                "password": {"type": "string", "maxLength": 72, "minLength": 6},
                "role": {"type": "string", "enum": ["associate", "manager"]}
            }
        },
        "handler.SignInRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "maxLength": 254},
                "password": {"type": "string", "maxLength": 72}
            }
        },
        "handler.RefreshTokenRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {
                "refresh_token": {"type": "string"}
            }
        },
        "handler.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "access_token_expires_at": {"type": "string"},
                "refresh_token_expires_at": {"type": "string"},
                "token_type": {"type": "string"}
            }
        },
        "handler.AuthEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {
                    "type": "object",
                    "properties": {
                        "token": {"$ref": "#/definitions/handler.TokenResponse"},
                        "profile": {"$ref": "#/definitions/handler.ProfileResponse"}
                    }
                }
            }
        },
        "handler.ProfileResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "is_manager": {"type": "boolean"}
            }
        },
        "handler.ItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "aisle": {"type": "string"},
                "capacity": {"type": "integer"}
            }
        },
        "handler.SubmitEventRequest": {
            "type": "object",
            "properties": {
                "item_id": {"type": "string"},
                "action": {"type": "string", "enum": ["empty", "low_stock", "restocked"]},
                "count": {"type": "string"}
            }
        },
        "handler.EventResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "string"},
                "item_id": {"type": "string"},
                "action": {"type": "string"},
                "action_label": {"type": "string"},
                "count": {"type": "integer"},
                "created_at": {"type": "string"}
            }
        },
        "handler.FeedEventResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_id": {"type": "string"},
                "item_id": {"type": "string"},
                "action": {"type": "string"},
                "action_label": {"type": "string"},
                "count": {"type": "integer"},
                "created_at": {"type": "string"},
                "item_name": {"type": "string"},
                "aisle": {"type": "string"},
                "user_name": {"type": "string"},
                "item_resolved": {"type": "boolean"},
                "user_resolved": {"type": "boolean"}
            }
        },
        "handler.FeedPageResponse": {
            "type": "object",
            "properties": {
                "events": {"type": "array", "items": {"$ref": "#/definitions/handler.FeedEventResponse"}},
                "meta": {"$ref": "#/definitions/dto.Meta"}
            }
        },
        "handler.TrendsResponse": {
            "type": "object",
            "properties": {
                "empty_data": {"type": "array", "items": {"$ref": "#/definitions/report.FrequencyEntry"}},
                "restocked_data": {"type": "array", "items": {"$ref": "#/definitions/report.FrequencyEntry"}},
                "low_stock_data": {"type": "array", "items": {"$ref": "#/definitions/report.FrequencyEntry"}},
                "aisle_data": {"type": "array", "items": {"$ref": "#/definitions/report.FrequencyEntry"}},
                "events_over_time": {"type": "array", "items": {"$ref": "#/definitions/report.DailyCount"}},
                "restock_empty_data": {"type": "array", "items": {"$ref": "#/definitions/report.RatioEntry"}},
                "revision": {"type": "integer"},
                "event_count": {"type": "integer"},
                "cached": {"type": "boolean"}
            }
        },
        "handler.DashboardResponse": {
            "type": "object",
            "properties": {
                "profile": {"$ref": "#/definitions/handler.ProfileResponse"},
                "user_feed": {"$ref": "#/definitions/handler.FeedPageResponse"},
                "store_feed": {"$ref": "#/definitions/handler.FeedPageResponse"},
                "trends": {"$ref": "#/definitions/handler.TrendsResponse"}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "handler.SystemInfoResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "version": {"type": "string"},
                "go_version": {"type": "string"},
                "uptime": {"type": "string"}
            }
        },
        "report.FrequencyEntry": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "report.DailyCount": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "count": {"type": "integer"}
            }
        },
        "report.RatioEntry": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "restocked": {"type": "integer"},
                "empty": {"type": "integer"},
                "restock_share": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ShelfLog API",
	Description:      "Shelf inventory event log: submissions, feeds and trends.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
