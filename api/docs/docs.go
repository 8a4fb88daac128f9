// Package docs registers the Swagger specification for the API. The spec is
// maintained by hand in swag's template format; keep it in step with the
// handler annotations when routes change.
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
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/apisdk.HealthResponse"}}
                }
            }
        },
        "/v1/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new account",
                "parameters": [
                    {"description": "Registration payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/apisdk.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/apisdk.UserResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apisdk.APIError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            }
        },
        "/v1/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange credentials for a session token",
                "parameters": [
                    {"description": "Login payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/apisdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            }
        },
        "/v1/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Resolve the authenticated user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            }
        },
        "/v1/posts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create an image post",
                "parameters": [
                    {"type": "file", "description": "Image file (jpeg or png, up to 5 MiB)", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Optional caption", "name": "body", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/apisdk.PostResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.APIError"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/apisdk.APIError"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            }
        },
        "/v1/posts/feed": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Home feed of followed authors",
                "parameters": [
                    {"type": "integer", "description": "Pagination offset", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.FeedResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            }
        },
        "/v1/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Post detail with paginated comments",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Comments page size (1-50)", "name": "comments_limit", "in": "query"},
                    {"type": "integer", "description": "Comments offset", "name": "comments_offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/apisdk.PostDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            }
        },
        "/v1/posts/{id}/comments": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Comment on a post",
                "parameters": [
                    {"type": "string", "description": "Post ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment payload", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.commentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/apisdk.CommentResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apisdk.APIError"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            }
        },
        "/v1/users/{id}/follow": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Follow a user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Unfollow a user",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apisdk.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "apisdk.APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "error_description": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "apisdk.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"},
                "uptime": {"type": "string"}
            }
        },
        "apisdk.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "apisdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "apisdk.TokenResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "token_type": {"type": "string"},
                "expires_in": {"type": "integer"}
            }
        },
        "apisdk.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "username": {"type": "string"},
                "avatar_url": {"type": "string"},
                "role_id": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "apisdk.AuthorResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "avatar_url": {"type": "string"}
            }
        },
        "apisdk.PostResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "body": {"type": "string"},
                "media_url": {"type": "string"},
                "created_at": {"type": "string"},
                "author": {"$ref": "#/definitions/apisdk.AuthorResponse"}
            }
        },
        "http.commentRequest": {
            "type": "object",
            "properties": {
                "body": {"type": "string"}
            }
        },
        "apisdk.CommentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "post_id": {"type": "string"},
                "body": {"type": "string"},
                "created_at": {"type": "string"},
                "author": {"$ref": "#/definitions/apisdk.AuthorResponse"}
            }
        },
        "apisdk.FeedResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/apisdk.PostResponse"}},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "next_offset": {"type": "integer"}
            }
        },
        "apisdk.CommentsPage": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/apisdk.CommentResponse"}},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "next_offset": {"type": "integer"}
            }
        },
        "apisdk.PostDetailResponse": {
            "type": "object",
            "properties": {
                "post": {"$ref": "#/definitions/apisdk.PostResponse"},
                "comments": {"$ref": "#/definitions/apisdk.CommentsPage"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Session token. Format: \"Bearer {token}\"."
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Pixelfeed API",
	Description:      "Photo-sharing backend: registration and login with bearer session tokens, image posts, a follow-based home feed and paginated comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
