package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "NextUni Portal API",
        "description": "Role-based admissions portal over the NextUni content gateway",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Portal sessions"},
        {"name": "Articles", "description": "Counselling article workflow"},
        {"name": "Events", "description": "Admission event workflow and registration"},
        {"name": "Surfaces", "description": "Stateful workflow list surfaces"},
        {"name": "Catalog", "description": "University and major catalogues"},
        {"name": "SubjectGroups", "description": "Admission subject groups"},
        {"name": "Exports", "description": "CSV/PDF listing exports"},
        {"name": "Chatbot", "description": "Counselling chatbot fallback"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with gateway credentials",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log out and drop the server-side session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/articles/status/{status}": {
            "get": {
                "tags": ["Articles"],
                "summary": "List articles by status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/articles": {
            "post": {
                "tags": ["Articles"],
                "summary": "Create a draft article",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateArticleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/articles/{id}": {
            "get": {
                "tags": ["Articles"],
                "summary": "Get article detail",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Articles"],
                "summary": "Update a draft article",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateArticleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/articles/{id}/transition": {
            "post": {
                "tags": ["Articles"],
                "summary": "Apply a workflow transition to an article",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition"}
                }
            }
        },
        "/events/status/{status}": {
            "get": {
                "tags": ["Events"],
                "summary": "List events by status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events": {
            "post": {
                "tags": ["Events"],
                "summary": "Create a pending event",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event detail",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/events/{id}/transition": {
            "post": {
                "tags": ["Events"],
                "summary": "Apply a workflow transition to an event",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TransitionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Illegal transition"}
                }
            }
        },
        "/events/{id}/registration": {
            "post": {
                "tags": ["Events"],
                "summary": "Register the current student for an event",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Registration closed"}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Withdraw the current student's registration",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/surfaces/{kind}": {
            "get": {
                "tags": ["Surfaces"],
                "summary": "Current view state of a list surface",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/surfaces/{kind}/reload": {
            "post": {
                "tags": ["Surfaces"],
                "summary": "Reload the surface's current filter and page",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/surfaces/{kind}/filter": {
            "put": {
                "tags": ["Surfaces"],
                "summary": "Switch the surface's status filter",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetFilterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/surfaces/{kind}/page": {
            "put": {
                "tags": ["Surfaces"],
                "summary": "Move the surface to another page",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetPageRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/universities": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List universities",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "includeDeleted", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/universities/{id}/toggle": {
            "put": {
                "tags": ["Catalog"],
                "summary": "Toggle a university's soft-delete flag",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/universities/{id}/majors": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List majors for a university",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/majors/{id}/toggle": {
            "put": {
                "tags": ["Catalog"],
                "summary": "Toggle a major's soft-delete flag",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/subjects": {
            "get": {
                "tags": ["SubjectGroups"],
                "summary": "List all exam subjects",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subject-groups": {
            "get": {
                "tags": ["SubjectGroups"],
                "summary": "List subject groups",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["SubjectGroups"],
                "summary": "Create or update a subject group",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubjectGroupDraft"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subject-groups/draft/toggle": {
            "post": {
                "tags": ["SubjectGroups"],
                "summary": "Toggle one subject in a draft selection",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ToggleSubjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/subject-groups/{id}/toggle": {
            "put": {
                "tags": ["SubjectGroups"],
                "summary": "Toggle a subject group's soft-delete flag",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/exports/articles/{status}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the article listing for one status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/exports/events/{status}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export the event listing for one status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "status", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/chatbot/ask": {
            "post": {
                "tags": ["Chatbot"],
                "summary": "Ask the counselling chatbot a question",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChatRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateArticleRequest": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "UpdateArticleRequest": {
            "type": "object",
            "required": ["title", "content"],
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"}
            }
        },
        "CreateEventRequest": {
            "type": "object",
            "required": ["name", "content", "startDate"],
            "properties": {
                "name": {"type": "string"},
                "content": {"type": "string"},
                "startDate": {"type": "string", "format": "date-time"},
                "endDate": {"type": "string", "format": "date-time"},
                "capacity": {"type": "integer"}
            }
        },
        "TransitionRequest": {
            "type": "object",
            "required": ["transition"],
            "properties": {
                "transition": {"type": "string", "enum": ["submit", "approve", "reject", "cancel"]}
            }
        },
        "SetFilterRequest": {
            "type": "object",
            "required": ["filter"],
            "properties": {
                "filter": {"type": "string"}
            }
        },
        "SetPageRequest": {
            "type": "object",
            "required": ["page"],
            "properties": {
                "page": {"type": "integer"}
            }
        },
        "SubjectGroupDraft": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "code": {"type": "string"},
                "subject_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ToggleSubjectRequest": {
            "type": "object",
            "required": ["subject_id"],
            "properties": {
                "draft": {"$ref": "#/definitions/SubjectGroupDraft"},
                "subject_id": {"type": "string"}
            }
        },
        "ChatRequest": {
            "type": "object",
            "required": ["question"],
            "properties": {
                "question": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
