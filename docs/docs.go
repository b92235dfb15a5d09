// Package docs registers the OpenAPI description of the HTTP API with swag,
// so httpSwagger can serve it at /swagger/doc.json. Keep it in step with the
// @Summary/@Router annotations on the handlers in internal/api.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness and loaded question count",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/modes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Modes"],
                "summary": "List modes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.ModeResponse"}}}
                }
            }
        },
        "/modes/{mode}/session": {
            "delete": {
                "tags": ["Modes"],
                "summary": "Clear the saved session of a mode",
                "parameters": [
                    {"type": "string", "description": "Mode name", "name": "mode", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "unknown mode", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "description": "Draws a question set for the mode. Persisted modes resume an in-progress session.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Start a session",
                "parameters": [
                    {"description": "Mode to start", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.CreateSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "unknown mode", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "422": {"description": "no questions loaded", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "Reset a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/answer": {
            "post": {
                "description": "Locks the current question and scores it. Repeat answers are ignored (accepted=false).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Answer the current question",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true},
                    {"description": "Chosen index", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.AnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AnswerResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "session finished", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/next": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Advance to the next question",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/finish": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Finish a session now",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/review": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Review a finished session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.AnsweredQuestionView"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "session still in progress", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/flashcards": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Flashcards"],
                "summary": "List flashcards",
                "parameters": [
                    {"type": "boolean", "description": "Shuffle the deck", "name": "shuffle", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.FlashcardResponse"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/questions/random": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "Draw one random question",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AnsweredQuestionView"}},
                    "422": {"description": "no questions loaded", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Get settings",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Settings"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Settings"],
                "summary": "Update settings",
                "parameters": [
                    {"description": "New settings", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.Settings"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"},
                "questions": {"type": "integer"}
            }
        },
        "api.ModeResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "mock"},
                "label": {"type": "string", "example": "Mock Exam (4h)"},
                "count": {"type": "integer", "example": 120},
                "timed": {"type": "boolean"},
                "minutes": {"type": "integer", "example": 240},
                "weights": {"type": "object", "additionalProperties": {"type": "integer"}},
                "persistent": {"type": "boolean"}
            }
        },
        "api.CreateSessionRequest": {
            "type": "object",
            "required": ["mode"],
            "properties": {"mode": {"type": "string", "example": "quick10"}}
        },
        "api.QuestionView": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "fed-017"},
                "category": {"type": "string", "example": "federal"},
                "prompt": {"type": "string"},
                "stem": {"type": "string"},
                "choices": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.AnsweredQuestionView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "category": {"type": "string"},
                "prompt": {"type": "string"},
                "stem": {"type": "string"},
                "choices": {"type": "array", "items": {"type": "string"}},
                "answer_index": {"type": "integer"},
                "explanation": {"type": "string"}
            }
        },
        "api.SessionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "mode": {"type": "string", "example": "mock"},
                "label": {"type": "string", "example": "Mock Exam (4h)"},
                "index": {"type": "integer"},
                "total": {"type": "integer"},
                "correct": {"type": "integer"},
                "finished": {"type": "boolean"},
                "locked": {"type": "boolean"},
                "resumed": {"type": "boolean"},
                "expired": {"type": "boolean"},
                "timed": {"type": "boolean"},
                "started_at": {"type": "string", "format": "date-time"},
                "remaining_ms": {"type": "integer"},
                "deadline": {"type": "string", "format": "date-time"},
                "question": {"$ref": "#/definitions/api.QuestionView"}
            }
        },
        "api.AnswerRequest": {
            "type": "object",
            "required": ["choice"],
            "properties": {"choice": {"type": "integer", "minimum": 0, "example": 2}}
        },
        "api.AnswerResponse": {
            "type": "object",
            "properties": {
                "accepted": {"type": "boolean"},
                "correct": {"type": "boolean"},
                "chosen": {"type": "integer"},
                "correct_index": {"type": "integer"},
                "explanation": {"type": "string"},
                "session": {"$ref": "#/definitions/api.SessionResponse"}
            }
        },
        "api.FlashcardResponse": {
            "type": "object",
            "properties": {
                "term": {"type": "string"},
                "definition": {"type": "string"}
            }
        },
        "api.SettingsRequest": {
            "type": "object",
            "required": ["flashcardsFirstSide"],
            "properties": {
                "flashcardsFirstSide": {"type": "string", "enum": ["term", "definition"], "example": "term"},
                "sound": {"type": "boolean"}
            }
        },
        "service.Settings": {
            "type": "object",
            "properties": {
                "flashcardsFirstSide": {"type": "string", "enum": ["term", "definition"]},
                "sound": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MLO Prep API",
	Description:      "Offline study backend: flashcards, quick drills and a timed, resumable mock exam.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
