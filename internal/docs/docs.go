// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/chat": {
            "post": {
                "tags": ["chat"],
                "summary": "Proxy a chat completion to a supported provider",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/provider.GenerationRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/provider.GenerationResult"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Missing credential", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/api/mcq": {
            "post": {
                "tags": ["mcq"],
                "summary": "Generate MCQs from a document",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/aiquiz.GenerateRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/aiquiz.GenerateResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Generation failed", "schema": {"$ref": "#/definitions/aiquiz.FailureResponse"}}
                }
            }
        },
        "/api/mcq/upload": {
            "post": {
                "tags": ["mcq"],
                "summary": "Generate MCQs from an uploaded file",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "formData", "name": "file", "type": "file", "required": true},
                    {"in": "formData", "name": "questionCount", "type": "integer"},
                    {"in": "formData", "name": "difficulty", "type": "string"},
                    {"in": "formData", "name": "customInstructions", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/aiquiz.GenerateResponse"}},
                    "400": {"description": "Unreadable file", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Generation failed", "schema": {"$ref": "#/definitions/aiquiz.FailureResponse"}}
                }
            }
        },
        "/quiz-sessions": {
            "post": {"tags": ["quiz-sessions"], "summary": "Create quiz session", "responses": {"201": {"description": "Created"}}}
        },
        "/quiz-sessions/{id}": {
            "get": {"tags": ["quiz-sessions"], "summary": "Get quiz session", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/quiz-sessions/{id}/generate": {
            "post": {"tags": ["quiz-sessions"], "summary": "Generate questions for a session", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/aiquiz.GenerateRequest"}}], "responses": {"200": {"description": "OK"}, "409": {"description": "Generation in progress"}, "422": {"description": "No questions generated"}}}
        },
        "/quiz-sessions/{id}/answers": {
            "put": {"tags": ["quiz-sessions"], "summary": "Answer a question", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}, {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/quiz.AnswerRequest"}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown question"}}}
        },
        "/quiz-sessions/{id}/submit": {
            "post": {"tags": ["quiz-sessions"], "summary": "Submit answers", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "409": {"description": "Incomplete answers"}}}
        },
        "/quiz-sessions/{id}/reset": {
            "post": {"tags": ["quiz-sessions"], "summary": "Reset a session", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/quiz-sessions/{id}/events": {
            "get": {"tags": ["quiz-sessions"], "summary": "Listen to session updates", "produces": ["text/event-stream"], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "Event stream"}}}
        },
        "/attempts": {
            "get": {"tags": ["attempts"], "summary": "List attempts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/attempts/{id}": {
            "get": {"tags": ["attempts"], "summary": "Get attempt", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/auth/logout": {
            "post": {"tags": ["auth"], "summary": "Log out", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "provider.Message": {"type": "object", "properties": {"role": {"type": "string"}, "content": {"type": "string"}}},
        "provider.GenerationRequest": {
            "type": "object",
            "properties": {
                "provider": {"type": "string", "enum": ["github", "mistral", "gemini"]},
                "model": {"type": "string"},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/provider.Message"}},
                "temperature": {"type": "number"},
                "max_tokens": {"type": "integer"},
                "top_p": {"type": "number"}
            }
        },
        "provider.GenerationResult": {"type": "object", "properties": {"content": {"type": "string"}, "raw": {"type": "object"}}},
        "aiquiz.GenerateRequest": {
            "type": "object",
            "properties": {
                "fileContent": {"type": "string"},
                "fileName": {"type": "string"},
                "questionCount": {"type": "integer"},
                "difficulty": {"type": "string"},
                "customInstructions": {"type": "string"}
            }
        },
        "aiquiz.Question": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "question": {"type": "string"},
                "options": {"type": "object", "additionalProperties": {"type": "string"}},
                "correctAnswer": {"type": "string"},
                "explanation": {"type": "string"}
            }
        },
        "aiquiz.GenerateResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/aiquiz.Question"}},
                "metadata": {"type": "object"}
            }
        },
        "aiquiz.FailureResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"},
                "fallbackQuestions": {"type": "array", "items": {"$ref": "#/definitions/aiquiz.Question"}}
            }
        },
        "quiz.AnswerRequest": {"type": "object", "properties": {"questionId": {"type": "integer"}, "option": {"type": "string"}}}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Socrates API",
	Description:      "AI provider proxy and multiple-choice quiz sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
