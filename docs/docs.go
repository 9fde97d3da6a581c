// Package docs holds the OpenAPI description served under /swagger. It
// follows the layout `swag init` writes, so regenerating from the handler
// annotations replaces it in place.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login as the contest admin",
                "parameters": [
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/competitions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["competitions"],
                "summary": "Create a competition",
                "parameters": [
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.CreateCompetitionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Competition"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Err"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/competitions/{competitionID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["competitions"],
                "summary": "Get a competition",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "competitionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Competition"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/competitions/{competitionID}/final-judge": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["competitions"],
                "summary": "Set the final judge coordinate",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "competitionID", "in": "path", "required": true},
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.SetFinalJudgeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Competition"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Err"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Err"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/competitions/{competitionID}/checkout-summaries": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Record a checkout summary",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "competitionID", "in": "path", "required": true},
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.CheckoutSummaryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CheckoutSummary"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/competitions/{competitionID}/participants/{participantID}/tickets": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["entries"],
                "summary": "Save the live markers of a ticket",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "competitionID", "in": "path", "required": true},
                    {"type": "string", "description": "Participant ID", "name": "participantID", "in": "path", "required": true},
                    {"description": "request body", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/request.TicketSubmissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.TicketSubmission"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Err"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        },
        "/competitions/{competitionID}/results": {
            "get": {
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Get the stored winners",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "competitionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.CompetitionResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Compute and store the winners",
                "parameters": [
                    {"type": "string", "description": "Competition ID", "name": "competitionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.CompetitionResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Err"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Err"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Err"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Err"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.Err"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Err"}}
                }
            }
        }
    },
    "definitions": {
        "domain.Coordinate": {
            "type": "object",
            "properties": {
                "x": {"type": "number"},
                "y": {"type": "number"}
            }
        },
        "domain.Competition": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "imageUrl": {"type": "string"},
                "winnerCount": {"type": "integer", "minimum": 1, "maximum": 3},
                "finalJudge": {"$ref": "#/definitions/domain.Coordinate"},
                "finalJudgeSetAt": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "domain.Identity": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "domain.RawTicket": {
            "type": "object",
            "properties": {
                "ticketId": {"type": "string"},
                "ticketNumber": {"type": "integer"},
                "markers": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "domain.CheckoutSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "competitionId": {"type": "string"},
                "participantId": {"type": "string"},
                "userId": {"type": "string"},
                "participant": {"$ref": "#/definitions/domain.Identity"},
                "tickets": {"type": "array", "items": {"$ref": "#/definitions/domain.RawTicket"}},
                "createdAt": {"type": "string"}
            }
        },
        "domain.TicketSubmission": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "competitionId": {"type": "string"},
                "participantId": {"type": "string"},
                "ticketId": {"type": "string"},
                "ticketNumber": {"type": "integer"},
                "markers": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "updatedAt": {"type": "string"}
            }
        },
        "request.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "request.CreateCompetitionRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "imageUrl": {"type": "string"},
                "winnerCount": {"type": "integer", "minimum": 0, "maximum": 3}
            }
        },
        "request.SetFinalJudgeRequest": {
            "type": "object",
            "properties": {
                "x": {"type": "number", "minimum": 0, "maximum": 1},
                "y": {"type": "number", "minimum": 0, "maximum": 1}
            }
        },
        "request.CheckoutSummaryRequest": {
            "type": "object",
            "properties": {
                "participantId": {"type": "string"},
                "userId": {"type": "string"},
                "participant": {"$ref": "#/definitions/domain.Identity"},
                "tickets": {"type": "array", "items": {"$ref": "#/definitions/domain.RawTicket"}}
            }
        },
        "request.TicketSubmissionRequest": {
            "type": "object",
            "properties": {
                "ticketId": {"type": "string"},
                "ticketNumber": {"type": "integer"},
                "markers": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "response.Err": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "code": {"type": "string"},
                "error": {"type": "string"},
                "result": {}
            }
        },
        "response.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "response.Marker": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "x": {"type": "number"},
                "y": {"type": "number"}
            }
        },
        "response.Winner": {
            "type": "object",
            "properties": {
                "ticketId": {"type": "string"},
                "ticketNumber": {"type": "integer"},
                "participantId": {"type": "string"},
                "userId": {"type": "string"},
                "participantName": {"type": "string"},
                "participantPhone": {"type": "string"},
                "distance": {"type": "number"},
                "marker": {"$ref": "#/definitions/response.Marker"}
            }
        },
        "response.CompetitionResult": {
            "type": "object",
            "properties": {
                "competitionId": {"type": "string"},
                "finalJudgeX": {"type": "number"},
                "finalJudgeY": {"type": "number"},
                "computedAt": {"type": "string"},
                "winners": {"type": "array", "maxItems": 3, "items": {"$ref": "#/definitions/response.Winner"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Spot contest API",
	Description:      "Winner computation for mark-the-spot competitions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
