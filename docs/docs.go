// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/eventpay/main.go
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
        "/participant/events/{eventID}/join": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["participation"],
                "summary": "Join an event",
                "parameters": [{"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.JoinEventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request (past event)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "401": {"description": "error.code: unauthorized", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict (already joined, already paid, full, not open)", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: bad_gateway", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/participant/reservations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["participation"],
                "summary": "List my reservations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListReservationsSuccessResponse"}}
                }
            }
        },
        "/participant/events/{eventID}/reviews": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "Review an event",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true},
                    {"description": "Rating and optional comment", "name": "review", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.AddReviewRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.ReviewSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "403": {"description": "error.code: forbidden", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/reviews/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reviews"],
                "summary": "List my reviews",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ListReviewsSuccessResponse"}}
                }
            }
        },
        "/host/events": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["host"],
                "summary": "Create an event",
                "parameters": [{"description": "Event data", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.CreateEventRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/host/events/{eventID}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["host"],
                "summary": "Update event status",
                "parameters": [
                    {"type": "string", "description": "Event ID (UUID)", "name": "eventID", "in": "path", "required": true},
                    {"description": "New status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateEventStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.EventSuccessResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/host/payments/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["host"],
                "summary": "Payment overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.PaymentOverviewSuccessResponse"}}
                }
            }
        },
        "/webhooks/stripe": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["webhooks"],
                "summary": "Stripe webhook",
                "parameters": [{"type": "string", "description": "Stripe signature header", "name": "Stripe-Signature", "in": "header", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.WebhookAck"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "helpers.APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {"data": {}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "domain.JoinResult": {
            "type": "object",
            "properties": {"reservationId": {"type": "string"}, "paymentId": {"type": "string"}, "checkoutUrl": {"type": "string"}}
        },
        "domain.Reservation": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "userId": {"type": "string"}, "eventId": {"type": "string"}, "paid": {"type": "boolean"}, "joinedAt": {"type": "string"}}
        },
        "domain.Review": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "eventId": {"type": "string"}, "reviewerId": {"type": "string"}, "hostId": {"type": "string"}, "rating": {"type": "integer"}, "comment": {"type": "string"}, "createdAt": {"type": "string"}}
        },
        "domain.Event": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "hostId": {"type": "string"}, "name": {"type": "string"}, "date": {"type": "string"}, "fee": {"type": "number"}, "maxParticipants": {"type": "integer"}, "participantCount": {"type": "integer"}, "status": {"type": "string"}, "createdAt": {"type": "string"}, "updatedAt": {"type": "string"}}
        },
        "domain.PaymentOverview": {
            "type": "object",
            "properties": {"totalEarnings": {"type": "number"}, "pending": {"type": "number"}}
        },
        "controllers.AddReviewRequest": {
            "type": "object",
            "properties": {"rating": {"type": "integer"}, "comment": {"type": "string"}}
        },
        "controllers.CreateEventRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "date": {"type": "string"}, "fee": {"type": "number"}, "maxParticipants": {"type": "integer"}}
        },
        "controllers.UpdateEventStatusRequest": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["OPEN", "CLOSED", "CANCELLED", "COMPLETED"]}}
        },
        "controllers.WebhookAck": {
            "type": "object",
            "properties": {"received": {"type": "boolean"}}
        },
        "controllers.JoinEventSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.JoinResult"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.ListReservationsSuccessResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Reservation"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.ReviewSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.Review"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.ListReviewsSuccessResponse": {
            "type": "object",
            "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/domain.Review"}}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.EventSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.Event"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        },
        "controllers.PaymentOverviewSuccessResponse": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/domain.PaymentOverview"}, "error": {"$ref": "#/definitions/helpers.APIError"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
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
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "eventpay API",
	Description:      "Event participation, Stripe checkout and payment reconciliation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
