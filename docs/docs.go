// Package docs holds the swagger document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
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
				"summary": "Login with email and password",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.LoginRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.AuthResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/register": {
			"post": {
				"summary": "Register a new account and send a verification code",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.RegisterRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.AuthResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"409": {
						"description": "Conflict",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/verify-otp": {
			"post": {
				"summary": "Verify an email with its one-time code",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.VerifyOtpRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.MessageResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/resend-otp": {
			"post": {
				"summary": "Send a fresh verification code",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ResendOtpRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ResendOtpResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"429": {
						"description": "Too Many Requests",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/google": {
			"post": {
				"summary": "Sign in, sign up or link an account with Google",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.GoogleRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.AuthResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/validate": {
			"post": {
				"summary": "Introspect a session token",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.ValidateRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.ValidateResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/logout": {
			"post": {
				"summary": "Logout (tokens are stateless; the client discards its token)",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.MessageResponse"
						}
					}
				}
			}
		},
		"/auth/health": {
			"get": {
				"summary": "Auth service health",
				"tags": [
					"auth"
				],
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.HealthResponse"
						}
					}
				}
			}
		},
		"/auth/profile": {
			"get": {
				"summary": "Current user's profile",
				"tags": [
					"users"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.UserResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/user/{id}": {
			"get": {
				"summary": "Get a user by id (self or admin)",
				"tags": [
					"users"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "User ID",
						"name": "id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.UserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/auth/check-user/{email}": {
			"get": {
				"summary": "Check whether an email is registered",
				"tags": [
					"users"
				],
				"produces": [
					"application/json"
				],
				"parameters": [
					{
						"type": "string",
						"description": "Email",
						"name": "email",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.CheckUserResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/orders": {
			"post": {
				"summary": "Place an order",
				"tags": [
					"orders"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateOrderRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.OrderResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			},
			"get": {
				"summary": "List the caller's orders, newest first",
				"tags": [
					"orders"
				],
				"produces": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.OrderListResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/orders/{id}/status": {
			"patch": {
				"summary": "Change an order's status and notify the customer (admin)",
				"tags": [
					"orders"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Order ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.UpdateStatusRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.OrderStatusResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/orders/{id}/verify-payment": {
			"post": {
				"summary": "Confirm a gateway payment for an order",
				"tags": [
					"orders"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"type": "string",
						"description": "Order ID",
						"name": "id",
						"in": "path",
						"required": true
					},
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.VerifyPaymentRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/handler.OrderResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"404": {
						"description": "Not Found",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"503": {
						"description": "Service Unavailable",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		},
		"/notifications": {
			"post": {
				"summary": "Record an order status notification and email the customer",
				"tags": [
					"notifications"
				],
				"produces": [
					"application/json"
				],
				"consumes": [
					"application/json"
				],
				"security": [
					{
						"BearerAuth": []
					}
				],
				"parameters": [
					{
						"in": "body",
						"name": "request",
						"required": true,
						"schema": {
							"$ref": "#/definitions/handler.CreateNotificationRequest"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created",
						"schema": {
							"$ref": "#/definitions/handler.NotificationResponse"
						}
					},
					"400": {
						"description": "Bad Request",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"401": {
						"description": "Unauthorized",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"403": {
						"description": "Forbidden",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					},
					"500": {
						"description": "Internal Server Error",
						"schema": {
							"$ref": "#/definitions/errors.ErrorResponse"
						}
					}
				}
			}
		}
	},
	"definitions": {
		"errors.ErrorResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"error": {
					"type": "string"
				},
				"code": {
					"type": "string"
				}
			}
		},
		"model.UnifiedUser": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"address": {
					"type": "string"
				},
				"is_admin": {
					"type": "boolean"
				},
				"wallet_balance": {
					"type": "string"
				},
				"locked_amount": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"updated_at": {
					"type": "string"
				},
				"is_verified": {
					"type": "boolean"
				},
				"auth_provider": {
					"type": "string"
				}
			}
		},
		"model.OrderItem": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"order_id": {
					"type": "string"
				},
				"name": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"price": {
					"type": "string"
				}
			}
		},
		"model.Order": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"user_id": {
					"type": "string"
				},
				"order_number": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"total_amount": {
					"type": "string"
				},
				"currency": {
					"type": "string"
				},
				"gateway_order_id": {
					"type": "string"
				},
				"payment_id": {
					"type": "string"
				},
				"payment_status": {
					"type": "string"
				},
				"created_at": {
					"type": "string"
				},
				"updated_at": {
					"type": "string"
				},
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.OrderItem"
					}
				}
			}
		},
		"model.Notification": {
			"type": "object",
			"properties": {
				"id": {
					"type": "string"
				},
				"userId": {
					"type": "string"
				},
				"type": {
					"type": "string"
				},
				"title": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"orderId": {
					"type": "string"
				},
				"orderNumber": {
					"type": "string"
				},
				"read": {
					"type": "boolean"
				},
				"createdAt": {
					"type": "string"
				},
				"updatedAt": {
					"type": "string"
				}
			}
		},
		"handler.TokensResponse": {
			"type": "object",
			"properties": {
				"jwtToken": {
					"type": "string"
				},
				"tokenType": {
					"type": "string"
				},
				"expiresIn": {
					"type": "string"
				}
			}
		},
		"handler.AuthResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"user": {
					"$ref": "#/definitions/model.UnifiedUser"
				},
				"tokens": {
					"$ref": "#/definitions/handler.TokensResponse"
				},
				"otpRequired": {
					"type": "boolean"
				},
				"source": {
					"type": "string"
				}
			}
		},
		"handler.MessageResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				}
			}
		},
		"handler.UserResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/model.UnifiedUser"
				}
			}
		},
		"handler.CheckUserResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"exists": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/model.UnifiedUser"
				}
			}
		},
		"handler.LoginRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"password"
			]
		},
		"handler.RegisterRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"password": {
					"type": "string",
					"minLength": 6
				},
				"name": {
					"type": "string"
				},
				"phone": {
					"type": "string"
				},
				"address": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"name",
				"password",
				"phone"
			]
		},
		"handler.VerifyOtpRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				},
				"otp": {
					"type": "string"
				}
			},
			"required": [
				"email",
				"otp"
			]
		},
		"handler.ResendOtpRequest": {
			"type": "object",
			"properties": {
				"email": {
					"type": "string"
				}
			},
			"required": [
				"email"
			]
		},
		"handler.ResendOtpResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"message": {
					"type": "string"
				},
				"emailSent": {
					"type": "boolean"
				}
			}
		},
		"handler.GoogleRequest": {
			"type": "object",
			"properties": {
				"googleUserId": {
					"type": "string"
				},
				"idToken": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"name": {
					"type": "string"
				}
			}
		},
		"handler.ValidateRequest": {
			"type": "object",
			"properties": {
				"token": {
					"type": "string"
				}
			}
		},
		"handler.ValidateResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"valid": {
					"type": "boolean"
				},
				"user": {
					"$ref": "#/definitions/model.UnifiedUser"
				},
				"error": {
					"type": "string"
				}
			}
		},
		"handler.HealthResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"service": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"timestamp": {
					"type": "string"
				}
			}
		},
		"handler.OrderItemRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"price": {
					"type": "string"
				}
			},
			"required": [
				"name",
				"quantity"
			]
		},
		"handler.CreateOrderRequest": {
			"type": "object",
			"properties": {
				"items": {
					"type": "array",
					"minItems": 1,
					"items": {
						"$ref": "#/definitions/handler.OrderItemRequest"
					}
				},
				"currency": {
					"type": "string"
				}
			},
			"required": [
				"items"
			]
		},
		"handler.UpdateStatusRequest": {
			"type": "object",
			"properties": {
				"status": {
					"type": "string"
				}
			},
			"required": [
				"status"
			]
		},
		"handler.VerifyPaymentRequest": {
			"type": "object",
			"properties": {
				"razorpay_order_id": {
					"type": "string"
				},
				"razorpay_payment_id": {
					"type": "string"
				},
				"razorpay_signature": {
					"type": "string"
				}
			},
			"required": [
				"razorpay_payment_id",
				"razorpay_signature"
			]
		},
		"handler.CheckoutPayment": {
			"type": "object",
			"properties": {
				"gatewayOrderId": {
					"type": "string"
				},
				"keyId": {
					"type": "string"
				},
				"amount": {
					"type": "integer"
				},
				"currency": {
					"type": "string"
				},
				"available": {
					"type": "boolean"
				}
			}
		},
		"handler.OrderResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"order": {
					"$ref": "#/definitions/model.Order"
				},
				"payment": {
					"$ref": "#/definitions/handler.CheckoutPayment"
				}
			}
		},
		"handler.OrderListResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"orders": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/model.Order"
					}
				}
			}
		},
		"handler.OrderStatusResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"order": {
					"$ref": "#/definitions/model.Order"
				},
				"emailSent": {
					"type": "boolean"
				},
				"emailMessageId": {
					"type": "string"
				}
			}
		},
		"handler.NotificationItemRequest": {
			"type": "object",
			"properties": {
				"name": {
					"type": "string"
				},
				"quantity": {
					"type": "integer"
				},
				"price": {
					"type": "string"
				}
			},
			"required": [
				"name"
			]
		},
		"handler.CreateNotificationRequest": {
			"type": "object",
			"properties": {
				"userId": {
					"type": "string"
				},
				"orderId": {
					"type": "string"
				},
				"orderNumber": {
					"type": "string"
				},
				"status": {
					"type": "string"
				},
				"email": {
					"type": "string"
				},
				"message": {
					"type": "string"
				},
				"items": {
					"type": "array",
					"items": {
						"$ref": "#/definitions/handler.NotificationItemRequest"
					}
				}
			},
			"required": [
				"status"
			]
		},
		"handler.NotificationResponse": {
			"type": "object",
			"properties": {
				"success": {
					"type": "boolean"
				},
				"notification": {
					"$ref": "#/definitions/model.Notification"
				},
				"emailSent": {
					"type": "boolean"
				},
				"emailMessageId": {
					"type": "string"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "Type \"Bearer\" followed by a space and JWT token.",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "Storefront API",
	Description:      "Storefront API with email/password and Google sign-in, email OTP verification, orders, Razorpay checkout and order status notifications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
