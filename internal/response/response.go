package response

import (
	"encoding/json"
	"net/http"

	"serverless-crud-api/pkg/lambda"
)

// Default messages per response type
const (
	DefaultSuccessMessage    = "Success"
	DefaultCreatedMessage    = "Created successfully"
	DefaultNotFoundMessage   = "Resource not found"
	DefaultBadRequestMessage = "Bad request"
	InternalErrorMessage     = "Internal server error"
)

// Envelope is the JSON body shared by every response
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   bool   `json:"error,omitempty"`
}

// Headers returns the fixed header set attached to every response
func Headers() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}
}

// Success builds a 200 response
func Success(data any, message string) *lambda.Response {
	return build(http.StatusOK, Envelope{
		Success: true,
		Message: orDefault(message, DefaultSuccessMessage),
		Data:    data,
	})
}

// Created builds a 201 response
func Created(data any, message string) *lambda.Response {
	return build(http.StatusCreated, Envelope{
		Success: true,
		Message: orDefault(message, DefaultCreatedMessage),
		Data:    data,
	})
}

// Error builds an error response. A zero status means 500.
func Error(message string, status int) *lambda.Response {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return build(status, Envelope{
		Success: false,
		Message: message,
		Error:   true,
	})
}

// NotFound builds a 404 response
func NotFound(message string) *lambda.Response {
	return Error(orDefault(message, DefaultNotFoundMessage), http.StatusNotFound)
}

// BadRequest builds a 400 response
func BadRequest(message string) *lambda.Response {
	return Error(orDefault(message, DefaultBadRequestMessage), http.StatusBadRequest)
}

func build(status int, env Envelope) *lambda.Response {
	body, err := json.Marshal(env)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(Envelope{Message: InternalErrorMessage, Error: true})
	}

	return &lambda.Response{
		StatusCode: status,
		Headers:    Headers(),
		Body:       body,
	}
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
