// Package handlers implements the JSON API consumed by the admin client.
// Every endpoint responds with the {success, data?, message?} envelope.
package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK writes a success envelope with the given payload.
func OK(e *core.RequestEvent, data any) error {
	return e.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// OKMessage writes a success envelope with payload and a user-facing message.
func OKMessage(e *core.RequestEvent, message string, data any) error {
	return e.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given HTTP status and user-facing
// message.
func Fail(e *core.RequestEvent, status int, message string) error {
	return e.JSON(status, envelope{Success: false, Message: message})
}
