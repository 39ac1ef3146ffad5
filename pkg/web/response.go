// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into the common response type.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// GetErrorMsg maps a binding validation error to a human readable message.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return " must be greater or equal than " + fe.Param()
	case "max":
		return " must be less or equal than " + fe.Param()
	}

	return " is invalid"
}
