// Package apperror defines the error kinds the API distinguishes and how they
// map onto HTTP status codes.
package apperror

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("resource conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("resource not found")
	ErrStore        = errors.New("store failure")
)

// Error is an error of a given Kind with a client-safe Message.
// Fields optionally carries per-field validation messages.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

// New returns an *Error of the given kind.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Validation returns a validation error with per-field details.
func Validation(message string, fields map[string]string) error {
	return &Error{Kind: ErrValidation, Message: message, Fields: fields}
}

func NotFound(message string) error     { return New(ErrNotFound, message) }
func Conflict(message string) error     { return New(ErrConflict, message) }
func Unauthorized(message string) error { return New(ErrUnauthorized, message) }
func Forbidden(message string) error    { return New(ErrForbidden, message) }

// StatusCode maps err onto an HTTP status code.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// PublicMessage is the text safe to send to a client. Server errors are
// replaced by a generic message.
func PublicMessage(err error) string {
	if StatusCode(err) >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

// FieldErrors returns the validation details attached to err, if any.
func FieldErrors(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}

// JoinFields renders field details as "a: msg; b: msg" in key order.
func JoinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
