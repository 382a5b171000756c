package handlers

import (
	"tokoadmin/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Envelope is the JSON wrapper every endpoint answers with.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// PageEnvelope is the wrapper of a paginated listing. Its counters are
// always present, even when zero.
type PageEnvelope struct {
	Success     bool        `json:"success"`
	Count       int         `json:"count"`
	Total       int64       `json:"total"`
	Page        int         `json:"page"`
	TotalPages  int         `json:"totalPages"`
	HasNextPage bool        `json:"hasNextPage"`
	HasPrevPage bool        `json:"hasPrevPage"`
	Data        interface{} `json:"data"`
}

func ok(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(Envelope{Success: true, Message: message, Data: data})
}

// ErrorHandler renders any error that escapes a handler or middleware as an
// envelope with success false. Server errors are logged and their details
// withheld from the client.
func ErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := apperror.StatusCode(err)
		if status >= fiber.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"method": c.Method(),
				"path":   c.Path(),
				"status": status,
			}).WithError(err).Error("request failed")
		}
		return c.Status(status).JSON(Envelope{
			Success: false,
			Error:   apperror.PublicMessage(err),
			Errors:  apperror.FieldErrors(err),
		})
	}
}

// NotFound answers requests no route matched.
func NotFound(c *fiber.Ctx) error {
	return apperror.NotFound("Route not found")
}

func badBody(err error) error {
	return apperror.Validation("Invalid request body", map[string]string{"body": err.Error()})
}
