package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"tokoadmin/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", apperror.Validation("bad", nil), http.StatusBadRequest},
		{"conflict", apperror.Conflict("dup"), http.StatusConflict},
		{"unauthorized", apperror.Unauthorized("no"), http.StatusUnauthorized},
		{"forbidden", apperror.Forbidden("no"), http.StatusForbidden},
		{"not found", apperror.NotFound("gone"), http.StatusNotFound},
		{"wrapped", fmt.Errorf("outer: %w", apperror.NotFound("gone")), http.StatusNotFound},
		{"fiber", fiber.NewError(http.StatusRequestEntityTooLarge, "too big"), http.StatusRequestEntityTooLarge},
		{"plain", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperror.StatusCode(tc.err))
		})
	}
}

func TestPublicMessageHidesServerErrors(t *testing.T) {
	assert.Equal(t, "Internal server error", apperror.PublicMessage(errors.New("pq: connection refused")))
	assert.Equal(t, "product not found", apperror.PublicMessage(apperror.NotFound("product not found")))
}

func TestFieldErrors(t *testing.T) {
	err := apperror.Validation("Validation failed", map[string]string{"name": "is required", "price": "must be >= 0"})
	fields := apperror.FieldErrors(fmt.Errorf("create: %w", err))
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "name: is required; price: must be >= 0", apperror.JoinFields(fields))
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}
