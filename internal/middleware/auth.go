package middleware

import (
	"strings"

	"tokoadmin/internal/apperror"
	"tokoadmin/internal/models"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Keys under which AuthRequired stores the verified identity.
const (
	LocalClaims = "claims"
	LocalUserID = "user_id"
	LocalRole   = "user_role"
)

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// Failures are returned as apperror values for the app's error handler.
func AuthRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			return err
		}

		c.Locals(LocalClaims, claims)
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// RoleRequired lets the request through only if AuthRequired ran before it
// and the verified role is role.
func RoleRequired(tokens *services.TokenService, role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := Claims(c)
		if !ok {
			return apperror.Unauthorized("Authorization token required")
		}
		if err := tokens.Authorize(claims, role); err != nil {
			return err
		}
		return c.Next()
	}
}

// AdminOnly chains AuthRequired and RoleRequired for the admin role.
func AdminOnly(tokens *services.TokenService) []fiber.Handler {
	return []fiber.Handler{AuthRequired(tokens), RoleRequired(tokens, models.RoleAdmin)}
}

// Claims returns the claims stored by AuthRequired.
func Claims(c *fiber.Ctx) (*services.Claims, bool) {
	claims, ok := c.Locals(LocalClaims).(*services.Claims)
	return claims, ok && claims != nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. An empty header yields an empty token.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperror.Unauthorized("Authorization header format must be 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}
