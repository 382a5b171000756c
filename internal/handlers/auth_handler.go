package handlers

import (
	"tokoadmin/internal/apperror"
	"tokoadmin/internal/middleware"
	"tokoadmin/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	log         *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", middleware.AuthRequired(h.authService.Tokens()), h.HandleMe)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}

	result, err := h.authService.Register(c.UserContext(), in)
	if err != nil {
		return err
	}

	h.log.WithField("user_id", result.User.ID).Info("user registered")
	return ok(c, fiber.StatusCreated, "User registered successfully", result)
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}

	result, err := h.authService.Login(c.UserContext(), in)
	if err != nil {
		if apperror.StatusCode(err) == fiber.StatusUnauthorized {
			h.log.WithField("email", in.Email).Warn("failed login attempt")
		}
		return err
	}
	return ok(c, fiber.StatusOK, "Login successful", result)
}

// HandleMe returns the profile of the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	claims, found := middleware.Claims(c)
	if !found {
		return apperror.Unauthorized("Authorization token required")
	}
	user, err := h.authService.CurrentUser(c.UserContext(), claims.UserID)
	if err != nil {
		return err
	}
	return ok(c, fiber.StatusOK, "", user)
}
