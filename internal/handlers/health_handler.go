package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports whether the service and its database are up.
type HealthHandler struct {
	ping    func(ctx context.Context) error
	started time.Time
}

// NewHealthHandler creates a HealthHandler. ping may be nil when the service
// runs without a database.
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping, started: time.Now()}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	database := "not configured"
	status := fiber.StatusOK
	health := "healthy"
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			database = "unreachable"
			status = fiber.StatusServiceUnavailable
			health = "unhealthy"
		} else {
			database = "connected"
		}
	}
	return c.Status(status).JSON(Envelope{
		Success: status == fiber.StatusOK,
		Data: fiber.Map{
			"status":   health,
			"database": database,
			"uptime":   time.Since(h.started).Round(time.Second).String(),
			"time":     time.Now().Format(time.RFC3339),
		},
	})
}
