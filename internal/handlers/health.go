package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/pcnodetree/internal/config"
	"github.com/localnerve/pcnodetree/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler serves the health endpoint
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *zap.Logger
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Logger)
	status := fiber.StatusOK
	if !result.Healthy() {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
