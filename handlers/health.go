package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/utils/response"
	"gorm.io/gorm"
)

// HealthHandler serves liveness and database connectivity probes.
type HealthHandler struct {
	db      *gorm.DB
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return response.Success(c, fiber.Map{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	})
}

// TestConnection handles GET /testConnection: a cheap count over a small
// table to prove the database round-trip works.
func (h *HealthHandler) TestConnection(c *fiber.Ctx) error {
	var count int64
	if err := h.db.Model(&model.AsesorInterno{}).Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Database connection failed")
	}

	return response.SuccessWithMessage(c, "Database connection OK", fiber.Map{
		"asesoresInternos": count,
	})
}
