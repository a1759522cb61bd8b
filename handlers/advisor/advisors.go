package advisor

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/utils/response"
	"gorm.io/gorm"
)

// AdvisorHandler serves internal and external advisor profiles.
type AdvisorHandler struct {
	db *gorm.DB
}

// NewAdvisorHandler creates a new advisor handler
func NewAdvisorHandler(db *gorm.DB) *AdvisorHandler {
	return &AdvisorHandler{db: db}
}

// GetInterno handles GET /asesorInterno/:asesorInternoID
func (h *AdvisorHandler) GetInterno(c *fiber.Ctx) error {
	asesorID, err := c.ParamsInt("asesorInternoID")
	if err != nil || asesorID < 1 {
		return response.BadRequest(c, "asesorInternoID must be a positive number")
	}

	var asesor model.AsesorInterno
	if err := h.db.Omit("fotoPerfil").
		Where(`"asesorInternoID" = ?`, asesorID).
		Take(&asesor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Asesor interno not found")
		}
		return response.InternalServerError(c, "Failed to fetch asesor interno")
	}

	return response.Success(c, asesor)
}

// GetExterno handles GET /asesorExterno/:asesorExternoID
func (h *AdvisorHandler) GetExterno(c *fiber.Ctx) error {
	asesorID, err := c.ParamsInt("asesorExternoID")
	if err != nil || asesorID < 1 {
		return response.BadRequest(c, "asesorExternoID must be a positive number")
	}

	var asesor model.AsesorExterno
	if err := h.db.Omit("fotoPerfil").
		Where(`"asesorExternoID" = ?`, asesorID).
		Take(&asesor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Asesor externo not found")
		}
		return response.InternalServerError(c, "Failed to fetch asesor externo")
	}

	return response.Success(c, asesor)
}

// internoOption is the projection the signup form's advisor picker uses.
type internoOption struct {
	AsesorInternoID uint   `json:"asesorInternoID"`
	NombreCompleto  string `json:"nombreCompleto"`
}

// ListInternos handles GET /asesoresInternos and returns id plus assembled
// full name for the student signup dropdown.
func (h *AdvisorHandler) ListInternos(c *fiber.Ctx) error {
	var options []internoOption
	err := h.db.Model(&model.AsesorInterno{}).
		Select(`"asesorInternoID" AS asesor_interno_id,` +
			` "nombre" || ' ' || "apellidoPaterno" || ' ' || "apellidoMaterno" AS nombre_completo`).
		Order(`"apellidoPaterno"`).
		Scan(&options).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to list asesores internos")
	}

	return response.Success(c, options)
}
