package entity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/utils/response"
	"github.com/sistemapracticas/api/utils/validation"
	"gorm.io/gorm"
)

// EntityHandler serves receiving-entity profiles and the administrative
// review actions over entity accounts.
type EntityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(db *gorm.DB) *EntityHandler {
	return &EntityHandler{db: db, validator: validation.NewValidator()}
}

// Get handles GET /entidadReceptora/:entidadID
func (h *EntityHandler) Get(c *fiber.Ctx) error {
	entidadID, err := c.ParamsInt("entidadID")
	if err != nil || entidadID < 1 {
		return response.BadRequest(c, "entidadID must be a positive number")
	}

	var entidad model.EntidadReceptora
	if err := h.db.Omit("fotoPerfil").
		Where(`"entidadID" = ?`, entidadID).
		Take(&entidad).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Entidad receptora not found")
		}
		return response.InternalServerError(c, "Failed to fetch entidad")
	}

	return response.Success(c, entidad)
}

// List handles GET /entidadesReceptoras with an optional estatus filter.
func (h *EntityHandler) List(c *fiber.Ctx) error {
	query := h.db.Omit("fotoPerfil")
	if estatus := c.Query("estatus"); estatus != "" {
		query = query.Where(`"estatus" = ?`, estatus)
	}

	var entidades []model.EntidadReceptora
	if err := query.Order(`"nombreEntidad"`).Find(&entidades).Error; err != nil {
		return response.InternalServerError(c, "Failed to list entidades")
	}

	return response.Success(c, entidades)
}

// UpdateEntidadRequest carries a partial profile update
type UpdateEntidadRequest struct {
	NombreEntidad *string `json:"nombreEntidad"`
	NombreUsuario *string `json:"nombreUsuario"`
	Direccion     *string `json:"direccion"`
	Categoria     *string `json:"categoria"`
	NumCelular    *string `json:"numCelular"`
}

// Update handles PUT /entidadReceptora/:entidadID with partial semantics.
func (h *EntityHandler) Update(c *fiber.Ctx) error {
	entidadID, err := c.ParamsInt("entidadID")
	if err != nil || entidadID < 1 {
		return response.BadRequest(c, "entidadID must be a positive number")
	}

	var req UpdateEntidadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates := map[string]interface{}{}
	if req.NombreEntidad != nil {
		updates["nombreEntidad"] = validation.SanitizeString(*req.NombreEntidad)
	}
	if req.NombreUsuario != nil {
		updates["nombreUsuario"] = validation.SanitizeString(*req.NombreUsuario)
	}
	if req.Direccion != nil {
		updates["direccion"] = *req.Direccion
	}
	if req.Categoria != nil {
		updates["categoria"] = *req.Categoria
	}
	if req.NumCelular != nil {
		updates["numCelular"] = *req.NumCelular
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	res := h.db.Model(&model.EntidadReceptora{}).
		Where(`"entidadID" = ?`, entidadID).
		Updates(updates)
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to update entidad")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Entidad receptora not found")
	}

	return response.SuccessWithMessage(c, "Entidad updated", nil)
}

// Accept handles PATCH /entidadReceptora/:entidadID/accept
func (h *EntityHandler) Accept(c *fiber.Ctx) error {
	return h.setEstatus(c, model.StatusAceptado)
}

// Reject handles PATCH /entidadReceptora/:entidadID/reject
func (h *EntityHandler) Reject(c *fiber.Ctx) error {
	return h.setEstatus(c, model.StatusRechazado)
}

func (h *EntityHandler) setEstatus(c *fiber.Ctx, estatus model.ReviewStatus) error {
	entidadID, err := c.ParamsInt("entidadID")
	if err != nil || entidadID < 1 {
		return response.BadRequest(c, "entidadID must be a positive number")
	}

	res := h.db.Model(&model.EntidadReceptora{}).
		Where(`"entidadID" = ?`, entidadID).
		Update("estatus", estatus)
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to update entidad estatus")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Entidad receptora not found")
	}

	return response.SuccessWithMessage(c, "Entidad estatus updated", nil)
}

// Delete handles DELETE /entidadReceptora/:entidadID. Accepted entities only.
func (h *EntityHandler) Delete(c *fiber.Ctx) error {
	entidadID, err := c.ParamsInt("entidadID")
	if err != nil || entidadID < 1 {
		return response.BadRequest(c, "entidadID must be a positive number")
	}

	res := h.db.Where(`"entidadID" = ? AND "estatus" = ?`, entidadID, model.StatusAceptado).
		Delete(&model.EntidadReceptora{})
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to delete entidad")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Entidad receptora not found or not accepted")
	}

	return response.SuccessWithMessage(c, "Entidad deleted", nil)
}
