package student

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/utils/response"
	"github.com/sistemapracticas/api/utils/validation"
	"gorm.io/gorm"
)

// StudentHandler serves alumno profiles and the administrative review actions
// over student accounts.
type StudentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{db: db, validator: validation.NewValidator()}
}

// Get handles GET /alumno/:numControl
func (h *StudentHandler) Get(c *fiber.Ctx) error {
	numControl := c.Params("numControl")
	if numControl == "" {
		return response.BadRequest(c, "numControl is required")
	}

	var alumno model.Alumno
	err := h.db.Omit("fotoPerfil").
		Where(`"numControl" = ?`, numControl).
		Take(&alumno).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Alumno not found")
		}
		return response.InternalServerError(c, "Failed to fetch alumno")
	}

	return response.Success(c, alumno)
}

// GetPhoto handles GET /alumno/:numControl/foto and streams the raw image.
func (h *StudentHandler) GetPhoto(c *fiber.Ctx) error {
	numControl := c.Params("numControl")
	if numControl == "" {
		return response.BadRequest(c, "numControl is required")
	}

	var alumno model.Alumno
	err := h.db.Select(`"numControl", "fotoPerfil"`).
		Where(`"numControl" = ?`, numControl).
		Take(&alumno).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Alumno not found")
		}
		return response.InternalServerError(c, "Failed to fetch foto")
	}
	if len(alumno.FotoPerfil) == 0 {
		return response.NotFound(c, "Alumno has no profile photo")
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(alumno.FotoPerfil))
	return c.Send(alumno.FotoPerfil)
}

// ListByAsesor handles GET /alumnos/asesorInterno/:asesorInternoID with an
// optional estatus query filter.
func (h *StudentHandler) ListByAsesor(c *fiber.Ctx) error {
	asesorID, err := c.ParamsInt("asesorInternoID")
	if err != nil || asesorID < 1 {
		return response.BadRequest(c, "asesorInternoID must be a positive number")
	}

	query := h.db.Omit("fotoPerfil").
		Where(`"asesorInternoID" = ?`, asesorID)
	if estatus := c.Query("estatus"); estatus != "" {
		query = query.Where(`"estatus" = ?`, estatus)
	}

	var alumnos []model.Alumno
	if err := query.Order(`"numControl"`).Find(&alumnos).Error; err != nil {
		return response.InternalServerError(c, "Failed to list alumnos")
	}

	return response.Success(c, alumnos)
}

// ListByEstatus handles GET /alumnos with an estatus filter; administrators
// use it to walk the review queue.
func (h *StudentHandler) ListByEstatus(c *fiber.Ctx) error {
	query := h.db.Omit("fotoPerfil")
	if estatus := c.Query("estatus"); estatus != "" {
		query = query.Where(`"estatus" = ?`, estatus)
	}

	var alumnos []model.Alumno
	if err := query.Order(`"numControl"`).Find(&alumnos).Error; err != nil {
		return response.InternalServerError(c, "Failed to list alumnos")
	}

	return response.Success(c, alumnos)
}

// UpdateAlumnoRequest carries a partial profile update
type UpdateAlumnoRequest struct {
	Nombre          *string `json:"nombre"`
	ApellidoPaterno *string `json:"apellidoPaterno"`
	ApellidoMaterno *string `json:"apellidoMaterno"`
	Carrera         *string `json:"carrera"`
	Semestre        *string `json:"semestre"`
	Turno           *string `json:"turno"`
	NumCelular      *string `json:"numCelular"`
	AsesorInternoID *uint   `json:"asesorInternoID"`
}

// Update handles PUT /alumno/:numControl with partial semantics.
func (h *StudentHandler) Update(c *fiber.Ctx) error {
	numControl := c.Params("numControl")
	if numControl == "" {
		return response.BadRequest(c, "numControl is required")
	}

	var req UpdateAlumnoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Nombre != nil {
		updates["nombre"] = validation.SanitizeString(*req.Nombre)
	}
	if req.ApellidoPaterno != nil {
		updates["apellidoPaterno"] = validation.SanitizeString(*req.ApellidoPaterno)
	}
	if req.ApellidoMaterno != nil {
		updates["apellidoMaterno"] = validation.SanitizeString(*req.ApellidoMaterno)
	}
	if req.Carrera != nil {
		updates["carrera"] = *req.Carrera
	}
	if req.Semestre != nil {
		updates["semestre"] = *req.Semestre
	}
	if req.Turno != nil {
		updates["turno"] = *req.Turno
	}
	if req.NumCelular != nil {
		updates["numCelular"] = *req.NumCelular
	}
	if req.AsesorInternoID != nil {
		updates["asesorInternoID"] = *req.AsesorInternoID
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	res := h.db.Model(&model.Alumno{}).
		Where(`"numControl" = ?`, numControl).
		Updates(updates)
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to update alumno")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Alumno not found")
	}

	return response.SuccessWithMessage(c, "Alumno updated", nil)
}

// Accept handles PATCH /alumno/:numControl/accept
func (h *StudentHandler) Accept(c *fiber.Ctx) error {
	return h.setEstatus(c, model.StatusAceptado)
}

// Reject handles PATCH /alumno/:numControl/reject
func (h *StudentHandler) Reject(c *fiber.Ctx) error {
	return h.setEstatus(c, model.StatusRechazado)
}

func (h *StudentHandler) setEstatus(c *fiber.Ctx, estatus model.ReviewStatus) error {
	numControl := c.Params("numControl")
	if numControl == "" {
		return response.BadRequest(c, "numControl is required")
	}

	res := h.db.Model(&model.Alumno{}).
		Where(`"numControl" = ?`, numControl).
		Update("estatus", estatus)
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to update alumno estatus")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Alumno not found")
	}

	return response.SuccessWithMessage(c, "Alumno estatus updated", nil)
}

// Delete handles DELETE /alumno/:numControl. Only accepted accounts can be
// removed here; pending signups disappear through the review reject path.
func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	numControl := c.Params("numControl")
	if numControl == "" {
		return response.BadRequest(c, "numControl is required")
	}

	res := h.db.Where(`"numControl" = ? AND "estatus" = ?`, numControl, model.StatusAceptado).
		Delete(&model.Alumno{})
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to delete alumno")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Alumno not found or not accepted")
	}

	return response.SuccessWithMessage(c, "Alumno deleted", nil)
}
