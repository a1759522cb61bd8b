package posting

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/utils/response"
	"github.com/sistemapracticas/api/utils/validation"
	"gorm.io/gorm"
)

// PostingHandler serves CRUD over vacantes plus the administrative review
// actions that gate which postings students can see.
type PostingHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewPostingHandler creates a new posting handler
func NewPostingHandler(db *gorm.DB) *PostingHandler {
	return &PostingHandler{db: db, validator: validation.NewValidator()}
}

// CreateVacanteRequest carries a new posting
type CreateVacanteRequest struct {
	Titulo          string `json:"titulo" validate:"required,max=255"`
	FechaInicio     string `json:"fechaInicio" validate:"required"`
	FechaFinal      string `json:"fechaFinal" validate:"required"`
	Ciudad          string `json:"ciudad" validate:"required,max=100"`
	TipoTrabajo     string `json:"tipoTrabajo" validate:"required,max=50"`
	Descripcion     string `json:"descripcion" validate:"required"`
	EntidadID       uint   `json:"entidadID" validate:"required"`
	AsesorExternoID uint   `json:"asesorExternoID" validate:"required"`
}

// Create handles POST /vacante
func (h *PostingHandler) Create(c *fiber.Ctx) error {
	var req CreateVacanteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	inicio, err := model.ParseDateOnly(req.FechaInicio)
	if err != nil {
		return response.BadRequest(c, "fechaInicio must be YYYY-MM-DD")
	}
	final, err := model.ParseDateOnly(req.FechaFinal)
	if err != nil {
		return response.BadRequest(c, "fechaFinal must be YYYY-MM-DD")
	}
	if final.Time().Before(inicio.Time()) {
		return response.BadRequest(c, "fechaFinal must not precede fechaInicio")
	}

	vacante := model.VacantePractica{
		Titulo:          validation.SanitizeString(req.Titulo),
		FechaInicio:     inicio,
		FechaFinal:      final,
		Ciudad:          req.Ciudad,
		TipoTrabajo:     req.TipoTrabajo,
		Descripcion:     validation.SanitizeString(req.Descripcion),
		EntidadID:       req.EntidadID,
		AsesorExternoID: req.AsesorExternoID,
	}
	if err := h.db.Create(&vacante).Error; err != nil {
		return response.InternalServerError(c, "Failed to create vacante")
	}

	return response.Created(c, vacante)
}

// Get handles GET /vacante/:vacanteID
func (h *PostingHandler) Get(c *fiber.Ctx) error {
	vacanteID, err := c.ParamsInt("vacanteID")
	if err != nil || vacanteID < 1 {
		return response.BadRequest(c, "vacanteID must be a positive number")
	}

	var vacante model.VacantePractica
	if err := h.db.Where(`"vacantePracticaID" = ?`, vacanteID).Take(&vacante).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Vacante not found")
		}
		return response.InternalServerError(c, "Failed to fetch vacante")
	}

	return response.Success(c, vacante)
}

// ListByEntidad handles GET /vacantes/entidad/:entidadID
func (h *PostingHandler) ListByEntidad(c *fiber.Ctx) error {
	entidadID, err := c.ParamsInt("entidadID")
	if err != nil || entidadID < 1 {
		return response.BadRequest(c, "entidadID must be a positive number")
	}

	var vacantes []model.VacantePractica
	if err := h.db.Where(`"entidadID" = ?`, entidadID).
		Order(`"vacantePracticaID" DESC`).
		Find(&vacantes).Error; err != nil {
		return response.InternalServerError(c, "Failed to list vacantes")
	}

	return response.Success(c, vacantes)
}

// List handles GET /vacantes with optional estatus filter and pagination.
// Students browse with estatus=Aceptado; administrators browse the review
// queue with estatus left empty.
func (h *PostingHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	estatus := c.Query("estatus")

	query := h.db.Model(&model.VacantePractica{})
	if estatus != "" {
		query = query.Where(`"estatus" = ?`, estatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count vacantes")
	}

	pagination := response.CalculatePagination(page, limit, total)

	var vacantes []model.VacantePractica
	if err := query.
		Order(`"vacantePracticaID" DESC`).
		Offset((pagination.CurrentPage - 1) * pagination.PerPage).
		Limit(pagination.PerPage).
		Find(&vacantes).Error; err != nil {
		return response.InternalServerError(c, "Failed to list vacantes")
	}

	return response.Paginated(c, vacantes, pagination)
}

// UpdateVacanteRequest carries a partial posting update
type UpdateVacanteRequest struct {
	Titulo      *string `json:"titulo"`
	FechaInicio *string `json:"fechaInicio"`
	FechaFinal  *string `json:"fechaFinal"`
	Ciudad      *string `json:"ciudad"`
	TipoTrabajo *string `json:"tipoTrabajo"`
	Descripcion *string `json:"descripcion"`
}

// Update handles PUT /vacante/:vacanteID with partial semantics: only fields
// present in the body change.
func (h *PostingHandler) Update(c *fiber.Ctx) error {
	vacanteID, err := c.ParamsInt("vacanteID")
	if err != nil || vacanteID < 1 {
		return response.BadRequest(c, "vacanteID must be a positive number")
	}

	var req UpdateVacanteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Titulo != nil {
		updates["titulo"] = validation.SanitizeString(*req.Titulo)
	}
	if req.FechaInicio != nil {
		d, err := model.ParseDateOnly(*req.FechaInicio)
		if err != nil {
			return response.BadRequest(c, "fechaInicio must be YYYY-MM-DD")
		}
		updates["fechaInicio"] = d
	}
	if req.FechaFinal != nil {
		d, err := model.ParseDateOnly(*req.FechaFinal)
		if err != nil {
			return response.BadRequest(c, "fechaFinal must be YYYY-MM-DD")
		}
		updates["fechaFinal"] = d
	}
	if req.Ciudad != nil {
		updates["ciudad"] = *req.Ciudad
	}
	if req.TipoTrabajo != nil {
		updates["tipoTrabajo"] = *req.TipoTrabajo
	}
	if req.Descripcion != nil {
		updates["descripcion"] = validation.SanitizeString(*req.Descripcion)
	}
	if len(updates) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	res := h.db.Model(&model.VacantePractica{}).
		Where(`"vacantePracticaID" = ?`, vacanteID).
		Updates(updates)
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to update vacante")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Vacante not found")
	}

	return response.SuccessWithMessage(c, "Vacante updated", nil)
}

// Accept handles PATCH /vacante/:vacanteID/accept
func (h *PostingHandler) Accept(c *fiber.Ctx) error {
	return h.setEstatus(c, model.StatusAceptado)
}

// RejectReview handles PATCH /vacante/:vacanteID/reject
func (h *PostingHandler) RejectReview(c *fiber.Ctx) error {
	return h.setEstatus(c, model.StatusRechazado)
}

func (h *PostingHandler) setEstatus(c *fiber.Ctx, estatus model.ReviewStatus) error {
	vacanteID, err := c.ParamsInt("vacanteID")
	if err != nil || vacanteID < 1 {
		return response.BadRequest(c, "vacanteID must be a positive number")
	}

	res := h.db.Model(&model.VacantePractica{}).
		Where(`"vacantePracticaID" = ?`, vacanteID).
		Update("estatus", estatus)
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to update vacante estatus")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Vacante not found")
	}

	return response.SuccessWithMessage(c, "Vacante estatus updated", nil)
}

// Delete handles DELETE /vacante/:vacanteID. Only accepted postings can be
// withdrawn this way; pending ones go through the review reject path.
func (h *PostingHandler) Delete(c *fiber.Ctx) error {
	vacanteID, err := c.ParamsInt("vacanteID")
	if err != nil || vacanteID < 1 {
		return response.BadRequest(c, "vacanteID must be a positive number")
	}

	res := h.db.Where(`"vacantePracticaID" = ? AND "estatus" = ?`, vacanteID, model.StatusAceptado).
		Delete(&model.VacantePractica{})
	if res.Error != nil {
		return response.InternalServerError(c, "Failed to delete vacante")
	}
	if res.RowsAffected == 0 {
		return response.NotFound(c, "Vacante not found or not accepted")
	}

	return response.SuccessWithMessage(c, "Vacante deleted", nil)
}

// DeleteWithApplications handles DELETE /vacante/:vacanteID/withPostulaciones:
// the entity withdraws a posting and every pending application against it goes
// with it, atomically.
func (h *PostingHandler) DeleteWithApplications(c *fiber.Ctx) error {
	vacanteID, err := c.ParamsInt("vacanteID")
	if err != nil || vacanteID < 1 {
		return response.BadRequest(c, "vacanteID must be a positive number")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(`"vacanteID" = ?`, vacanteID).
			Delete(&model.PostulacionAlumno{}).Error; err != nil {
			return err
		}

		res := tx.Where(`"vacantePracticaID" = ?`, vacanteID).
			Delete(&model.VacantePractica{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "Vacante not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to delete vacante")
	}

	return response.SuccessWithMessage(c, "Vacante and postulaciones deleted", nil)
}
