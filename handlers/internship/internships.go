package internship

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/utils/response"
	"gorm.io/gorm"
)

// InternshipHandler serves read access over practicas profesionales. Rows are
// only ever created by the placement transition, so there is no create or
// update surface here.
type InternshipHandler struct {
	db *gorm.DB
}

// NewInternshipHandler creates a new internship handler
func NewInternshipHandler(db *gorm.DB) *InternshipHandler {
	return &InternshipHandler{db: db}
}

// entityPracticaRow is the listing projection for an entity's dashboard.
type entityPracticaRow struct {
	PracticaID    uint           `json:"practicaID"`
	AlumnoID      string         `json:"alumnoID"`
	NombreAlumno  string         `json:"nombreAlumno"`
	CorreoAlumno  string         `json:"correoAlumno"`
	TituloVacante string         `json:"tituloVacante"`
	FechaInicio   model.DateOnly `json:"fechaInicio"`
	FechaFin      model.DateOnly `json:"fechaFin"`
	Estado        string         `json:"estado"`
}

// ListByEntidad handles GET /practicas/entidad/:entidadID, joining in the
// student's name and email for the entity's intern roster.
func (h *InternshipHandler) ListByEntidad(c *fiber.Ctx) error {
	entidadID, err := c.ParamsInt("entidadID")
	if err != nil || entidadID < 1 {
		return response.BadRequest(c, "entidadID must be a positive number")
	}

	var rows []entityPracticaRow
	err = h.db.Table(`"practicasProfesionales" pr`).
		Select(`pr."practicaID" AS practica_id, pr."alumnoID" AS alumno_id,`+
			` a."nombre" || ' ' || a."apellidoPaterno" || ' ' || a."apellidoMaterno" AS nombre_alumno,`+
			` a."correo" AS correo_alumno, pr."tituloVacante" AS titulo_vacante,`+
			` pr."fechaInicio" AS fecha_inicio, pr."fechaFin" AS fecha_fin, pr."estado" AS estado`).
		Joins(`JOIN "alumno" a ON pr."alumnoID" = a."numControl"`).
		Where(`pr."entidadID" = ?`, entidadID).
		Order(`pr."practicaID" DESC`).
		Scan(&rows).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to list practicas")
	}

	return response.Success(c, rows)
}

// studentPracticaDetail is the student-facing view, joining in the entity and
// external advisor names.
type studentPracticaDetail struct {
	PracticaID    uint           `json:"practicaID"`
	TituloVacante string         `json:"tituloVacante"`
	FechaInicio   model.DateOnly `json:"fechaInicio"`
	FechaFin      model.DateOnly `json:"fechaFin"`
	Estado        string         `json:"estado"`
	NombreEntidad string         `json:"nombreEntidad"`
	NombreAsesor  string         `json:"nombreAsesorExterno"`
	CorreoAsesor  string         `json:"correoAsesorExterno"`
}

// GetByAlumno handles GET /practica/alumno/:alumnoID and returns the
// student's current placement with entity and advisor context.
func (h *InternshipHandler) GetByAlumno(c *fiber.Ctx) error {
	alumnoID := c.Params("alumnoID")
	if alumnoID == "" {
		return response.BadRequest(c, "alumnoID is required")
	}

	var detail studentPracticaDetail
	err := h.db.Table(`"practicasProfesionales" pr`).
		Select(`pr."practicaID" AS practica_id, pr."tituloVacante" AS titulo_vacante,`+
			` pr."fechaInicio" AS fecha_inicio, pr."fechaFin" AS fecha_fin, pr."estado" AS estado,`+
			` e."nombreEntidad" AS nombre_entidad,`+
			` ae."nombre" || ' ' || ae."apellidoPaterno" || ' ' || ae."apellidoMaterno" AS nombre_asesor,`+
			` ae."correo" AS correo_asesor`).
		Joins(`JOIN "entidadReceptora" e ON pr."entidadID" = e."entidadID"`).
		Joins(`JOIN "asesorExterno" ae ON pr."asesorExternoID" = ae."asesorExternoID"`).
		Where(`pr."alumnoID" = ?`, alumnoID).
		Order(`pr."practicaID" DESC`).
		Take(&detail).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "Practica not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch practica")
	}

	return response.Success(c, detail)
}

// GetLatestByAlumno handles GET /practica/alumno/:alumnoID/latest and returns
// the newest raw practica row without joins.
func (h *InternshipHandler) GetLatestByAlumno(c *fiber.Ctx) error {
	alumnoID := c.Params("alumnoID")
	if alumnoID == "" {
		return response.BadRequest(c, "alumnoID is required")
	}

	var practica model.PracticaProfesional
	err := h.db.Where(`"alumnoID" = ?`, alumnoID).
		Order(`"practicaID" DESC`).
		Take(&practica).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NotFound(c, "Practica not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch practica")
	}

	return response.Success(c, practica)
}
