package application

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/services"
	"github.com/sistemapracticas/api/utils/pdfvalidation"
	"github.com/sistemapracticas/api/utils/response"
	"gorm.io/gorm"
)

// ApplicationHandler serves the postulacion lifecycle: students apply against
// postings, entities review the applicant list, and the placement service
// settles each application one way or the other.
type ApplicationHandler struct {
	db        *gorm.DB
	placement *services.PlacementService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(db *gorm.DB, placement *services.PlacementService) *ApplicationHandler {
	return &ApplicationHandler{db: db, placement: placement}
}

// Register handles POST /postulacion. The request is a multipart form with the
// student snapshot fields and the cover letter PDF.
func (h *ApplicationHandler) Register(c *fiber.Ctx) error {
	alumnoID := c.FormValue("alumnoID")
	nombreAlumno := c.FormValue("nombreAlumno")
	correoAlumno := c.FormValue("correoAlumno")
	vacanteIDRaw := c.FormValue("vacanteID")

	if alumnoID == "" || nombreAlumno == "" || correoAlumno == "" || vacanteIDRaw == "" {
		return response.BadRequest(c, "alumnoID, nombreAlumno, correoAlumno and vacanteID are required")
	}

	vacanteID, err := strconv.ParseUint(vacanteIDRaw, 10, 32)
	if err != nil {
		return response.BadRequest(c, "vacanteID must be a number")
	}

	var vacante model.VacantePractica
	if err := h.db.Where(`"vacantePracticaID" = ?`, vacanteID).Take(&vacante).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Vacante not found")
		}
		return response.InternalServerError(c, "Failed to look up vacante")
	}

	// One application per student per posting.
	var existing int64
	if err := h.db.Model(&model.PostulacionAlumno{}).
		Where(`"alumnoID" = ? AND "vacanteID" = ?`, alumnoID, vacanteID).
		Count(&existing).Error; err != nil {
		return response.InternalServerError(c, "Failed to check existing postulacion")
	}
	if existing > 0 {
		return response.Conflict(c, "Ya te has postulado a esta vacante")
	}

	file, err := c.FormFile("cartaPresentacion")
	if err != nil {
		return response.BadRequest(c, "cartaPresentacion PDF is required")
	}

	result, carta, err := pdfvalidation.ValidatePDFFile(file, pdfvalidation.CartaLimits)
	if err != nil {
		return response.InternalServerError(c, "Failed to read cartaPresentacion")
	}
	if !result.Valid {
		return response.BadRequest(c, result.Error)
	}

	postulacion := model.PostulacionAlumno{
		AlumnoID:          alumnoID,
		VacanteID:         uint(vacanteID),
		NombreAlumno:      nombreAlumno,
		CorreoAlumno:      correoAlumno,
		CartaPresentacion: carta,
	}
	if err := h.db.Create(&postulacion).Error; err != nil {
		return response.InternalServerError(c, "Failed to register postulacion")
	}

	return response.Created(c, fiber.Map{"postulacionID": postulacion.PostulacionID})
}

// applicantRow is the listing projection for an entity reviewing applicants.
type applicantRow struct {
	PostulacionID uint   `json:"postulacionID"`
	AlumnoID      string `json:"alumnoID"`
	VacanteID     uint   `json:"vacanteID"`
	NombreAlumno  string `json:"nombreAlumno"`
	CorreoAlumno  string `json:"correoAlumno"`
	TituloVacante string `json:"tituloVacante"`
}

// ListByVacante handles GET /postulaciones/vacante/:vacanteID and returns the
// applicants for one posting with the posting title joined in.
func (h *ApplicationHandler) ListByVacante(c *fiber.Ctx) error {
	vacanteID, err := c.ParamsInt("vacanteID")
	if err != nil || vacanteID < 1 {
		return response.BadRequest(c, "vacanteID must be a positive number")
	}

	var rows []applicantRow
	err = h.db.Table(`"postulacionAlumno" p`).
		Select(`p."postulacionID" AS postulacion_id, p."alumnoID" AS alumno_id,`+
			` p."vacanteID" AS vacante_id, p."nombreAlumno" AS nombre_alumno,`+
			` p."correoAlumno" AS correo_alumno, v."titulo" AS titulo_vacante`).
		Joins(`JOIN "vacantePractica" v ON p."vacanteID" = v."vacantePracticaID"`).
		Where(`p."vacanteID" = ?`, vacanteID).
		Scan(&rows).Error
	if err != nil {
		return response.InternalServerError(c, "Failed to list postulaciones")
	}

	return response.Success(c, rows)
}

// DownloadCarta handles GET /postulacion/:postulacionID/carta and streams the
// stored cover letter PDF.
func (h *ApplicationHandler) DownloadCarta(c *fiber.Ctx) error {
	postulacionID, err := c.ParamsInt("postulacionID")
	if err != nil || postulacionID < 1 {
		return response.BadRequest(c, "postulacionID must be a positive number")
	}

	var postulacion model.PostulacionAlumno
	if err := h.db.Select(`"postulacionID", "nombreAlumno", "cartaPresentacion"`).
		Where(`"postulacionID" = ?`, postulacionID).
		Take(&postulacion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Postulacion not found")
		}
		return response.InternalServerError(c, "Failed to fetch carta")
	}
	if len(postulacion.CartaPresentacion) == 0 {
		return response.NotFound(c, "Postulacion has no carta de presentación")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename="carta_%d.pdf"`, postulacion.PostulacionID))
	return c.Send(postulacion.CartaPresentacion)
}

// CheckApplied handles GET /postulacion/applied and reports whether the
// student already applied to the posting.
func (h *ApplicationHandler) CheckApplied(c *fiber.Ctx) error {
	alumnoID := c.Query("alumnoID")
	vacanteID := c.QueryInt("vacanteID")
	if alumnoID == "" || vacanteID < 1 {
		return response.BadRequest(c, "alumnoID and vacanteID are required")
	}

	var count int64
	if err := h.db.Model(&model.PostulacionAlumno{}).
		Where(`"alumnoID" = ? AND "vacanteID" = ?`, alumnoID, vacanteID).
		Count(&count).Error; err != nil {
		return response.InternalServerError(c, "Failed to check postulacion")
	}

	return response.Success(c, fiber.Map{"applied": count > 0})
}

// ListVacanteIDsByAlumno handles GET /postulaciones/alumno/:alumnoID/vacantes
// and returns the posting ids the student has applied to, so the frontend can
// mark them in the vacancy list.
func (h *ApplicationHandler) ListVacanteIDsByAlumno(c *fiber.Ctx) error {
	alumnoID := c.Params("alumnoID")
	if alumnoID == "" {
		return response.BadRequest(c, "alumnoID is required")
	}

	var vacanteIDs []uint
	if err := h.db.Model(&model.PostulacionAlumno{}).
		Where(`"alumnoID" = ?`, alumnoID).
		Pluck("vacanteID", &vacanteIDs).Error; err != nil {
		return response.InternalServerError(c, "Failed to list postulaciones")
	}

	return response.Success(c, fiber.Map{"vacanteIDs": vacanteIDs})
}

// Accept handles POST /acceptPostulacion/:postulacionID, running the full
// placement transition.
func (h *ApplicationHandler) Accept(c *fiber.Ctx) error {
	postulacionID, err := c.ParamsInt("postulacionID")
	if err != nil || postulacionID < 1 {
		return response.BadRequest(c, "postulacionID must be a positive number")
	}

	err = h.placement.AcceptApplication(c.UserContext(), uint(postulacionID))
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		return response.NotFound(c, "Postulacion not found")
	case errors.Is(err, services.ErrStudentAlreadyPlaced):
		return response.Conflict(c, "El alumno ya tiene una práctica activa")
	case err != nil:
		return response.InternalServerError(c, "Failed to accept postulacion")
	}

	return response.SuccessWithMessage(c, "Postulacion aceptada", nil)
}

// Reject handles POST /rejectPostulacion/:postulacionID, deleting only the
// rejected application.
func (h *ApplicationHandler) Reject(c *fiber.Ctx) error {
	postulacionID, err := c.ParamsInt("postulacionID")
	if err != nil || postulacionID < 1 {
		return response.BadRequest(c, "postulacionID must be a positive number")
	}

	err = h.placement.RejectApplication(c.UserContext(), uint(postulacionID))
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		return response.NotFound(c, "Postulacion not found")
	case err != nil:
		return response.InternalServerError(c, "Failed to reject postulacion")
	}

	return response.SuccessWithMessage(c, "Postulacion rechazada", nil)
}
