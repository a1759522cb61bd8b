package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/services"
	"github.com/sistemapracticas/api/utils/pdfvalidation"
	"github.com/sistemapracticas/api/utils/response"
	"gorm.io/gorm"
)

// changeWindow is how far back the polling endpoint looks in auditoria.
const changeWindow = 10 * time.Second

// DocumentHandler serves the student document pipeline and the shared formato
// templates. All mutations go through DocumentService so the staging mirror
// and audit trail stay consistent.
type DocumentHandler struct {
	db        *gorm.DB
	documents *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(db *gorm.DB, documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{db: db, documents: documents}
}

// Upload handles POST /documento. The multipart form carries alumnoID and the
// PDF file.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	alumnoID := c.FormValue("alumnoID")
	if alumnoID == "" {
		return response.BadRequest(c, "alumnoID is required")
	}

	file, err := c.FormFile("archivo")
	if err != nil {
		return response.BadRequest(c, "archivo PDF is required")
	}

	result, data, err := pdfvalidation.ValidatePDFFile(file, pdfvalidation.DocumentoLimits)
	if err != nil {
		return response.InternalServerError(c, "Failed to read archivo")
	}
	if !result.Valid {
		return response.BadRequest(c, result.Error)
	}

	doc, err := h.documents.UploadStaged(c.UserContext(), alumnoID, file.Filename, data)
	if err != nil {
		return response.InternalServerError(c, "Failed to store documento")
	}

	return response.Created(c, fiber.Map{
		"documentoID": doc.DocumentoID,
		"estatus":     doc.Estatus,
	})
}

// ListStaged handles GET /documentos/alumno/:alumnoID and returns the
// student's staging rows, optionally filtered by estatus.
func (h *DocumentHandler) ListStaged(c *fiber.Ctx) error {
	alumnoID := c.Params("alumnoID")
	if alumnoID == "" {
		return response.BadRequest(c, "alumnoID is required")
	}

	query := h.db.Omit("archivo").Where(`"alumnoID" = ?`, alumnoID)
	if estatus := c.Query("estatus"); estatus != "" {
		query = query.Where(`"estatus" = ?`, estatus)
	}

	var docs []model.DocumentoAlumnoSubido
	if err := query.Order(`"documentoID" DESC`).Find(&docs).Error; err != nil {
		return response.InternalServerError(c, "Failed to list documentos")
	}

	return response.Success(c, docs)
}

// ListInReview handles GET /documentosRevision/alumno/:alumnoID and returns
// the student's review rows.
func (h *DocumentHandler) ListInReview(c *fiber.Ctx) error {
	alumnoID := c.Params("alumnoID")
	if alumnoID == "" {
		return response.BadRequest(c, "alumnoID is required")
	}

	query := h.db.Omit("archivo").Where(`"alumnoID" = ?`, alumnoID)
	if estatus := c.Query("estatus"); estatus != "" {
		query = query.Where(`"estatus" = ?`, estatus)
	}

	var docs []model.DocumentoAlumno
	if err := query.Order(`"documentoID" DESC`).Find(&docs).Error; err != nil {
		return response.InternalServerError(c, "Failed to list documentos")
	}

	return response.Success(c, docs)
}

// DownloadStaged handles GET /documento/:documentoID/archivo
func (h *DocumentHandler) DownloadStaged(c *fiber.Ctx) error {
	documentoID, err := c.ParamsInt("documentoID")
	if err != nil || documentoID < 1 {
		return response.BadRequest(c, "documentoID must be a positive number")
	}

	var doc model.DocumentoAlumnoSubido
	if err := h.db.Where(`"documentoID" = ?`, documentoID).Take(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Documento not found")
		}
		return response.InternalServerError(c, "Failed to fetch documento")
	}

	return sendPDF(c, doc.NombreArchivo, doc.Archivo)
}

// DownloadInReview handles GET /documentoRevision/:documentoID/archivo
func (h *DocumentHandler) DownloadInReview(c *fiber.Ctx) error {
	documentoID, err := c.ParamsInt("documentoID")
	if err != nil || documentoID < 1 {
		return response.BadRequest(c, "documentoID must be a positive number")
	}

	var doc model.DocumentoAlumno
	if err := h.db.Where(`"documentoID" = ?`, documentoID).Take(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Documento not found")
		}
		return response.InternalServerError(c, "Failed to fetch documento")
	}

	return sendPDF(c, doc.NombreArchivo, doc.Archivo)
}

// Submit handles POST /documento/:documentoID/submit, moving a staged upload
// into review.
func (h *DocumentHandler) Submit(c *fiber.Ctx) error {
	documentoID, err := c.ParamsInt("documentoID")
	if err != nil || documentoID < 1 {
		return response.BadRequest(c, "documentoID must be a positive number")
	}
	usuarioTipo := c.FormValue("usuarioTipo", "alumno")

	review, err := h.documents.SubmitForReview(c.UserContext(), uint(documentoID), usuarioTipo)
	if errors.Is(err, services.ErrDocumentNotFound) {
		return response.NotFound(c, "Documento not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to submit documento")
	}

	return response.Created(c, fiber.Map{
		"documentoID": review.DocumentoID,
		"estatus":     review.Estatus,
	})
}

// Approve handles PATCH /documento/:documentoID/accept
func (h *DocumentHandler) Approve(c *fiber.Ctx) error {
	return h.review(c, h.documents.Approve, "Documento aceptado")
}

// Reject handles PATCH /documento/:documentoID/reject
func (h *DocumentHandler) Reject(c *fiber.Ctx) error {
	return h.review(c, h.documents.Reject, "Documento rechazado")
}

func (h *DocumentHandler) review(c *fiber.Ctx, action func(ctx context.Context, id uint, usuarioTipo string) error, message string) error {
	documentoID, err := c.ParamsInt("documentoID")
	if err != nil || documentoID < 1 {
		return response.BadRequest(c, "documentoID must be a positive number")
	}
	usuarioTipo := c.Query("usuarioTipo", "asesorInterno")

	err = action(c.UserContext(), uint(documentoID), usuarioTipo)
	if errors.Is(err, services.ErrDocumentNotFound) {
		return response.NotFound(c, "Documento not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to update documento")
	}

	return response.SuccessWithMessage(c, message, nil)
}

// Delete handles DELETE /documentoRevision/:documentoID, a student pulling a
// document back out of review.
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	documentoID, err := c.ParamsInt("documentoID")
	if err != nil || documentoID < 1 {
		return response.BadRequest(c, "documentoID must be a positive number")
	}

	err = h.documents.Delete(c.UserContext(), uint(documentoID))
	if errors.Is(err, services.ErrDocumentNotFound) {
		return response.NotFound(c, "Documento not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to delete documento")
	}

	return response.SuccessWithMessage(c, "Documento eliminado", nil)
}

// DeleteStaged handles DELETE /documento/:documentoID
func (h *DocumentHandler) DeleteStaged(c *fiber.Ctx) error {
	documentoID, err := c.ParamsInt("documentoID")
	if err != nil || documentoID < 1 {
		return response.BadRequest(c, "documentoID must be a positive number")
	}

	err = h.documents.DeleteStaged(c.UserContext(), uint(documentoID))
	if errors.Is(err, services.ErrDocumentNotFound) {
		return response.NotFound(c, "Documento not found")
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to delete documento")
	}

	return response.SuccessWithMessage(c, "Documento eliminado", nil)
}

// CheckChanges handles GET /documentos/changes: the polling endpoint the
// frontend hits instead of refetching document lists.
func (h *DocumentHandler) CheckChanges(c *fiber.Ctx) error {
	changes, err := h.documents.CheckRecentChanges(c.UserContext(), changeWindow)
	if err != nil {
		return response.InternalServerError(c, "Failed to check changes")
	}
	return response.Success(c, changes)
}

// UploadFormato handles POST /formato, storing a shared template.
func (h *DocumentHandler) UploadFormato(c *fiber.Ctx) error {
	file, err := c.FormFile("archivo")
	if err != nil {
		return response.BadRequest(c, "archivo PDF is required")
	}

	result, data, err := pdfvalidation.ValidatePDFFile(file, pdfvalidation.FormatoLimits)
	if err != nil {
		return response.InternalServerError(c, "Failed to read archivo")
	}
	if !result.Valid {
		return response.BadRequest(c, result.Error)
	}

	formato := model.Formato{
		NombreArchivo: file.Filename,
		Archivo:       data,
	}
	if err := h.db.Create(&formato).Error; err != nil {
		return response.InternalServerError(c, "Failed to store formato")
	}

	return response.Created(c, fiber.Map{"documentoID": formato.DocumentoID})
}

// ListFormatos handles GET /formatos
func (h *DocumentHandler) ListFormatos(c *fiber.Ctx) error {
	var formatos []model.Formato
	if err := h.db.Omit("archivo").Order(`"documentoID"`).Find(&formatos).Error; err != nil {
		return response.InternalServerError(c, "Failed to list formatos")
	}
	return response.Success(c, formatos)
}

// DownloadFormato handles GET /formato/:documentoID/archivo
func (h *DocumentHandler) DownloadFormato(c *fiber.Ctx) error {
	documentoID, err := c.ParamsInt("documentoID")
	if err != nil || documentoID < 1 {
		return response.BadRequest(c, "documentoID must be a positive number")
	}

	var formato model.Formato
	if err := h.db.Where(`"documentoID" = ?`, documentoID).Take(&formato).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Formato not found")
		}
		return response.InternalServerError(c, "Failed to fetch formato")
	}

	return sendPDF(c, formato.NombreArchivo, formato.Archivo)
}

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	if len(data) == 0 {
		return response.NotFound(c, "Documento has no file content")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename=%q`, filename))
	return c.Send(data)
}
