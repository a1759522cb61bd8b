package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sistemapracticas/api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrDocumentNotFound means the referenced document row does not exist.
var ErrDocumentNotFound = errors.New("documento not found")

// DocumentService runs the student document pipeline: files land in the
// staging table, get submitted for advisor review, and are approved or
// rejected. The staging row's estatus always mirrors the review outcome, and
// every review mutation leaves an auditoria record the frontend polls for.
type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

// UploadStaged stores a freshly uploaded file in the staging table.
func (s *DocumentService) UploadStaged(ctx context.Context, alumnoID, nombreArchivo string, archivo []byte) (*model.DocumentoAlumnoSubido, error) {
	doc := model.DocumentoAlumnoSubido{
		AlumnoID:      alumnoID,
		NombreArchivo: nombreArchivo,
		Archivo:       archivo,
		Estatus:       model.DocumentoSubido,
	}
	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return nil, fmt.Errorf("insert documento subido: %w", err)
	}
	return &doc, nil
}

// SubmitForReview copies a staged upload into the review table with estatus
// "En proceso" and marks the staged row accordingly.
func (s *DocumentService) SubmitForReview(ctx context.Context, documentoID uint, usuarioTipo string) (*model.DocumentoAlumno, error) {
	var review model.DocumentoAlumno

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var staged model.DocumentoAlumnoSubido
		if err := tx.Where(`"documentoID" = ?`, documentoID).Take(&staged).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDocumentNotFound
			}
			return err
		}

		review = model.DocumentoAlumno{
			AlumnoID:      staged.AlumnoID,
			NombreArchivo: staged.NombreArchivo,
			Archivo:       staged.Archivo,
			Estatus:       model.DocumentoEnProceso,
			UsuarioTipo:   usuarioTipo,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.DocumentoAlumnoSubido{}).
			Where(`"documentoID" = ?`, documentoID).
			Update("estatus", model.DocumentoEnProceso).Error; err != nil {
			return err
		}

		return s.audit(tx, "INSERT", usuarioTipo, review.AlumnoID, review.NombreArchivo)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// Approve marks a review document Aceptado, mirrors the staging row and
// records the change.
func (s *DocumentService) Approve(ctx context.Context, documentoID uint, usuarioTipo string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.takeReviewDoc(tx, documentoID)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.DocumentoAlumno{}).
			Where(`"documentoID" = ?`, documentoID).
			Updates(map[string]interface{}{
				"estatus":     model.DocumentoAceptado,
				"usuarioTipo": usuarioTipo,
			}).Error; err != nil {
			return err
		}

		if err := s.mirrorStaged(tx, doc, model.DocumentoAceptado); err != nil {
			return err
		}

		return s.audit(tx, "UPDATE", usuarioTipo, doc.AlumnoID, doc.NombreArchivo)
	})
}

// Reject removes the review document, marks the staging row Rechazado and
// records the change.
func (s *DocumentService) Reject(ctx context.Context, documentoID uint, usuarioTipo string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.takeReviewDoc(tx, documentoID)
		if err != nil {
			return err
		}

		if err := tx.Where(`"documentoID" = ?`, documentoID).
			Delete(&model.DocumentoAlumno{}).Error; err != nil {
			return err
		}

		if err := s.mirrorStaged(tx, doc, model.DocumentoRechazado); err != nil {
			return err
		}

		return s.audit(tx, "DELETE", usuarioTipo, doc.AlumnoID, doc.NombreArchivo)
	})
}

// Delete removes a review document at the student's request and marks the
// staging row Eliminado so it can be re-submitted later.
func (s *DocumentService) Delete(ctx context.Context, documentoID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.takeReviewDoc(tx, documentoID)
		if err != nil {
			return err
		}

		if err := tx.Where(`"documentoID" = ?`, documentoID).
			Delete(&model.DocumentoAlumno{}).Error; err != nil {
			return err
		}

		return s.mirrorStaged(tx, doc, model.DocumentoEliminado)
	})
}

// DeleteStaged removes a staging row outright.
func (s *DocumentService) DeleteStaged(ctx context.Context, documentoID uint) error {
	res := s.db.WithContext(ctx).
		Where(`"documentoID" = ?`, documentoID).
		Delete(&model.DocumentoAlumnoSubido{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// RecentChanges reports whether documentoAlumno changed within the window and
// which user types made the changes. The frontend polls this every few
// seconds instead of re-fetching document lists.
type RecentChanges struct {
	HasChanges  bool     `json:"hasChanges"`
	ChangeTypes []string `json:"changeTypes"`
}

func (s *DocumentService) CheckRecentChanges(ctx context.Context, window time.Duration) (*RecentChanges, error) {
	since := time.Now().Add(-window)

	var types []string
	err := s.db.WithContext(ctx).
		Model(&model.Auditoria{}).
		Where(`"tabla" = ? AND "fecha" > ?`, "documentoAlumno", since).
		Distinct().
		Pluck("usuarioTipo", &types).Error
	if err != nil {
		return nil, fmt.Errorf("check auditoria: %w", err)
	}

	return &RecentChanges{
		HasChanges:  len(types) > 0,
		ChangeTypes: types,
	}, nil
}

func (s *DocumentService) takeReviewDoc(tx *gorm.DB, documentoID uint) (*model.DocumentoAlumno, error) {
	var doc model.DocumentoAlumno
	if err := tx.Where(`"documentoID" = ?`, documentoID).Take(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// mirrorStaged keeps the staging table's estatus in sync with the review
// outcome. Staged rows are matched by file name since the review copy carries
// its own id.
func (s *DocumentService) mirrorStaged(tx *gorm.DB, doc *model.DocumentoAlumno, estatus model.DocumentoEstatus) error {
	return tx.Model(&model.DocumentoAlumnoSubido{}).
		Where(`"nombreArchivo" = ? AND "alumnoID" = ?`, doc.NombreArchivo, doc.AlumnoID).
		Update("estatus", estatus).Error
}

func (s *DocumentService) audit(tx *gorm.DB, accion, usuarioTipo, alumnoID, nombreArchivo string) error {
	detalle, _ := json.Marshal(map[string]string{
		"alumnoID":      alumnoID,
		"nombreArchivo": nombreArchivo,
	})
	entry := model.Auditoria{
		Tabla:       "documentoAlumno",
		Accion:      accion,
		Fecha:       time.Now(),
		UsuarioTipo: usuarioTipo,
		Detalle:     datatypes.JSON(detalle),
	}
	return tx.Create(&entry).Error
}
