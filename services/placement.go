package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sistemapracticas/api/model"
	"gorm.io/gorm"
)

var (
	// ErrApplicationNotFound means the postulacion does not exist; nothing
	// was written.
	ErrApplicationNotFound = errors.New("postulacion not found")

	// ErrStudentAlreadyPlaced means the student already has an Iniciada
	// practica, so accepting another application would double-book them.
	ErrStudentAlreadyPlaced = errors.New("alumno already has an active practica")
)

// PlacementService owns the acceptance transition: promoting an application to
// a practica profesional and retiring the application and its posting in one
// all-or-nothing unit.
type PlacementService struct {
	db *gorm.DB
}

func NewPlacementService(db *gorm.DB) *PlacementService {
	return &PlacementService{db: db}
}

// acceptedApplication is the join projection the transition works from.
type acceptedApplication struct {
	AlumnoID        string
	VacanteID       uint
	NombreAlumno    string
	CorreoAlumno    string
	EntidadID       uint
	AsesorExternoID uint
	Titulo          string
	FechaInicio     model.DateOnly
	FechaFinal      model.DateOnly
}

// AcceptApplication promotes postulacion postulacionID to a practica
// profesional. Within a single transaction it:
//
//  1. joins the postulacion with its vacante (missing row: ErrApplicationNotFound,
//     no writes),
//  2. inserts the practica with estado Iniciada, the vacante's title and its
//     dates normalized to plain calendar dates,
//  3. deletes every postulacion belonging to the student, since a placed
//     student is no longer eligible for other pending applications,
//  4. deletes the accepted vacante, since a consumed posting is exhausted.
//
// Any failure after the fetch rolls the whole invocation back, so callers may
// retry on infrastructure errors without risking duplicate practicas.
func (s *PlacementService) AcceptApplication(ctx context.Context, postulacionID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app acceptedApplication
		err := tx.Table(`"postulacionAlumno" p`).
			Select(`p."alumnoID" AS alumno_id, p."vacanteID" AS vacante_id,`+
				` p."nombreAlumno" AS nombre_alumno, p."correoAlumno" AS correo_alumno,`+
				` v."entidadID" AS entidad_id, v."asesorExternoID" AS asesor_externo_id,`+
				` v."titulo" AS titulo, v."fechaInicio" AS fecha_inicio, v."fechaFinal" AS fecha_final`).
			Joins(`JOIN "vacantePractica" v ON p."vacanteID" = v."vacantePracticaID"`).
			Where(`p."postulacionID" = ?`, postulacionID).
			Take(&app).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch postulacion %d: %w", postulacionID, err)
		}

		// Row locking alone does not stop two concurrent acceptances for the
		// same student from both passing the fetch, so re-check for an active
		// placement inside the transaction.
		var active int64
		if err := tx.Model(&model.PracticaProfesional{}).
			Where(`"alumnoID" = ? AND "estado" = ?`, app.AlumnoID, model.PracticaIniciada).
			Count(&active).Error; err != nil {
			return fmt.Errorf("check active practica for %s: %w", app.AlumnoID, err)
		}
		if active > 0 {
			return ErrStudentAlreadyPlaced
		}

		practica := model.PracticaProfesional{
			AlumnoID:        app.AlumnoID,
			EntidadID:       app.EntidadID,
			AsesorExternoID: app.AsesorExternoID,
			FechaInicio:     app.FechaInicio,
			FechaFin:        app.FechaFinal,
			Estado:          model.PracticaIniciada,
			TituloVacante:   app.Titulo,
			FechaCreacion:   time.Now(),
		}
		if err := tx.Create(&practica).Error; err != nil {
			return fmt.Errorf("insert practica for %s: %w", app.AlumnoID, err)
		}

		if err := tx.Where(`"alumnoID" = ?`, app.AlumnoID).
			Delete(&model.PostulacionAlumno{}).Error; err != nil {
			return fmt.Errorf("delete postulaciones for %s: %w", app.AlumnoID, err)
		}

		if err := tx.Where(`"vacantePracticaID" = ?`, app.VacanteID).
			Delete(&model.VacantePractica{}).Error; err != nil {
			return fmt.Errorf("delete vacante %d: %w", app.VacanteID, err)
		}

		return nil
	})
}

// RejectApplication deletes the single postulacion row. A delete that touches
// zero rows reports ErrApplicationNotFound so callers can tell "already gone"
// from "just removed".
func (s *PlacementService) RejectApplication(ctx context.Context, postulacionID uint) error {
	res := s.db.WithContext(ctx).
		Where(`"postulacionID" = ?`, postulacionID).
		Delete(&model.PostulacionAlumno{})
	if res.Error != nil {
		return fmt.Errorf("delete postulacion %d: %w", postulacionID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
