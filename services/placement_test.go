package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sistemapracticas/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedPlacement builds the minimal graph an acceptance needs: one student
// with two applications, a second student applying to the same posting, and
// the posting itself.
//
// Layout:
//
//	alumno S100 -> postulacion 42 (vacante 7 "Backend Intern"), postulacion 43 (vacante 8)
//	alumno S200 -> postulacion 44 (vacante 7)
func seedPlacement(t *testing.T, db *gorm.DB) {
	t.Helper()

	mustCreate(t, db, &model.AsesorInterno{
		AsesorInternoID: 1, Nombre: "Laura", Correo: "laura@instituto.edu.mx",
	})
	mustCreate(t, db, &model.EntidadReceptora{
		EntidadID: 3, NombreEntidad: "Tecnorte", Correo: "rh@tecnorte.mx", Estatus: model.StatusAceptado,
	})
	mustCreate(t, db, &model.AsesorExterno{
		AsesorExternoID: 5, Nombre: "Jorge", Correo: "jorge@tecnorte.mx", EntidadID: 3,
	})
	mustCreate(t, db, &model.Alumno{
		NumControl: "S100", Nombre: "Ana", Correo: "ana@alumnos.edu.mx", Estatus: model.StatusAceptado,
	})
	mustCreate(t, db, &model.Alumno{
		NumControl: "S200", Nombre: "Luis", Correo: "luis@alumnos.edu.mx", Estatus: model.StatusAceptado,
	})

	inicio, err := model.ParseDateOnly("2024-03-01")
	require.NoError(t, err)
	final, err := model.ParseDateOnly("2024-06-30")
	require.NoError(t, err)

	mustCreate(t, db, &model.VacantePractica{
		VacantePracticaID: 7, Titulo: "Backend Intern",
		FechaInicio: inicio, FechaFinal: final,
		Ciudad: "Monterrey", TipoTrabajo: "Presencial",
		EntidadID: 3, AsesorExternoID: 5, Estatus: model.StatusAceptado,
	})
	mustCreate(t, db, &model.VacantePractica{
		VacantePracticaID: 8, Titulo: "Data Intern",
		FechaInicio: inicio, FechaFinal: final,
		EntidadID: 3, AsesorExternoID: 5, Estatus: model.StatusAceptado,
	})

	mustCreate(t, db, &model.PostulacionAlumno{
		PostulacionID: 42, AlumnoID: "S100", VacanteID: 7,
		NombreAlumno: "Ana García", CorreoAlumno: "ana@alumnos.edu.mx",
	})
	mustCreate(t, db, &model.PostulacionAlumno{
		PostulacionID: 43, AlumnoID: "S100", VacanteID: 8,
		NombreAlumno: "Ana García", CorreoAlumno: "ana@alumnos.edu.mx",
	})
	mustCreate(t, db, &model.PostulacionAlumno{
		PostulacionID: 44, AlumnoID: "S200", VacanteID: 7,
		NombreAlumno: "Luis Pérez", CorreoAlumno: "luis@alumnos.edu.mx",
	})
}

func TestAcceptApplication(t *testing.T) {
	db := newTestDB(t)
	seedPlacement(t, db)
	svc := NewPlacementService(db)

	before := time.Now()
	err := svc.AcceptApplication(context.Background(), 42)
	require.NoError(t, err)

	// One practica, carrying the vacante's fields and the Iniciada state.
	var practica model.PracticaProfesional
	require.NoError(t, db.Where(`"alumnoID" = ?`, "S100").Take(&practica).Error)
	assert.Equal(t, model.PracticaIniciada, practica.Estado)
	assert.Equal(t, "Backend Intern", practica.TituloVacante)
	assert.Equal(t, uint(3), practica.EntidadID)
	assert.Equal(t, uint(5), practica.AsesorExternoID)
	assert.Equal(t, "2024-03-01", practica.FechaInicio.String())
	assert.Equal(t, "2024-06-30", practica.FechaFin.String())
	assert.False(t, practica.FechaCreacion.Before(before.Truncate(time.Second)))

	// All of S100's applications are gone, including the one against the
	// other posting. S200's application survives even though its posting
	// does not.
	assert.EqualValues(t, 0, count(t, db, &model.PostulacionAlumno{}, `"alumnoID" = ?`, "S100"))
	assert.EqualValues(t, 1, count(t, db, &model.PostulacionAlumno{}, `"alumnoID" = ?`, "S200"))

	// The accepted posting is consumed; the other remains.
	assert.EqualValues(t, 0, count(t, db, &model.VacantePractica{}, `"vacantePracticaID" = ?`, 7))
	assert.EqualValues(t, 1, count(t, db, &model.VacantePractica{}, `"vacantePracticaID" = ?`, 8))
}

func TestAcceptApplicationStoresPlainDates(t *testing.T) {
	db := newTestDB(t)
	seedPlacement(t, db)
	svc := NewPlacementService(db)

	require.NoError(t, svc.AcceptApplication(context.Background(), 42))

	// The raw column values must be the bare calendar dates, not timestamps.
	var raw struct {
		Inicio string
		Fin    string
	}
	err := db.Table("practicasProfesionales").
		Select(`CAST("fechaInicio" AS TEXT) AS inicio, CAST("fechaFin" AS TEXT) AS fin`).
		Where(`"alumnoID" = ?`, "S100").
		Take(&raw).Error
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", raw.Inicio)
	assert.Equal(t, "2024-06-30", raw.Fin)
}

func TestAcceptApplicationNotFound(t *testing.T) {
	db := newTestDB(t)
	seedPlacement(t, db)
	svc := NewPlacementService(db)

	postulaciones := count(t, db, &model.PostulacionAlumno{}, "")
	vacantes := count(t, db, &model.VacantePractica{}, "")

	err := svc.AcceptApplication(context.Background(), 999)
	require.ErrorIs(t, err, ErrApplicationNotFound)

	// Nothing changed anywhere.
	assert.EqualValues(t, postulaciones, count(t, db, &model.PostulacionAlumno{}, ""))
	assert.EqualValues(t, vacantes, count(t, db, &model.VacantePractica{}, ""))
	assert.EqualValues(t, 0, count(t, db, &model.PracticaProfesional{}, ""))
}

func TestAcceptApplicationTwice(t *testing.T) {
	db := newTestDB(t)
	seedPlacement(t, db)
	svc := NewPlacementService(db)

	require.NoError(t, svc.AcceptApplication(context.Background(), 42))

	// The first acceptance deleted the row, so a repeat is a plain miss.
	err := svc.AcceptApplication(context.Background(), 42)
	require.ErrorIs(t, err, ErrApplicationNotFound)
	assert.EqualValues(t, 1, count(t, db, &model.PracticaProfesional{}, ""))
}

func TestAcceptApplicationStudentAlreadyPlaced(t *testing.T) {
	db := newTestDB(t)
	seedPlacement(t, db)
	svc := NewPlacementService(db)

	// S100 already holds an active placement from some earlier acceptance
	// whose postulacion cleanup did not cover this row.
	mustCreate(t, db, &model.PracticaProfesional{
		AlumnoID: "S100", EntidadID: 3, AsesorExternoID: 5,
		Estado: model.PracticaIniciada, TituloVacante: "Old Internship",
		FechaCreacion: time.Now(),
	})

	err := svc.AcceptApplication(context.Background(), 42)
	require.ErrorIs(t, err, ErrStudentAlreadyPlaced)

	// The guard fires before any write: applications and posting survive.
	assert.EqualValues(t, 2, count(t, db, &model.PostulacionAlumno{}, `"alumnoID" = ?`, "S100"))
	assert.EqualValues(t, 1, count(t, db, &model.VacantePractica{}, `"vacantePracticaID" = ?`, 7))
	assert.EqualValues(t, 1, count(t, db, &model.PracticaProfesional{}, ""))
}

func TestAcceptApplicationRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	seedPlacement(t, db)
	svc := NewPlacementService(db)

	// Make the final step of the transition fail: deleting the vacante.
	boom := errors.New("vacante delete failed")
	err := db.Callback().Delete().Before("gorm:delete").Register("fail_vacante_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "vacantePractica" {
			tx.AddError(boom)
		}
	})
	require.NoError(t, err)
	defer db.Callback().Delete().Remove("fail_vacante_delete")

	err = svc.AcceptApplication(context.Background(), 42)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrApplicationNotFound)

	// Everything rolled back: no practica, applications intact, posting intact.
	assert.EqualValues(t, 0, count(t, db, &model.PracticaProfesional{}, ""))
	assert.EqualValues(t, 2, count(t, db, &model.PostulacionAlumno{}, `"alumnoID" = ?`, "S100"))
	assert.EqualValues(t, 1, count(t, db, &model.VacantePractica{}, `"vacantePracticaID" = ?`, 7))
}

func TestRejectApplication(t *testing.T) {
	db := newTestDB(t)
	seedPlacement(t, db)
	svc := NewPlacementService(db)

	err := svc.RejectApplication(context.Background(), 42)
	require.NoError(t, err)

	// Only the rejected row disappears. The student's other application,
	// everyone else's applications and all postings are untouched.
	assert.EqualValues(t, 0, count(t, db, &model.PostulacionAlumno{}, `"postulacionID" = ?`, 42))
	assert.EqualValues(t, 1, count(t, db, &model.PostulacionAlumno{}, `"postulacionID" = ?`, 43))
	assert.EqualValues(t, 1, count(t, db, &model.PostulacionAlumno{}, `"postulacionID" = ?`, 44))
	assert.EqualValues(t, 2, count(t, db, &model.VacantePractica{}, ""))
	assert.EqualValues(t, 0, count(t, db, &model.PracticaProfesional{}, ""))
}

func TestRejectApplicationNotFound(t *testing.T) {
	db := newTestDB(t)
	seedPlacement(t, db)
	svc := NewPlacementService(db)

	err := svc.RejectApplication(context.Background(), 999)
	require.ErrorIs(t, err, ErrApplicationNotFound)
	assert.EqualValues(t, 3, count(t, db, &model.PostulacionAlumno{}, ""))
}
