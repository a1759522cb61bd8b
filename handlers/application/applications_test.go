package application

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.EntidadReceptora{},
		&model.AsesorExterno{},
		&model.Alumno{},
		&model.VacantePractica{},
		&model.PostulacionAlumno{},
		&model.PracticaProfesional{},
	))

	handler := NewApplicationHandler(db, services.NewPlacementService(db))

	app := fiber.New()
	app.Post("/acceptPostulacion/:postulacionID", handler.Accept)
	app.Post("/rejectPostulacion/:postulacionID", handler.Reject)
	app.Get("/postulacion/applied", handler.CheckApplied)
	app.Get("/postulaciones/alumno/:alumnoID/vacantes", handler.ListVacanteIDsByAlumno)

	return app, db
}

func seedApplication(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&model.EntidadReceptora{
		EntidadID: 3, NombreEntidad: "Tecnorte", Correo: "rh@tecnorte.mx",
	}).Error)
	require.NoError(t, db.Create(&model.AsesorExterno{
		AsesorExternoID: 5, Nombre: "Jorge", Correo: "jorge@tecnorte.mx", EntidadID: 3,
	}).Error)
	require.NoError(t, db.Create(&model.Alumno{
		NumControl: "S100", Nombre: "Ana", Correo: "ana@alumnos.edu.mx",
	}).Error)

	inicio, _ := model.ParseDateOnly("2024-03-01")
	final, _ := model.ParseDateOnly("2024-06-30")
	require.NoError(t, db.Create(&model.VacantePractica{
		VacantePracticaID: 7, Titulo: "Backend Intern",
		FechaInicio: inicio, FechaFinal: final,
		EntidadID: 3, AsesorExternoID: 5, Estatus: model.StatusAceptado,
	}).Error)
	require.NoError(t, db.Create(&model.PostulacionAlumno{
		PostulacionID: 42, AlumnoID: "S100", VacanteID: 7,
		NombreAlumno: "Ana García", CorreoAlumno: "ana@alumnos.edu.mx",
	}).Error)
}

func TestAcceptEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedApplication(t, db)

	resp, err := app.Test(httptest.NewRequest("POST", "/acceptPostulacion/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var practicas int64
	require.NoError(t, db.Model(&model.PracticaProfesional{}).Count(&practicas).Error)
	assert.EqualValues(t, 1, practicas)
}

func TestAcceptEndpointNotFound(t *testing.T) {
	app, db := newTestApp(t)
	seedApplication(t, db)

	resp, err := app.Test(httptest.NewRequest("POST", "/acceptPostulacion/999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var practicas int64
	require.NoError(t, db.Model(&model.PracticaProfesional{}).Count(&practicas).Error)
	assert.EqualValues(t, 0, practicas)
}

func TestAcceptEndpointAlreadyPlaced(t *testing.T) {
	app, db := newTestApp(t)
	seedApplication(t, db)

	require.NoError(t, db.Create(&model.PracticaProfesional{
		AlumnoID: "S100", EntidadID: 3, AsesorExternoID: 5,
		Estado: model.PracticaIniciada, FechaCreacion: time.Now(),
	}).Error)

	resp, err := app.Test(httptest.NewRequest("POST", "/acceptPostulacion/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAcceptEndpointBadID(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/acceptPostulacion/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRejectEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedApplication(t, db)

	resp, err := app.Test(httptest.NewRequest("POST", "/rejectPostulacion/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Rejecting again reports the row as gone.
	resp, err = app.Test(httptest.NewRequest("POST", "/rejectPostulacion/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// The posting is untouched by a rejection.
	var vacantes int64
	require.NoError(t, db.Model(&model.VacantePractica{}).Count(&vacantes).Error)
	assert.EqualValues(t, 1, vacantes)
}

func TestListVacanteIDsEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedApplication(t, db)

	inicio, _ := model.ParseDateOnly("2024-03-01")
	final, _ := model.ParseDateOnly("2024-06-30")
	require.NoError(t, db.Create(&model.VacantePractica{
		VacantePracticaID: 8, Titulo: "Data Intern",
		FechaInicio: inicio, FechaFinal: final,
		EntidadID: 3, AsesorExternoID: 5, Estatus: model.StatusAceptado,
	}).Error)
	require.NoError(t, db.Create(&model.PostulacionAlumno{
		PostulacionID: 43, AlumnoID: "S100", VacanteID: 8,
		NombreAlumno: "Ana García", CorreoAlumno: "ana@alumnos.edu.mx",
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/postulaciones/alumno/S100/vacantes", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			VacanteIDs []uint `json:"vacanteIDs"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.ElementsMatch(t, []uint{7, 8}, body.Data.VacanteIDs)
}

func TestListVacanteIDsEndpointNoApplications(t *testing.T) {
	app, db := newTestApp(t)
	seedApplication(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/postulaciones/alumno/S999/vacantes", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			VacanteIDs []uint `json:"vacanteIDs"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body.Data.VacanteIDs)
}

func TestCheckAppliedEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	seedApplication(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/postulacion/applied?alumnoID=S100&vacanteID=7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/postulacion/applied", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
