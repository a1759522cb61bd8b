package cron

import (
	"testing"
	"time"

	"github.com/sistemapracticas/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newJobDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.EntidadReceptora{},
		&model.AsesorExterno{},
		&model.VacantePractica{},
		&model.Auditoria{},
		&model.DocumentoAlumnoSubido{},
	))
	return db
}

func seedVacante(t *testing.T, db *gorm.DB, id uint, fechaFinal string, estatus model.ReviewStatus) {
	t.Helper()

	final, err := model.ParseDateOnly(fechaFinal)
	require.NoError(t, err)
	inicio, err := model.ParseDateOnly("2024-01-15")
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.VacantePractica{
		VacantePracticaID: id, Titulo: "Intern",
		FechaInicio: inicio, FechaFinal: final,
		EntidadID: 3, AsesorExternoID: 5, Estatus: estatus,
	}).Error)
}

func vacanteEstatus(t *testing.T, db *gorm.DB, id uint) model.ReviewStatus {
	t.Helper()

	var vacante model.VacantePractica
	require.NoError(t, db.Where(`"vacantePracticaID" = ?`, id).Take(&vacante).Error)
	return vacante.Estatus
}

func TestCloseExpiredPostings(t *testing.T) {
	db := newJobDB(t)

	past := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	future := time.Now().AddDate(0, 0, 30).Format("2006-01-02")

	seedVacante(t, db, 1, past, model.StatusAceptado)
	seedVacante(t, db, 2, future, model.StatusAceptado)
	seedVacante(t, db, 3, past, model.StatusRechazado)

	manager := NewCronManager(db, 30)
	manager.CloseExpiredPostings()

	// Only the accepted, expired posting flips. Future and rejected rows keep
	// their state.
	assert.Equal(t, model.StatusCaducada, vacanteEstatus(t, db, 1))
	assert.Equal(t, model.StatusAceptado, vacanteEstatus(t, db, 2))
	assert.Equal(t, model.StatusRechazado, vacanteEstatus(t, db, 3))
}

func TestCloseExpiredPostingsEndsToday(t *testing.T) {
	db := newJobDB(t)

	// A posting whose end date is today is still running.
	today := time.Now().Format("2006-01-02")
	seedVacante(t, db, 1, today, model.StatusAceptado)

	manager := NewCronManager(db, 30)
	manager.CloseExpiredPostings()

	assert.Equal(t, model.StatusAceptado, vacanteEstatus(t, db, 1))
}

func TestPruneAuditoria(t *testing.T) {
	db := newJobDB(t)

	require.NoError(t, db.Create(&model.Auditoria{
		Tabla: "documentoAlumno", Accion: "UPDATE", UsuarioTipo: "alumno",
		Fecha: time.Now().AddDate(0, 0, -40),
	}).Error)
	require.NoError(t, db.Create(&model.Auditoria{
		Tabla: "documentoAlumno", Accion: "INSERT", UsuarioTipo: "alumno",
		Fecha: time.Now(),
	}).Error)

	manager := NewCronManager(db, 30)
	manager.PruneAuditoria()

	var remaining int64
	require.NoError(t, db.Model(&model.Auditoria{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
}

func TestPurgeDeletedUploads(t *testing.T) {
	db := newJobDB(t)

	require.NoError(t, db.Create(&model.DocumentoAlumnoSubido{
		AlumnoID: "S100", NombreArchivo: "carta.pdf",
		Estatus: model.DocumentoEliminado,
	}).Error)
	require.NoError(t, db.Create(&model.DocumentoAlumnoSubido{
		AlumnoID: "S100", NombreArchivo: "reporte.pdf",
		Estatus: model.DocumentoSubido,
	}).Error)

	manager := NewCronManager(db, 30)
	manager.PurgeDeletedUploads()

	var remaining []model.DocumentoAlumnoSubido
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, model.DocumentoSubido, remaining[0].Estatus)
}
