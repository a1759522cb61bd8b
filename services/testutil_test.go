package services

import (
	"testing"

	"github.com/sistemapracticas/api/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.AsesorInterno{},
		&model.EntidadReceptora{},
		&model.AsesorExterno{},
		&model.Alumno{},
		&model.Administrador{},
		&model.VacantePractica{},
		&model.PostulacionAlumno{},
		&model.PracticaProfesional{},
		&model.DocumentoAlumnoSubido{},
		&model.DocumentoAlumno{},
		&model.Formato{},
		&model.Auditoria{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func count(t *testing.T, db *gorm.DB, table interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Model(table)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", table, err)
	}
	return n
}
