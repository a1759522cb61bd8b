package services

import (
	"context"
	"testing"
	"time"

	"github.com/sistemapracticas/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedStudent(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustCreate(t, db, &model.Alumno{
		NumControl: "S100", Nombre: "Ana", Correo: "ana@alumnos.edu.mx",
	})
}

func TestDocumentPipelineApprove(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db)
	svc := NewDocumentService(db)
	ctx := context.Background()

	staged, err := svc.UploadStaged(ctx, "S100", "carta_compromiso.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, model.DocumentoSubido, staged.Estatus)

	review, err := svc.SubmitForReview(ctx, staged.DocumentoID, "alumno")
	require.NoError(t, err)
	assert.Equal(t, model.DocumentoEnProceso, review.Estatus)

	// Submitting mirrors the staging row.
	var mirrored model.DocumentoAlumnoSubido
	require.NoError(t, db.Take(&mirrored, staged.DocumentoID).Error)
	assert.Equal(t, model.DocumentoEnProceso, mirrored.Estatus)

	require.NoError(t, svc.Approve(ctx, review.DocumentoID, "asesorInterno"))

	var approved model.DocumentoAlumno
	require.NoError(t, db.Take(&approved, review.DocumentoID).Error)
	assert.Equal(t, model.DocumentoAceptado, approved.Estatus)
	assert.Equal(t, "asesorInterno", approved.UsuarioTipo)

	require.NoError(t, db.Take(&mirrored, staged.DocumentoID).Error)
	assert.Equal(t, model.DocumentoAceptado, mirrored.Estatus)

	// Submit and approve each left an audit row.
	assert.EqualValues(t, 2, count(t, db, &model.Auditoria{}, `"tabla" = ?`, "documentoAlumno"))
}

func TestDocumentPipelineReject(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db)
	svc := NewDocumentService(db)
	ctx := context.Background()

	staged, err := svc.UploadStaged(ctx, "S100", "reporte.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	review, err := svc.SubmitForReview(ctx, staged.DocumentoID, "alumno")
	require.NoError(t, err)

	require.NoError(t, svc.Reject(ctx, review.DocumentoID, "asesorInterno"))

	// The review row is gone; the staging row records the rejection so the
	// student can fix and resubmit.
	assert.EqualValues(t, 0, count(t, db, &model.DocumentoAlumno{}, ""))
	var mirrored model.DocumentoAlumnoSubido
	require.NoError(t, db.Take(&mirrored, staged.DocumentoID).Error)
	assert.Equal(t, model.DocumentoRechazado, mirrored.Estatus)
}

func TestDocumentDeleteMarksStagedEliminado(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db)
	svc := NewDocumentService(db)
	ctx := context.Background()

	staged, err := svc.UploadStaged(ctx, "S100", "reporte.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	review, err := svc.SubmitForReview(ctx, staged.DocumentoID, "alumno")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, review.DocumentoID))

	assert.EqualValues(t, 0, count(t, db, &model.DocumentoAlumno{}, ""))
	var mirrored model.DocumentoAlumnoSubido
	require.NoError(t, db.Take(&mirrored, staged.DocumentoID).Error)
	assert.Equal(t, model.DocumentoEliminado, mirrored.Estatus)
}

func TestDocumentNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewDocumentService(db)
	ctx := context.Background()

	_, err := svc.SubmitForReview(ctx, 999, "alumno")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Approve(ctx, 999, "asesorInterno"), ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Reject(ctx, 999, "asesorInterno"), ErrDocumentNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 999), ErrDocumentNotFound)
	assert.ErrorIs(t, svc.DeleteStaged(ctx, 999), ErrDocumentNotFound)
}

func TestCheckRecentChanges(t *testing.T) {
	db := newTestDB(t)
	seedStudent(t, db)
	svc := NewDocumentService(db)
	ctx := context.Background()

	// No activity yet.
	changes, err := svc.CheckRecentChanges(ctx, 10*time.Second)
	require.NoError(t, err)
	assert.False(t, changes.HasChanges)
	assert.Empty(t, changes.ChangeTypes)

	staged, err := svc.UploadStaged(ctx, "S100", "reporte.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	review, err := svc.SubmitForReview(ctx, staged.DocumentoID, "alumno")
	require.NoError(t, err)
	require.NoError(t, svc.Approve(ctx, review.DocumentoID, "asesorInterno"))

	changes, err = svc.CheckRecentChanges(ctx, 10*time.Second)
	require.NoError(t, err)
	assert.True(t, changes.HasChanges)
	assert.ElementsMatch(t, []string{"alumno", "asesorInterno"}, changes.ChangeTypes)

	// A window entirely in the past sees nothing.
	changes, err = svc.CheckRecentChanges(ctx, 0)
	require.NoError(t, err)
	assert.False(t, changes.HasChanges)
}
