package cron

import (
	"fmt"
	"time"

	"github.com/sistemapracticas/api/model"
)

// PruneAuditoria deletes audit rows older than the retention window. The
// change-poll endpoint only ever looks seconds into the past, so old rows are
// dead weight.
func (m *CronManager) PruneAuditoria() {
	jobName := "prune_auditoria"

	cutoff := time.Now().AddDate(0, 0, -m.auditRetentionDays)
	res := m.db.Where(`"fecha" < ?`, cutoff).Delete(&model.Auditoria{})
	if res.Error != nil {
		m.logJobError(jobName, fmt.Errorf("delete auditoria rows: %w", res.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("removed %d rows older than %s", res.RowsAffected, cutoff.Format("2006-01-02")))
}

// CloseExpiredPostings marks accepted vacantes whose end date has passed as
// Caducada so they stop showing up in the student-facing listing. The rows
// stay around because existing postulaciones still reference them.
func (m *CronManager) CloseExpiredPostings() {
	jobName := "close_expired_postings"

	today := time.Now().Format("2006-01-02")
	res := m.db.Model(&model.VacantePractica{}).
		Where(`"fechaFinal" < ? AND "estatus" = ?`, today, model.StatusAceptado).
		Update("estatus", model.StatusCaducada)
	if res.Error != nil {
		m.logJobError(jobName, fmt.Errorf("close expired vacantes: %w", res.Error))
		return
	}

	if res.RowsAffected == 0 {
		m.logJobComplete(jobName, "no expired vacantes")
		return
	}
	m.logJobComplete(jobName, fmt.Sprintf("closed %d vacantes expired before %s", res.RowsAffected, today))
}

// PurgeDeletedUploads removes staged uploads marked Eliminado. Their review
// copy is long gone; keeping the BLOB around only bloats the table.
func (m *CronManager) PurgeDeletedUploads() {
	jobName := "purge_deleted_uploads"

	res := m.db.Where(`"estatus" = ?`, model.DocumentoEliminado).
		Delete(&model.DocumentoAlumnoSubido{})
	if res.Error != nil {
		m.logJobError(jobName, fmt.Errorf("delete staged uploads: %w", res.Error))
		return
	}

	if res.RowsAffected == 0 {
		m.logJobComplete(jobName, "nothing to purge")
		return
	}
	m.logJobComplete(jobName, fmt.Sprintf("purged %d uploads", res.RowsAffected))
}
