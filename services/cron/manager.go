package cron

import (
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager runs the scheduled database maintenance jobs.
type CronManager struct {
	cron               *cron.Cron
	db                 *gorm.DB
	auditRetentionDays int
}

func NewCronManager(db *gorm.DB, auditRetentionDays int) *CronManager {
	return &CronManager{
		cron:               cron.New(),
		db:                 db,
		auditRetentionDays: auditRetentionDays,
	}
}

// Start registers all jobs and starts the scheduler
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	// Daily at 03:00: prune auditoria beyond the retention window
	if _, err := m.cron.AddFunc("0 3 * * *", func() {
		m.logJobStart("prune_auditoria")
		m.PruneAuditoria()
	}); err != nil {
		return err
	}

	// Daily at 03:15: close accepted postings whose end date has passed
	if _, err := m.cron.AddFunc("15 3 * * *", func() {
		m.logJobStart("close_expired_postings")
		m.CloseExpiredPostings()
	}); err != nil {
		return err
	}

	// Daily at 03:30: drop staged uploads that were marked Eliminado
	if _, err := m.cron.AddFunc("30 3 * * *", func() {
		m.logJobStart("purge_deleted_uploads")
		m.PurgeDeletedUploads()
	}); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *CronManager) logJobStart(name string) {
	log.Printf("[CRON] Starting job: %s", name)
}

func (m *CronManager) logJobComplete(name, msg string) {
	log.Printf("[CRON] %s: %s", name, msg)
}

func (m *CronManager) logJobError(name string, err error) {
	log.Printf("[CRON] %s failed: %v", name, err)
}
