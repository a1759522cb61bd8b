package app

import (
	"fmt"
	"os"
	"time"

	"github.com/sistemapracticas/api/api"
	"github.com/sistemapracticas/api/config"
	"github.com/sistemapracticas/api/database"
	"github.com/sistemapracticas/api/router"
	"github.com/sistemapracticas/api/services/cron"
	"github.com/sistemapracticas/api/utils/middleware"
	"gorm.io/gorm"
)

// SetupAndRunServer loads configuration, connects to PostgreSQL, starts the
// maintenance jobs and serves the API until the process dies.
func SetupAndRunServer() error {
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	store, err := database.StartGORM()
	if err != nil {
		fmt.Println("Check whether Postgres is running and DB_* variables are set")
		return err
	}

	if err := store.Init(); err != nil {
		fmt.Println("Failed to run database migrations")
		return err
	}

	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // default to enabled
		db, ok := store.GetDB().(*gorm.DB)
		if !ok {
			fmt.Println("Warning: no database connection for cron jobs")
		} else {
			cronManager = cron.NewCronManager(db, getEnv.AUDIT_RETENTION_DAYS)
			if err := cronManager.Start(); err != nil {
				// Maintenance jobs are not worth failing startup over.
				fmt.Println("Warning: failed to start cron jobs:", err)
			}
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
		RateLimitRequests: 300,
		RateLimitWindow:   time.Minute,
	})

	router.SetupRoutes(app, store, getEnv)

	return server.Run()
}
