package router

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/config"
	"github.com/sistemapracticas/api/database"
	"github.com/sistemapracticas/api/handlers"
	advisor_handlers "github.com/sistemapracticas/api/handlers/advisor"
	application_handlers "github.com/sistemapracticas/api/handlers/application"
	auth_handlers "github.com/sistemapracticas/api/handlers/auth"
	document_handlers "github.com/sistemapracticas/api/handlers/document"
	entity_handlers "github.com/sistemapracticas/api/handlers/entity"
	internship_handlers "github.com/sistemapracticas/api/handlers/internship"
	posting_handlers "github.com/sistemapracticas/api/handlers/posting"
	student_handlers "github.com/sistemapracticas/api/handlers/student"
	"github.com/sistemapracticas/api/services"
	"github.com/sistemapracticas/api/utils/auth"
	"github.com/sistemapracticas/api/utils/cache"
	"github.com/sistemapracticas/api/utils/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every handler into the Fiber app.
func SetupRoutes(app *fiber.App, store database.Storage, getEnv *config.EnviornmentVariable) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "sistema-practicas-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
	})

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Redis-backed login lockout; the API stays up without it.
	var bruteForce *middleware.BruteForceProtection
	if getEnv.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Redis unavailable, login lockout disabled: %v", err)
		} else {
			bruteForce = middleware.NewBruteForceProtection(redisCache)
		}
	}

	// Services
	placementService := services.NewPlacementService(db)
	registryService := services.NewRegistryService(db)
	documentService := services.NewDocumentService(db)

	// Handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForce, getEnv.LEGACY_MD5_PASSWORDS)
	registerHandler := auth_handlers.NewRegisterHandler(authHandler, registryService)
	studentHandler := student_handlers.NewStudentHandler(db)
	advisorHandler := advisor_handlers.NewAdvisorHandler(db)
	entityHandler := entity_handlers.NewEntityHandler(db)
	postingHandler := posting_handlers.NewPostingHandler(db)
	applicationHandler := application_handlers.NewApplicationHandler(db, placementService)
	internshipHandler := internship_handlers.NewInternshipHandler(db)
	documentHandler := document_handlers.NewDocumentHandler(db, documentService)
	healthHandler := handlers.NewHealthHandler(db)

	// Review actions are reserved for school-side staff; settling an
	// application belongs to the posting's entity.
	requireStaff := middleware.RequireAuth(jwtManager, "asesorInterno", "admin")
	requireEntidad := middleware.RequireAuth(jwtManager, "entidad", "admin")

	// Health
	app.Get("/health", healthHandler.Health)
	app.Get("/testConnection", healthHandler.TestConnection)

	// Auth
	login := app.Group("/login")
	if bruteForce != nil {
		login.Use(bruteForce.CheckAndRecordAttempt())
	}
	login.Post("/alumno", authHandler.LoginAlumno)
	login.Post("/entidad", authHandler.LoginEntidad)
	login.Post("/asesorInterno", authHandler.LoginAsesorInterno)
	login.Post("/asesorExterno", authHandler.LoginAsesorExterno)

	register := app.Group("/register")
	register.Post("/alumno", registerHandler.RegisterAlumno)
	register.Post("/entidadReceptora", registerHandler.RegisterEntidad)
	register.Post("/asesorInterno", registerHandler.RegisterAsesorInterno)
	register.Post("/asesorExterno", registerHandler.RegisterAsesorExterno)

	app.Get("/checkDuplicateEmail", registerHandler.CheckDuplicateEmail)
	app.Get("/checkDuplicatePhone", registerHandler.CheckDuplicatePhone)
	app.Get("/checkDuplicateEmailExceptCurrent", registerHandler.CheckDuplicateEmailExceptCurrent)
	app.Get("/checkDuplicatePhoneExceptCurrent", registerHandler.CheckDuplicatePhoneExceptCurrent)

	// Alumnos
	app.Get("/alumno/:numControl", studentHandler.Get)
	app.Get("/alumno/:numControl/foto", studentHandler.GetPhoto)
	app.Get("/alumnos", studentHandler.ListByEstatus)
	app.Get("/alumnos/asesorInterno/:asesorInternoID", studentHandler.ListByAsesor)
	app.Put("/alumno/:numControl", studentHandler.Update)
	app.Patch("/alumno/:numControl/accept", requireStaff, studentHandler.Accept)
	app.Patch("/alumno/:numControl/reject", requireStaff, studentHandler.Reject)
	app.Delete("/alumno/:numControl", requireStaff, studentHandler.Delete)

	// Asesores
	app.Get("/asesorInterno/:asesorInternoID", advisorHandler.GetInterno)
	app.Get("/asesorExterno/:asesorExternoID", advisorHandler.GetExterno)
	app.Get("/asesoresInternos", advisorHandler.ListInternos)

	// Entidades receptoras
	app.Get("/entidadReceptora/:entidadID", entityHandler.Get)
	app.Get("/entidadesReceptoras", entityHandler.List)
	app.Put("/entidadReceptora/:entidadID", entityHandler.Update)
	app.Patch("/entidadReceptora/:entidadID/accept", requireStaff, entityHandler.Accept)
	app.Patch("/entidadReceptora/:entidadID/reject", requireStaff, entityHandler.Reject)
	app.Delete("/entidadReceptora/:entidadID", requireStaff, entityHandler.Delete)

	// Vacantes
	app.Post("/vacante", postingHandler.Create)
	app.Get("/vacante/:vacanteID", postingHandler.Get)
	app.Get("/vacantes", postingHandler.List)
	app.Get("/vacantes/entidad/:entidadID", postingHandler.ListByEntidad)
	app.Put("/vacante/:vacanteID", postingHandler.Update)
	app.Patch("/vacante/:vacanteID/accept", requireStaff, postingHandler.Accept)
	app.Patch("/vacante/:vacanteID/reject", requireStaff, postingHandler.RejectReview)
	app.Delete("/vacante/:vacanteID", postingHandler.Delete)
	app.Delete("/vacante/:vacanteID/withPostulaciones", postingHandler.DeleteWithApplications)

	// Postulaciones
	app.Post("/postulacion", applicationHandler.Register)
	app.Get("/postulaciones/vacante/:vacanteID", applicationHandler.ListByVacante)
	app.Get("/postulacion/:postulacionID/carta", applicationHandler.DownloadCarta)
	app.Get("/postulacion/applied", applicationHandler.CheckApplied)
	app.Get("/postulaciones/alumno/:alumnoID/vacantes", applicationHandler.ListVacanteIDsByAlumno)
	app.Post("/acceptPostulacion/:postulacionID", requireEntidad, applicationHandler.Accept)
	app.Post("/rejectPostulacion/:postulacionID", requireEntidad, applicationHandler.Reject)

	// Practicas profesionales
	app.Get("/practicas/entidad/:entidadID", internshipHandler.ListByEntidad)
	app.Get("/practica/alumno/:alumnoID", internshipHandler.GetByAlumno)
	app.Get("/practica/alumno/:alumnoID/latest", internshipHandler.GetLatestByAlumno)

	// Documentos
	app.Post("/documento", documentHandler.Upload)
	app.Get("/documentos/alumno/:alumnoID", documentHandler.ListStaged)
	app.Get("/documentosRevision/alumno/:alumnoID", documentHandler.ListInReview)
	app.Get("/documento/:documentoID/archivo", documentHandler.DownloadStaged)
	app.Get("/documentoRevision/:documentoID/archivo", documentHandler.DownloadInReview)
	app.Post("/documento/:documentoID/submit", documentHandler.Submit)
	app.Patch("/documento/:documentoID/accept", documentHandler.Approve)
	app.Patch("/documento/:documentoID/reject", documentHandler.Reject)
	app.Delete("/documentoRevision/:documentoID", documentHandler.Delete)
	app.Delete("/documento/:documentoID", documentHandler.DeleteStaged)
	app.Get("/documentos/changes", documentHandler.CheckChanges)

	// Formatos
	app.Post("/formato", requireStaff, documentHandler.UploadFormato)
	app.Get("/formatos", documentHandler.ListFormatos)
	app.Get("/formato/:documentoID/archivo", documentHandler.DownloadFormato)
}
