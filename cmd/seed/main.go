package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sistemapracticas/api/database"
	"github.com/sistemapracticas/api/utils/auth"
)

// Seeds a development database with one account of each type, an accepted
// vacante and a pending postulacion, enough to click through every screen.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	store, err := database.Start()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	db := store.GetDB().(*sql.DB)

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Sistema de Prácticas - Database Seeding")
	fmt.Println(separator)

	if err := seed(db); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	fmt.Println(separator)
	fmt.Println("Seeding completed successfully")
	fmt.Println(separator)
}

func seed(db *sql.DB) error {
	password := auth.HashLegacy("password123")

	var asesorInternoID int
	err := db.QueryRow(
		`INSERT INTO "asesorInterno" ("nombre", "apellidoPaterno", "apellidoMaterno", "correo", "contraseña", "numCelular")
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT ("correo") DO UPDATE SET "nombre" = EXCLUDED."nombre"
		 RETURNING "asesorInternoID"`,
		"Laura", "Mendoza", "Ruiz", "laura.mendoza@instituto.edu.mx", password, "5550000001",
	).Scan(&asesorInternoID)
	if err != nil {
		return fmt.Errorf("seed asesorInterno: %w", err)
	}
	fmt.Println("  asesor interno:", asesorInternoID)

	var entidadID int
	err = db.QueryRow(
		`INSERT INTO "entidadReceptora" ("nombreEntidad", "nombreUsuario", "direccion", "categoria", "correo", "contraseña", "numCelular", "estatus")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT ("correo") DO UPDATE SET "nombreEntidad" = EXCLUDED."nombreEntidad"
		 RETURNING "entidadID"`,
		"Tecnologías del Norte SA", "tecnorte", "Av. Industrias 100, Monterrey", "Tecnología",
		"contacto@tecnorte.mx", password, "5550000002", "Aceptado",
	).Scan(&entidadID)
	if err != nil {
		return fmt.Errorf("seed entidadReceptora: %w", err)
	}
	fmt.Println("  entidad receptora:", entidadID)

	var asesorExternoID int
	err = db.QueryRow(
		`INSERT INTO "asesorExterno" ("nombre", "apellidoPaterno", "apellidoMaterno", "correo", "contraseña", "numCelular", "entidadID")
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT ("correo") DO UPDATE SET "entidadID" = EXCLUDED."entidadID"
		 RETURNING "asesorExternoID"`,
		"Jorge", "Castillo", "Pena", "jorge.castillo@tecnorte.mx", password, "5550000003", entidadID,
	).Scan(&asesorExternoID)
	if err != nil {
		return fmt.Errorf("seed asesorExterno: %w", err)
	}
	fmt.Println("  asesor externo:", asesorExternoID)

	numControl := "20240001"
	_, err = db.Exec(
		`INSERT INTO "alumno" ("numControl", "nombre", "apellidoPaterno", "apellidoMaterno", "fechaNacimiento", "carrera", "semestre", "turno", "correo", "contraseña", "numCelular", "asesorInternoID", "estatus")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT ("numControl") DO NOTHING`,
		numControl, "Ana", "García", "López", "2003-05-14", "Ingeniería en Sistemas",
		"8", "Matutino", "ana.garcia@alumnos.edu.mx", password, "5550000004", asesorInternoID, "Aceptado",
	)
	if err != nil {
		return fmt.Errorf("seed alumno: %w", err)
	}
	fmt.Println("  alumno:", numControl)

	_, err = db.Exec(
		`INSERT INTO "administrador" ("nombre", "correo", "contraseña", "numCelular")
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT ("correo") DO NOTHING`,
		"Admin", "admin@instituto.edu.mx", password, "5550000005",
	)
	if err != nil {
		return fmt.Errorf("seed administrador: %w", err)
	}

	var vacanteID int
	err = db.QueryRow(
		`INSERT INTO "vacantePractica" ("titulo", "fechaInicio", "fechaFinal", "ciudad", "tipoTrabajo", "descripcion", "entidadID", "asesorExternoID", "estatus")
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING "vacantePracticaID"`,
		"Desarrollador Backend Jr", "2026-09-01", "2026-12-15", "Monterrey", "Presencial",
		"Desarrollo de servicios REST en Go para el área de logística.",
		entidadID, asesorExternoID, "Aceptado",
	).Scan(&vacanteID)
	if err != nil {
		return fmt.Errorf("seed vacantePractica: %w", err)
	}
	fmt.Println("  vacante:", vacanteID)

	_, err = db.Exec(
		`INSERT INTO "postulacionAlumno" ("alumnoID", "vacanteID", "nombreAlumno", "correoAlumno")
		 VALUES ($1, $2, $3, $4)`,
		numControl, vacanteID, "Ana García López", "ana.garcia@alumnos.edu.mx",
	)
	if err != nil {
		return fmt.Errorf("seed postulacionAlumno: %w", err)
	}
	fmt.Println("  postulacion created for alumno", numControl)

	return nil
}
