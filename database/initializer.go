package database

import (
	"log"
	"strings"
)

// Initialize creates the legacy placement schema with raw DDL. Column names
// are quoted to preserve the camelCase identifiers the old MySQL system used;
// every query in the codebase quotes them the same way.
func (s *PostgreSQLStore) Initialize() error {
	log.Println("Initializing PostgresSQL Database.", "Initializing Tables")
	return s.InitTables()
}

func (s *PostgreSQLStore) InitTables() error {

	asesor_interno_table := `
	CREATE TABLE IF NOT EXISTS "asesorInterno" (
		"asesorInternoID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"nombre" VARCHAR(100) NOT NULL,
		"apellidoPaterno" VARCHAR(100),
		"apellidoMaterno" VARCHAR(100),
		"correo" VARCHAR(255) UNIQUE NOT NULL,
		"contraseña" VARCHAR(64),
		"numCelular" VARCHAR(20),
		"fotoPerfil" BYTEA
	);
	`

	entidad_table := `
	CREATE TABLE IF NOT EXISTS "entidadReceptora" (
		"entidadID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"nombreEntidad" VARCHAR(255) NOT NULL,
		"nombreUsuario" VARCHAR(100),
		"direccion" VARCHAR(255),
		"categoria" VARCHAR(100),
		"correo" VARCHAR(255) UNIQUE NOT NULL,
		"contraseña" VARCHAR(64),
		"numCelular" VARCHAR(20),
		"fotoPerfil" BYTEA,
		"estatus" VARCHAR(20) DEFAULT ''
	);
	`

	asesor_externo_table := `
	CREATE TABLE IF NOT EXISTS "asesorExterno" (
		"asesorExternoID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"nombre" VARCHAR(100) NOT NULL,
		"apellidoPaterno" VARCHAR(100),
		"apellidoMaterno" VARCHAR(100),
		"correo" VARCHAR(255) UNIQUE NOT NULL,
		"contraseña" VARCHAR(64),
		"numCelular" VARCHAR(20),
		"fotoPerfil" BYTEA,
		"entidadID" INTEGER REFERENCES "entidadReceptora"("entidadID")
	);
	`

	alumno_table := `
	CREATE TABLE IF NOT EXISTS "alumno" (
		"numControl" VARCHAR(20) PRIMARY KEY,
		"nombre" VARCHAR(100) NOT NULL,
		"apellidoPaterno" VARCHAR(100),
		"apellidoMaterno" VARCHAR(100),
		"fechaNacimiento" DATE,
		"carrera" VARCHAR(100),
		"semestre" VARCHAR(20),
		"turno" VARCHAR(20),
		"correo" VARCHAR(255) UNIQUE NOT NULL,
		"contraseña" VARCHAR(64),
		"numCelular" VARCHAR(20),
		"fotoPerfil" BYTEA,
		"asesorInternoID" INTEGER REFERENCES "asesorInterno"("asesorInternoID"),
		"estatus" VARCHAR(20) DEFAULT ''
	);
	`

	administrador_table := `
	CREATE TABLE IF NOT EXISTS "administrador" (
		"adminID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"nombre" VARCHAR(100),
		"correo" VARCHAR(255) UNIQUE NOT NULL,
		"contraseña" VARCHAR(64),
		"numCelular" VARCHAR(20)
	);
	`

	vacante_table := `
	CREATE TABLE IF NOT EXISTS "vacantePractica" (
		"vacantePracticaID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"titulo" VARCHAR(255) NOT NULL,
		"fechaInicio" DATE,
		"fechaFinal" DATE,
		"ciudad" VARCHAR(100),
		"tipoTrabajo" VARCHAR(50),
		"descripcion" TEXT,
		"entidadID" INTEGER NOT NULL REFERENCES "entidadReceptora"("entidadID"),
		"asesorExternoID" INTEGER NOT NULL REFERENCES "asesorExterno"("asesorExternoID"),
		"estatus" VARCHAR(20) DEFAULT ''
	);
	`

	postulacion_table := `
	CREATE TABLE IF NOT EXISTS "postulacionAlumno" (
		"postulacionID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"alumnoID" VARCHAR(20) NOT NULL REFERENCES "alumno"("numControl"),
		"vacanteID" INTEGER NOT NULL REFERENCES "vacantePractica"("vacantePracticaID"),
		"nombreAlumno" VARCHAR(255),
		"correoAlumno" VARCHAR(255),
		"cartaPresentacion" BYTEA
	);
	`

	practica_table := `
	CREATE TABLE IF NOT EXISTS "practicasProfesionales" (
		"practicaID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"alumnoID" VARCHAR(20) NOT NULL REFERENCES "alumno"("numControl"),
		"entidadID" INTEGER NOT NULL REFERENCES "entidadReceptora"("entidadID"),
		"asesorExternoID" INTEGER NOT NULL REFERENCES "asesorExterno"("asesorExternoID"),
		"fechaInicio" DATE,
		"fechaFin" DATE,
		"estado" VARCHAR(20),
		"tituloVacante" VARCHAR(255),
		"fechaCreacion" TIMESTAMP
	);
	`

	documentos_subido_table := `
	CREATE TABLE IF NOT EXISTS "documentosAlumnoSubido" (
		"documentoID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"alumnoID" VARCHAR(20) NOT NULL REFERENCES "alumno"("numControl"),
		"nombreArchivo" VARCHAR(255) NOT NULL,
		"archivo" BYTEA,
		"estatus" VARCHAR(20) DEFAULT 'Subido'
	);
	`

	documento_alumno_table := `
	CREATE TABLE IF NOT EXISTS "documentoAlumno" (
		"documentoID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"alumnoID" VARCHAR(20) NOT NULL REFERENCES "alumno"("numControl"),
		"nombreArchivo" VARCHAR(255) NOT NULL,
		"archivo" BYTEA,
		"estatus" VARCHAR(20) DEFAULT 'En proceso',
		"usuarioTipo" VARCHAR(32)
	);
	`

	formatos_table := `
	CREATE TABLE IF NOT EXISTS "formatos" (
		"documentoID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"nombreArchivo" VARCHAR(255) NOT NULL,
		"archivo" BYTEA
	);
	`

	auditoria_table := `
	CREATE TABLE IF NOT EXISTS "auditoria" (
		"auditoriaID" INTEGER PRIMARY KEY GENERATED ALWAYS AS IDENTITY,
		"tabla" VARCHAR(64) NOT NULL,
		"accion" VARCHAR(16) NOT NULL,
		"fecha" TIMESTAMP,
		"usuarioTipo" VARCHAR(32),
		"detalle" JSONB
	);
	`

	all_tables := strings.Join([]string{
		asesor_interno_table,
		entidad_table,
		asesor_externo_table,
		alumno_table,
		administrador_table,
		vacante_table,
		postulacion_table,
		practica_table,
		documentos_subido_table,
		documento_alumno_table,
		formatos_table,
		auditoria_table,
	}, "")

	_, err := s.db.Exec(all_tables)
	return err
}
