package model

import "time"

// PracticaProfesional is the realized placement. Rows are created exclusively
// by the acceptance transition, never by a plain CRUD endpoint.
type PracticaProfesional struct {
	PracticaID      uint           `gorm:"column:practicaID;primaryKey" json:"practicaID"`
	AlumnoID        string         `gorm:"column:alumnoID;size:20;not null;index" json:"alumnoID"`
	EntidadID       uint           `gorm:"column:entidadID;not null;index" json:"entidadID"`
	AsesorExternoID uint           `gorm:"column:asesorExternoID;not null" json:"asesorExternoID"`
	FechaInicio     DateOnly       `gorm:"column:fechaInicio" json:"fechaInicio"`
	FechaFin        DateOnly       `gorm:"column:fechaFin" json:"fechaFin"`
	Estado          PracticaEstado `gorm:"column:estado;size:20" json:"estado"`
	TituloVacante   string         `gorm:"column:tituloVacante;size:255" json:"tituloVacante"`
	FechaCreacion   time.Time      `gorm:"column:fechaCreacion" json:"fechaCreacion"`
}

func (PracticaProfesional) TableName() string { return "practicasProfesionales" }
