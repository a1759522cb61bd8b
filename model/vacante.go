package model

// VacantePractica is an open internship slot published by a receiving entity.
// Accepting an application against it consumes (deletes) the posting.
type VacantePractica struct {
	VacantePracticaID uint         `gorm:"column:vacantePracticaID;primaryKey" json:"vacantePracticaID"`
	Titulo            string       `gorm:"column:titulo;size:255;not null" json:"titulo"`
	FechaInicio       DateOnly     `gorm:"column:fechaInicio" json:"fechaInicio"`
	FechaFinal        DateOnly     `gorm:"column:fechaFinal" json:"fechaFinal"`
	Ciudad            string       `gorm:"column:ciudad;size:100" json:"ciudad"`
	TipoTrabajo       string       `gorm:"column:tipoTrabajo;size:50" json:"tipoTrabajo"`
	Descripcion       string       `gorm:"column:descripcion;type:text" json:"descripcion"`
	EntidadID         uint         `gorm:"column:entidadID;not null;index" json:"entidadID"`
	AsesorExternoID   uint         `gorm:"column:asesorExternoID;not null" json:"asesorExternoID"`
	Estatus           ReviewStatus `gorm:"column:estatus;size:20" json:"estatus"`

	Entidad       *EntidadReceptora `gorm:"foreignKey:EntidadID;references:EntidadID" json:"entidad,omitempty"`
	AsesorExterno *AsesorExterno    `gorm:"foreignKey:AsesorExternoID;references:AsesorExternoID" json:"asesorExterno,omitempty"`
}

func (VacantePractica) TableName() string { return "vacantePractica" }
