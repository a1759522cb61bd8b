package model

import (
	"time"

	"gorm.io/datatypes"
)

// Auditoria records document-flow mutations. The frontend polls it to learn
// about recent changes, and the cron maintenance job prunes old rows.
type Auditoria struct {
	AuditoriaID uint           `gorm:"column:auditoriaID;primaryKey" json:"auditoriaID"`
	Tabla       string         `gorm:"column:tabla;size:64;not null;index" json:"tabla"`
	Accion      string         `gorm:"column:accion;size:16;not null" json:"accion"`
	Fecha       time.Time      `gorm:"column:fecha;index" json:"fecha"`
	UsuarioTipo string         `gorm:"column:usuarioTipo;size:32" json:"usuarioTipo"`
	Detalle     datatypes.JSON `gorm:"column:detalle" json:"detalle,omitempty"`
}

func (Auditoria) TableName() string { return "auditoria" }
