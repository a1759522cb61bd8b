package model

// Administrador is a back-office account. It participates in the duplicate
// contact checks and can log in, nothing else.
type Administrador struct {
	AdminID    uint   `gorm:"column:adminID;primaryKey" json:"adminID"`
	Nombre     string `gorm:"column:nombre;size:100" json:"nombre"`
	Correo     string `gorm:"column:correo;size:255;not null;uniqueIndex" json:"correo"`
	Contrasena string `gorm:"column:contraseña;size:64" json:"-"`
	NumCelular string `gorm:"column:numCelular;size:20" json:"numCelular"`
}

func (Administrador) TableName() string { return "administrador" }
