package model

// AsesorInterno is a school-side advisor supervising students.
type AsesorInterno struct {
	AsesorInternoID uint   `gorm:"column:asesorInternoID;primaryKey" json:"asesorInternoID"`
	Nombre          string `gorm:"column:nombre;size:100;not null" json:"nombre"`
	ApellidoPaterno string `gorm:"column:apellidoPaterno;size:100" json:"apellidoPaterno"`
	ApellidoMaterno string `gorm:"column:apellidoMaterno;size:100" json:"apellidoMaterno"`
	Correo          string `gorm:"column:correo;size:255;not null;uniqueIndex" json:"correo"`
	Contrasena      string `gorm:"column:contraseña;size:64" json:"-"`
	NumCelular      string `gorm:"column:numCelular;size:20" json:"numCelular"`
	FotoPerfil      []byte `gorm:"column:fotoPerfil" json:"fotoPerfil,omitempty"`
}

func (AsesorInterno) TableName() string { return "asesorInterno" }

// AsesorExterno is a staff member at a receiving entity supervising postings.
type AsesorExterno struct {
	AsesorExternoID uint   `gorm:"column:asesorExternoID;primaryKey" json:"asesorExternoID"`
	Nombre          string `gorm:"column:nombre;size:100;not null" json:"nombre"`
	ApellidoPaterno string `gorm:"column:apellidoPaterno;size:100" json:"apellidoPaterno"`
	ApellidoMaterno string `gorm:"column:apellidoMaterno;size:100" json:"apellidoMaterno"`
	Correo          string `gorm:"column:correo;size:255;not null;uniqueIndex" json:"correo"`
	Contrasena      string `gorm:"column:contraseña;size:64" json:"-"`
	NumCelular      string `gorm:"column:numCelular;size:20" json:"numCelular"`
	FotoPerfil      []byte `gorm:"column:fotoPerfil" json:"fotoPerfil,omitempty"`
	EntidadID       uint   `gorm:"column:entidadID;not null;index" json:"entidadID"`

	Entidad *EntidadReceptora `gorm:"foreignKey:EntidadID;references:EntidadID" json:"entidad,omitempty"`
}

func (AsesorExterno) TableName() string { return "asesorExterno" }
