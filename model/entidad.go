package model

// EntidadReceptora is an organization offering internship postings.
type EntidadReceptora struct {
	EntidadID     uint         `gorm:"column:entidadID;primaryKey" json:"entidadID"`
	NombreEntidad string       `gorm:"column:nombreEntidad;size:255;not null" json:"nombreEntidad"`
	NombreUsuario string       `gorm:"column:nombreUsuario;size:100" json:"nombreUsuario"`
	Direccion     string       `gorm:"column:direccion;size:255" json:"direccion"`
	Categoria     string       `gorm:"column:categoria;size:100" json:"categoria"`
	Correo        string       `gorm:"column:correo;size:255;not null;uniqueIndex" json:"correo"`
	Contrasena    string       `gorm:"column:contraseña;size:64" json:"-"`
	NumCelular    string       `gorm:"column:numCelular;size:20" json:"numCelular"`
	FotoPerfil    []byte       `gorm:"column:fotoPerfil" json:"fotoPerfil,omitempty"`
	Estatus       ReviewStatus `gorm:"column:estatus;size:20" json:"estatus"`
}

func (EntidadReceptora) TableName() string { return "entidadReceptora" }
