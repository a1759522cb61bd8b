package model

// Alumno represents a student seeking an internship, keyed by control number.
// Table and column names follow the legacy schema so existing databases keep
// working without a rename migration.
type Alumno struct {
	NumControl      string       `gorm:"column:numControl;primaryKey;size:20" json:"numControl"`
	Nombre          string       `gorm:"column:nombre;size:100;not null" json:"nombre"`
	ApellidoPaterno string       `gorm:"column:apellidoPaterno;size:100" json:"apellidoPaterno"`
	ApellidoMaterno string       `gorm:"column:apellidoMaterno;size:100" json:"apellidoMaterno"`
	FechaNacimiento DateOnly     `gorm:"column:fechaNacimiento" json:"fechaNacimiento"`
	Carrera         string       `gorm:"column:carrera;size:100" json:"carrera"`
	Semestre        string       `gorm:"column:semestre;size:20" json:"semestre"`
	Turno           string       `gorm:"column:turno;size:20" json:"turno"`
	Correo          string       `gorm:"column:correo;size:255;not null;uniqueIndex" json:"correo"`
	Contrasena      string       `gorm:"column:contraseña;size:64" json:"-"`
	NumCelular      string       `gorm:"column:numCelular;size:20" json:"numCelular"`
	FotoPerfil      []byte       `gorm:"column:fotoPerfil" json:"fotoPerfil,omitempty"`
	AsesorInternoID *uint        `gorm:"column:asesorInternoID;index" json:"asesorInternoID,omitempty"`
	Estatus         ReviewStatus `gorm:"column:estatus;size:20" json:"estatus"`

	AsesorInterno *AsesorInterno `gorm:"foreignKey:AsesorInternoID;references:AsesorInternoID" json:"asesorInterno,omitempty"`
}

func (Alumno) TableName() string { return "alumno" }
