package model

// DocumentoAlumnoSubido is the staging table: every file a student uploads
// lands here first, and its estatus mirrors what happened to the copy that
// went to review.
type DocumentoAlumnoSubido struct {
	DocumentoID   uint             `gorm:"column:documentoID;primaryKey" json:"documentoID"`
	AlumnoID      string           `gorm:"column:alumnoID;size:20;not null;index" json:"alumnoID"`
	NombreArchivo string           `gorm:"column:nombreArchivo;size:255;not null" json:"nombreArchivo"`
	Archivo       []byte           `gorm:"column:archivo" json:"archivo,omitempty"`
	Estatus       DocumentoEstatus `gorm:"column:estatus;size:20" json:"estatus"`
}

func (DocumentoAlumnoSubido) TableName() string { return "documentosAlumnoSubido" }

// DocumentoAlumno is a document under advisor review. Rows are created by
// submitting a staged upload and removed again on rejection or deletion.
type DocumentoAlumno struct {
	DocumentoID   uint             `gorm:"column:documentoID;primaryKey" json:"documentoID"`
	AlumnoID      string           `gorm:"column:alumnoID;size:20;not null;index" json:"alumnoID"`
	NombreArchivo string           `gorm:"column:nombreArchivo;size:255;not null" json:"nombreArchivo"`
	Archivo       []byte           `gorm:"column:archivo" json:"archivo,omitempty"`
	Estatus       DocumentoEstatus `gorm:"column:estatus;size:20" json:"estatus"`
	UsuarioTipo   string           `gorm:"column:usuarioTipo;size:32" json:"usuarioTipo"`
}

func (DocumentoAlumno) TableName() string { return "documentoAlumno" }

// Formato is a shared PDF template available to every student.
type Formato struct {
	DocumentoID   uint   `gorm:"column:documentoID;primaryKey" json:"documentoID"`
	NombreArchivo string `gorm:"column:nombreArchivo;size:255;not null" json:"nombreArchivo"`
	Archivo       []byte `gorm:"column:archivo" json:"archivo,omitempty"`
}

func (Formato) TableName() string { return "formatos" }
