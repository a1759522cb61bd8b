package model

// PostulacionAlumno is a student's application against one posting. The
// student's name and email are denormalized at submission time, and the cover
// letter PDF travels with the row.
type PostulacionAlumno struct {
	PostulacionID     uint   `gorm:"column:postulacionID;primaryKey" json:"postulacionID"`
	AlumnoID          string `gorm:"column:alumnoID;size:20;not null;index" json:"alumnoID"`
	VacanteID         uint   `gorm:"column:vacanteID;not null;index" json:"vacanteID"`
	NombreAlumno      string `gorm:"column:nombreAlumno;size:255" json:"nombreAlumno"`
	CorreoAlumno      string `gorm:"column:correoAlumno;size:255" json:"correoAlumno"`
	CartaPresentacion []byte `gorm:"column:cartaPresentacion" json:"cartaPresentacion,omitempty"`
}

func (PostulacionAlumno) TableName() string { return "postulacionAlumno" }
