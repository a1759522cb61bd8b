package model

// ReviewStatus is the administrative acceptance state carried by alumno,
// entidadReceptora and vacantePractica rows. The zero value means the row is
// still pending review; only administrative actions move it.
type ReviewStatus string

const (
	StatusPendiente ReviewStatus = ""
	StatusAceptado  ReviewStatus = "Aceptado"
	StatusRechazado ReviewStatus = "Rechazado"

	// StatusCaducada only applies to vacantePractica rows: the posting's end
	// date passed without the slot being filled.
	StatusCaducada ReviewStatus = "Caducada"
)

// PracticaEstado is the lifecycle state of a practica profesional.
type PracticaEstado string

const (
	PracticaIniciada   PracticaEstado = "Iniciada"
	PracticaFinalizada PracticaEstado = "Finalizada"
)

// DocumentoEstatus tracks a student document through the review pipeline.
// "Subido" only appears in the staging table; review rows start "En proceso".
type DocumentoEstatus string

const (
	DocumentoSubido    DocumentoEstatus = "Subido"
	DocumentoEnProceso DocumentoEstatus = "En proceso"
	DocumentoAceptado  DocumentoEstatus = "Aceptado"
	DocumentoRechazado DocumentoEstatus = "Rechazado"
	DocumentoEliminado DocumentoEstatus = "Eliminado"
)
