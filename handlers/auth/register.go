package auth

import (
	"context"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/services"
	"github.com/sistemapracticas/api/utils/auth"
	"github.com/sistemapracticas/api/utils/response"
	"github.com/sistemapracticas/api/utils/validation"
)

// RegisterHandler creates new accounts of every type. Requests arrive as
// multipart forms because each carries an optional profile photo.
type RegisterHandler struct {
	auth      *AuthHandler
	registry  *services.RegistryService
	validator *validation.Validator
}

// maxPhotoSize caps profile photos at 50 MB, like the legacy upload filter.
const maxPhotoSize = 50 * 1024 * 1024

// NewRegisterHandler creates a new registration handler
func NewRegisterHandler(authHandler *AuthHandler, registry *services.RegistryService) *RegisterHandler {
	return &RegisterHandler{
		auth:      authHandler,
		registry:  registry,
		validator: validation.NewValidator(),
	}
}

// RegisterAlumnoRequest mirrors the registration form field names
type RegisterAlumnoRequest struct {
	NumeroControl   string `form:"numeroControl" validate:"required,max=20"`
	Nombre          string `form:"nombre" validate:"required,max=100"`
	ApellidoPaterno string `form:"apellidoPaterno" validate:"required,max=100"`
	ApellidoMaterno string `form:"apellidoMaterno" validate:"required,max=100"`
	FechaNacimiento string `form:"fechaNacimiento" validate:"required"`
	Carrera         string `form:"carrera" validate:"required,max=100"`
	Semestre        string `form:"semestre" validate:"required,max=20"`
	Turno           string `form:"turno" validate:"required,max=20"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	Celular         string `form:"celular" validate:"required,max=20"`
	AsesorInternoID string `form:"asesorInternoID"`
}

// RegisterAlumno handles POST /register/alumno
func (h *RegisterHandler) RegisterAlumno(c *fiber.Ctx) error {
	var req RegisterAlumnoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Todos los campos son obligatorios")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	nacimiento, err := model.ParseDateOnly(req.FechaNacimiento)
	if err != nil {
		return response.BadRequest(c, "fechaNacimiento must be YYYY-MM-DD")
	}

	conflict, err := h.checkContacts(c.UserContext(), req.Email, req.Celular)
	if err != nil {
		return response.InternalServerError(c, "Failed to verify contact uniqueness")
	}
	if conflict != "" {
		return response.Conflict(c, conflict)
	}

	foto, errResp := h.readPhoto(c, "foto")
	if errResp != nil {
		return errResp(c)
	}

	alumno := model.Alumno{
		NumControl:      validation.SanitizeString(req.NumeroControl),
		Nombre:          validation.SanitizeString(req.Nombre),
		ApellidoPaterno: validation.SanitizeString(req.ApellidoPaterno),
		ApellidoMaterno: validation.SanitizeString(req.ApellidoMaterno),
		FechaNacimiento: nacimiento,
		Carrera:         req.Carrera,
		Semestre:        req.Semestre,
		Turno:           req.Turno,
		Correo:          req.Email,
		Contrasena:      h.hashPassword(req.Password),
		NumCelular:      req.Celular,
		FotoPerfil:      foto,
	}
	if req.AsesorInternoID != "" {
		if id, err := strconv.ParseUint(req.AsesorInternoID, 10, 32); err == nil {
			asesorID := uint(id)
			alumno.AsesorInternoID = &asesorID
		}
	}

	if err := h.auth.db.Create(&alumno).Error; err != nil {
		return response.BadRequest(c, "Failed to register alumno")
	}

	return response.Created(c, fiber.Map{"numControl": alumno.NumControl})
}

// RegisterEntidadRequest mirrors the entity registration form
type RegisterEntidadRequest struct {
	NombreEntidad string `form:"nombreEntidad" validate:"required,max=255"`
	NombreUsuario string `form:"nombreUsuario" validate:"required,max=100"`
	Direccion     string `form:"direccion" validate:"required,max=255"`
	Categoria     string `form:"categoria" validate:"required,max=100"`
	Correo        string `form:"correo" validate:"required,email"`
	Password      string `form:"password" validate:"required,min=8"`
	NumCelular    string `form:"numCelular" validate:"required,max=20"`
}

// RegisterEntidad handles POST /register/entidadReceptora
func (h *RegisterHandler) RegisterEntidad(c *fiber.Ctx) error {
	var req RegisterEntidadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Todos los campos son obligatorios")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	conflict, err := h.checkContacts(c.UserContext(), req.Correo, req.NumCelular)
	if err != nil {
		return response.InternalServerError(c, "Failed to verify contact uniqueness")
	}
	if conflict != "" {
		return response.Conflict(c, conflict)
	}

	foto, errResp := h.readPhoto(c, "fotoPerfil")
	if errResp != nil {
		return errResp(c)
	}

	entidad := model.EntidadReceptora{
		NombreEntidad: validation.SanitizeString(req.NombreEntidad),
		NombreUsuario: validation.SanitizeString(req.NombreUsuario),
		Direccion:     req.Direccion,
		Categoria:     req.Categoria,
		Correo:        req.Correo,
		Contrasena:    h.hashPassword(req.Password),
		NumCelular:    req.NumCelular,
		FotoPerfil:    foto,
	}

	if err := h.auth.db.Create(&entidad).Error; err != nil {
		return response.BadRequest(c, "Failed to register entidad receptora")
	}

	return response.Created(c, fiber.Map{"entidadID": entidad.EntidadID})
}

// RegisterAsesorRequest is shared by internal and external advisor signup
type RegisterAsesorRequest struct {
	Nombre          string `form:"nombre" validate:"required,max=100"`
	ApellidoPaterno string `form:"apellidoPaterno" validate:"required,max=100"`
	ApellidoMaterno string `form:"apellidoMaterno" validate:"required,max=100"`
	Correo          string `form:"correo" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=8"`
	NumCelular      string `form:"numCelular" validate:"required,max=20"`
	EntidadID       string `form:"entidadID"` // required for external advisors only
}

// RegisterAsesorInterno handles POST /register/asesorInterno
func (h *RegisterHandler) RegisterAsesorInterno(c *fiber.Ctx) error {
	var req RegisterAsesorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Todos los campos son obligatorios")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	conflict, err := h.checkContacts(c.UserContext(), req.Correo, req.NumCelular)
	if err != nil {
		return response.InternalServerError(c, "Failed to verify contact uniqueness")
	}
	if conflict != "" {
		return response.Conflict(c, conflict)
	}

	foto, errResp := h.readPhoto(c, "fotoPerfil")
	if errResp != nil {
		return errResp(c)
	}

	asesor := model.AsesorInterno{
		Nombre:          validation.SanitizeString(req.Nombre),
		ApellidoPaterno: validation.SanitizeString(req.ApellidoPaterno),
		ApellidoMaterno: validation.SanitizeString(req.ApellidoMaterno),
		Correo:          req.Correo,
		Contrasena:      h.hashPassword(req.Password),
		NumCelular:      req.NumCelular,
		FotoPerfil:      foto,
	}

	if err := h.auth.db.Create(&asesor).Error; err != nil {
		return response.BadRequest(c, "Failed to register asesor interno")
	}

	return response.Created(c, fiber.Map{"asesorInternoID": asesor.AsesorInternoID})
}

// RegisterAsesorExterno handles POST /register/asesorExterno
func (h *RegisterHandler) RegisterAsesorExterno(c *fiber.Ctx) error {
	var req RegisterAsesorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Todos los campos son obligatorios")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	entidadID, err := strconv.ParseUint(req.EntidadID, 10, 32)
	if err != nil {
		return response.BadRequest(c, "entidadID is required")
	}

	conflict, err := h.checkContacts(c.UserContext(), req.Correo, req.NumCelular)
	if err != nil {
		return response.InternalServerError(c, "Failed to verify contact uniqueness")
	}
	if conflict != "" {
		return response.Conflict(c, conflict)
	}

	foto, errResp := h.readPhoto(c, "fotoPerfil")
	if errResp != nil {
		return errResp(c)
	}

	asesor := model.AsesorExterno{
		Nombre:          validation.SanitizeString(req.Nombre),
		ApellidoPaterno: validation.SanitizeString(req.ApellidoPaterno),
		ApellidoMaterno: validation.SanitizeString(req.ApellidoMaterno),
		Correo:          req.Correo,
		Contrasena:      h.hashPassword(req.Password),
		NumCelular:      req.NumCelular,
		FotoPerfil:      foto,
		EntidadID:       uint(entidadID),
	}

	if err := h.auth.db.Create(&asesor).Error; err != nil {
		return response.BadRequest(c, "Failed to register asesor externo")
	}

	return response.Created(c, fiber.Map{"asesorExternoID": asesor.AsesorExternoID})
}

// checkContacts enforces the cross-table email/phone uniqueness rule. A
// non-empty message means the contact is taken and the caller must answer 409.
func (h *RegisterHandler) checkContacts(ctx context.Context, correo, celular string) (string, error) {
	taken, err := h.registry.EmailInUse(ctx, correo)
	if err != nil {
		return "", err
	}
	if taken {
		return "El correo ya está en uso", nil
	}

	taken, err = h.registry.PhoneInUse(ctx, celular)
	if err != nil {
		return "", err
	}
	if taken {
		return "El número de celular ya está en uso", nil
	}
	return "", nil
}

// readPhoto loads an optional profile photo from the multipart form and
// rejects anything that is not a JPEG or PNG.
func (h *RegisterHandler) readPhoto(c *fiber.Ctx, field string) ([]byte, func(*fiber.Ctx) error) {
	file, err := c.FormFile(field)
	if err != nil {
		// photo is optional
		return nil, nil
	}

	if file.Size > maxPhotoSize {
		return nil, func(c *fiber.Ctx) error {
			return response.BadRequest(c, "El tamaño del archivo no debe exceder 50 MB")
		}
	}

	src, err := file.Open()
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return response.InternalServerError(c, "Failed to read photo")
		}
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, func(c *fiber.Ctx) error {
			return response.InternalServerError(c, "Failed to read photo")
		}
	}

	if !validation.IsImage(data) {
		return nil, func(c *fiber.Ctx) error {
			return response.BadRequest(c, "Formato de archivo no permitido. Solo se permiten archivos JPG, JPEG y PNG.")
		}
	}

	return data, nil
}

func (h *RegisterHandler) hashPassword(password string) string {
	if h.auth.legacyMD5 {
		return auth.HashLegacy(password)
	}
	hashed, err := auth.HashBcrypt(password)
	if err != nil {
		// bcrypt only fails on absurd cost values; fall back to the legacy
		// digest rather than storing nothing
		return auth.HashLegacy(password)
	}
	return hashed
}
