package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/model"
	"github.com/sistemapracticas/api/utils/auth"
	"github.com/sistemapracticas/api/utils/middleware"
	"github.com/sistemapracticas/api/utils/response"
	"github.com/sistemapracticas/api/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles per-role logins and account registration
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *auth.JWTManager
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
	legacyMD5            bool
}

// NewAuthHandler creates a new auth handler. legacyMD5 controls how new
// registrations hash their password (see config.LEGACY_MD5_PASSWORDS).
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bfp *middleware.BruteForceProtection, legacyMD5 bool) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		bruteForceProtection: bfp,
		validator:            validation.NewValidator(),
		legacyMD5:            legacyMD5,
	}
}

// LoginRequest represents a login request for any account type
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse wraps the account profile with an access token
type LoginResponse struct {
	User        interface{} `json:"user"`
	AccessToken string      `json:"access_token"`
	ExpiresIn   int         `json:"expires_in"` // in seconds
}

// LoginAlumno handles POST /login/alumno
func (h *AuthHandler) LoginAlumno(c *fiber.Ctx) error {
	return h.login(c, "alumno", func(correo string) (interface{}, string, string, error) {
		var alumno model.Alumno
		err := h.db.Where(`"correo" = ?`, correo).Take(&alumno).Error
		return &alumno, alumno.NumControl, alumno.Contrasena, err
	})
}

// LoginEntidad handles POST /login/entidad
func (h *AuthHandler) LoginEntidad(c *fiber.Ctx) error {
	return h.login(c, "entidad", func(correo string) (interface{}, string, string, error) {
		var entidad model.EntidadReceptora
		err := h.db.Where(`"correo" = ?`, correo).Take(&entidad).Error
		return &entidad, fmt.Sprintf("%d", entidad.EntidadID), entidad.Contrasena, err
	})
}

// LoginAsesorInterno handles POST /login/asesorInterno
func (h *AuthHandler) LoginAsesorInterno(c *fiber.Ctx) error {
	return h.login(c, "asesorInterno", func(correo string) (interface{}, string, string, error) {
		var asesor model.AsesorInterno
		err := h.db.Where(`"correo" = ?`, correo).Take(&asesor).Error
		return &asesor, fmt.Sprintf("%d", asesor.AsesorInternoID), asesor.Contrasena, err
	})
}

// LoginAsesorExterno handles POST /login/asesorExterno
func (h *AuthHandler) LoginAsesorExterno(c *fiber.Ctx) error {
	return h.login(c, "asesorExterno", func(correo string) (interface{}, string, string, error) {
		var asesor model.AsesorExterno
		err := h.db.Where(`"correo" = ?`, correo).Take(&asesor).Error
		return &asesor, fmt.Sprintf("%d", asesor.AsesorExternoID), asesor.Contrasena, err
	})
}

// login is the shared flow: look the account up by email, verify the digest,
// count failures against the lockout, and mint a token on success.
func (h *AuthHandler) login(c *fiber.Ctx, rol string, lookup func(correo string) (interface{}, string, string, error)) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ip := c.IP()

	account, accountID, stored, err := lookup(req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.InternalServerError(c, "Failed to look up account")
		}
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Correo o contraseña incorrectos")
	}

	if err := auth.Verify(stored, req.Password); err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Correo o contraseña incorrectos")
	}

	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(accountID, req.Email, rol)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	return response.Success(c, LoginResponse{
		User:        account,
		AccessToken: accessToken,
		ExpiresIn:   int((24 * time.Hour).Seconds()),
	})
}
