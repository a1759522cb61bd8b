package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(t *testing.T, jwtManager *auth.JWTManager, roles ...string) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", RequireAuth(jwtManager, roles...), func(c *fiber.Ctx) error {
		claims := c.Locals(ClaimsKey).(*auth.Claims)
		return c.SendString(claims.Rol)
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "test",
	})
	app := newAuthApp(t, jwtManager)

	// No header
	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Garbage token
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Valid token
	token, _, err := jwtManager.GenerateAccessToken("S100", "ana@alumnos.edu.mx", "alumno")
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuthRoles(t *testing.T) {
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "test",
	})
	app := newAuthApp(t, jwtManager, "asesorInterno", "admin")

	token, _, err := jwtManager.GenerateAccessToken("S100", "ana@alumnos.edu.mx", "alumno")
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	token, _, err = jwtManager.GenerateAccessToken("1", "laura@instituto.edu.mx", "asesorInterno")
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
