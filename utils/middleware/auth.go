package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/utils/auth"
	"github.com/sistemapracticas/api/utils/response"
)

// ClaimsKey is the Locals key the auth middleware stores validated claims
// under.
const ClaimsKey = "claims"

// RequireAuth validates the Bearer token and, when roles are given, requires
// the token's rol to be one of them.
func RequireAuth(jwtManager *auth.JWTManager, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return response.Unauthorized(c, "Authorization header is required")
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return response.Unauthorized(c, "Authorization header must be a Bearer token")
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		if len(roles) > 0 {
			allowed := false
			for _, rol := range roles {
				if claims.Rol == rol {
					allowed = true
					break
				}
			}
			if !allowed {
				return response.Forbidden(c, "")
			}
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}
