package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sistemapracticas/api/utils/response"
)

// CheckDuplicateEmail handles GET /checkDuplicateEmail?email=... and reports
// whether the address is taken by any account type.
func (h *RegisterHandler) CheckDuplicateEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return response.BadRequest(c, "email is required")
	}

	exists, err := h.registry.EmailInUse(c.UserContext(), email)
	if err != nil {
		return response.InternalServerError(c, "Failed to check email")
	}
	return response.Success(c, fiber.Map{"exists": exists})
}

// CheckDuplicatePhone handles GET /checkDuplicatePhone?phone=...
func (h *RegisterHandler) CheckDuplicatePhone(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return response.BadRequest(c, "phone is required")
	}

	exists, err := h.registry.PhoneInUse(c.UserContext(), phone)
	if err != nil {
		return response.InternalServerError(c, "Failed to check phone")
	}
	return response.Success(c, fiber.Map{"exists": exists})
}

// CheckDuplicateEmailExceptCurrent is the profile-edit variant: the caller
// passes its own id so it does not collide with itself.
func (h *RegisterHandler) CheckDuplicateEmailExceptCurrent(c *fiber.Ctx) error {
	email := c.Query("email")
	currentID := c.Query("currentID")
	if email == "" || currentID == "" {
		return response.BadRequest(c, "email and currentID are required")
	}

	exists, err := h.registry.EmailInUseExcluding(c.UserContext(), email, currentID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check email")
	}
	return response.Success(c, fiber.Map{"exists": exists})
}

// CheckDuplicatePhoneExceptCurrent is the profile-edit variant of the phone
// check.
func (h *RegisterHandler) CheckDuplicatePhoneExceptCurrent(c *fiber.Ctx) error {
	phone := c.Query("phone")
	currentID := c.Query("currentID")
	if phone == "" || currentID == "" {
		return response.BadRequest(c, "phone and currentID are required")
	}

	exists, err := h.registry.PhoneInUseExcluding(c.UserContext(), phone, currentID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check phone")
	}
	return response.Success(c, fiber.Map{"exists": exists})
}
