package middleware

import (
	"github.com/gofiber/fiber/v2"

	"e-county-api/internal/domain"
)

// Roles are flat. An admin route lists admin explicitly; there is no
// hierarchy where admin implies officer.
func RequireRole(role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}
		if user.Role != role {
			return Forbidden("Insufficient permissions for this operation")
		}
		return c.Next()
	}
}

func RequireAnyRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}
		if !user.HasAnyRole(roles...) {
			return Forbidden("Insufficient permissions for this operation")
		}
		return c.Next()
	}
}
