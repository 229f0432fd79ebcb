package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/noteduco342/storyline-backend/internal/httpx"
	"github.com/noteduco342/storyline-backend/internal/models"
)

// RoleLookup returns the stored role of a user, or ok=false if the user has
// no profile yet.
type RoleLookup func(ctx context.Context, userID string) (role models.Role, ok bool, err error)

// ResolveRole replaces the role claim with the stored role once the caller
// has a profile, so role changes apply without a fresh token.
func ResolveRole(lookup RoleLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := UserID(c)
		if userID == "" {
			return c.Next()
		}
		role, ok, err := lookup(c.UserContext(), userID)
		if err != nil {
			return httpx.FromError(c, err)
		}
		if ok {
			c.Locals("role", role)
		}
		return c.Next()
	}
}

func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole := Role(c)
		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}
		return httpx.Forbidden(c, "forbidden", "Insufficient permissions")
	}
}
