package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/jlbarros/tasko/core"
	"github.com/jlbarros/tasko/services"
)

// buildAuthMiddleware returns the identity-resolving middleware for
// protected routes. Any failure (missing header, bad token, unknown
// or inactive account) fails closed with a 401 and never lets the
// request proceed anonymously.
func (a *Adapter) buildAuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return respondError(c, core.ErrMissingAuthHeader)
		}

		user, err := auth.ResolveToken(c.Context(), token)
		if err != nil {
			return respondError(c, err)
		}

		// Store the resolved account for downstream handlers
		c.Locals("user", user)

		return c.Next()
	}
}

// currentUser returns the account resolved by the auth middleware.
func currentUser(c fiber.Ctx) *core.User {
	user, _ := c.Locals("user").(*core.User)
	return user
}

// extractToken pulls the bearer token out of the Authorization header.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
