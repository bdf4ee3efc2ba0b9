package middleware

import (
	"log"

	"wellness/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthCookieName is the cookie carrying the identity token.
const AuthCookieName = "jwt"

// UserContextKey is the request-local key under which the verified user is
// stored for downstream handlers.
const UserContextKey = "user"

// AuthRequired is a Fiber middleware that gates a route on a valid `jwt`
// cookie. It verifies the token, resolves the live user record and injects
// it into the request locals; any failure ends the request with 401 before
// the handler runs.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(AuthCookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized",
			})
		}

		user, err := authService.VerifyToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized",
			})
		}

		// Store the verified user in Fiber context for subsequent handlers
		c.Locals(UserContextKey, user)

		// Continue to the next handler
		return c.Next()
	}
}
