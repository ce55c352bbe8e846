package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"remote-voting/services/session"
	"remote-voting/types"
)

// SessionKey is the fiber locals key holding the restored *session.Session.
const SessionKey = "session"

// RequireSession guards a route with the client-held session token. The
// session is restored per request; no server-side session store exists.
func RequireSession(manager *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Authorization token required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid authorization header format",
				Status:  fiber.StatusUnauthorized,
			})
		}

		sess, err := manager.Restore(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Session expired or invalid. Please log in again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(SessionKey, sess)
		return c.Next()
	}
}

// SessionFromCtx returns the session placed by RequireSession.
func SessionFromCtx(c *fiber.Ctx) (*session.Session, bool) {
	sess, ok := c.Locals(SessionKey).(*session.Session)
	return sess, ok
}
