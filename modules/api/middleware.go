package api

import (
	"strings"

	"github.com/example/minipm/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// AuthContextKey is the key used to store the resolved AuthContext
	// in the Fiber context.
	AuthContextKey = "authContext"
)

// AuthContext is the caller identity resolved once per request by the
// auth middleware and passed explicitly to handlers. Handlers never read
// claims from anywhere else.
type AuthContext struct {
	UserID   string
	Username string
}

// AuthMiddleware creates a middleware that validates bearer tokens and
// stores the resolved AuthContext for the request.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		claims, err := authAdapter.ValidateToken(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid or expired token",
			})
		}

		c.Locals(AuthContextKey, &AuthContext{
			UserID:   claims.UserID,
			Username: claims.Username,
		})

		return c.Next()
	}
}

// authContextFrom extracts the AuthContext set by AuthMiddleware.
func authContextFrom(c *fiber.Ctx) (*AuthContext, bool) {
	actx, ok := c.Locals(AuthContextKey).(*AuthContext)
	return actx, ok
}
