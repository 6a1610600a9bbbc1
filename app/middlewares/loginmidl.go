package middlewares

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"travelcompanion/app/models"
)

// Locals keys set by JWTMiddleware
const (
	LocalUserID    = "user_id"
	LocalSessionID = "session_id"
)

// Authenticator validates a bearer token and returns its live session
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Session, error)
}

// JWTMiddleware validates the bearer token and its session
func JWTMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get the Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Status:    "error",
				ErrorCode: models.ErrorCodeUnauthorized,
				Message:   "Authorization header is required",
			})
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Status:    "error",
				ErrorCode: models.ErrorCodeUnauthorized,
				Message:   "Invalid authorization header format",
			})
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		session, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{
				Status:    "error",
				ErrorCode: models.ErrorCodeInvalidSession,
				Message:   "Invalid or expired session",
			})
		}

		c.Locals(LocalUserID, session.UserID)
		c.Locals(LocalSessionID, session.SessionID)
		return c.Next()
	}
}

// GetUserIDFromContext returns the authenticated user id, or "" when absent
func GetUserIDFromContext(c *fiber.Ctx) string {
	userID, _ := c.Locals(LocalUserID).(string)
	return userID
}

// GetSessionIDFromContext returns the authenticated session id, or "" when absent
func GetSessionIDFromContext(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(LocalSessionID).(string)
	return sessionID
}
