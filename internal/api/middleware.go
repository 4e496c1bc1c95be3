package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/habitual/internal/auth"
	"github.com/julianstephens/habitual/internal/logger"
)

const userIDKey = "userID"

// requireAuth accepts a bearer access token and stores its user id in the
// request locals.
func requireAuth(tokens *auth.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		claims, err := tokens.ValidateAccessToken(strings.TrimSpace(raw))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		c.Locals(userIDKey, claims.UserID)
		return c.Next()
	}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		logger.Debug("HTTP request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		)
		return err
	}
}
