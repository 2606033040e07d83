package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/EddyKilonzo/shopie/internal/application/dto"
	"github.com/EddyKilonzo/shopie/pkg/jwt"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRole   = "role"
)

// AuthMiddleware validates the Bearer JWT and stores UserID, Email and Role in c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("MISSING_TOKEN", "Authorization header required"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("INVALID_TOKEN", "format: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("MISSING_TOKEN", "empty token"))
		}
		userID, email, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("INVALID_TOKEN", "invalid or expired token"))
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole allows only the given roles past. Must run after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("FORBIDDEN", "access denied"))
	}
}

// GetUserID returns the UserID from the context (after the auth middleware).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetEmail returns the Email from the context.
func GetEmail(c *fiber.Ctx) string {
	return localString(c, LocalEmail)
}

// GetRole returns the Role from the context.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
