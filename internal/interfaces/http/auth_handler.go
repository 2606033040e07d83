package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EddyKilonzo/shopie/internal/application/auth"
	"github.com/EddyKilonzo/shopie/internal/application/dto"
	"github.com/EddyKilonzo/shopie/internal/domain"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	authUC *auth.AuthUseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(authUC *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	user, err := h.authUC.Register(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK("User registered", user))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	result, err := h.authUC.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK("Login successful", result))
}
