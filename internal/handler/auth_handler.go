package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"e-county-api/internal/domain"
	"e-county-api/internal/middleware"
	"e-county-api/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, tokens, err := h.authService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			return middleware.Conflict("Email already registered")
		case errors.Is(err, domain.ErrDepartmentNotFound):
			return middleware.BadRequest("Department not found")
		case errors.Is(err, auth.ErrMissingFields),
			errors.Is(err, auth.ErrPasswordMismatch),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrInvalidRole),
			errors.Is(err, auth.ErrDepartmentRequired):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":       true,
		"message":       "Registration successful",
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	user, tokens, err := h.authService.Login(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return middleware.Unauthorized("Invalid email or password")
		case errors.Is(err, domain.ErrUserDeactivated):
			return middleware.Forbidden("Your account has been deactivated")
		case errors.Is(err, auth.ErrMissingFields):
			return middleware.BadRequest(err.Error())
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			return middleware.Unauthorized("Invalid or expired refresh token")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.authService.Logout(c.Context(), input.RefreshToken); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return middleware.Unauthorized("User not found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}
