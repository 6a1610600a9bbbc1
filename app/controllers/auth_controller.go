package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"travelcompanion/app/middlewares"
	"travelcompanion/app/models"
	"travelcompanion/app/services"
)

// InvalidCredentialsMessage is the only detail a rejected signin exposes
const InvalidCredentialsMessage = "Invalid email or password"

// AuthController handles authentication-related HTTP requests
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller instance
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup handles POST /api/auth/signup
func (c *AuthController) Signup(ctx *fiber.Ctx) error {
	var req models.CredentialsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeInvalidFormat, "Invalid request format")
	}

	resp, err := c.authService.Signup(ctx.UserContext(), req.Email, req.Password)
	if err != nil {
		return authError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

// Signin handles POST /api/auth/signin
func (c *AuthController) Signin(ctx *fiber.Ctx) error {
	var req models.CredentialsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeInvalidFormat, "Invalid request format")
	}

	resp, err := c.authService.Signin(ctx.UserContext(), req.Email, req.Password)
	if err != nil {
		return authError(ctx, err)
	}
	return ctx.JSON(resp)
}

// Signout handles POST /api/auth/signout
func (c *AuthController) Signout(ctx *fiber.Ctx) error {
	if err := c.authService.Signout(ctx.UserContext(), middlewares.GetSessionIDFromContext(ctx)); err != nil {
		return authError(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"status":  "success",
		"message": "Signed out",
	})
}

func authError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingCredentials):
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeMissingField, err.Error())
	case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword):
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeInvalidValue, err.Error())
	case errors.Is(err, services.ErrEmailExists):
		return errorJSON(ctx, fiber.StatusConflict, models.ErrorCodeEmailExists, "Email is already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorJSON(ctx, fiber.StatusUnauthorized, models.ErrorCodeInvalidCredentials, InvalidCredentialsMessage)
	case errors.Is(err, services.ErrUnauthenticated):
		return errorJSON(ctx, fiber.StatusUnauthorized, models.ErrorCodeUnauthorized, err.Error())
	}
	log.Printf("❌ Auth request failed: %v", err)
	return errorJSON(ctx, fiber.StatusInternalServerError, models.ErrorCodeSystem, "Authentication failed, please try again")
}
