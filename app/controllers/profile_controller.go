package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"travelcompanion/app/middlewares"
	"travelcompanion/app/models"
	"travelcompanion/app/services"
)

// ProfileWriteMessage is shown for any failed profile write
const ProfileWriteMessage = "Error creating profile. Please try again."

// ProfileController handles the caller's profile
type ProfileController struct {
	profileService *services.ProfileService
}

func NewProfileController(profileService *services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// CreateProfile handles POST /api/profile
func (c *ProfileController) CreateProfile(ctx *fiber.Ctx) error {
	var req models.CreateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeInvalidFormat, "Invalid request format")
	}

	profile, err := c.profileService.CreateProfile(ctx.UserContext(), middlewares.GetUserIDFromContext(ctx), req)
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{
			"status":  "success",
			"profile": profile,
		})
	case errors.Is(err, services.ErrUnauthenticated):
		return errorJSON(ctx, fiber.StatusUnauthorized, models.ErrorCodeUnauthorized, err.Error())
	case errors.Is(err, services.ErrMissingFields):
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeMissingField, err.Error())
	case errors.Is(err, services.ErrInvalidAge):
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeInvalidValue, err.Error())
	}
	return errorJSON(ctx, fiber.StatusInternalServerError, models.ErrorCodeSystem, ProfileWriteMessage)
}

// GetProfile handles GET /api/profile
func (c *ProfileController) GetProfile(ctx *fiber.Ctx) error {
	profile, err := c.profileService.GetProfile(ctx.UserContext(), middlewares.GetUserIDFromContext(ctx))
	switch {
	case err == nil:
		return ctx.JSON(fiber.Map{
			"status":  "success",
			"profile": profile,
		})
	case errors.Is(err, services.ErrUnauthenticated):
		return errorJSON(ctx, fiber.StatusUnauthorized, models.ErrorCodeUnauthorized, err.Error())
	case errors.Is(err, services.ErrProfileNotFound):
		return errorJSON(ctx, fiber.StatusNotFound, models.ErrorCodeNotFound, "Profile not found")
	}
	log.Printf("❌ Profile read failed: %v", err)
	return errorJSON(ctx, fiber.StatusInternalServerError, models.ErrorCodeSystem, "Failed to load profile")
}
