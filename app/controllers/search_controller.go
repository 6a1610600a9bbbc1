package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"travelcompanion/app/middlewares"
	"travelcompanion/app/models"
	"travelcompanion/app/services"
)

// SearchErrorMessage is the only detail a failed search exposes
const SearchErrorMessage = "There was an issue fetching the matches."

// SearchController handles traveller searches
type SearchController struct {
	searchService *services.SearchService
}

func NewSearchController(searchService *services.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// Search handles POST /api/search
func (c *SearchController) Search(ctx *fiber.Ctx) error {
	var criteria models.SearchCriteria
	if err := ctx.BodyParser(&criteria); err != nil {
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeInvalidFormat, "Invalid request format")
	}

	matches, err := c.searchService.Search(ctx.UserContext(), middlewares.GetUserIDFromContext(ctx), criteria)
	switch {
	case err == nil:
		return ctx.JSON(models.SearchResponse{
			Status:  "success",
			Count:   len(matches),
			Matches: matches,
		})
	case errors.Is(err, services.ErrUnauthenticated):
		return errorJSON(ctx, fiber.StatusUnauthorized, models.ErrorCodeUnauthorized, err.Error())
	case errors.Is(err, models.ErrMissingCriteria):
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeMissingField, err.Error())
	case errors.Is(err, models.ErrInvalidAgeValue):
		return errorJSON(ctx, fiber.StatusBadRequest, models.ErrorCodeInvalidValue, err.Error())
	}
	return errorJSON(ctx, fiber.StatusInternalServerError, models.ErrorCodeSystem, SearchErrorMessage)
}

// History handles GET /api/search/history
func (c *SearchController) History(ctx *fiber.Ctx) error {
	history, err := c.searchService.History(ctx.UserContext(), middlewares.GetUserIDFromContext(ctx))
	switch {
	case err == nil:
		return ctx.JSON(history)
	case errors.Is(err, services.ErrUnauthenticated):
		return errorJSON(ctx, fiber.StatusUnauthorized, models.ErrorCodeUnauthorized, err.Error())
	case errors.Is(err, services.ErrProfileNotFound):
		return errorJSON(ctx, fiber.StatusNotFound, models.ErrorCodeNotFound, "Profile not found")
	}
	log.Printf("❌ Search history failed: %v", err)
	return errorJSON(ctx, fiber.StatusInternalServerError, models.ErrorCodeSystem, "Failed to load search history")
}
