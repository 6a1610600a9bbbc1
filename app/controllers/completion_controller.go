package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"travelcompanion/app/models"
	"travelcompanion/app/services"
)

// Plain-text bodies of upstream failures
const (
	ChatErrorText      = "Error communicating with the completion service"
	ItineraryErrorText = "Error generating itinerary"

	ItineraryFieldsMessage = "Missing required fields: travelDates, interests, or budget."
)

// CompletionController proxies chat and itinerary requests. These routes
// keep the {"error": ...} body the mobile app already parses.
type CompletionController struct {
	chatService *services.ChatService
}

func NewCompletionController(chatService *services.ChatService) *CompletionController {
	return &CompletionController{chatService: chatService}
}

// Chat handles POST /chat
func (c *CompletionController) Chat(ctx *fiber.Ctx) error {
	var req models.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request format"})
	}

	reply, err := c.chatService.Reply(ctx.UserContext(), req.Message)
	if errors.Is(err, services.ErrEmptyMessage) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(ChatErrorText)
	}
	return ctx.JSON(models.ChatResponse{Reply: reply})
}

// GenerateItinerary handles POST /generate-itinerary
func (c *CompletionController) GenerateItinerary(ctx *fiber.Ctx) error {
	var req models.ItineraryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ItineraryFieldsMessage})
	}

	itinerary, err := c.chatService.GenerateItinerary(ctx.UserContext(), req)
	if errors.Is(err, services.ErrMissingItineraryFields) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ItineraryFieldsMessage})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).SendString(ItineraryErrorText)
	}
	return ctx.JSON(models.ItineraryResponse{Itinerary: itinerary})
}
