package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"travelcompanion/app/models"
)

// TravelAssistantPrompt is the system prompt of every itinerary request
const TravelAssistantPrompt = "You are a helpful AI travel assistant."

var (
	ErrEmptyMessage           = errors.New("message is required")
	ErrMissingItineraryFields = errors.New("travel dates, interests and budget are required")
)

// ChatService proxies chat messages and itinerary requests to the completion service
type ChatService struct {
	completion CompletionClient
}

func NewChatService(completion CompletionClient) *ChatService {
	return &ChatService{completion: completion}
}

// Reply sends one user message and returns the assistant's answer
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	reply, err := s.completion.Complete(ctx, CompletionRequest{
		Messages: []CompletionMessage{{Role: RoleUser, Content: message}},
	})
	if err != nil {
		log.Printf("❌ Chat completion failed: %v", err)
		return "", err
	}
	return reply, nil
}

// GenerateItinerary builds the itinerary prompt from the request
func (s *ChatService) GenerateItinerary(ctx context.Context, req models.ItineraryRequest) (string, error) {
	if !req.Complete() {
		return "", ErrMissingItineraryFields
	}

	reply, err := s.completion.Complete(ctx, CompletionRequest{
		Messages: []CompletionMessage{
			{Role: RoleSystem, Content: TravelAssistantPrompt},
			{Role: RoleUser, Content: ItineraryPrompt(req)},
		},
	})
	if err != nil {
		log.Printf("❌ Itinerary completion failed: %v", err)
		return "", err
	}
	return reply, nil
}

// ItineraryPrompt renders the user prompt of an itinerary request
func ItineraryPrompt(req models.ItineraryRequest) string {
	var start, end string
	if req.TravelDates != nil {
		start, end = strings.TrimSpace(req.TravelDates.Start), strings.TrimSpace(req.TravelDates.End)
	}
	return fmt.Sprintf("Create a travel itinerary for someone traveling from %s to %s, interested in %s, with a budget of %s.",
		start, end, req.Interests.String(), req.Budget.String())
}
