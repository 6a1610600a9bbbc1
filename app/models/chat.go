package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Chat senders
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatFallbackText is shown whenever the assistant could not answer
const ChatFallbackText = "Sorry, something went wrong. Please try again."

// ChatMessage is one entry of the chat log
type ChatMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned by POST /chat
type ChatResponse struct {
	Reply string `json:"reply"`
}

// TravelDates is the trip window of an itinerary request
type TravelDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ItineraryRequest is the body of POST /generate-itinerary
type ItineraryRequest struct {
	TravelDates *TravelDates `json:"travelDates"`
	Interests   FlexString   `json:"interests"`
	Budget      FlexString   `json:"budget"`
}

// Complete reports whether both trip ends, interests and budget are present
func (r ItineraryRequest) Complete() bool {
	if r.TravelDates == nil {
		return false
	}
	if strings.TrimSpace(r.TravelDates.Start) == "" || strings.TrimSpace(r.TravelDates.End) == "" {
		return false
	}
	return r.Interests.String() != "" && r.Budget.String() != ""
}

// ItineraryResponse is returned by POST /generate-itinerary
type ItineraryResponse struct {
	Itinerary string `json:"itinerary"`
}

// FlexString accepts a JSON string, number or boolean and keeps its text form.
// Mobile clients send budget both as "1500" and 1500.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*f = FlexString(strings.ToLower(string(data)))
	return nil
}

// String returns the trimmed text
func (f FlexString) String() string {
	return strings.TrimSpace(string(f))
}
