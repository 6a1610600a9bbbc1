package companion

import (
	"context"
	"log"
	"strings"
	"sync"

	"travelcompanion/app/models"
)

// ChatBackend answers chat messages
type ChatBackend interface {
	Chat(ctx context.Context, message string) (string, error)
}

// ChatState is the whole state of the chat screen. Messages are newest first.
type ChatState struct {
	Draft    string
	Messages []models.ChatMessage
	// Pending counts sends still waiting for an answer
	Pending int
}

// Loading reports whether the typing indicator is shown
func (s ChatState) Loading() bool {
	return s.Pending > 0
}

// ChatAction is an input to UpdateChat
type ChatAction interface {
	isChatAction()
}

type (
	DraftChanged struct{ Text string }
	// MessageSent prepends the user entry and clears the draft
	MessageSent  struct{ Text string }
	ReplyArrived struct{ Text string }
	// ReplyFailed prepends the fallback entry
	ReplyFailed struct{}
)

func (DraftChanged) isChatAction() {}
func (MessageSent) isChatAction()  {}
func (ReplyArrived) isChatAction() {}
func (ReplyFailed) isChatAction()  {}

// UpdateChat returns the next chat state. s is not modified.
func UpdateChat(s ChatState, a ChatAction) ChatState {
	switch act := a.(type) {
	case DraftChanged:
		s.Draft = act.Text
	case MessageSent:
		s.Messages = prepend(s.Messages, models.ChatMessage{Text: act.Text, Sender: models.SenderUser})
		s.Draft = ""
		s.Pending++
	case ReplyArrived:
		s.Messages = prepend(s.Messages, models.ChatMessage{Text: act.Text, Sender: models.SenderAI})
		s.Pending = max(s.Pending-1, 0)
	case ReplyFailed:
		s.Messages = prepend(s.Messages, models.ChatMessage{Text: models.ChatFallbackText, Sender: models.SenderAI})
		s.Pending = max(s.Pending-1, 0)
	}
	return s
}

func prepend(messages []models.ChatMessage, m models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(messages)+1)
	out = append(out, m)
	return append(out, messages...)
}

// ChatScreen runs the chat flow against a backend
type ChatScreen struct {
	mu      sync.Mutex
	state   ChatState
	backend ChatBackend
}

func NewChatScreen(backend ChatBackend) *ChatScreen {
	return &ChatScreen{backend: backend}
}

func (s *ChatScreen) dispatch(a ChatAction) ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = UpdateChat(s.state, a)
	return s.state
}

// State returns a snapshot of the screen state
func (s *ChatScreen) State() ChatState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Messages = append([]models.ChatMessage(nil), s.state.Messages...)
	return st
}

func (s *ChatScreen) SetDraft(text string) {
	s.dispatch(DraftChanged{Text: text})
}

// Send submits the current draft. A blank draft does nothing. Any backend
// failure becomes a single fallback entry.
func (s *ChatScreen) Send(ctx context.Context) {
	s.mu.Lock()
	text := strings.TrimSpace(s.state.Draft)
	if text == "" {
		s.mu.Unlock()
		return
	}
	s.state = UpdateChat(s.state, MessageSent{Text: text})
	s.mu.Unlock()

	reply, err := s.backend.Chat(ctx, text)
	if err != nil {
		log.Printf("chat request failed: %v", err)
		s.dispatch(ReplyFailed{})
		return
	}
	s.dispatch(ReplyArrived{Text: reply})
}
