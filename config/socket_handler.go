package config

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	socketio "github.com/doquangtan/socket.io/v4"
	"github.com/gofiber/fiber/v2"

	"travelcompanion/app/middlewares"
	"travelcompanion/app/models"
)

// Chat namespace and events
const (
	ChatNamespace  = "/chat"
	EventChatSend  = "chat:send"
	EventChatReply = "chat:reply"
	EventChatError = "chat:error"
)

var errEmptyChatPayload = errors.New("message is required")

// ChatReplier answers one chat message
type ChatReplier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// SocketIoHandler serves realtime chat over Socket.IO
type SocketIoHandler struct {
	io           *socketio.Io
	auth         middlewares.Authenticator
	chat         ChatReplier
	replyTimeout time.Duration
}

// NewSocketHandler creates a new Socket.IO handler instance
func NewSocketHandler(auth middlewares.Authenticator, chat ChatReplier, replyTimeout time.Duration) *SocketIoHandler {
	handler := &SocketIoHandler{
		io:           socketio.New(),
		auth:         auth,
		chat:         chat,
		replyTimeout: replyTimeout,
	}

	handler.setupSocketHandlers()
	return handler
}

// setupSocketHandlers configures all Socket.IO event handlers
func (h *SocketIoHandler) setupSocketHandlers() {
	// Only signed-in users may open a socket
	h.io.OnAuthorization(h.authorize)

	h.io.Of(ChatNamespace).OnConnection(func(socket *socketio.Socket) {
		log.Printf("✅ Socket connected: %s (namespace: %s)", socket.Id, socket.Nps)

		socket.On(EventChatSend, func(event *socketio.EventPayload) {
			message, err := parseChatPayload(event.Data)
			if err != nil {
				socket.Emit(EventChatError, models.ErrorResponse{
					Status:    "error",
					ErrorCode: models.ErrorCodeMissingField,
					Message:   err.Error(),
				})
				return
			}
			socket.Emit(EventChatReply, h.reply(message))
		})

		socket.On("disconnect", func(event *socketio.EventPayload) {
			log.Printf("🔌 Socket disconnected: %s (namespace: %s)", socket.Id, socket.Nps)
		})
	})
}

func (h *SocketIoHandler) authorize(params map[string]string) bool {
	token := strings.TrimPrefix(params["token"], "Bearer ")
	if token == "" {
		log.Printf("⚠️ Socket authorization rejected: missing token")
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := h.auth.Authenticate(ctx, token); err != nil {
		log.Printf("⚠️ Socket authorization rejected: %v", err)
		return false
	}
	return true
}

// reply always yields an AI entry; failures become the fallback text
func (h *SocketIoHandler) reply(message string) models.ChatMessage {
	ctx := context.Background()
	if h.replyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.replyTimeout)
		defer cancel()
	}

	text, err := h.chat.Reply(ctx, message)
	if err != nil {
		log.Printf("❌ Socket chat reply failed: %v", err)
		text = models.ChatFallbackText
	}
	return models.ChatMessage{Text: text, Sender: models.SenderAI}
}

// parseChatPayload accepts either {"message": "..."} or a bare string
func parseChatPayload(data []interface{}) (string, error) {
	if len(data) == 0 {
		return "", errEmptyChatPayload
	}

	var message string
	switch v := data[0].(type) {
	case string:
		message = v
	case map[string]interface{}:
		raw, _ := json.Marshal(v)
		var req models.ChatRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return "", errEmptyChatPayload
		}
		message = req.Message
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", errEmptyChatPayload
	}
	return message, nil
}

// SetupSocketRoutes configures Socket.IO routes for the Fiber app
func (h *SocketIoHandler) SetupSocketRoutes(app *fiber.App) {
	app.Use("/", h.io.Middleware)
	app.Route("/socket.io", h.io.FiberRoute)
}
