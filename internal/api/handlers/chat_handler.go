package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/tricoghealth/intake-assistant/internal/application/services"
	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	"github.com/tricoghealth/intake-assistant/internal/domain/providers"
)

const noSessionMessage = "I'm sorry, but I don't have an active session. Please refresh the page and start again."

// ChatHandler owns the websocket endpoint that carries the intake
// conversation. Each connection gets its own session; all reads and
// writes for a connection happen on its read loop goroutine, so the
// conversation is processed strictly one message at a time.
type ChatHandler struct {
	upgrader websocket.Upgrader
	dialogue *services.DialogueService
	registry *services.SessionRegistry
	bus      providers.EventBus
}

// NewChatHandler creates a new chat handler. The event bus may be nil when
// Redis is unavailable; completed intakes are then logged but not
// dispatched.
func NewChatHandler(
	dialogue *services.DialogueService,
	registry *services.SessionRegistry,
	bus providers.EventBus,
) *ChatHandler {
	return &ChatHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin policy is enforced by the CORS layer for REST; the
			// chat endpoint accepts any origin like the rest of the API.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		dialogue: dialogue,
		registry: registry,
		bus:      bus,
	}
}

// HandleChat handles GET /ws/chat
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}

	connectionID := uuid.New().String()
	defer func() {
		h.registry.Remove(connectionID)
		conn.Close()
		log.Info().Str("connection_id", connectionID).Msg("Connection closed")
	}()

	log.Info().Str("connection_id", connectionID).Msg("Connection opened")

	for {
		var inbound entities.InboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("connection_id", connectionID).Msg("Unexpected connection close")
			}
			return
		}

		switch inbound.Type {
		case entities.InboundStart:
			h.handleStart(r.Context(), conn, connectionID)
		case entities.InboundText:
			h.handleText(r.Context(), conn, connectionID, inbound.Message)
		default:
			log.Warn().Str("type", string(inbound.Type)).Str("connection_id", connectionID).Msg("Unknown inbound message type")
		}
	}
}

func (h *ChatHandler) handleStart(ctx context.Context, conn *websocket.Conn, connectionID string) {
	session, greeting, err := h.dialogue.StartConversation(ctx, connectionID)
	if err != nil {
		log.Error().Err(err).Str("connection_id", connectionID).Msg("Failed to start conversation")
		h.writeBot(conn, noSessionMessage)
		return
	}

	h.registry.Put(session)
	h.writeBot(conn, greeting)
}

func (h *ChatHandler) handleText(ctx context.Context, conn *websocket.Conn, connectionID, text string) {
	session, ok := h.registry.Get(connectionID)
	if !ok {
		h.writeBot(conn, noSessionMessage)
		return
	}

	// Echo the user's message back so the transcript renders in order
	h.write(conn, entities.NewUserMessage(text))

	result := h.dialogue.ProcessMessage(ctx, session, text)
	h.writeBot(conn, result.Reply)

	if result.Completed != nil {
		h.publishCompletion(ctx, result.Completed)
	}
}

func (h *ChatHandler) publishCompletion(ctx context.Context, record *entities.IntakeRecord) {
	if h.bus == nil {
		log.Warn().Str("session_id", record.SessionID).Msg("No event bus configured, completion not dispatched")
		return
	}

	event := entities.NewIntakeCompletedEvent(*record)
	if err := h.bus.Publish(ctx, providers.EventChannelIntakeCompleted, event); err != nil {
		log.Error().Err(err).Str("session_id", record.SessionID).Msg("Failed to publish completion event")
	}
}

func (h *ChatHandler) writeBot(conn *websocket.Conn, text string) {
	h.write(conn, entities.NewBotMessage(text))
}

func (h *ChatHandler) write(conn *websocket.Conn, message entities.ChatMessage) {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(message); err != nil {
		log.Error().Err(err).Msg("Failed to write websocket message")
	}
}
