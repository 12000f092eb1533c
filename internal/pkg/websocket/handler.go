package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tenacity/erp/internal/app/chatbot"
	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/middleware"
)

// Handler for WebSocket connections
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Chat with the assistant over a WebSocket
// @Description Upgrades the connection. The server sends a welcome frame, then one reply frame per {"message": "..."} sent by the client.
// @Tags chat
// @Security BearerAuth
// @Param token query string false "Session token when the Authorization header cannot be set"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 401 {object} dto.ErrorResponse "Session missing or invalid"
// @Router /chat/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	role, ok := middleware.RoleFrom(c)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeTokenNotFound, "Session required")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("role", string(role)).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:          h.hub,
		conn:         conn,
		send:         make(chan []byte, sendBuffer),
		role:         role,
		conversation: chatbot.NewConversation(),
		logger:       h.logger,
	}
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	client.enqueue(Frame{Type: FrameWelcome, Message: client.conversation.Transcript()[0]})

	go client.writePump()
	go client.readPump()
}
