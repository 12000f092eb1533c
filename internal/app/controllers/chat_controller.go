package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenacity/erp/internal/app/models/dto"
	"github.com/tenacity/erp/internal/app/services"
	"github.com/tenacity/erp/internal/middleware"
)

// ChatController handles help-desk assistant messages
type ChatController struct {
	chatService services.ChatService
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// Ask answers one chatbot message
// @Summary Ask the assistant
// @Description Returns the keyword-matched reply for a message. Use /chat/ws for a conversation with history.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Message"
// @Success 200 {object} dto.APIResponse{data=dto.ChatResponse} "Reply"
// @Failure 400 {object} dto.ErrorResponse "Empty message"
// @Failure 401 {object} dto.ErrorResponse "Session required"
// @Router /chat [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	var req dto.ChatRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	respond(ctx, http.StatusOK, c.chatService.Ask(req.Message))
}
