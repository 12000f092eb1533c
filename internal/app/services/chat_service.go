package services

import (
	"github.com/tenacity/erp/internal/app/chatbot"
	"github.com/tenacity/erp/internal/app/models/dto"
)

// ChatService defines the interface for the help-desk assistant
type ChatService interface {
	Ask(message string) dto.ChatResponse
}

// chatServiceImpl implements ChatService. It keeps no state between calls;
// transcripts live in websocket sessions.
type chatServiceImpl struct{}

// NewChatService creates a new ChatService
func NewChatService() ChatService {
	return &chatServiceImpl{}
}

// Ask answers one message
func (s *chatServiceImpl) Ask(message string) dto.ChatResponse {
	r := chatbot.Respond(message)
	return dto.ChatResponse{Reply: r.Text, Topic: string(r.Topic)}
}
