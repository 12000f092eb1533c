package websocket

import (
	"github.com/tenacity/erp/internal/app/chatbot"
)

// Frame types sent to the client
const (
	FrameWelcome = "welcome"
	FrameReply   = "reply"
	FrameError   = "error"
)

// Inbound is a message from the client
type Inbound struct {
	Message string `json:"message"`
}

// Frame is a message to the client
type Frame struct {
	Type string `json:"type"`
	chatbot.Message
}
