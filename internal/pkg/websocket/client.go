package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tenacity/erp/internal/app/chatbot"
	"github.com/tenacity/erp/internal/app/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4 * 1024

	// Outbound frames buffered per session
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser dashboards are served from other origins during development
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client is one chat session over a websocket connection
type Client struct {
	hub *Hub

	// The WebSocket connection
	conn *websocket.Conn

	// Buffered channel of outbound frames, closed once by closeSend
	send   chan []byte
	sendMu sync.Mutex
	closed bool

	// Role selected by the session
	role models.Role

	// Transcript of this session only
	conversation *chatbot.Conversation

	// Logger instance
	logger zerolog.Logger
}

func (c *Client) remoteAddr() string {
	if c.conn == nil {
		return ""
	}
	return c.conn.RemoteAddr().String()
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// enqueue marshals frame onto the send buffer. A full buffer or a closed
// session drops the frame.
func (c *Client) enqueue(frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to marshal chat frame")
		return
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		c.logger.Warn().Str("role", string(c.role)).Msg("Chat send buffer full, dropping frame")
	}
}

// readPump reads questions from the connection and queues the replies
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			// Don't log normal close conditions as warnings
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug().Str("role", string(c.role)).Msg("WebSocket closed normally")
			} else if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Str("role", string(c.role)).Msg("Unexpected WebSocket close")
			} else {
				c.logger.Debug().Err(err).Str("role", string(c.role)).Msg("WebSocket read error")
			}
			break
		}

		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			// plain text frames are accepted as the question itself
			in.Message = string(data)
		}

		reply, ok := c.conversation.Ask(in.Message)
		if !ok {
			c.enqueue(Frame{Type: FrameError, Message: chatbot.Message{
				From: chatbot.SenderBot,
				Text: "Please type a question.",
				At:   time.Now(),
			}})
			continue
		}
		c.enqueue(Frame{Type: FrameReply, Message: reply})
	}
}

// writePump writes queued frames and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
