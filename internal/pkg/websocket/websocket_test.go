package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenacity/erp/internal/app/chatbot"
	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/middleware"
)

func newChatServer(t *testing.T, withRole bool) (*httptest.Server, *Hub, context.CancelFunc) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/chat/ws", func(c *gin.Context) {
		if withRole {
			c.Set(middleware.ContextKeyRole, models.RoleStudent)
		}
		c.Next()
	}, NewHandler(hub, zerolog.Nop()).HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv, hub, cancel
}

func dial(t *testing.T, srv *httptest.Server) *gorilla.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *gorilla.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func TestChatSession(t *testing.T) {
	srv, hub, _ := newChatServer(t, true)
	conn := dial(t, srv)

	welcome := readFrame(t, conn)
	assert.Equal(t, FrameWelcome, welcome.Type)
	assert.Equal(t, chatbot.Welcome, welcome.Text)

	require.NoError(t, conn.WriteJSON(Inbound{Message: "Is there a hostel room free?"}))
	reply := readFrame(t, conn)
	assert.Equal(t, FrameReply, reply.Type)
	assert.Equal(t, chatbot.TopicHostel, reply.Topic)

	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, []byte("thank you")))
	assert.Equal(t, chatbot.TopicThanks, readFrame(t, conn).Topic)

	require.NoError(t, conn.WriteJSON(Inbound{Message: "  "}))
	assert.Equal(t, FrameError, readFrame(t, conn).Type)

	assert.Eventually(t, func() bool { return hub.Count(models.RoleStudent) == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, hub.Count(models.RoleAdmin))
}

func TestChatSession_ClosedOnShutdown(t *testing.T) {
	srv, hub, cancel := newChatServer(t, true)
	conn := dial(t, srv)
	readFrame(t, conn)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 10*time.Millisecond)
}

func TestChatSession_RequiresRole(t *testing.T) {
	srv, _, _ := newChatServer(t, false)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/ws"
	_, resp, err := gorilla.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
