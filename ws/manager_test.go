package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*WebSocketManager, *WebSocketHandler, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	manager := NewWebSocketManager()
	go manager.Run(ctx)

	handler := NewWebSocketHandler(manager, nil, nil)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// пользователь 7 для теста
		handler.Serve(w, r, 7)
	}))
	t.Cleanup(server.Close)
	return manager, handler, server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPublishToUser_DeliversToAllConnections(t *testing.T) {
	manager, _, server := startHub(t)

	first := dial(t, server)
	second := dial(t, server)
	require.Eventually(t, func() bool { return manager.GetClientCount() == 2 }, time.Second, 10*time.Millisecond)

	assert.True(t, manager.PublishToUser(7, map[string]string{"type": "notification.created"}))
	assert.False(t, manager.PublishToUser(8, map[string]string{"type": "ignored"}))

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var got map[string]string
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "notification.created", got["type"])
	}
}

func TestClientDisconnectUnregisters(t *testing.T) {
	manager, _, server := startHub(t)

	conn := dial(t, server)
	require.Eventually(t, func() bool { return manager.IsUserConnected(7) }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return !manager.IsUserConnected(7) }, 2*time.Second, 10*time.Millisecond)
}

func TestPingAction(t *testing.T) {
	manager, _, server := startHub(t)

	conn := dial(t, server)
	require.Eventually(t, func() bool { return manager.IsUserConnected(7) }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(IncomingWSMessage{Action: "ping"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got map[string]string
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "pong", got["type"])
}
