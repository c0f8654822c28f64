package ws

import (
	"net/http"

	"docflow_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OriginChecker решает, разрешен ли Origin для websocket-подключения
type OriginChecker func(origin string) bool

// UserResolver достает id аутентифицированного пользователя из запроса
type UserResolver func(c *gin.Context) (uint, bool)

type WebSocketHandler struct {
	Manager  *WebSocketManager
	upgrader websocket.Upgrader
	resolve  UserResolver
}

func NewWebSocketHandler(manager *WebSocketManager, allowOrigin OriginChecker, resolve UserResolver) *WebSocketHandler {
	return &WebSocketHandler{
		Manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowOrigin == nil {
					return true
				}
				return allowOrigin(origin)
			},
		},
		resolve: resolve,
	}
}

// ServeWS поднимает websocket для пользователя, прошедшего RequireUser
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	userID, ok := h.resolve(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	h.Serve(c.Writer, c.Request, userID)
}

// Serve обновляет соединение и регистрирует клиента
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.CtxWithError(r.Context(), "WebSocket upgrade error", err, "user_id", userID)
		return
	}

	client := newClient(h.Manager, conn, userID)
	if !h.Manager.attach(client) {
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}
