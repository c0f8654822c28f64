package ws

import (
	"context"
	"sync"

	"docflow_backend/internal/logger"
)

// WebSocketManager хранит подключения пользователей. У одного
// пользователя может быть несколько вкладок.
type WebSocketManager struct {
	clients    map[uint]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[uint]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run обрабатывает регистрацию клиентов до отмены ctx
func (manager *WebSocketManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(manager.done)
			manager.closeAll()
			return

		case client := <-manager.register:
			manager.mu.Lock()
			conns, ok := manager.clients[client.UserID]
			if !ok {
				conns = make(map[*Client]struct{})
				manager.clients[client.UserID] = conns
			}
			conns[client] = struct{}{}
			manager.mu.Unlock()
			logger.Debug("WebSocket client registered", "user_id", client.UserID, "connections", len(conns))

		case client := <-manager.unregister:
			manager.remove(client)
		}
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	conns, ok := manager.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}
	close(client.Send)
	delete(conns, client)
	if len(conns) == 0 {
		delete(manager.clients, client.UserID)
	}
	logger.Debug("WebSocket client unregistered", "user_id", client.UserID)
}

func (manager *WebSocketManager) closeAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	for userID, conns := range manager.clients {
		for client := range conns {
			close(client.Send)
		}
		delete(manager.clients, userID)
	}
}

// PublishToUser отправляет событие во все подключения пользователя.
// Возвращает true, если хотя бы одно подключение приняло событие.
func (manager *WebSocketManager) PublishToUser(userID uint, message interface{}) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	delivered := false
	for client := range manager.clients[userID] {
		select {
		case client.Send <- message:
			delivered = true
		default:
			// канал переполнен, клиент отключается
			go manager.detach(client)
		}
	}
	return delivered
}

// attach регистрирует клиента. false - менеджер уже остановлен.
func (manager *WebSocketManager) attach(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.done:
		return false
	}
}

func (manager *WebSocketManager) detach(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

// sendTo отправляет сообщение одному клиенту, если он еще зарегистрирован
func (manager *WebSocketManager) sendTo(client *Client, message interface{}) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	if _, ok := manager.clients[client.UserID][client]; !ok {
		return
	}
	select {
	case client.Send <- message:
	default:
	}
}

// GetClientCount возвращает количество подключений
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	total := 0
	for _, conns := range manager.clients {
		total += len(conns)
	}
	return total
}

// IsUserConnected проверяет, есть ли у пользователя подключения
func (manager *WebSocketManager) IsUserConnected(userID uint) bool {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients[userID]) > 0
}
