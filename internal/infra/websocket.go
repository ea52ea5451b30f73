package infra

import (
	"log"
	"sync"

	"schooladmin.com/internal/domain"
)

// Conn is the subset of *websocket.Conn the hub needs. The indirection
// keeps the hub testable without a real network connection.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// UserConnection 绑定了用户标识的连接注册请求
type UserConnection struct {
	UserID string
	Conn   Conn
}

// WsManager manages WebSocket connections for the dashboard clients.
// Published notices are broadcast to every connection; targeted messages
// go to all connections of a single user.
type WsManager struct {
	// Active clients
	clients map[Conn]bool

	// User connection mapping: UserID -> Set of Connections
	userConns map[string]map[Conn]bool

	// sendChannels stores a buffered channel for each client.
	// This avoids blocking the broadcast path on a slow client.
	sendChannels map[Conn]chan interface{}

	mu sync.RWMutex

	Register   chan UserConnection
	Unregister chan UserConnection
}

func NewWsManager() *WsManager {
	return &WsManager{
		clients:      make(map[Conn]bool),
		userConns:    make(map[string]map[Conn]bool),
		sendChannels: make(map[Conn]chan interface{}),
		Register:     make(chan UserConnection),
		Unregister:   make(chan UserConnection),
	}
}

func (manager *WsManager) Start() {
	log.Println("Starting WebSocket Manager...")
	for {
		select {
		case req := <-manager.Register:
			manager.mu.Lock()
			manager.clients[req.Conn] = true

			sendCh := make(chan interface{}, 256)
			manager.sendChannels[req.Conn] = sendCh

			// Dedicated writer goroutine per connection
			go func(conn Conn, ch chan interface{}) {
				for msg := range ch {
					if err := conn.WriteJSON(msg); err != nil {
						log.Printf("WS WriteLoop error: %v", err)
						conn.Close()
						return
					}
				}
			}(req.Conn, sendCh)

			if req.UserID != "" {
				if manager.userConns[req.UserID] == nil {
					manager.userConns[req.UserID] = make(map[Conn]bool)
				}
				manager.userConns[req.UserID][req.Conn] = true
			}
			manager.mu.Unlock()
			log.Printf("New WebSocket client connected: %s", req.UserID)

		case req := <-manager.Unregister:
			manager.mu.Lock()
			if _, ok := manager.clients[req.Conn]; ok {
				delete(manager.clients, req.Conn)

				if ch, exists := manager.sendChannels[req.Conn]; exists {
					close(ch)
					delete(manager.sendChannels, req.Conn)
				}

				if req.UserID != "" && manager.userConns[req.UserID] != nil {
					delete(manager.userConns[req.UserID], req.Conn)
					if len(manager.userConns[req.UserID]) == 0 {
						delete(manager.userConns, req.UserID)
					}
				}
			}
			manager.mu.Unlock()
			log.Println("WebSocket client disconnected")
		}
	}
}

// BroadcastToAll 向所有连接的客户端广播消息
func (manager *WsManager) BroadcastToAll(data interface{}) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for conn := range manager.clients {
		if ch, exists := manager.sendChannels[conn]; exists {
			select {
			case ch <- data:
			default:
				// Buffer full: drop message for this specific slow client
			}
		}
	}
}

// PushToUser sends a message to all active connections of a specific user.
func (manager *WsManager) PushToUser(userID string, data interface{}) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	conns, ok := manager.userConns[userID]
	if ok {
		for conn := range conns {
			if ch, exists := manager.sendChannels[conn]; exists {
				select {
				case ch <- data:
				default:
					// Skip if buffer is full
				}
			}
		}
	}
}

var _ domain.Notifier = (*WsManager)(nil)

// ClientCount 返回当前连接数
func (manager *WsManager) ClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}
