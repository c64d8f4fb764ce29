package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"classfeed/middleware"
	"classfeed/models"

	"github.com/gorilla/websocket"
)

// SnapshotFunc loads the full post collection, newest first. The hub calls it
// once per change and pushes the whole list; connected clients replace their
// local state wholesale rather than patching.
type SnapshotFunc func() ([]models.Post, error)

type Manager struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	snapshot   SnapshotFunc
	mu         sync.RWMutex
}

type Client struct {
	conn    *websocket.Conn
	userID  string
	send    chan []byte
	manager *Manager

	mu     sync.Mutex
	closed bool
}

// trySend queues a frame for the client unless it has been evicted or its
// buffer is full. The read pump keeps running for a moment after the hub
// evicts a slow client, so every client-side send must go through here.
func (c *Client) trySend(message []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- message:
	default:
	}
}

// closeSend is the only place the send channel closes. Safe to call twice:
// eviction by the hub and the read pump's unregister can both reach it.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func NewManager(snapshot SnapshotFunc) *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		snapshot:   snapshot,
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
			log.Printf("WebSocket client registered. Total clients: %d", len(m.clients))

			// New subscriber gets the current state right away
			if frame, ok := m.snapshotFrame(); ok {
				client.trySend(frame)
			}

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				client.closeSend()
			}
			m.mu.Unlock()
			log.Printf("WebSocket client unregistered. Total clients: %d", len(m.clients))

		case message := <-m.broadcast:
			m.mu.Lock()
			for client := range m.clients {
				select {
				case client.send <- message:
				default:
					client.closeSend()
					delete(m.clients, client)
				}
			}
			m.mu.Unlock()
		}
	}
}

// snapshotFrame queries the collection and encodes a snapshot frame. On a
// query failure it encodes an error frame instead, so subscribers keep their
// last known list and learn the stream is broken.
func (m *Manager) snapshotFrame() ([]byte, bool) {
	posts, err := m.snapshot()
	if err != nil {
		log.Printf("Error loading posts snapshot: %v", err)
		frame, merr := json.Marshal(map[string]interface{}{
			"type": "error",
			"payload": map[string]interface{}{
				"message": "Failed to load posts",
				"time":    time.Now().Unix(),
			},
		})
		if merr != nil {
			return nil, false
		}
		return frame, true
	}

	frame, err := json.Marshal(map[string]interface{}{
		"type": "snapshot",
		"payload": map[string]interface{}{
			"posts": posts,
			"time":  time.Now().Unix(),
		},
	})
	if err != nil {
		log.Printf("Error marshaling snapshot frame: %v", err)
		return nil, false
	}
	return frame, true
}

// BroadcastSnapshot pushes a fresh full snapshot to every connected client.
// Called after each create, update, delete or feature change.
func (m *Manager) BroadcastSnapshot() {
	frame, ok := m.snapshotFrame()
	if !ok {
		return
	}

	log.Printf("Broadcasting posts snapshot to %d clients", m.GetConnectedUsers())
	m.broadcast <- frame
}

func (m *Manager) GetConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func WebSocketHandler(manager *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			log.Printf("WebSocket connection rejected: no token provided")
			http.Error(w, "Token required", http.StatusUnauthorized)
			return
		}

		claims, err := middleware.ParseToken(token)
		if err != nil {
			log.Printf("WebSocket connection rejected: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		client := &Client{
			conn:    conn,
			userID:  claims.UserID,
			send:    make(chan []byte, 256),
			manager: manager,
		}

		manager.register <- client

		// Start goroutines for this client
		go client.writePump()
		go client.readPump()
	}
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var data map[string]interface{}
		if err := json.Unmarshal(message, &data); err != nil {
			log.Printf("WebSocket message unmarshal error: %v", err)
			continue
		}

		switch data["type"] {
		case "refresh":
			// Client asked for the current state again
			if frame, ok := c.manager.snapshotFrame(); ok {
				c.trySend(frame)
			}
		case "ping":
			c.sendPong()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendPong() {
	response := map[string]interface{}{
		"type": "pong",
		"payload": map[string]interface{}{
			"time": time.Now().Unix(),
		},
	}

	msg, err := json.Marshal(response)
	if err != nil {
		log.Printf("Error marshaling pong: %v", err)
		return
	}

	c.trySend(msg)
}
