package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client represents a connected WebSocket client
type Client struct {
	Hub    *Hub
	UserID uint
	Email  string
	Conn   *websocket.Conn
	Send   chan []byte
}

// ServeWebSocket upgrades the connection and starts the client's pumps
func ServeWebSocket(hub *Hub, w http.ResponseWriter, r *http.Request, userID uint, email string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		Hub:    hub,
		UserID: userID,
		Email:  email,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	client.Hub.Register <- client

	go client.writePump()
	go client.readPump()
}

// readPump handles subscribe/unsubscribe requests from the client. The
// deferred unregister guarantees every topic subscription is released when
// the connection goes away, however it goes away.
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("❌ WebSocket read error for user %d: %v", c.UserID, err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.sendError("invalid_message", "Message must be JSON")
			continue
		}

		switch msg.Type {
		case "subscribe":
			if !ValidTopic(msg.Topic) {
				c.sendError("unknown_topic", "Unknown feed topic: "+msg.Topic)
				continue
			}
			c.Hub.Subscribe(c, msg.Topic)
			log.Printf("👂 User %d subscribed to %s", c.UserID, msg.Topic)

		case "unsubscribe":
			c.Hub.Unsubscribe(c, msg.Topic)

		case "ping":
			c.sendMessage(&Message{Type: "pong", Timestamp: time.Now()})

		default:
			c.sendError("unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendMessage(message *Message) {
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}
	select {
	case c.Send <- payload:
	default:
	}
}

func (c *Client) sendError(errorType, text string) {
	c.sendMessage(&Message{
		Type: "error",
		Data: map[string]interface{}{
			"error_type": errorType,
			"message":    text,
		},
		Timestamp: time.Now(),
	})
}
