package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxInboundSize = 512
	sendBuffer     = 10
)

var upgrader = websocket.Upgrader{
	// Origin policy is enforced by the CORS middleware in front of the
	// handshake, not here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket connection owned by a single user.
type Client struct {
	hub    *Hub
	userID int
	conn   *websocket.Conn
	send   chan []byte
}

// ServeWS upgrades the request and blocks until the connection closes.
// The caller must have authenticated userID already.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, userID int) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}
	c := &Client{
		hub:    hub,
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
	}
	c.hub.attach(c)
	go c.writeLoop()
	c.readLoop()
}

// readLoop drains inbound frames so pongs are processed. Clients never send
// application data; any read error tears the connection down.
func (c *Client) readLoop() {
	defer c.close()
	c.conn.SetReadLimit(maxInboundSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) close() {
	c.hub.detach(c)
	_ = c.conn.Close()
}
