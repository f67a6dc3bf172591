package game

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = 25 * time.Second
	maxMessageSize = 4096
	dropLogEvery   = time.Second
)

// Client is one WebSocket session. Outbound frames go through a bounded queue
// drained by writePump, so Send never blocks the game loop.
type Client struct {
	conn  *websocket.Conn
	codec Codec
	send  chan []byte

	mu          sync.Mutex
	playerID    string
	closed      bool
	lastDropLog time.Time
}

func newClient(conn *websocket.Conn, codec Codec, buffer int) *Client {
	return &Client{
		conn:  conn,
		codec: codec,
		send:  make(chan []byte, buffer),
	}
}

func (c *Client) Codec() Codec { return c.codec }

// Send enqueues a frame, failing fast when the queue is full or closed.
func (c *Client) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.send <- frame:
		return nil
	default:
		if now := time.Now(); now.Sub(c.lastDropLog) >= dropLogEvery {
			c.lastDropLog = now
			log.Printf("[WARN] Client %s send buffer full, dropping frames.", c.label())
		}
		return ErrSendBufferFull
	}
}

// Close stops the write pump, which sends a close frame and closes the socket.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	return nil
}

func (c *Client) setPlayerID(id string) {
	c.mu.Lock()
	c.playerID = id
	c.mu.Unlock()
}

func (c *Client) id() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playerID
}

// label must be called with c.mu held.
func (c *Client) label() string {
	if c.playerID != "" {
		return c.playerID
	}
	return c.conn.RemoteAddr().String()
}

// readPump feeds client messages to the server until the connection fails,
// then removes the player.
func (c *Client) readPump(s *GameServer) {
	defer func() {
		s.Leave(c.id())
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Printf("Client %s: unexpected close: %v", c.id(), err)
			}
			return
		}
		s.HandleMessage(c.id(), c.codec, message)
	}
}

// writePump drains the send queue and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(c.codec.FrameType(), frame); err != nil {
				log.Printf("Client %s: write error: %v", c.id(), err)
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
