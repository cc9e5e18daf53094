package client

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mo-shahab/duel-pong/protocol"
)

const (
	// SendQueueSize bounds the frames waiting for a slow receiver
	SendQueueSize = 64
	writeWait     = 5 * time.Second
	closeWait     = time.Second
)

// Client is one websocket connection. Messages are queued by Send and written
// by WritePump, so callers never wait on the network.
type Client struct {
	id    string
	Conn  *websocket.Conn
	Codec protocol.Codec

	sendQueue chan protocol.Message
	mu        sync.Mutex
	closed    bool
}

func New(conn *websocket.Conn, codec protocol.Codec) *Client {
	return &Client{
		id:        uuid.NewString(),
		Conn:      conn,
		Codec:     codec,
		sendQueue: make(chan protocol.Message, SendQueueSize),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Send queues msg for delivery. It reports false when the client is closed or
// its queue is full; in both cases the message is dropped.
func (c *Client) Send(msg protocol.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.sendQueue <- msg:
		return true
	default:
		log.Printf("Dropping %s message, send queue full for client %s", msg.Type, c.id)
		return false
	}
}

// Close stops accepting messages. WritePump flushes what is already queued and
// then closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.sendQueue)
	}
	return nil
}

// WritePump drains the send queue onto the connection until the client is
// closed or a write fails.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for msg := range c.sendQueue {
		frame, err := c.Codec.Encode(msg)
		if err != nil {
			log.Printf("Failed to encode %s message for client %s: %v", msg.Type, c.id, err)
			continue
		}

		_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.Conn.WriteMessage(c.Codec.FrameType(), frame); err != nil {
			log.Printf("Write error for client %s: %v", c.id, err)
			c.Close()
			return
		}
	}

	closeMessage := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.Conn.WriteControl(websocket.CloseMessage, closeMessage, time.Now().Add(closeWait))
}
