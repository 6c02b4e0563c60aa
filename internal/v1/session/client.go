package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/opengavel/roomserver/internal/v1/logging"
	"github.com/opengavel/roomserver/internal/v1/metrics"
	"github.com/opengavel/roomserver/internal/v1/types"
	"go.uber.org/zap"
)

// wsConnection is the subset of *websocket.Conn the Client needs. Mirrors
// the teacher's transport.wsConnection interface so tests can substitute a
// mock socket without standing up a real listener.
type wsConnection interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
	SetWriteDeadline(t time.Time) error
}

const writeWait = 10 * time.Second

// Client is a single duplex connection, identified for its full lifetime
// by a server-issued SessionID. It has no notion of which room it is bound
// to; that binding lives in the registry and is looked up per command.
type Client struct {
	id   types.SessionID
	conn wsConnection
	hub  *Hub

	send chan []byte

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

// newClient wraps conn with a fresh session id. It does not register the
// client with hub; callers do that with hub.register.
func newClient(hub *Hub, conn wsConnection) *Client {
	return &Client{
		id:   newSessionID(),
		conn: conn,
		hub:  hub,
		send: make(chan []byte, 32),
	}
}

// ID returns the client's session id.
func (c *Client) ID() types.SessionID {
	return c.id
}

// enqueue queues data for delivery without blocking the caller; if the
// client's send buffer is full the message is dropped rather than stalling
// the broadcaster (§5: publication must not block on a slow subscriber).
// A closed client silently drops the message: its writePump has already
// exited.
func (c *Client) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		logging.Warn(context.Background(), "dropping message to slow client", zap.String("session_id", string(c.id)))
	}
}

// closeSend closes the outgoing channel exactly once, letting writePump
// drain whatever is queued and exit. Safe to call multiple times and
// concurrently with enqueue.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.send)
	})
}

// readPump pulls command frames off the socket and hands them to the hub's
// dispatcher. Exactly one disconnect notification fires when the loop
// exits, regardless of why (remote close, decode loop exit, I/O error).
func (c *Client) readPump() {
	defer func() {
		if r := recover(); r != nil {
			logging.Error(context.Background(), "recovered from panic in readPump", zap.Any("panic", r))
		}
		c.hub.handleDisconnect(c)
		c.conn.Close()
		metrics.DecSession()
	}()

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.sendError(ErrorKindValidation, "malformed command frame", "")
			continue
		}

		c.hub.dispatch(context.Background(), c, frame)
	}
}

// writePump drains the outgoing queue to the socket. Exits (and closes the
// connection) once the channel is closed or a write fails.
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logging.Warn(context.Background(), "error writing to client", zap.String("session_id", string(c.id)), zap.Error(err))
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// deliver marshals and enqueues an outbound frame. Marshal failures are
// logged and dropped; they indicate a bug in the server, never client
// input.
func (c *Client) deliver(frame outboundFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		logging.Error(context.Background(), "failed to marshal outbound frame", zap.Error(err))
		return
	}
	c.enqueue(data)
}

func (c *Client) sendError(kind ErrorKind, message, roomCode string) {
	c.deliver(outboundFrame{
		Kind:     outboundError,
		RoomCode: roomCode,
		Payload: errorPayload{
			Kind:     kind,
			Message:  message,
			RoomCode: roomCode,
		},
	})
}
