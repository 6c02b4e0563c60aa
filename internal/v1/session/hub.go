package session

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/opengavel/roomserver/internal/v1/logging"
	"github.com/opengavel/roomserver/internal/v1/metrics"
	"github.com/opengavel/roomserver/internal/v1/registry"
	"github.com/opengavel/roomserver/internal/v1/types"
)

// newSessionID mints a fresh opaque session handle, unique within process
// lifetime, the same way the room package mints participant ids.
func newSessionID() types.SessionID {
	return types.SessionID(uuid.NewString())
}

// Hub is the process-wide connection registry: it owns every live Client
// and the shared room registry, upgrades incoming HTTP requests to duplex
// connections, and is the single place that knows how to reach every
// subscriber of a room (§4.4). The Room/Registry types never hold a
// reference to a Client; all fan-out is driven from here.
type Hub struct {
	registry *registry.Registry

	mu      sync.RWMutex
	clients map[types.SessionID]*Client

	allowedOrigins []string
	landingURL     string

	upgrader websocket.Upgrader
}

// NewHub constructs a Hub bound to reg. allowedOrigins governs the
// WebSocket upgrade's origin check (§6.2's transport is assumed to be a
// websocket); an empty list disables the check for non-browser clients,
// matching the teacher's validateOrigin behavior of allowing a missing
// Origin header.
func NewHub(reg *registry.Registry, allowedOrigins []string, landingURL string) *Hub {
	h := &Hub{
		registry:       reg,
		clients:        make(map[types.SessionID]*Client),
		allowedOrigins: allowedOrigins,
		landingURL:     landingURL,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin validates the request Origin header against allowedOrigins.
// A missing Origin header is allowed through (non-browser clients, tests);
// this mirrors the teacher's transport.validateOrigin.
func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	for _, allowed := range h.allowedOrigins {
		allowedURL, err := url.Parse(allowed)
		if err != nil {
			continue
		}
		if originURL.Scheme == allowedURL.Scheme && originURL.Host == allowedURL.Host {
			return true
		}
	}
	return false
}

// ServeWS upgrades an incoming HTTP request to a duplex connection and
// starts its read/write pumps. Unlike the teacher's hub, there is no
// authentication step: identity is self-asserted by display name (§1
// Non-goals).
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Warn(c.Request.Context(), "websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(h, conn)
	h.register(client)
	metrics.IncSession()

	go client.writePump()
	client.readPump()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
}

// clientByID returns the live Client for sessionID, or nil if it has
// disconnected.
func (h *Hub) clientByID(sessionID types.SessionID) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[sessionID]
}

// handleDisconnect implements the disconnect handler of §4.3: fired
// exactly once per connection close, it releases chair if held and always
// prunes the session's room binding.
func (h *Hub) handleDisconnect(c *Client) {
	h.unregister(c)
	defer c.closeSend()

	if r := h.registry.RoomOfSession(c.id); r != nil {
		if r.IsChair(c.id) {
			r.ReleaseChair(c.id)
			h.broadcastState(r.Code)
		}
	}
	h.registry.UnbindSession(c.id)
}

// broadcastState computes a fresh snapshot of code's room and publishes it
// to every session bound to that room (room/{code}/state, §4.4). If the
// room has vanished between the triggering command and this call (the
// eviction race of §9), a ROOM_DESTROYED notice is published instead.
func (h *Hub) broadcastState(code types.RoomCode) {
	r := h.registry.Find(code)
	if r == nil {
		h.broadcastDestroyed(code, "This room no longer exists.", "evicted")
		return
	}

	snap := r.Snapshot()
	frame := outboundFrame{Kind: outboundState, RoomCode: string(code), Payload: snap}
	metrics.BroadcastsTotal.WithLabelValues(string(outboundState)).Inc()
	metrics.QueueDepth.WithLabelValues(string(code)).Set(float64(len(snap.Queue)))

	for _, sid := range h.registry.SessionsOf(code) {
		if c := h.clientByID(sid); c != nil {
			c.deliver(frame)
		}
	}
}

// broadcastDestroyed publishes a room-destroyed notice to every subscriber
// of code, then unbinds them and removes the room from the registry. reason
// labels the RoomsDestroyedTotal metric ("chair", "evicted", ...).
func (h *Hub) broadcastDestroyed(code types.RoomCode, message, reason string) {
	frame := outboundFrame{
		Kind:     outboundDestroyed,
		RoomCode: string(code),
		Payload:  destroyedPayload{Message: message, LandingURL: h.landingURL},
	}
	metrics.BroadcastsTotal.WithLabelValues(string(outboundDestroyed)).Inc()

	sessions := h.registry.SessionsOf(code)
	for _, sid := range sessions {
		if c := h.clientByID(sid); c != nil {
			c.deliver(frame)
		}
		h.registry.UnbindSession(sid)
	}
	h.registry.Destroy(code)
	metrics.RoomsDestroyedTotal.WithLabelValues(reason).Inc()
}

// sendChairAssumed delivers the targeted chairAssumed reply to one client.
func (h *Hub) sendChairAssumed(c *Client, roomCode types.RoomCode, success bool, requestID string) {
	c.deliver(outboundFrame{
		Kind:     outboundChairAssumed,
		RoomCode: string(roomCode),
		Payload:  chairAssumedPayload{Success: success, RequestID: requestID},
	})
}

// Shutdown closes every live client connection. There is nothing to persist
// (§1 Non-goals): process exit simply drops all in-memory state.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.conn.Close()
	}
	return nil
}
