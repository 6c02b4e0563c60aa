// Package httpapi implements the REST surface of §6.1: room creation and
// existence probes, the chair/participant deep-link redirect shims, and the
// metadata lookup endpoints. None of it touches a live room's state beyond
// existence — every mutating operation rides the duplex channel instead
// (internal/v1/session).
package httpapi

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/opengavel/roomserver/internal/v1/registry"
)

// Handler serves the room-management REST endpoints.
type Handler struct {
	registry  *registry.Registry
	chairPath string
	roomPath  string
}

// NewHandler constructs a Handler bound to reg. chairPath and roomPath are
// the static view pages the redirect shims send clients to, each receiving
// the normalized room code as a `room` query parameter.
func NewHandler(reg *registry.Registry, chairPath, roomPath string) *Handler {
	return &Handler{registry: reg, chairPath: chairPath, roomPath: roomPath}
}

type roomResponse struct {
	RoomCode string `json:"roomCode"`
	Exists   bool   `json:"exists"`
}

// CreateRoom handles POST /rooms: mints a fresh unique code and creates the
// room eagerly, so the caller can hand the code to a chair and a set of
// participants before any of them connects.
func (h *Handler) CreateRoom(c *gin.Context) {
	code, err := h.registry.NewCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to allocate room code"})
		return
	}
	h.registry.Create(code)
	c.JSON(http.StatusOK, roomResponse{RoomCode: string(code), Exists: true})
}

// GetRoom handles GET /rooms/{code}: reports whether a (normalized) code
// currently names a live room, without creating one.
func (h *Handler) GetRoom(c *gin.Context) {
	code := registry.Normalize(c.Param("code"))
	exists := h.registry.Find(code) != nil
	c.JSON(http.StatusOK, roomResponse{RoomCode: string(code), Exists: exists})
}

// RedirectChair handles GET /chair/{code}: a 302 to the chair-view static
// page carrying the normalized code as a query parameter (§6.1).
func (h *Handler) RedirectChair(c *gin.Context) {
	h.redirect(c, h.chairPath)
}

// RedirectRoom handles GET /room/{code}: a 302 to the participant-view
// static page carrying the normalized code as a query parameter (§6.1).
func (h *Handler) RedirectRoom(c *gin.Context) {
	h.redirect(c, h.roomPath)
}

func (h *Handler) redirect(c *gin.Context, base string) {
	code := registry.Normalize(c.Param("code"))
	target := base + "?room=" + url.QueryEscape(string(code))
	c.Redirect(http.StatusFound, target)
}
