package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RegistryStats reports the room registry's current occupancy. Satisfied by
// *registry.Registry; kept as an interface so health stays independent of
// the registry package.
type RegistryStats interface {
	Len() int
	MaxRooms() int
}

// Handler manages health check endpoints.
type Handler struct {
	registry RegistryStats
}

// NewHandler creates a new health check handler. registry may be nil, in
// which case readiness omits the registry check and reports ready.
func NewHandler(registry RegistryStats) *Handler {
	return &Handler{registry: registry}
}

// LivenessResponse represents the liveness probe response.
type LivenessResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse represents the readiness probe response.
type ReadinessResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp string            `json:"timestamp"`
}

// Liveness handles the liveness probe endpoint.
// GET /healthz
// Returns 200 if the process is alive. No dependency checks: the room
// registry lives in this process's memory, so there is nothing else to
// reach out to. Contract is §6.1's literal {status:"ok"}.
func (h *Handler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, LivenessResponse{Status: "ok"})
}

// Readiness handles the readiness probe endpoint.
// GET /healthz/ready
// Returns 503 once the registry is at capacity, since from then on every
// new room creation evicts the oldest live room.
func (h *Handler) Readiness(c *gin.Context) {
	checks := make(map[string]string)
	status := "ready"
	statusCode := http.StatusOK

	if h.registry != nil {
		occupancy := "healthy"
		if h.registry.Len() >= h.registry.MaxRooms() {
			occupancy = "at_capacity"
			status = "unavailable"
			statusCode = http.StatusServiceUnavailable
		}
		checks["registry"] = occupancy
	}

	response := ReadinessResponse{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(statusCode, response)
}
