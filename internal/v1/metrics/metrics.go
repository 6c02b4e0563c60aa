package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for the room coordination server.
//
// Naming convention: namespace_subsystem_name
//   - namespace: room_coordinator (application-level grouping)
//   - subsystem: session, room, dispatch, broadcast (feature-level grouping)
//   - name: specific metric (connections_active, events_total, etc.)
//
// Metric Types:
//   - Gauge: current state (connections, rooms, queue depth)
//   - Counter: cumulative events (commands dispatched, errors)
//   - Histogram: latency distributions (dispatch processing time)

var (
	// ActiveSessions tracks the current number of active duplex connections.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "room_coordinator",
		Subsystem: "session",
		Name:      "connections_active",
		Help:      "Current number of active session connections",
	})

	// ActiveRooms tracks the current number of rooms held in the registry.
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "room_coordinator",
		Subsystem: "room",
		Name:      "rooms_active",
		Help:      "Current number of rooms in the registry",
	})

	// QueueDepth tracks the number of participants waiting in each room's
	// speak queue (GaugeVec keyed by room code).
	QueueDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "room_coordinator",
		Subsystem: "room",
		Name:      "queue_depth",
		Help:      "Number of participants waiting in a room's speak queue",
	}, []string{"room_code"})

	// CommandsTotal tracks the total number of dispatcher commands processed.
	CommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "room_coordinator",
		Subsystem: "dispatch",
		Name:      "commands_total",
		Help:      "Total commands processed by the dispatcher",
	}, []string{"command", "status"})

	// CommandProcessingDuration tracks the time spent dispatching a command.
	CommandProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "room_coordinator",
		Subsystem: "dispatch",
		Name:      "command_duration_seconds",
		Help:      "Time spent processing a dispatched command",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"command"})

	// BroadcastsTotal tracks the total number of state broadcasts sent to
	// room subscribers.
	BroadcastsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "room_coordinator",
		Subsystem: "broadcast",
		Name:      "messages_total",
		Help:      "Total broadcast messages published to room subscribers",
	}, []string{"topic_kind"})

	// RoomsDestroyedTotal tracks the total number of rooms destroyed, by reason.
	RoomsDestroyedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "room_coordinator",
		Subsystem: "room",
		Name:      "destroyed_total",
		Help:      "Total rooms destroyed, labeled by reason",
	}, []string{"reason"})
)

func IncSession() {
	ActiveSessions.Inc()
}

func DecSession() {
	ActiveSessions.Dec()
}
