package room

import "github.com/opengavel/roomserver/internal/v1/types"

// MaxTopicLen is the maximum length of the free-text topic/config fields.
const MaxTopicLen = 100

// UpdateConfig applies the given fields to the room's configuration.
// Every field is individually optional: an empty string leaves the
// existing value in place, so a field that has been set cannot be cleared
// through this method. Enum fields that fail to parse to a known value are
// turned into "" (unset) by the caller, never by Room.
func (r *Room) UpdateConfig(topic string, goal types.MeetingGoal, format types.ParticipationFormat, rule types.DecisionRule, deliverable types.Deliverable) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if topic != "" {
		r.config.Topic = topic
	}
	if goal != "" {
		r.config.MeetingGoal = goal
	}
	if format != "" {
		r.config.ParticipationFormat = format
	}
	if rule != "" {
		r.config.DecisionRule = rule
	}
	if deliverable != "" {
		r.config.Deliverable = deliverable
	}
}

// Config returns a copy of the room's current configuration.
func (r *Room) Config() types.RoomConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}
