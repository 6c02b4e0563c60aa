package room

import "github.com/opengavel/roomserver/internal/v1/types"

// Snapshot returns the immutable, authoritative view of the room:
// a defensive copy of the queue, the current speaker (if any), chair
// occupancy, the derived poll view, and the room configuration.
func (r *Room) Snapshot() types.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	queue := make([]types.Participant, len(r.queue))
	copy(queue, r.queue)

	var current *types.CurrentSpeaker
	if r.current != nil {
		c := *r.current
		current = &c
	}

	return types.Snapshot{
		Queue:           queue,
		Current:         current,
		MeetingStartSec: r.CreatedAtSec,
		DefaultLimitSec: r.defaultLimitSec,
		RoomCode:        r.Code,
		ChairOccupied:   r.hasChair,
		PollState:       r.pollView(),
		RoomConfig:      r.config,
	}
}
