package room

import (
	"strings"
	"time"

	"github.com/opengavel/roomserver/internal/v1/types"
)

// AddToQueue appends name to the speak queue unless it already appears as
// the current speaker or anywhere in the queue (case-insensitive). name is
// assumed to already be validated and trimmed by the caller (§6.2); this
// method only enforces the uniqueness invariant.
func (r *Room) AddToQueue(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil && sameName(r.current.Participant.Name, name) {
		return
	}
	for _, p := range r.queue {
		if sameName(p.Name, name) {
			return
		}
	}

	r.queue = append(r.queue, types.Participant{
		ID:             newParticipantID(),
		Name:           name,
		RequestedAtSec: time.Now().Unix(),
	})
}

// Withdraw removes the first queue entry whose name matches
// case-insensitively. It has no effect if no such entry exists, and never
// touches the current speaker.
func (r *Room) Withdraw(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.queue {
		if sameName(p.Name, name) {
			r.queue = append(r.queue[:i], r.queue[i+1:]...)
			return
		}
	}
}

// NextParticipant clears the current speaker and, if the queue is
// non-empty, promotes its head to current with a freshly-started timer at
// the room's default limit. Authorization (chair-only) is enforced by the
// caller.
func (r *Room) NextParticipant() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = nil
	if len(r.queue) == 0 {
		return
	}

	head := r.queue[0]
	r.queue = r.queue[1:]
	r.current = &types.CurrentSpeaker{
		Participant:  head,
		StartedAtSec: time.Now().Unix(),
		ElapsedMs:    0,
		Running:      true,
		LimitSec:     r.defaultLimitSec,
	}
}

// queueNames returns the lower-cased names currently in the queue, for
// invariant checks and tests.
func (r *Room) queueNames() []string {
	names := make([]string, 0, len(r.queue))
	for _, p := range r.queue {
		names = append(names, strings.ToLower(p.Name))
	}
	return names
}
