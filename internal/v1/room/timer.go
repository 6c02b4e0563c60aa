package room

import "time"

// StartTimer resumes the current speaker's timer. No-op if there is no
// current speaker or the timer is already running.
func (r *Room) StartTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || r.current.Running {
		return
	}
	r.current.StartedAtSec = time.Now().Unix()
	r.current.Running = true
}

// PauseTimer freezes the current speaker's timer, folding the elapsed
// running interval into ElapsedMs. No-op if there is no current speaker or
// the timer is already paused.
func (r *Room) PauseTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil || !r.current.Running {
		return
	}
	r.current.ElapsedMs += (time.Now().Unix() - r.current.StartedAtSec) * 1000
	r.current.Running = false
}

// ResetTimer zeroes the current speaker's elapsed time and restarts it
// running from now. No-op if there is no current speaker.
func (r *Room) ResetTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return
	}
	r.current.ElapsedMs = 0
	r.current.StartedAtSec = time.Now().Unix()
	r.current.Running = true
}

// UpdateLimit clamps seconds into [MinLimitSec, MaxLimitSec] and applies it
// as the room's default for future speakers; if a speaker currently holds
// the floor, their LimitSec is updated too, preserving ElapsedMs,
// StartedAtSec, and Running.
func (r *Room) UpdateLimit(seconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clamped := clampLimit(seconds)
	r.defaultLimitSec = clamped
	if r.current != nil {
		r.current.LimitSec = clamped
	}
}
