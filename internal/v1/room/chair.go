package room

import "github.com/opengavel/roomserver/internal/v1/types"

// AssumeChair grants the chair role to sessionID. Re-assuming by the
// current chair is a no-op success; attempting to take the chair from
// another session returns ErrChairOccupied.
func (r *Room) AssumeChair(sessionID types.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasChair && r.chairSessionID == sessionID {
		return nil
	}
	if r.hasChair {
		return ErrChairOccupied
	}
	r.chairSessionID = sessionID
	r.hasChair = true
	return nil
}

// ReleaseChair clears the chair binding only if sessionID currently holds
// it. No-op (and no error) otherwise.
func (r *Room) ReleaseChair(sessionID types.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hasChair && r.chairSessionID == sessionID {
		r.hasChair = false
		r.chairSessionID = ""
	}
}

// IsChair reports whether sessionID currently holds the chair.
func (r *Room) IsChair(sessionID types.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasChair && r.chairSessionID == sessionID
}

// RequireChair returns a *ChairAccessDeniedError if sessionID does not
// currently hold the chair. Intended for chair-only operations that need
// to signal the offending session back through the dispatcher.
func (r *Room) RequireChair(sessionID types.SessionID) error {
	r.mu.Lock()
	ok := r.hasChair && r.chairSessionID == sessionID
	code := r.Code
	r.mu.Unlock()

	if ok {
		return nil
	}
	return NewChairAccessDeniedError(sessionID, code)
}

// ChairOccupied reports whether any session currently holds the chair.
func (r *Room) ChairOccupied() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasChair
}
