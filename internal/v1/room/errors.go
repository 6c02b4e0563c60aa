package room

import (
	"errors"
	"fmt"

	"github.com/opengavel/roomserver/internal/v1/types"
)

// Sentinel errors returned from Room and Registry operations. The
// dispatcher is the only layer that translates these into wire envelopes;
// Room methods never panic and never write to a transport directly.
var (
	// ErrRoomNotFound is returned when a code resolves to no live room.
	ErrRoomNotFound = errors.New("room not found")

	// ErrChairOccupied is returned from AssumeChair when another session
	// already holds the chair.
	ErrChairOccupied = errors.New("chair already occupied")
)

// ChairAccessDeniedError carries the offending session id for a
// chair-only operation attempted by a non-chair session.
type ChairAccessDeniedError struct {
	SessionID types.SessionID
	RoomCode  types.RoomCode
}

func (e *ChairAccessDeniedError) Error() string {
	return fmt.Sprintf("session %s is not chair of room %s", e.SessionID, e.RoomCode)
}

// NewChairAccessDeniedError builds a ChairAccessDeniedError for the given
// session and room.
func NewChairAccessDeniedError(sessionID types.SessionID, roomCode types.RoomCode) *ChairAccessDeniedError {
	return &ChairAccessDeniedError{SessionID: sessionID, RoomCode: roomCode}
}

// IsChairAccessDenied reports whether err is a *ChairAccessDeniedError.
func IsChairAccessDenied(err error) bool {
	var target *ChairAccessDeniedError
	return errors.As(err, &target)
}
