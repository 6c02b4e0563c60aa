// Package room implements the Room aggregate: the stateful unit that owns
// a meeting's speak queue, current speaker and timer, chair binding, poll
// state machine, and configuration. Every mutator runs under the Room's
// own exclusion guard; the registry and dispatcher never reach into a
// Room's fields directly.
package room

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opengavel/roomserver/internal/v1/types"
)

const (
	// MinLimitSec and MaxLimitSec bound both defaultLimitSec and a
	// speaker's per-turn limitSec.
	MinLimitSec = 10
	MaxLimitSec = 3600

	// DefaultLimitSec is the initial speaking-time limit for a fresh room.
	DefaultLimitSec = 180
)

// Room is the stateful unit for a single meeting. All fields below mu are
// only ever touched while mu is held.
type Room struct {
	Code         types.RoomCode
	CreatedAtSec int64

	mu sync.Mutex

	queue           []types.Participant
	current         *types.CurrentSpeaker
	defaultLimitSec int
	chairSessionID  types.SessionID
	hasChair        bool
	config          types.RoomConfig
	poll            pollState
}

// New constructs a Room for code, stamped with the current wall-clock
// second as its creation time and registry ordering key.
func New(code types.RoomCode) *Room {
	return &Room{
		Code:            code,
		CreatedAtSec:    time.Now().Unix(),
		defaultLimitSec: DefaultLimitSec,
		poll:            pollState{status: types.PollStatusNone},
	}
}

// clampLimit clamps seconds into [MinLimitSec, MaxLimitSec].
func clampLimit(seconds int) int {
	if seconds < MinLimitSec {
		return MinLimitSec
	}
	if seconds > MaxLimitSec {
		return MaxLimitSec
	}
	return seconds
}

// sameName reports whether two display names match case-insensitively.
func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// newParticipantID mints a fresh opaque participant handle.
func newParticipantID() types.ParticipantID {
	return types.ParticipantID(uuid.NewString())
}
