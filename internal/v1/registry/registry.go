// Package registry implements the bounded room registry: the mapping from
// room code to *room.Room, a secondary time-ordered index for O(log n)
// oldest-room eviction, and the session-to-room-code index.
package registry

import (
	"container/heap"
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/opengavel/roomserver/internal/v1/metrics"
	"github.com/opengavel/roomserver/internal/v1/room"
	"github.com/opengavel/roomserver/internal/v1/types"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ123456789"
const codeLength = 4

// DefaultMaxRooms is the registry capacity used when none is configured
// (§6.4; the original has been deployed with both 2500 and 500000).
const DefaultMaxRooms = 2500

// Registry is the process-wide, bounded room directory. A single mutex
// guards both indices and the session index whenever consistency between
// them matters; primary-code lookups (Find) take the same lock since Go
// maps are not safe for concurrent read/write, but the critical section is
// a single map access and never blocks on I/O.
type Registry struct {
	mu sync.Mutex

	rooms    map[types.RoomCode]*room.Room
	order    *ageHeap
	entries  map[types.RoomCode]*ageEntry
	sessions map[types.SessionID]types.RoomCode

	maxRooms int
	counter  uint64
}

// New constructs an empty Registry bounded to maxRooms. A non-positive
// maxRooms falls back to DefaultMaxRooms.
func New(maxRooms int) *Registry {
	if maxRooms <= 0 {
		maxRooms = DefaultMaxRooms
	}
	order := &ageHeap{}
	heap.Init(order)
	return &Registry{
		rooms:    make(map[types.RoomCode]*room.Room),
		order:    order,
		entries:  make(map[types.RoomCode]*ageEntry),
		sessions: make(map[types.SessionID]types.RoomCode),
		maxRooms: maxRooms,
	}
}

// MaxRooms returns the registry's configured capacity.
func (reg *Registry) MaxRooms() int {
	return reg.maxRooms
}

// Len returns the current number of rooms in the registry.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// Create returns the existing room for code, or creates and inserts a
// fresh one. If the registry is at capacity and code is absent, the
// oldest room (by the tie-broken creation-time index) is evicted first,
// along with every session bound to it.
func (reg *Registry) Create(code types.RoomCode) *room.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if existing, ok := reg.rooms[code]; ok {
		return existing
	}

	if len(reg.rooms) >= reg.maxRooms {
		reg.evictOldestLocked()
	}

	r := room.New(code)
	reg.counter++
	reg.rooms[code] = r
	entry := &ageEntry{
		code:     code,
		nanos:    r.CreatedAtSec * int64(time.Second),
		sequence: reg.counter,
	}
	reg.entries[code] = entry
	heap.Push(reg.order, entry)
	metrics.ActiveRooms.Set(float64(len(reg.rooms)))
	return r
}

// evictOldestLocked removes the room with the smallest (createdAtNanos,
// sequence) key and every session binding that pointed to it. Caller must
// hold reg.mu.
func (reg *Registry) evictOldestLocked() {
	if reg.order.Len() == 0 {
		return
	}
	oldest := (*reg.order)[0]
	reg.destroyLocked(oldest.code)
}

// Find returns the room for code, or nil if absent. It never creates.
func (reg *Registry) Find(code types.RoomCode) *room.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[code]
}

// FindOrFail returns the room for code, or room.ErrRoomNotFound if absent.
func (reg *Registry) FindOrFail(code types.RoomCode) (*room.Room, error) {
	if r := reg.Find(code); r != nil {
		return r, nil
	}
	return nil, room.ErrRoomNotFound
}

// BindSession records sessionID's room as code, overwriting any previous
// binding for that session.
func (reg *Registry) BindSession(sessionID types.SessionID, code types.RoomCode) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.sessions[sessionID] = code
}

// UnbindSession removes sessionID's room binding, if any.
func (reg *Registry) UnbindSession(sessionID types.SessionID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.sessions, sessionID)
}

// RoomOfSession resolves sessionID's bound room. If the binding points to
// a room that no longer exists, the stale entry is pruned and nil is
// returned (Invariant 6).
func (reg *Registry) RoomOfSession(sessionID types.SessionID) *room.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, ok := reg.sessions[sessionID]
	if !ok {
		return nil
	}
	r, ok := reg.rooms[code]
	if !ok {
		delete(reg.sessions, sessionID)
		return nil
	}
	return r
}

// Destroy removes the room for code, its time-order entry, and every
// session binding that pointed to it. No-op if code is absent.
func (reg *Registry) Destroy(code types.RoomCode) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.destroyLocked(code)
}

// destroyLocked removes code from every index, including its entry in the
// time-ordered heap. Caller must hold reg.mu.
func (reg *Registry) destroyLocked(code types.RoomCode) {
	if _, ok := reg.rooms[code]; !ok {
		return
	}
	delete(reg.rooms, code)
	if entry, ok := reg.entries[code]; ok {
		heap.Remove(reg.order, entry.index)
		delete(reg.entries, code)
	}
	for sid, c := range reg.sessions {
		if c == code {
			delete(reg.sessions, sid)
		}
	}
	metrics.ActiveRooms.Set(float64(len(reg.rooms)))
}

// SessionsOf returns every session id currently bound to code.
func (reg *Registry) SessionsOf(code types.RoomCode) []types.SessionID {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var sessions []types.SessionID
	for sid, c := range reg.sessions {
		if c == code {
			sessions = append(sessions, sid)
		}
	}
	return sessions
}

// NewCode generates a fresh, registry-unique room code by uniform random
// sampling over the alphabet A-Z, 1-9, retrying on collision. It never
// observes exhaustion at documented capacities: the address space
// (35^4 ≈ 1.5M) vastly exceeds any configured maxRooms.
func (reg *Registry) NewCode() (types.RoomCode, error) {
	for {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		if reg.Find(code) == nil {
			return code, nil
		}
	}
}

// maxUnbiasedByte is the largest multiple of len(codeAlphabet) that fits in
// a byte; bytes at or above it are rejected so codeAlphabet[b%len] stays
// uniform over the alphabet instead of favoring its low end.
var maxUnbiasedByte = byte(256 - 256%len(codeAlphabet))

func randomCode() (types.RoomCode, error) {
	var sb strings.Builder
	sb.Grow(codeLength)

	buf := make([]byte, 1)
	for sb.Len() < codeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		if buf[0] >= maxUnbiasedByte {
			continue
		}
		sb.WriteByte(codeAlphabet[int(buf[0])%len(codeAlphabet)])
	}
	return types.RoomCode(sb.String()), nil
}

// Normalize canonicalizes a client-supplied room code: uppercase, then
// rewrite the glyph '0' to 'O'. Normalize is idempotent.
func Normalize(code string) types.RoomCode {
	upper := strings.ToUpper(code)
	return types.RoomCode(strings.ReplaceAll(upper, "0", "O"))
}
