package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengavel/roomserver/internal/v1/room"
	"github.com/opengavel/roomserver/internal/v1/types"
)

func TestCreateReturnsExistingRoom(t *testing.T) {
	reg := New(10)
	r1 := reg.Create("ABCD")
	r2 := reg.Create("ABCD")
	assert.Same(t, r1, r2)
}

func TestFindNeverCreates(t *testing.T) {
	reg := New(10)
	assert.Nil(t, reg.Find("ABCD"))
	assert.Equal(t, 0, reg.Len())
}

func TestFindOrFail(t *testing.T) {
	reg := New(10)
	_, err := reg.FindOrFail("ABCD")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)

	reg.Create("ABCD")
	r, err := reg.FindOrFail("ABCD")
	assert.NoError(t, err)
	assert.NotNil(t, r)
}

func TestBindUnbindSession(t *testing.T) {
	reg := New(10)
	reg.Create("ABCD")

	reg.BindSession("s1", "ABCD")
	r := reg.RoomOfSession("s1")
	require.NotNil(t, r)
	assert.Equal(t, types.RoomCode("ABCD"), r.Code)

	// Rebinding overwrites.
	reg.Create("WXYZ")
	reg.BindSession("s1", "WXYZ")
	r = reg.RoomOfSession("s1")
	require.NotNil(t, r)
	assert.Equal(t, types.RoomCode("WXYZ"), r.Code)

	reg.UnbindSession("s1")
	assert.Nil(t, reg.RoomOfSession("s1"))
}

func TestRoomOfSessionPrunesStaleBinding(t *testing.T) {
	reg := New(10)
	reg.Create("ABCD")
	reg.BindSession("s1", "ABCD")

	reg.Destroy("ABCD")
	assert.Nil(t, reg.RoomOfSession("s1"))

	// Binding should now be pruned -- rebinding sessions list is empty.
	assert.Empty(t, reg.SessionsOf("ABCD"))
}

func TestDestroyRemovesRoomAndSessions(t *testing.T) {
	reg := New(10)
	reg.Create("ABCD")
	reg.BindSession("s1", "ABCD")
	reg.BindSession("s2", "ABCD")

	reg.Destroy("ABCD")

	assert.Nil(t, reg.Find("ABCD"))
	assert.Empty(t, reg.SessionsOf("ABCD"))
	assert.Nil(t, reg.RoomOfSession("s1"))
	assert.Nil(t, reg.RoomOfSession("s2"))
}

func TestSessionsOf(t *testing.T) {
	reg := New(10)
	reg.Create("ABCD")
	reg.BindSession("s1", "ABCD")
	reg.BindSession("s2", "ABCD")

	sessions := reg.SessionsOf("ABCD")
	assert.Len(t, sessions, 2)
}

// S7 / Testable Property 5 -- registry bound and eviction order.
func TestEvictionAtCapacity(t *testing.T) {
	reg := New(2)
	reg.Create("R1")
	reg.BindSession("s1", "R1")
	reg.Create("R2")
	reg.Create("R3")

	assert.Equal(t, 2, reg.Len())
	assert.Nil(t, reg.Find("R1"))
	assert.NotNil(t, reg.Find("R2"))
	assert.NotNil(t, reg.Find("R3"))

	// A session bound to the evicted room resolves to ROOM_NOT_FOUND.
	assert.Nil(t, reg.RoomOfSession("s1"))
}

func TestEvictionTieBreaksBySequenceWithinSameSecond(t *testing.T) {
	reg := New(1)
	reg.Create("R1")
	reg.Create("R2") // same wall-clock second in practice; must still evict exactly one

	assert.Equal(t, 1, reg.Len())
	assert.Nil(t, reg.Find("R1"))
	assert.NotNil(t, reg.Find("R2"))
}

func TestLenNeverExceedsMaxRooms(t *testing.T) {
	reg := New(3)
	codes := []types.RoomCode{"AAAA", "BBBB", "CCCC", "DDDD", "EEEE", "FFFF"}
	for _, c := range codes {
		reg.Create(c)
		assert.LessOrEqual(t, reg.Len(), 3)
	}
}

func TestNewCodeAlphabetClosure(t *testing.T) {
	reg := New(10)
	for i := 0; i < 200; i++ {
		code, err := reg.NewCode()
		require.NoError(t, err)
		assert.Len(t, code, codeLength)
		for _, ch := range string(code) {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected character %q", ch)
		}
	}
}

func TestNewCodeIsUnique(t *testing.T) {
	reg := New(10)
	code, err := reg.NewCode()
	require.NoError(t, err)
	reg.Create(code)

	for i := 0; i < 50; i++ {
		other, err := reg.NewCode()
		require.NoError(t, err)
		assert.NotEqual(t, code, other)
	}
}

func TestNormalizeIdempotentAndZeroRewrite(t *testing.T) {
	assert.Equal(t, types.RoomCode("O"), Normalize("0"))
	assert.Equal(t, Normalize("abcd"), Normalize(string(Normalize("abcd"))))
	assert.Equal(t, types.RoomCode("AB1C"), Normalize("ab1c"))
	assert.Equal(t, types.RoomCode("OOOO"), Normalize("0000"))
}
