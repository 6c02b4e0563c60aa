package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerLifecycle(t *testing.T) {
	r := New("ABCD")

	// No-op when there is no current speaker.
	r.StartTimer()
	r.PauseTimer()
	r.ResetTimer()
	assert.Nil(t, r.Snapshot().Current)

	r.AddToQueue("Alice")
	r.NextParticipant()

	snap := r.Snapshot()
	require.NotNil(t, snap.Current)
	assert.True(t, snap.Current.Running)
	assert.Equal(t, int64(0), snap.Current.ElapsedMs)

	// Start on an already-running timer is a no-op.
	r.StartTimer()
	assert.True(t, r.Snapshot().Current.Running)

	r.PauseTimer()
	snap = r.Snapshot()
	assert.False(t, snap.Current.Running)

	// Pause on an already-paused timer is a no-op.
	r.PauseTimer()
	assert.False(t, r.Snapshot().Current.Running)

	r.ResetTimer()
	snap = r.Snapshot()
	assert.True(t, snap.Current.Running)
	assert.Equal(t, int64(0), snap.Current.ElapsedMs)
}

// Testable Property 2: timer accounting within +/-1000ms tolerance.
func TestTimerAccounting(t *testing.T) {
	r := New("ABCD")
	r.AddToQueue("Alice")
	r.NextParticipant()

	time.Sleep(1100 * time.Millisecond)
	r.PauseTimer()

	snap := r.Snapshot()
	assert.InDelta(t, 1000, snap.Current.ElapsedMs, 1000)
}

func TestUpdateLimit(t *testing.T) {
	r := New("ABCD")

	r.UpdateLimit(5) // below MinLimitSec, clamps to 10
	assert.Equal(t, MinLimitSec, r.Snapshot().DefaultLimitSec)

	r.UpdateLimit(999999) // above MaxLimitSec, clamps to 3600
	assert.Equal(t, MaxLimitSec, r.Snapshot().DefaultLimitSec)

	r.UpdateLimit(60)
	assert.Equal(t, 60, r.Snapshot().DefaultLimitSec)

	r.AddToQueue("Alice")
	r.NextParticipant()
	r.PauseTimer()
	before := r.Snapshot().Current

	r.UpdateLimit(120)
	after := r.Snapshot().Current
	require.NotNil(t, after)
	assert.Equal(t, 120, after.LimitSec)
	assert.Equal(t, before.ElapsedMs, after.ElapsedMs)
	assert.Equal(t, before.StartedAtSec, after.StartedAtSec)
	assert.Equal(t, before.Running, after.Running)
}
