package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengavel/roomserver/internal/v1/types"
)

// S4 — Poll lifecycle.
func TestPollLifecycleYesNo(t *testing.T) {
	r := New("ABCD")
	r.StartPoll("Proceed?", types.PollTypeYesNo, nil, 0)

	assert.True(t, r.CastVote("s1", "YES"))
	assert.True(t, r.CastVote("s2", "YES"))
	assert.True(t, r.CastVote("s3", "YES"))
	assert.True(t, r.CastVote("s4", "NO"))

	r.EndPoll()
	view := r.Snapshot().PollState
	require.NotNil(t, view)
	require.NotNil(t, view.LastResults)
	assert.Equal(t, 3, view.LastResults.Tallies["YES"])
	assert.Equal(t, 1, view.LastResults.Tallies["NO"])
	assert.Equal(t, 4, view.LastResults.TotalVotes)

	r.ClosePoll()
	view = r.Snapshot().PollState
	require.NotNil(t, view)
	assert.Equal(t, types.PollStatusClosed, view.Status)
	require.NotNil(t, view.LastResults)
	assert.Equal(t, 3, view.LastResults.Tallies["YES"])

	// Starting another poll doesn't clobber lastResults until it ends.
	r.StartPoll("Again?", types.PollTypeYesNo, nil, 0)
	view = r.Snapshot().PollState
	require.NotNil(t, view)
	assert.Equal(t, types.PollStatusActive, view.Status)
	require.NotNil(t, view.LastResults)
	assert.Equal(t, 3, view.LastResults.Tallies["YES"])
}

// S5 — Vote change.
func TestCastVoteReplacesPriorBallot(t *testing.T) {
	r := New("ABCD")
	r.StartPoll("Proceed?", types.PollTypeYesNo, nil, 0)

	assert.True(t, r.CastVote("x", "YES"))
	assert.True(t, r.CastVote("x", "NO"))

	view := r.Snapshot().PollState
	require.NotNil(t, view)
	assert.Equal(t, 0, view.Tallies["YES"])
	assert.Equal(t, 1, view.Tallies["NO"])
}

// S6 — MULTISELECT_MULTIPLE cap.
func TestMultiselectMultipleCap(t *testing.T) {
	r := New("ABCD")
	r.StartPoll("Pick two", types.PollTypeMultiselectMultiple, []string{"a", "b", "c"}, 2)

	assert.True(t, r.CastVote("x", "OPT_0"))
	assert.True(t, r.CastVote("x", "OPT_1"))
	assert.False(t, r.CastVote("x", "OPT_2")) // cap reached, rejected

	assert.True(t, r.CastVote("x", "OPT_0")) // toggled off
	assert.True(t, r.CastVote("x", "OPT_2")) // now accepted

	view := r.Snapshot().PollState
	require.NotNil(t, view)
	assert.Equal(t, 0, view.Tallies["OPT_0"])
	assert.Equal(t, 1, view.Tallies["OPT_1"])
	assert.Equal(t, 1, view.Tallies["OPT_2"])
}

func TestCastVoteUnknownKeyRejected(t *testing.T) {
	r := New("ABCD")
	r.StartPoll("Proceed?", types.PollTypeYesNo, nil, 0)
	assert.False(t, r.CastVote("x", "MAYBE"))
}

func TestCastVoteOnlyAcceptedWhileActive(t *testing.T) {
	r := New("ABCD")
	assert.False(t, r.CastVote("x", "YES")) // NONE status

	r.StartPoll("Proceed?", types.PollTypeYesNo, nil, 0)
	r.EndPoll()
	assert.False(t, r.CastVote("x", "YES")) // ENDED status
}

func TestIllegalPollTransitionsAreNoOps(t *testing.T) {
	r := New("ABCD")

	// endPoll when not ACTIVE.
	r.EndPoll()
	assert.Nil(t, r.Snapshot().PollState)

	// closePoll when not ENDED.
	r.StartPoll("Q", types.PollTypeYesNo, nil, 0)
	r.ClosePoll()
	view := r.Snapshot().PollState
	require.NotNil(t, view)
	assert.Equal(t, types.PollStatusActive, view.Status)
}

func TestCancelPollDiscardsLastResults(t *testing.T) {
	r := New("ABCD")
	r.StartPoll("Q", types.PollTypeYesNo, nil, 0)
	r.CastVote("x", "YES")
	r.EndPoll()
	r.CancelPoll()

	assert.Nil(t, r.Snapshot().PollState)
}

// Testable Property 7: ballot accounting.
func TestPollBallotAccounting(t *testing.T) {
	r := New("ABCD")
	r.StartPoll("Pick", types.PollTypeMultiselectMultiple, []string{"a", "b", "c"}, 2)

	r.CastVote("s1", "OPT_0")
	r.CastVote("s1", "OPT_1")
	r.CastVote("s2", "OPT_0")
	r.CastVote("s3", "OPT_2")
	r.CastVote("s3", "OPT_2") // toggled off

	view := r.Snapshot().PollState
	require.NotNil(t, view)
	total := 0
	for _, v := range view.Tallies {
		total += v
	}
	assert.Equal(t, 3, total) // s1: 2 selections, s2: 1, s3: 0
}

func TestGradientsOptionKeys(t *testing.T) {
	r := New("ABCD")
	r.StartPoll("How much?", types.PollTypeGradients, nil, 0)

	assert.True(t, r.CastVote("x", "OPT_1"))
	assert.True(t, r.CastVote("x", "OPT_8"))
	assert.False(t, r.CastVote("x", "OPT_9"))
}
