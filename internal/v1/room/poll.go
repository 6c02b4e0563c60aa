package room

import (
	"fmt"

	"k8s.io/utils/set"

	"github.com/opengavel/roomserver/internal/v1/types"
)

// pollState is the internal representation of a room's poll. It is richer
// than the derived types.PollState view returned to clients: it keeps the
// per-session ballots needed to replace or toggle a vote.
type pollState struct {
	status              types.PollStatus
	question            string
	pollType            types.PollType
	options             []string
	votesPerParticipant int
	tallies             map[string]int

	// singleBallots holds one selected option key per session, for every
	// poll type except MULTISELECT_MULTIPLE.
	singleBallots map[types.SessionID]string

	// multiBallots holds a session's set of selected option keys, used
	// only for MULTISELECT_MULTIPLE.
	multiBallots map[types.SessionID]set.Set[string]

	lastResults *types.PollResults
}

// optionKeys derives the fixed or labeled option-key vocabulary for a poll
// type, per §3's key-naming rules.
func optionKeys(pollType types.PollType, options []string) []string {
	switch pollType {
	case types.PollTypeYesNo:
		return []string{"YES", "NO"}
	case types.PollTypeGradients:
		keys := make([]string, 8)
		for i := range keys {
			keys[i] = fmt.Sprintf("OPT_%d", i+1)
		}
		return keys
	case types.PollTypeMultiselect, types.PollTypeMultiselectMultiple:
		keys := make([]string, len(options))
		for i := range options {
			keys[i] = fmt.Sprintf("OPT_%d", i)
		}
		return keys
	default:
		return nil
	}
}

// StartPoll transitions the poll to ACTIVE from any status, resetting
// tallies and ballots. votesPerParticipant only applies to
// MULTISELECT_MULTIPLE and defaults to 1 for every other type.
func (r *Room) StartPoll(question string, pollType types.PollType, options []string, votesPerParticipant int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := optionKeys(pollType, options)
	tallies := make(map[string]int, len(keys))
	for _, k := range keys {
		tallies[k] = 0
	}

	if pollType != types.PollTypeMultiselectMultiple || votesPerParticipant < 1 {
		votesPerParticipant = 1
	}

	r.poll = pollState{
		status:              types.PollStatusActive,
		question:            question,
		pollType:            pollType,
		options:             options,
		votesPerParticipant: votesPerParticipant,
		tallies:             tallies,
		singleBallots:       make(map[types.SessionID]string),
		multiBallots:        make(map[types.SessionID]set.Set[string]),
		lastResults:         r.poll.lastResults,
	}
}

// CastVote records sessionID's ballot for key, accepted only while the
// poll is ACTIVE. Unknown keys are rejected. Returns true if the vote was
// applied.
func (r *Room) CastVote(sessionID types.SessionID, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poll.status != types.PollStatusActive {
		return false
	}
	if _, known := r.poll.tallies[key]; !known {
		return false
	}

	if r.poll.pollType == types.PollTypeMultiselectMultiple {
		return r.castMultiVote(sessionID, key)
	}
	return r.castSingleVote(sessionID, key)
}

func (r *Room) castSingleVote(sessionID types.SessionID, key string) bool {
	if prev, ok := r.poll.singleBallots[sessionID]; ok {
		r.poll.tallies[prev]--
	}
	r.poll.singleBallots[sessionID] = key
	r.poll.tallies[key]++
	return true
}

func (r *Room) castMultiVote(sessionID types.SessionID, key string) bool {
	selected, ok := r.poll.multiBallots[sessionID]
	if !ok {
		selected = set.New[string]()
		r.poll.multiBallots[sessionID] = selected
	}

	if selected.Has(key) {
		selected.Delete(key)
		r.poll.tallies[key]--
		return true
	}

	if selected.Len() >= r.poll.votesPerParticipant {
		return false
	}
	selected.Insert(key)
	r.poll.tallies[key]++
	return true
}

// EndPoll transitions ACTIVE -> ENDED, capturing the terminal tally into
// lastResults. No-op if the poll is not ACTIVE.
func (r *Room) EndPoll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poll.status != types.PollStatusActive {
		return
	}

	total := 0
	tallies := make(map[string]int, len(r.poll.tallies))
	for k, v := range r.poll.tallies {
		tallies[k] = v
		total += v
	}

	r.poll.status = types.PollStatusEnded
	r.poll.lastResults = &types.PollResults{
		Question:   r.poll.question,
		Type:       r.poll.pollType,
		Tallies:    tallies,
		TotalVotes: total,
		Options:    r.poll.options,
	}
}

// ClosePoll transitions ENDED -> CLOSED, clearing the live poll fields but
// preserving lastResults. No-op if the poll is not ENDED.
func (r *Room) ClosePoll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.poll.status != types.PollStatusEnded {
		return
	}

	r.poll = pollState{
		status:      types.PollStatusClosed,
		lastResults: r.poll.lastResults,
	}
}

// CancelPoll transitions any status back to NONE, discarding everything
// including lastResults.
func (r *Room) CancelPoll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.poll = pollState{status: types.PollStatusNone}
}

// pollView builds the derived, client-facing PollState projection per
// §4.2's view rules. Caller must hold r.mu.
func (r *Room) pollView() *types.PollState {
	p := r.poll

	switch p.status {
	case types.PollStatusActive, types.PollStatusEnded:
		if p.question == "" {
			if p.lastResults == nil {
				return nil
			}
			return &types.PollState{Status: p.status, LastResults: p.lastResults}
		}
		total := 0
		tallies := make(map[string]int, len(p.tallies))
		for k, v := range p.tallies {
			tallies[k] = v
			total += v
		}
		return &types.PollState{
			Status:              p.status,
			Question:            p.question,
			Type:                p.pollType,
			Tallies:             tallies,
			TotalVotes:          total,
			Options:             p.options,
			VotesPerParticipant: p.votesPerParticipant,
			LastResults:         p.lastResults,
		}
	case types.PollStatusClosed:
		if p.lastResults == nil {
			return nil
		}
		return &types.PollState{Status: types.PollStatusClosed, LastResults: p.lastResults}
	case types.PollStatusNone:
		if p.lastResults == nil {
			return nil
		}
		return &types.PollState{LastResults: p.lastResults}
	default:
		return nil
	}
}
