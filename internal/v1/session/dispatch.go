package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/opengavel/roomserver/internal/v1/logging"
	"github.com/opengavel/roomserver/internal/v1/metrics"
	"github.com/opengavel/roomserver/internal/v1/registry"
	"github.com/opengavel/roomserver/internal/v1/room"
	"github.com/opengavel/roomserver/internal/v1/types"
)

// dispatch implements the command-validation / authorization / broadcast
// loop of spec.md §4.3. It never panics: a malformed payload or an
// authorization failure is translated into a targeted error envelope, not
// a dropped connection.
func (h *Hub) dispatch(ctx context.Context, c *Client, frame Frame) {
	start := time.Now()
	status := "ok"
	defer func() {
		metrics.CommandsTotal.WithLabelValues(string(frame.Type), status).Inc()
		metrics.CommandProcessingDuration.WithLabelValues(string(frame.Type)).Observe(time.Since(start).Seconds())
	}()

	if !ValidateRoomCode(frame.RoomCode) {
		status = "validation_error"
		c.sendError(ErrorKindValidation, "roomCode must be 4 characters", frame.RoomCode)
		return
	}
	code := registry.Normalize(frame.RoomCode)

	switch frame.Type {
	case CommandJoin:
		status = h.handleJoin(c, code, frame.Payload)
	case CommandAssumeChair:
		status = h.handleAssumeChair(c, code, frame.Payload)
	case CommandRequest:
		status = h.handleRequest(c, code, frame.Payload)
	case CommandWithdraw:
		status = h.handleWithdraw(c, code, frame.Payload)
	case CommandNext:
		status = h.handleChairOnly(c, code, func(r *room.Room) { r.NextParticipant() })
	case CommandTimer:
		status = h.handleTimer(c, code, frame.Payload)
	case CommandSetLimit:
		status = h.handleSetLimit(c, code, frame.Payload)
	case CommandPollStart:
		status = h.handlePollStart(c, code, frame.Payload)
	case CommandPollVote:
		status = h.handlePollVote(c, code, frame.Payload)
	case CommandPollEnd:
		status = h.handleChairOnly(c, code, func(r *room.Room) { r.EndPoll() })
	case CommandPollClose:
		status = h.handleChairOnly(c, code, func(r *room.Room) { r.ClosePoll() })
	case CommandPollCancel:
		status = h.handleChairOnly(c, code, func(r *room.Room) { r.CancelPoll() })
	case CommandUpdateConfig:
		status = h.handleUpdateConfig(c, code, frame.Payload)
	case CommandDestroy:
		status = h.handleDestroy(c, code)
	default:
		status = "unknown_command"
		logging.Warn(ctx, "unknown command type", zap.String("type", string(frame.Type)))
	}
}

// decode re-marshals a json.RawMessage payload into dst. A nil payload
// decodes to the zero value of dst without error, since several commands
// (next, destroy, poll lifecycle transitions) carry no payload.
func decode(payload json.RawMessage, dst any) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, dst)
}

// findRoom resolves code via the registry, sending the targeted
// ROOM_NOT_FOUND envelope (with landing hint) on failure.
func (h *Hub) findRoom(c *Client, code types.RoomCode) *room.Room {
	r, err := h.registry.FindOrFail(code)
	if err != nil {
		c.deliver(outboundFrame{
			Kind:     outboundError,
			RoomCode: string(code),
			Payload: errorPayload{
				Kind:       ErrorKindRoomNotFound,
				Message:    "room not found",
				RoomCode:   string(code),
				LandingURL: h.landingURL,
			},
		})
		return nil
	}
	return r
}

func (h *Hub) handleJoin(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p joinPayload
	if err := decode(payload, &p); err != nil || !ValidateName(p.Name) {
		c.sendError(ErrorKindValidation, "name must be 1-30 chars of [A-Za-z0-9 '.-]", string(code))
		return "validation_error"
	}

	r := h.findRoom(c, code)
	if r == nil {
		return "room_not_found"
	}

	h.registry.BindSession(c.id, code)
	if p.Name == chairName {
		_ = r.AssumeChair(c.id) // no-op if already occupied; §4.3 "join" special case
	}
	h.broadcastState(code)
	return "ok"
}

func (h *Hub) handleAssumeChair(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p assumeChairPayload
	if err := decode(payload, &p); err != nil || (p.ParticipantName != "" && !ValidateName(p.ParticipantName)) {
		c.sendError(ErrorKindValidation, "participantName must be 1-30 chars of [A-Za-z0-9 '.-]", string(code))
		return "validation_error"
	}

	r := h.findRoom(c, code)
	if r == nil {
		return "room_not_found"
	}

	h.registry.BindSession(c.id, code)
	err := r.AssumeChair(c.id)
	h.sendChairAssumed(c, code, err == nil, p.RequestID)
	// §7: CHAIR_OCCUPIED still broadcasts a fresh state so every UI
	// reconciles, not just the requester's targeted reply.
	h.broadcastState(code)
	if err == nil {
		return "ok"
	}
	return "chair_occupied"
}

func (h *Hub) handleRequest(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p requestPayload
	err := decode(payload, &p)
	p.Name = strings.TrimSpace(p.Name)
	if err != nil || !ValidateName(p.Name) {
		c.sendError(ErrorKindValidation, "name must be 1-30 chars of [A-Za-z0-9 '.-]", string(code))
		return "validation_error"
	}

	r := h.findRoom(c, code)
	if r == nil {
		return "room_not_found"
	}
	r.AddToQueue(p.Name)
	h.broadcastState(code)
	return "ok"
}

func (h *Hub) handleWithdraw(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p withdrawPayload
	if err := decode(payload, &p); err != nil || !ValidateName(p.Name) {
		c.sendError(ErrorKindValidation, "name must be 1-30 chars of [A-Za-z0-9 '.-]", string(code))
		return "validation_error"
	}

	r := h.findRoom(c, code)
	if r == nil {
		return "room_not_found"
	}
	r.Withdraw(p.Name)
	h.broadcastState(code)
	return "ok"
}

// handleChairOnly resolves the room, enforces chair authorization, applies
// op, and broadcasts. Shared by every chair-only command with no payload.
func (h *Hub) handleChairOnly(c *Client, code types.RoomCode, op func(r *room.Room)) string {
	r := h.findRoom(c, code)
	if r == nil {
		return "room_not_found"
	}
	if err := r.RequireChair(c.id); err != nil {
		c.sendError(ErrorKindChairAccessDenied, "chair-only operation", string(code))
		return "chair_access_denied"
	}
	op(r)
	h.broadcastState(code)
	return "ok"
}

func (h *Hub) handleTimer(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p timerPayload
	if err := decode(payload, &p); err != nil {
		c.sendError(ErrorKindValidation, "malformed timer payload", string(code))
		return "validation_error"
	}
	switch p.Action {
	case TimerActionStart, TimerActionPause, TimerActionReset:
	default:
		c.sendError(ErrorKindValidation, "action must be start, pause, or reset", string(code))
		return "validation_error"
	}

	return h.handleChairOnly(c, code, func(r *room.Room) {
		switch p.Action {
		case TimerActionStart:
			r.StartTimer()
		case TimerActionPause:
			r.PauseTimer()
		case TimerActionReset:
			r.ResetTimer()
		}
	})
}

func (h *Hub) handleSetLimit(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p setLimitPayload
	if err := decode(payload, &p); err != nil {
		c.sendError(ErrorKindValidation, "malformed setLimit payload", string(code))
		return "validation_error"
	}
	return h.handleChairOnly(c, code, func(r *room.Room) { r.UpdateLimit(p.Seconds) })
}

func (h *Hub) handlePollStart(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p pollStartPayload
	if err := decode(payload, &p); err != nil || !ValidatePollQuestion(p.Question) || !p.PollType.IsValid() {
		c.sendError(ErrorKindValidation, "poll question must be 1-200 chars and pollType must be valid", string(code))
		return "validation_error"
	}
	if (p.PollType == types.PollTypeMultiselect || p.PollType == types.PollTypeMultiselectMultiple) && len(p.Options) == 0 {
		c.sendError(ErrorKindValidation, "options required for this poll type", string(code))
		return "validation_error"
	}

	return h.handleChairOnly(c, code, func(r *room.Room) {
		r.StartPoll(p.Question, p.PollType, p.Options, p.VotesPerParticipant)
	})
}

func (h *Hub) handlePollVote(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p pollVotePayload
	if err := decode(payload, &p); err != nil || p.Vote == "" {
		c.sendError(ErrorKindValidation, "vote must name an option key", string(code))
		return "validation_error"
	}

	r := h.findRoom(c, code)
	if r == nil {
		return "room_not_found"
	}
	if r.CastVote(c.id, p.Vote) {
		h.broadcastState(code)
		return "ok"
	}
	return "vote_rejected"
}

func (h *Hub) handleUpdateConfig(c *Client, code types.RoomCode, payload json.RawMessage) string {
	var p updateConfigPayload
	if err := decode(payload, &p); err != nil || !ValidateConfigString(p.Topic) {
		c.sendError(ErrorKindValidation, "topic must be at most 100 chars", string(code))
		return "validation_error"
	}

	goal := types.MeetingGoal(p.MeetingGoal)
	if !goal.IsValid() {
		goal = ""
	}
	format := types.ParticipationFormat(p.ParticipationFormat)
	if !format.IsValid() {
		format = ""
	}
	rule := types.DecisionRule(p.DecisionRule)
	if !rule.IsValid() {
		rule = ""
	}
	deliverable := types.Deliverable(p.Deliverable)
	if !deliverable.IsValid() {
		deliverable = ""
	}

	return h.handleChairOnly(c, code, func(r *room.Room) {
		r.UpdateConfig(p.Topic, goal, format, rule, deliverable)
	})
}

func (h *Hub) handleDestroy(c *Client, code types.RoomCode) string {
	r := h.findRoom(c, code)
	if r == nil {
		return "room_not_found"
	}
	if err := r.RequireChair(c.id); err != nil {
		c.sendError(ErrorKindChairAccessDenied, "chair-only operation", string(code))
		return "chair_access_denied"
	}
	h.broadcastDestroyed(code, "This room has been closed by the chair.", "chair")
	return "ok"
}
