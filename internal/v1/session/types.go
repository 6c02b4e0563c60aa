// Package session implements the duplex connection layer (M-SESSION),
// command validation and dispatch (M-DISPATCH), and snapshot broadcast
// (M-BROADCAST) described in spec.md §4.3/§4.4. A Hub owns every live
// Client connection and the shared *registry.Registry; each Client pumps
// JSON command frames off its socket into the Hub's dispatcher and
// outbound frames back onto it.
package session

import (
	"encoding/json"
	"regexp"

	"github.com/opengavel/roomserver/internal/v1/types"
)

// CommandType names the wire commands a client may send, per spec.md §6.2.
type CommandType string

const (
	CommandJoin         CommandType = "join"
	CommandAssumeChair  CommandType = "assumeChair"
	CommandRequest      CommandType = "request"
	CommandWithdraw     CommandType = "withdraw"
	CommandNext         CommandType = "next"
	CommandTimer        CommandType = "timer"
	CommandSetLimit     CommandType = "setLimit"
	CommandPollStart    CommandType = "poll/start"
	CommandPollVote     CommandType = "poll/vote"
	CommandPollEnd      CommandType = "poll/end"
	CommandPollClose    CommandType = "poll/close"
	CommandPollCancel   CommandType = "poll/cancel"
	CommandUpdateConfig CommandType = "updateConfig"
	CommandDestroy      CommandType = "destroy"
)

// TimerAction is the payload of a "timer" command.
type TimerAction string

const (
	TimerActionStart TimerAction = "start"
	TimerActionPause TimerAction = "pause"
	TimerActionReset TimerAction = "reset"
)

// chairName is the reserved display name that auto-assumes the chair on join.
const chairName = "Chair"

// Frame is the envelope for every inbound command. RoomCode is normalized
// by the dispatcher before lookup; Payload is re-decoded into the
// command-specific struct once the command type is known.
type Frame struct {
	Type      CommandType     `json:"type"`
	RoomCode  string          `json:"roomCode"`
	RequestID string          `json:"requestId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// --- Command payloads ---

type joinPayload struct {
	Name string `json:"name"`
}

type assumeChairPayload struct {
	ParticipantName string `json:"participantName"`
	RequestID       string `json:"requestId"`
}

type requestPayload struct {
	Name string `json:"name"`
}

type withdrawPayload struct {
	Name string `json:"name"`
}

type timerPayload struct {
	Action TimerAction `json:"action"`
}

type setLimitPayload struct {
	Seconds int `json:"seconds"`
}

type pollStartPayload struct {
	Question            string         `json:"question"`
	PollType            types.PollType `json:"pollType"`
	Options             []string       `json:"options,omitempty"`
	VotesPerParticipant int            `json:"votesPerParticipant,omitempty"`
}

type pollVotePayload struct {
	Vote string `json:"vote"`
}

// updateConfigPayload mirrors types.RoomConfig's "empty string means unset"
// convention (room/config.go): every field is individually optional, and
// an enum field that fails to parse is treated the same as an absent one.
type updateConfigPayload struct {
	Topic               string `json:"topic,omitempty"`
	MeetingGoal         string `json:"meetingGoal,omitempty"`
	ParticipationFormat string `json:"participationFormat,omitempty"`
	DecisionRule        string `json:"decisionRule,omitempty"`
	Deliverable         string `json:"deliverable,omitempty"`
}

// --- Outbound envelopes ---

// outboundKind names the logical topic an outbound frame is published on,
// per spec.md §6.2's per-room topic list.
type outboundKind string

const (
	outboundState        outboundKind = "state"
	outboundChairAssumed outboundKind = "chairAssumed"
	outboundDestroyed    outboundKind = "destroyed"
	outboundError        outboundKind = "error"
)

// outboundFrame is the shape of every server-to-client message. Kind
// distinguishes which logical topic this would have been published to had
// the transport been a real pub/sub broker (§9's topic abstraction); here
// it is delivered directly to the subscribed Client connections.
type outboundFrame struct {
	Kind     outboundKind `json:"kind"`
	RoomCode string       `json:"roomCode,omitempty"`
	Payload  any          `json:"payload"`
}

// ErrorKind names the error envelope kinds of spec.md §7.
type ErrorKind string

const (
	ErrorKindValidation        ErrorKind = "VALIDATION_ERROR"
	ErrorKindRoomNotFound      ErrorKind = "ROOM_NOT_FOUND"
	ErrorKindChairAccessDenied ErrorKind = "CHAIR_ACCESS_DENIED"
)

// errorPayload is the body of a targeted error envelope.
type errorPayload struct {
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	RoomCode string    `json:"roomCode,omitempty"`
	// LandingURL hints the client where to navigate after a ROOM_NOT_FOUND
	// or ROOM_DESTROYED notice (§7).
	LandingURL string `json:"landingUrl,omitempty"`
}

// chairAssumedPayload is the targeted reply to an "assumeChair" command.
type chairAssumedPayload struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId,omitempty"`
}

// destroyedPayload is the teardown notice published when a room is
// destroyed, by chair action or eviction.
type destroyedPayload struct {
	Message    string `json:"message"`
	LandingURL string `json:"landingUrl"`
}

// --- Validation (spec.md §6.2) ---

var nameRe = regexp.MustCompile(`^[A-Za-z0-9 '.\-]{1,30}$`)

// ValidateName enforces the 1-30 char, restricted-class display name rule
// shared by join/request/withdraw/assumeChair.
func ValidateName(name string) bool {
	return nameRe.MatchString(name)
}

// ValidatePollQuestion enforces the 1-200 char poll question rule.
func ValidatePollQuestion(q string) bool {
	return len(q) >= 1 && len(q) <= 200
}

// ValidateConfigString enforces the <=100 char free-text config field rule.
// An empty string is valid (it means "unset").
func ValidateConfigString(s string) bool {
	return len(s) <= 100
}

// ValidateRoomCode enforces the 4-char length rule on a client-supplied
// code; the dispatcher applies it before normalization. The alphabet itself
// is produced only by registry.NewCode, so inputs here are only checked for
// length.
func ValidateRoomCode(code string) bool {
	return len(code) == 4
}
