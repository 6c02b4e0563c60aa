// Package types holds the fixed enumerations and small immutable value
// types shared across the room coordination server: meeting metadata
// enums, participants, the current speaker, poll state, room
// configuration, and the outbound snapshot.
package types

// --- Identifier types ---

// RoomCode is a 4-character canonicalized room identifier, alphabet A-Z
// and 1-9 (no 0).
type RoomCode string

// SessionID is a server-issued opaque handle for a duplex connection,
// unique within process lifetime.
type SessionID string

// ParticipantID is a server-issued opaque handle for a queued or speaking
// participant, unique within process lifetime.
type ParticipantID string

// --- Meeting metadata enumerations ---

// MeetingGoal classifies why a meeting is being held.
type MeetingGoal string

const (
	MeetingGoalShareInformation     MeetingGoal = "SHARE_INFORMATION"
	MeetingGoalAdvanceThinking      MeetingGoal = "ADVANCE_THINKING"
	MeetingGoalObtainInput          MeetingGoal = "OBTAIN_INPUT"
	MeetingGoalMakeDecisions        MeetingGoal = "MAKE_DECISIONS"
	MeetingGoalImproveCommunication MeetingGoal = "IMPROVE_COMMUNICATION"
	MeetingGoalBuildCapacity        MeetingGoal = "BUILD_CAPACITY"
	MeetingGoalBuildCommunity       MeetingGoal = "BUILD_COMMUNITY"
)

// ValidMeetingGoals lists every MeetingGoal in declaration order, used by
// IsValid for config validation.
var ValidMeetingGoals = []MeetingGoal{
	MeetingGoalShareInformation,
	MeetingGoalAdvanceThinking,
	MeetingGoalObtainInput,
	MeetingGoalMakeDecisions,
	MeetingGoalImproveCommunication,
	MeetingGoalBuildCapacity,
	MeetingGoalBuildCommunity,
}

// IsValid reports whether g is one of the known meeting goals.
func (g MeetingGoal) IsValid() bool {
	for _, v := range ValidMeetingGoals {
		if v == g {
			return true
		}
	}
	return false
}

// ParticipationFormat classifies the structural format of a meeting segment.
type ParticipationFormat string

const (
	ParticipationFormatStructuredGoArounds     ParticipationFormat = "STRUCTURED_GO_AROUNDS"
	ParticipationFormatPresentationsAndReports ParticipationFormat = "PRESENTATIONS_AND_REPORTS"
	ParticipationFormatSmallGroups             ParticipationFormat = "SMALL_GROUPS"
	ParticipationFormatListingIdeas            ParticipationFormat = "LISTING_IDEAS"
	ParticipationFormatJigsaw                  ParticipationFormat = "JIGSAW"
	ParticipationFormatIndividualWriting       ParticipationFormat = "INDIVIDUAL_WRITING"
	ParticipationFormatMultiTasking            ParticipationFormat = "MULTI_TASKING"
	ParticipationFormatOpenDiscussion          ParticipationFormat = "OPEN_DISCUSSION"
	ParticipationFormatFishbowls               ParticipationFormat = "FISHBOWLS"
	ParticipationFormatTradeshow               ParticipationFormat = "TRADESHOW"
	ParticipationFormatScrambler               ParticipationFormat = "SCRAMBLER"
	ParticipationFormatRoleplays               ParticipationFormat = "ROLEPLAYS"
)

// ValidParticipationFormats lists every ParticipationFormat in declaration order.
var ValidParticipationFormats = []ParticipationFormat{
	ParticipationFormatStructuredGoArounds,
	ParticipationFormatPresentationsAndReports,
	ParticipationFormatSmallGroups,
	ParticipationFormatListingIdeas,
	ParticipationFormatJigsaw,
	ParticipationFormatIndividualWriting,
	ParticipationFormatMultiTasking,
	ParticipationFormatOpenDiscussion,
	ParticipationFormatFishbowls,
	ParticipationFormatTradeshow,
	ParticipationFormatScrambler,
	ParticipationFormatRoleplays,
}

// IsValid reports whether f is one of the known participation formats.
func (f ParticipationFormat) IsValid() bool {
	for _, v := range ValidParticipationFormats {
		if v == f {
			return true
		}
	}
	return false
}

// DecisionRule classifies how a meeting reaches its decision.
type DecisionRule string

const (
	DecisionRuleUnanimity           DecisionRule = "UNANIMITY"
	DecisionRuleGradientsOfAgreement DecisionRule = "GRADIENTS_OF_AGREEMENT"
	DecisionRuleDotVoting           DecisionRule = "DOT_VOTING"
	DecisionRuleSupermajority       DecisionRule = "SUPERMAJORITY"
	DecisionRuleMajority            DecisionRule = "MAJORITY"
	DecisionRulePlurality           DecisionRule = "PLURALITY"
	DecisionRuleConsent             DecisionRule = "CONSENT"
	DecisionRulePersonInCharge      DecisionRule = "PERSON_IN_CHARGE"
	DecisionRuleCommission          DecisionRule = "COMMISSION"
	DecisionRuleFlipACoin           DecisionRule = "FLIP_A_COIN"
)

// ValidDecisionRules lists every DecisionRule in declaration order.
var ValidDecisionRules = []DecisionRule{
	DecisionRuleUnanimity,
	DecisionRuleGradientsOfAgreement,
	DecisionRuleDotVoting,
	DecisionRuleSupermajority,
	DecisionRuleMajority,
	DecisionRulePlurality,
	DecisionRuleConsent,
	DecisionRulePersonInCharge,
	DecisionRuleCommission,
	DecisionRuleFlipACoin,
}

// IsValid reports whether r is one of the known decision rules.
func (r DecisionRule) IsValid() bool {
	for _, v := range ValidDecisionRules {
		if v == r {
			return true
		}
	}
	return false
}

// Deliverable classifies the expected output artifact of a meeting segment.
type Deliverable string

const (
	DeliverableDefineProblem          Deliverable = "DEFINE_PROBLEM"
	DeliverableCreateMilestoneMap     Deliverable = "CREATE_MILESTONE_MAP"
	DeliverableAnalyzeProblem         Deliverable = "ANALYZE_PROBLEM"
	DeliverableCreateWorkBreakdown    Deliverable = "CREATE_WORK_BREAKDOWN"
	DeliverableIdentifyRootCauses     Deliverable = "IDENTIFY_ROOT_CAUSES"
	DeliverableConductResourceAnalysis Deliverable = "CONDUCT_RESOURCE_ANALYSIS"
	DeliverableIdentifyPatterns       Deliverable = "IDENTIFY_PATTERNS"
	DeliverableConductRiskAssessment  Deliverable = "CONDUCT_RISK_ASSESSMENT"
	DeliverableSortIdeasIntoThemes    Deliverable = "SORT_IDEAS_INTO_THEMES"
	DeliverableDefineSelectionCriteria Deliverable = "DEFINE_SELECTION_CRITERIA"
	DeliverableRearrangeByPriority    Deliverable = "REARRANGE_BY_PRIORITY"
	DeliverableEvaluateOptions        Deliverable = "EVALUATE_OPTIONS"
	DeliverableDrawFlowchart          Deliverable = "DRAW_FLOWCHART"
	DeliverableIdentifySuccessFactors Deliverable = "IDENTIFY_SUCCESS_FACTORS"
	DeliverableIdentifyCoreValues     Deliverable = "IDENTIFY_CORE_VALUES"
	DeliverableEditStatement          Deliverable = "EDIT_STATEMENT"
)

// ValidDeliverables lists every Deliverable in declaration order.
var ValidDeliverables = []Deliverable{
	DeliverableDefineProblem,
	DeliverableCreateMilestoneMap,
	DeliverableAnalyzeProblem,
	DeliverableCreateWorkBreakdown,
	DeliverableIdentifyRootCauses,
	DeliverableConductResourceAnalysis,
	DeliverableIdentifyPatterns,
	DeliverableConductRiskAssessment,
	DeliverableSortIdeasIntoThemes,
	DeliverableDefineSelectionCriteria,
	DeliverableRearrangeByPriority,
	DeliverableEvaluateOptions,
	DeliverableDrawFlowchart,
	DeliverableIdentifySuccessFactors,
	DeliverableIdentifyCoreValues,
	DeliverableEditStatement,
}

// IsValid reports whether d is one of the known deliverables.
func (d Deliverable) IsValid() bool {
	for _, v := range ValidDeliverables {
		if v == d {
			return true
		}
	}
	return false
}

// --- Poll types ---

// PollType discriminates the shape of a poll's options and ballots.
type PollType string

const (
	PollTypeYesNo               PollType = "YES_NO"
	PollTypeGradients           PollType = "GRADIENTS"
	PollTypeMultiselect         PollType = "MULTISELECT"
	PollTypeMultiselectMultiple PollType = "MULTISELECT_MULTIPLE"
)

// IsValid reports whether t is one of the known poll types.
func (t PollType) IsValid() bool {
	switch t {
	case PollTypeYesNo, PollTypeGradients, PollTypeMultiselect, PollTypeMultiselectMultiple:
		return true
	default:
		return false
	}
}

// PollStatus tracks the lifecycle stage of a room's poll.
type PollStatus string

const (
	PollStatusNone   PollStatus = "NONE"
	PollStatusActive PollStatus = "ACTIVE"
	PollStatusEnded  PollStatus = "ENDED"
	PollStatusClosed PollStatus = "CLOSED"
)

// --- Value types ---

// Participant is a single entry in a room's speak queue.
type Participant struct {
	ID             ParticipantID `json:"id"`
	Name           string        `json:"name"`
	RequestedAtSec int64         `json:"requestedAtSec"`
}

// CurrentSpeaker describes the participant presently holding the floor.
type CurrentSpeaker struct {
	Participant  Participant `json:"participant"`
	StartedAtSec int64       `json:"startedAtSec"`
	ElapsedMs    int64       `json:"elapsedMs"`
	Running      bool        `json:"running"`
	LimitSec     int         `json:"limitSec"`
}

// PollResults is the terminal tally of the most recently ended or closed poll.
type PollResults struct {
	Question   string         `json:"question"`
	Type       PollType       `json:"type"`
	Tallies    map[string]int `json:"tallies"`
	TotalVotes int            `json:"totalVotes"`
	Options    []string       `json:"options,omitempty"`
}

// PollState is the derived, client-facing projection of a room's poll.
// A nil *PollState means no poll has ever been held.
type PollState struct {
	Status              PollStatus     `json:"status"`
	Question            string         `json:"question,omitempty"`
	Type                PollType       `json:"type,omitempty"`
	Tallies             map[string]int `json:"tallies,omitempty"`
	TotalVotes          int            `json:"totalVotes,omitempty"`
	Options             []string       `json:"options,omitempty"`
	VotesPerParticipant int            `json:"votesPerParticipant,omitempty"`
	LastResults         *PollResults   `json:"lastResults,omitempty"`
}

// RoomConfig is the mutable meeting-metadata tuple attached to a room.
// Every field is individually optional (empty string means "unset").
type RoomConfig struct {
	Topic               string              `json:"topic,omitempty"`
	MeetingGoal         MeetingGoal         `json:"meetingGoal,omitempty"`
	ParticipationFormat ParticipationFormat `json:"participationFormat,omitempty"`
	DecisionRule        DecisionRule        `json:"decisionRule,omitempty"`
	Deliverable         Deliverable         `json:"deliverable,omitempty"`
}

// Snapshot is the immutable, authoritative view of a room broadcast to
// every subscriber after a state mutation.
type Snapshot struct {
	Queue           []Participant   `json:"queue"`
	Current         *CurrentSpeaker `json:"current"`
	MeetingStartSec int64           `json:"meetingStartSec"`
	DefaultLimitSec int             `json:"defaultLimitSec"`
	RoomCode        RoomCode        `json:"roomCode"`
	ChairOccupied   bool            `json:"chairOccupied"`
	PollState       *PollState      `json:"pollState"`
	RoomConfig      RoomConfig      `json:"roomConfig"`
}
