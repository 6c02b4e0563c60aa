package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opengavel/roomserver/internal/v1/types"
)

// metadataVersion is the version stamp attached to every metadata
// response (§6.1); the enumerations themselves are a versioned constant,
// not configuration, so there is nothing else to version against.
const metadataVersion = "1.0"

// metadataItem is one entry of an enumeration's display metadata.
type metadataItem struct {
	Value       string `json:"value"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type metadataResponse struct {
	Version string         `json:"version"`
	Data    []metadataItem `json:"data"`
}

// meetingGoalMeta, participationFormatMeta, decisionRuleMeta, and
// deliverableMeta carry the human-facing labels for the Glossary's four
// enumerations. No business logic depends on which variant a room picks
// (§9); this is a pure lookup table exposed over HTTP.
var meetingGoalMeta = []metadataItem{
	{string(types.MeetingGoalShareInformation), "Share Information", "Disseminate updates or facts to attendees."},
	{string(types.MeetingGoalAdvanceThinking), "Advance Thinking", "Develop or refine ideas collectively."},
	{string(types.MeetingGoalObtainInput), "Obtain Input", "Gather feedback or opinions from participants."},
	{string(types.MeetingGoalMakeDecisions), "Make Decisions", "Reach a concrete decision as a group."},
	{string(types.MeetingGoalImproveCommunication), "Improve Communication", "Strengthen understanding between participants."},
	{string(types.MeetingGoalBuildCapacity), "Build Capacity", "Develop participants' skills or capabilities."},
	{string(types.MeetingGoalBuildCommunity), "Build Community", "Strengthen relationships among participants."},
}

var participationFormatMeta = []metadataItem{
	{string(types.ParticipationFormatStructuredGoArounds), "Structured Go-Arounds", "Each participant speaks in turn."},
	{string(types.ParticipationFormatPresentationsAndReports), "Presentations & Reports", "One or more participants present to the rest."},
	{string(types.ParticipationFormatSmallGroups), "Small Groups", "Participants split into smaller discussion groups."},
	{string(types.ParticipationFormatListingIdeas), "Listing Ideas", "Freeform brainstorming and idea capture."},
	{string(types.ParticipationFormatJigsaw), "Jigsaw", "Groups each cover part of a topic, then reconvene."},
	{string(types.ParticipationFormatIndividualWriting), "Individual Writing", "Silent, individual written reflection."},
	{string(types.ParticipationFormatMultiTasking), "Multi-Tasking", "Several activities running concurrently."},
	{string(types.ParticipationFormatOpenDiscussion), "Open Discussion", "Unstructured floor, no fixed speaking order."},
	{string(types.ParticipationFormatFishbowls), "Fishbowls", "A small inner group discusses while others observe."},
	{string(types.ParticipationFormatTradeshow), "Tradeshow", "Stations that participants circulate between."},
	{string(types.ParticipationFormatScrambler), "Scrambler", "Participants are reshuffled between discussion rounds."},
	{string(types.ParticipationFormatRoleplays), "Roleplays", "Participants act out scenarios or perspectives."},
}

var decisionRuleMeta = []metadataItem{
	{string(types.DecisionRuleUnanimity), "Unanimity", "Every participant must agree."},
	{string(types.DecisionRuleGradientsOfAgreement), "Gradients of Agreement", "Agreement is measured on a spectrum, not a binary."},
	{string(types.DecisionRuleDotVoting), "Dot Voting", "Participants distribute a fixed number of votes across options."},
	{string(types.DecisionRuleSupermajority), "Supermajority", "A high fixed threshold of support is required."},
	{string(types.DecisionRuleMajority), "Majority", "More than half of participants must support the outcome."},
	{string(types.DecisionRulePlurality), "Plurality", "The option with the most support wins, no threshold required."},
	{string(types.DecisionRuleConsent), "Consent", "An option proceeds unless someone raises a reasoned objection."},
	{string(types.DecisionRulePersonInCharge), "Person in Charge", "A designated individual makes the final call."},
	{string(types.DecisionRuleCommission), "Commission", "A smaller delegated group decides on behalf of the rest."},
	{string(types.DecisionRuleFlipACoin), "Flip a Coin", "The decision is made at random."},
}

var deliverableMeta = []metadataItem{
	{string(types.DeliverableDefineProblem), "Define Problem", "Produce a clear statement of the problem."},
	{string(types.DeliverableCreateMilestoneMap), "Create Milestone Map", "Lay out the key milestones toward a goal."},
	{string(types.DeliverableAnalyzeProblem), "Analyze Problem", "Break a problem down into its contributing factors."},
	{string(types.DeliverableCreateWorkBreakdown), "Create Work Breakdown", "Decompose work into concrete tasks."},
	{string(types.DeliverableIdentifyRootCauses), "Identify Root Causes", "Trace symptoms back to underlying causes."},
	{string(types.DeliverableConductResourceAnalysis), "Conduct Resource Analysis", "Assess the resources available or required."},
	{string(types.DeliverableIdentifyPatterns), "Identify Patterns", "Surface recurring themes or trends in the data."},
	{string(types.DeliverableConductRiskAssessment), "Conduct Risk Assessment", "Identify and evaluate risks."},
	{string(types.DeliverableSortIdeasIntoThemes), "Sort Ideas into Themes", "Group raw ideas into coherent categories."},
	{string(types.DeliverableDefineSelectionCriteria), "Define Selection Criteria", "Agree on the criteria used to judge options."},
	{string(types.DeliverableRearrangeByPriority), "Rearrange by Priority", "Order items by relative importance."},
	{string(types.DeliverableEvaluateOptions), "Evaluate Options", "Weigh options against agreed criteria."},
	{string(types.DeliverableDrawFlowchart), "Draw Flowchart", "Map out a process or decision flow visually."},
	{string(types.DeliverableIdentifySuccessFactors), "Identify Success Factors", "Name what must be true for success."},
	{string(types.DeliverableIdentifyCoreValues), "Identify Core Values", "Surface the values that should guide the outcome."},
	{string(types.DeliverableEditStatement), "Edit Statement", "Refine the wording of an existing statement."},
}

// MeetingGoals handles GET /metadata/meeting-goals.
func (h *Handler) MeetingGoals(c *gin.Context) {
	c.JSON(http.StatusOK, metadataResponse{Version: metadataVersion, Data: meetingGoalMeta})
}

// ParticipationFormats handles GET /metadata/participation-formats.
func (h *Handler) ParticipationFormats(c *gin.Context) {
	c.JSON(http.StatusOK, metadataResponse{Version: metadataVersion, Data: participationFormatMeta})
}

// DecisionRules handles GET /metadata/decision-rules.
func (h *Handler) DecisionRules(c *gin.Context) {
	c.JSON(http.StatusOK, metadataResponse{Version: metadataVersion, Data: decisionRuleMeta})
}

// Deliverables handles GET /metadata/deliverables.
func (h *Handler) Deliverables(c *gin.Context) {
	c.JSON(http.StatusOK, metadataResponse{Version: metadataVersion, Data: deliverableMeta})
}
