package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opengavel/roomserver/internal/v1/types"
)

func TestUpdateConfigSetsIndividualFields(t *testing.T) {
	r := New("ABCD")

	r.UpdateConfig("Roadmap", types.MeetingGoalMakeDecisions, "", "", "")
	cfg := r.Config()
	assert.Equal(t, "Roadmap", cfg.Topic)
	assert.Equal(t, types.MeetingGoalMakeDecisions, cfg.MeetingGoal)
	assert.Empty(t, cfg.ParticipationFormat)

	r.UpdateConfig("", "", types.ParticipationFormatOpenDiscussion, types.DecisionRuleConsent, types.DeliverableDrawFlowchart)
	cfg = r.Config()
	assert.Equal(t, "Roadmap", cfg.Topic) // unchanged, empty means unset
	assert.Equal(t, types.ParticipationFormatOpenDiscussion, cfg.ParticipationFormat)
	assert.Equal(t, types.DecisionRuleConsent, cfg.DecisionRule)
	assert.Equal(t, types.DeliverableDrawFlowchart, cfg.Deliverable)
}
