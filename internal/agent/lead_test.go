package agent

import (
	"testing"

	"github.com/leadline-ai/leadline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadMachine_FullCaptureSequence(t *testing.T) {
	c := NewClassifier(DefaultKeywordSets())
	m := NewLeadMachine()

	observe := func(message string) TurnResult {
		return m.Observe(message, c.Classify(message))
	}

	// Details offered on non-sales turns are still captured silently.
	r := observe("My name is Sam")
	assert.Empty(t, r.FollowUp)
	assert.False(t, r.Completed)
	assert.Equal(t, "Sam", m.State().Name)

	r = observe("sam@x.com")
	assert.Empty(t, r.FollowUp)
	assert.Equal(t, "sam@x.com", m.State().Email)

	r = observe("+1 555 0100")
	assert.Empty(t, r.FollowUp)
	assert.Equal(t, "+1 555 0100", m.State().Phone)

	// The sales turn adopts the message as interest and completes the lead.
	r = observe("the premium plan")
	require.True(t, r.Completed)
	require.NotNil(t, r.Payload)
	assert.Equal(t, domain.LeadPayload{
		Name:     "Sam",
		Email:    "sam@x.com",
		Phone:    "+1 555 0100",
		Interest: "the premium plan",
	}, *r.Payload)
	assert.Equal(t, LeadCompletedSuffix, r.FollowUp)

	// State reset: the next sales turn starts a fresh lead and asks for
	// the name again.
	r = m.Observe("do you have pricing for couples?", domain.IntentSales)
	assert.False(t, r.Completed)
	assert.Equal(t, slotQuestions[SlotName], r.FollowUp)
}

func TestLeadMachine_AsksForNameFirstOnSalesTurn(t *testing.T) {
	m := NewLeadMachine()

	r := m.Observe("I want to know about your packages", domain.IntentSales)
	assert.False(t, r.Completed)
	assert.Equal(t, slotQuestions[SlotName], r.FollowUp)
	// the whole message was adopted as the interest
	assert.Equal(t, "I want to know about your packages", m.State().Interest)
}

func TestLeadMachine_QuestionPriorityOrder(t *testing.T) {
	m := NewLeadMachine()

	r := m.Observe("my name is Ana, interested in a plan", domain.IntentSales)
	assert.Equal(t, slotQuestions[SlotEmail], r.FollowUp)

	r = m.Observe("ana@example.com and I want the yearly plan", domain.IntentSales)
	assert.Equal(t, slotQuestions[SlotPhone], r.FollowUp)
}

func TestLeadMachine_NoPromptOutsideSalesTurns(t *testing.T) {
	m := NewLeadMachine()

	r := m.Observe("hello there", domain.IntentChitchat)
	assert.Empty(t, r.FollowUp)
	assert.False(t, r.Completed)

	r = m.Observe("I have an issue logging in", domain.IntentSupport)
	assert.Empty(t, r.FollowUp)
}

func TestLeadMachine_PhoneNeverOverwritten(t *testing.T) {
	m := NewLeadMachine()

	m.Observe("+1 555 0100", domain.IntentGeneral)
	require.Equal(t, "+1 555 0100", m.State().Phone)

	// another digit-bearing message does not replace the captured phone
	m.Observe("my order number is 998877", domain.IntentGeneral)
	assert.Equal(t, "+1 555 0100", m.State().Phone)
}

func TestLeadMachine_EmailOverwrittenOnNewMatch(t *testing.T) {
	m := NewLeadMachine()

	m.Observe("old@example.com", domain.IntentGeneral)
	m.Observe("use new@example.com instead", domain.IntentGeneral)
	assert.Equal(t, "use new@example.com instead", m.State().Email)
}

func TestLeadMachine_NameExtractionAfterFirstIs(t *testing.T) {
	m := NewLeadMachine()

	m.Observe("My name is Sam", domain.IntentGeneral)
	assert.Equal(t, "Sam", m.State().Name)
}

func TestLeadMachine_ShortDigitMessageIsNotAPhone(t *testing.T) {
	m := NewLeadMachine()

	m.Observe("room 42", domain.IntentGeneral)
	assert.Empty(t, m.State().Phone)
}

func TestLeadMachine_InterestNotOverwrittenOnLaterSalesTurns(t *testing.T) {
	m := NewLeadMachine()

	m.Observe("I want the premium package", domain.IntentSales)
	require.Equal(t, "I want the premium package", m.State().Interest)

	m.Observe("what's the booking process?", domain.IntentSales)
	assert.Equal(t, "I want the premium package", m.State().Interest)
}

func TestLeadMachine_CustomRuleTable(t *testing.T) {
	rules := []ExtractRule{
		{
			Slot:      SlotName,
			Overwrite: false,
			Extract: func(message string) (string, bool) {
				if message == "trigger" {
					return "Custom", true
				}
				return "", false
			},
		},
	}
	m := NewLeadMachineWithRules(rules)

	m.Observe("trigger", domain.IntentGeneral)
	assert.Equal(t, "Custom", m.State().Name)

	// overwrite disabled: later matches keep the first value
	rulesHit := m.Observe("trigger", domain.IntentGeneral)
	assert.Equal(t, "Custom", m.State().Name)
	assert.False(t, rulesHit.Completed)
}
