package agent

import (
	"strings"
	"unicode"

	"github.com/leadline-ai/leadline/internal/domain"
)

// LeadCompletedSuffix is appended to the answer when the last slot fills.
const LeadCompletedSuffix = "It looks like we have enough details to contact you. " +
	"Our team will follow up shortly with the best offer."

// Slot identifies one lead field. Question order is the fixed follow-up
// priority: name, email, phone, interest.
type Slot int

const (
	SlotName Slot = iota
	SlotEmail
	SlotPhone
	SlotInterest
)

var slotQuestions = map[Slot]string{
	SlotName:     "To help our team follow up, may I have your name?",
	SlotEmail:    "What is the best email address to reach you?",
	SlotPhone:    "Do you have a phone or WhatsApp number we can contact?",
	SlotInterest: "Which service or package are you most interested in?",
}

// ExtractRule inspects a raw message and optionally yields a value for one
// slot. Rules are an ordered table so the heuristics can be swapped for a
// real extractor without touching the transition logic. Overwrite controls
// whether a match replaces an already-filled slot.
type ExtractRule struct {
	Slot      Slot
	Overwrite bool
	Extract   func(message string) (string, bool)
}

// DefaultRules returns the built-in best-effort extraction heuristics.
func DefaultRules() []ExtractRule {
	return []ExtractRule{
		{
			Slot:      SlotEmail,
			Overwrite: true,
			Extract: func(message string) (string, bool) {
				text := strings.TrimSpace(message)
				if strings.Contains(text, "@") {
					return text, true
				}
				return "", false
			},
		},
		{
			Slot:      SlotPhone,
			Overwrite: false,
			Extract: func(message string) (string, bool) {
				text := strings.TrimSpace(message)
				if len(text) >= 8 && strings.ContainsFunc(text, unicode.IsDigit) {
					return text, true
				}
				return "", false
			},
		},
		{
			Slot:      SlotName,
			Overwrite: true,
			Extract: func(message string) (string, bool) {
				text := strings.TrimSpace(message)
				if !strings.Contains(strings.ToLower(text), "my name is") {
					return "", false
				}
				// Take whatever follows the first "is", matching the
				// historical behavior of this heuristic.
				idx := strings.Index(text, "is")
				if idx < 0 {
					return "", false
				}
				name := strings.TrimSpace(text[idx+2:])
				if name == "" {
					return "", false
				}
				return name, true
			},
		},
	}
}

// TurnResult is the lead machine's contribution to one turn.
type TurnResult struct {
	// FollowUp is the next slot question or completion notice to append
	// to the answer; empty on non-sales turns.
	FollowUp  string
	Completed bool
	Payload   *domain.LeadPayload
}

// LeadMachine tracks slot-filling progress for one session. It is owned by
// exactly one conversation session and needs no locking of its own.
type LeadMachine struct {
	state domain.LeadState
	rules []ExtractRule
}

func NewLeadMachine() *LeadMachine {
	return NewLeadMachineWithRules(DefaultRules())
}

func NewLeadMachineWithRules(rules []ExtractRule) *LeadMachine {
	return &LeadMachine{rules: rules}
}

// State returns a copy of the current slot values.
func (m *LeadMachine) State() domain.LeadState { return m.state }

// Observe advances the machine by one turn. Slot extraction runs on every
// turn so details mentioned in passing are never lost; interest capture,
// completion and follow-up prompting only happen on sales-intent turns.
func (m *LeadMachine) Observe(message string, intent domain.Intent) TurnResult {
	m.applyRules(message)

	if intent != domain.IntentSales {
		return TurnResult{}
	}

	// Fallback capture: the sales message itself becomes the interest
	// when nothing more specific has been recorded yet.
	if m.state.Interest == "" {
		m.state.Interest = strings.TrimSpace(message)
	}

	if m.state.Complete() {
		payload := &domain.LeadPayload{
			Name:     m.state.Name,
			Email:    m.state.Email,
			Phone:    m.state.Phone,
			Interest: m.state.Interest,
		}
		m.state = domain.LeadState{}
		return TurnResult{FollowUp: LeadCompletedSuffix, Completed: true, Payload: payload}
	}

	return TurnResult{FollowUp: m.nextQuestion()}
}

func (m *LeadMachine) applyRules(message string) {
	for _, rule := range m.rules {
		value, ok := rule.Extract(message)
		if !ok {
			continue
		}
		if !rule.Overwrite && m.slotValue(rule.Slot) != "" {
			continue
		}
		m.setSlot(rule.Slot, value)
	}
}

func (m *LeadMachine) slotValue(s Slot) string {
	switch s {
	case SlotName:
		return m.state.Name
	case SlotEmail:
		return m.state.Email
	case SlotPhone:
		return m.state.Phone
	case SlotInterest:
		return m.state.Interest
	}
	return ""
}

func (m *LeadMachine) setSlot(s Slot, value string) {
	switch s {
	case SlotName:
		m.state.Name = value
	case SlotEmail:
		m.state.Email = value
	case SlotPhone:
		m.state.Phone = value
	case SlotInterest:
		m.state.Interest = value
	}
}

func (m *LeadMachine) nextQuestion() string {
	for _, s := range []Slot{SlotName, SlotEmail, SlotPhone, SlotInterest} {
		if m.slotValue(s) == "" {
			return slotQuestions[s]
		}
	}
	return ""
}
