package domain

import "time"

// LeadState tracks slot-filling progress for one conversation session.
// Empty strings mean the slot has not been captured yet.
type LeadState struct {
	Name     string
	Email    string
	Phone    string
	Interest string
}

// Complete reports whether all four slots have been captured.
func (s LeadState) Complete() bool {
	return s.Name != "" && s.Email != "" && s.Phone != "" && s.Interest != ""
}

// LeadPayload is the completed lead emitted by the state machine when the
// last slot is filled.
type LeadPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Interest string `json:"interest"`
}

// Lead is a persisted lead record as written to the lead store.
type Lead struct {
	Timestamp           time.Time
	Source              string
	Name                string
	Email               string
	Phone               string
	Interest            string
	ConversationSummary string
}
