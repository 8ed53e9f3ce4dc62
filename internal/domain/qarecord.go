package domain

import "time"

// QARecord is one answered turn, kept append-only for analytics.
// RetrievedIDs matches the surviving retrieved chunks 1:1, in search order.
type QARecord struct {
	Timestamp    time.Time
	Question     string
	Answer       string
	Intent       Intent
	RetrievedIDs []string
}
