package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// IntakeEventType represents the type of intake lifecycle event
type IntakeEventType string

const (
	// IntakeEventTypeCompleted fires exactly once when an intake reaches
	// the completed status with every follow-up question answered
	IntakeEventTypeCompleted IntakeEventType = "intake_completed"
)

// IntakeEvent carries an intake record snapshot to downstream consumers
// (consultation scheduling, doctor notification)
type IntakeEvent struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	EventType IntakeEventType `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
	Record    IntakeRecord    `json:"record"`
}

// NewIntakeCompletedEvent builds a completion event from the final record
// snapshot. The record is copied by value so later store writes cannot
// mutate the payload.
func NewIntakeCompletedEvent(record IntakeRecord) *IntakeEvent {
	return &IntakeEvent{
		ID:        generateEventID(),
		SessionID: record.SessionID,
		EventType: IntakeEventTypeCompleted,
		Timestamp: time.Now(),
		Record:    record,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
