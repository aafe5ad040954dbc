package entities

import "time"

// Stage is the dialogue stage of an intake conversation. Stages only move
// forward through the fixed sequence below, or stay in place when input
// validation fails; they never regress.
type Stage string

const (
	StageGreeting           Stage = "greeting"
	StageCollectingEmail    Stage = "collecting_email"
	StageCollectingGender   Stage = "collecting_gender"
	StageCollectingSymptoms Stage = "collecting_symptoms"
	StageAnsweringFollowUps Stage = "answering_followups"
	StageCompleted          Stage = "completed"
)

// CursorMove describes the outcome of advancing the follow-up cursor
type CursorMove int

const (
	// MoveNextQuestion advances to the next question of the current symptom
	MoveNextQuestion CursorMove = iota
	// MoveNextSymptom advances to the first question of the next symptom
	MoveNextSymptom
	// MoveComplete indicates every question of every symptom has been answered
	MoveComplete
)

// Cursor tracks the traversal position during follow-up collection: which
// symptom is being discussed and which of its questions is pending. It only
// moves through Advance, so out-of-range positions are unrepresentable as
// long as callers pass the real dimensions.
type Cursor struct {
	symptomIndex  int
	questionIndex int
}

// NewCursor returns a cursor at the first question of the first symptom
func NewCursor() Cursor {
	return Cursor{}
}

// SymptomIndex returns the index of the symptom currently being discussed
func (c Cursor) SymptomIndex() int { return c.symptomIndex }

// QuestionIndex returns the index of the pending question within the
// current symptom's question list
func (c Cursor) QuestionIndex() int { return c.questionIndex }

// Advance moves the cursor after the current question has been answered.
// questionCount is the number of questions for the current symptom and
// symptomCount the total number of collected symptoms. The returned cursor
// is unchanged when the move is MoveComplete.
func (c Cursor) Advance(questionCount, symptomCount int) (Cursor, CursorMove) {
	if c.questionIndex+1 < questionCount {
		return Cursor{symptomIndex: c.symptomIndex, questionIndex: c.questionIndex + 1}, MoveNextQuestion
	}
	if c.symptomIndex+1 < symptomCount {
		return Cursor{symptomIndex: c.symptomIndex + 1}, MoveNextSymptom
	}
	return c, MoveComplete
}

// SkipSymptom jumps to the first question of the next symptom regardless of
// how many questions remain for the current one. Used when a symptom's
// catalog entry turns out to be missing mid-traversal.
func (c Cursor) SkipSymptom(symptomCount int) (Cursor, CursorMove) {
	if c.symptomIndex+1 < symptomCount {
		return Cursor{symptomIndex: c.symptomIndex + 1}, MoveNextSymptom
	}
	return c, MoveComplete
}

// Session is the transient, in-memory state of one active conversation.
// It lives only for the duration of the connection; a disconnect discards
// it regardless of intake progress. The owning connection is the sole
// mutator, so no locking is needed on the session itself.
type Session struct {
	ConnectionID string
	SessionID    string
	Stage        Stage
	Cursor       Cursor
	Record       *IntakeRecord
	LastActivity time.Time
}

// NewSession creates a session at the greeting stage bound to an intake record
func NewSession(connectionID string, record *IntakeRecord) *Session {
	return &Session{
		ConnectionID: connectionID,
		SessionID:    record.SessionID,
		Stage:        StageGreeting,
		Cursor:       NewCursor(),
		Record:       record,
		LastActivity: time.Now(),
	}
}

// Touch records activity on the session for idle-eviction bookkeeping
func (s *Session) Touch() {
	s.LastActivity = time.Now()
}
