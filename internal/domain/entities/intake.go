package entities

import "time"

// IntakeStatus represents the lifecycle status of an intake record
type IntakeStatus string

const (
	IntakeStatusActive    IntakeStatus = "active"
	IntakeStatusCompleted IntakeStatus = "completed"
)

// QuestionAnswer is one recorded follow-up exchange for a symptom
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// IntakeRecord is the durable per-session record of a patient intake.
// Symptoms preserves classifier relevance order because it determines
// follow-up traversal order. Responses grows monotonically, one pair
// per follow-up answer, and its keys are always a subset of Symptoms.
type IntakeRecord struct {
	SessionID            string                      `json:"session_id" db:"session_id"`
	Name                 string                      `json:"name" db:"name"`
	Email                string                      `json:"email" db:"email"`
	Gender               string                      `json:"gender" db:"gender"`
	Symptoms             []string                    `json:"symptoms" db:"symptoms"`
	Responses            map[string][]QuestionAnswer `json:"responses" db:"responses"`
	Status               IntakeStatus                `json:"status" db:"status"`
	AppointmentScheduled bool                        `json:"appointment_scheduled" db:"appointment_scheduled"`
	CreatedAt            time.Time                   `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time                   `json:"updated_at" db:"updated_at"`
}

// IntakeUpdate is a partial update applied to an intake record. Nil fields
// are left untouched; non-nil fields replace the stored value wholesale.
type IntakeUpdate struct {
	Name                 *string
	Email                *string
	Gender               *string
	Symptoms             []string
	Responses            map[string][]QuestionAnswer
	Status               *IntakeStatus
	AppointmentScheduled *bool
}

// IsEmpty reports whether the update carries no field changes
func (u IntakeUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Gender == nil &&
		u.Symptoms == nil && u.Responses == nil && u.Status == nil &&
		u.AppointmentScheduled == nil
}

// CloneResponses returns a deep copy of the record's responses map so a
// caller can append to it without mutating the record in place.
func (r *IntakeRecord) CloneResponses() map[string][]QuestionAnswer {
	out := make(map[string][]QuestionAnswer, len(r.Responses))
	for symptom, pairs := range r.Responses {
		copied := make([]QuestionAnswer, len(pairs))
		copy(copied, pairs)
		out[symptom] = copied
	}
	return out
}
