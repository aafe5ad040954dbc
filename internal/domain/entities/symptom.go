package entities

import (
	"fmt"
	"strings"
)

// SymptomRule maps a canonical symptom name to its ordered list of
// follow-up questions. The name is case-normalized; a rule with no
// questions is invalid and must be rejected when the catalog is loaded.
type SymptomRule struct {
	Symptom           string   `json:"symptom" db:"symptom"`
	FollowUpQuestions []string `json:"follow_up_questions" db:"follow_up_questions"`
}

// NormalizeSymptom lower-cases and trims a symptom name
func NormalizeSymptom(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Validate checks the catalog invariants for a single rule
func (r *SymptomRule) Validate() error {
	if strings.TrimSpace(r.Symptom) == "" {
		return fmt.Errorf("symptom name is empty")
	}
	if len(r.FollowUpQuestions) == 0 {
		return fmt.Errorf("symptom %q has no follow-up questions", r.Symptom)
	}
	for i, q := range r.FollowUpQuestions {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("symptom %q has an empty question at index %d", r.Symptom, i)
		}
	}
	return nil
}
