package providers

import "context"

// SymptomClassifier turns free-text patient input into canonical symptom
// names drawn from the supplied allowed set. Implementations must return
// names without duplicates, ordered by relevance, and must degrade malformed
// upstream output to an empty result instead of surfacing a parse failure.
type SymptomClassifier interface {
	IdentifySymptoms(ctx context.Context, text string, allowed []string) ([]string, error)
}
