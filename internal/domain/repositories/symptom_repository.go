package repositories

import (
	"context"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

// SymptomRuleRepository defines the persistence contract for the symptom
// catalog. The catalog is seeded once at startup and read-only afterwards.
type SymptomRuleRepository interface {
	// GetBySymptom returns the rule for a canonical symptom name
	GetBySymptom(ctx context.Context, symptom string) (*entities.SymptomRule, error)

	// List returns every rule in the catalog
	List(ctx context.Context) ([]*entities.SymptomRule, error)

	// Seed inserts the given rules, leaving existing entries untouched
	Seed(ctx context.Context, rules []*entities.SymptomRule) error
}
