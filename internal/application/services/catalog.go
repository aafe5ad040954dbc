package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	"github.com/tricoghealth/intake-assistant/internal/domain/repositories"
)

// Catalog is an immutable in-memory view of the symptom rules, loaded once
// at startup. The rule set is small and changes only through reseeding, so
// the dialogue engine reads from here instead of hitting the database on
// every turn.
type Catalog struct {
	rules map[string]*entities.SymptomRule
	names []string
}

// NewCatalog loads all symptom rules from the repository. Rules that fail
// validation are skipped with a warning rather than failing startup.
func NewCatalog(ctx context.Context, repo repositories.SymptomRuleRepository) (*Catalog, error) {
	rules, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	catalog := &Catalog{rules: make(map[string]*entities.SymptomRule, len(rules))}
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			log.Warn().Err(err).Str("symptom", rule.Symptom).Msg("Skipping invalid symptom rule")
			continue
		}
		name := entities.NormalizeSymptom(rule.Symptom)
		if _, exists := catalog.rules[name]; exists {
			continue
		}
		catalog.rules[name] = rule
		catalog.names = append(catalog.names, name)
	}

	log.Info().Int("symptoms", len(catalog.names)).Msg("Symptom catalog loaded")
	return catalog, nil
}

// Lookup returns the rule for a normalized symptom name
func (c *Catalog) Lookup(symptom string) (*entities.SymptomRule, bool) {
	rule, ok := c.rules[entities.NormalizeSymptom(symptom)]
	return rule, ok
}

// Names returns the known symptom names in load order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Filter keeps only symptoms present in the catalog, preserving input order
// and dropping duplicates.
func (c *Catalog) Filter(symptoms []string) []string {
	var kept []string
	seen := make(map[string]bool, len(symptoms))
	for _, symptom := range symptoms {
		name := entities.NormalizeSymptom(symptom)
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := c.rules[name]; ok {
			kept = append(kept, name)
		}
	}
	return kept
}
