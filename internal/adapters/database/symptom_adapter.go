package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	"github.com/tricoghealth/intake-assistant/internal/domain/repositories"
	"github.com/tricoghealth/intake-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/tricoghealth/intake-assistant/pkg/errors"
)

// SymptomRuleAdapter implements the SymptomRuleRepository interface
type SymptomRuleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSymptomRuleAdapter creates a new symptom rule adapter
func NewSymptomRuleAdapter(client *postgres.Client) repositories.SymptomRuleRepository {
	return &SymptomRuleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetBySymptom returns the rule for a normalized symptom name
func (a *SymptomRuleAdapter) GetBySymptom(ctx context.Context, symptom string) (*entities.SymptomRule, error) {
	query, args, err := a.db.Select("symptom", "follow_up_questions").
		From("symptom_rules").
		Where(goqu.Ex{"symptom": entities.NormalizeSymptom(symptom)}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	var name, questionsJSON string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&name, &questionsJSON)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("symptom rule %q not found", symptom))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get symptom rule", err)
	}

	return decodeSymptomRule(name, questionsJSON)
}

// List returns all symptom rules ordered by name
func (a *SymptomRuleAdapter) List(ctx context.Context) ([]*entities.SymptomRule, error) {
	query, args, err := a.db.Select("symptom", "follow_up_questions").
		From("symptom_rules").
		Order(goqu.I("symptom").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list symptom rules", err)
	}
	defer rows.Close()

	var rules []*entities.SymptomRule
	for rows.Next() {
		var name, questionsJSON string
		if err := rows.Scan(&name, &questionsJSON); err != nil {
			return nil, apperrors.NewInternalError("failed to scan symptom rule", err)
		}
		rule, err := decodeSymptomRule(name, questionsJSON)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate symptom rules", err)
	}
	return rules, nil
}

// Seed inserts the given rules, leaving existing rows untouched so
// operator edits to question lists survive restarts.
func (a *SymptomRuleAdapter) Seed(ctx context.Context, rules []*entities.SymptomRule) error {
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("invalid symptom rule %q: %v", rule.Symptom, err))
		}

		encoded, err := json.Marshal(rule.FollowUpQuestions)
		if err != nil {
			return apperrors.NewInternalError("failed to encode follow-up questions", err)
		}

		query, args, err := a.db.Insert("symptom_rules").
			Rows(goqu.Record{
				"symptom":             entities.NormalizeSymptom(rule.Symptom),
				"follow_up_questions": string(encoded),
				"created_at":          time.Now(),
			}).
			OnConflict(goqu.DoNothing()).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build seed query", err)
		}

		if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to seed symptom rule", err)
		}
	}
	return nil
}

func decodeSymptomRule(name, questionsJSON string) (*entities.SymptomRule, error) {
	var questions []string
	if err := json.Unmarshal([]byte(questionsJSON), &questions); err != nil {
		return nil, apperrors.NewInternalError("failed to decode follow-up questions", err)
	}
	return &entities.SymptomRule{
		Symptom:           name,
		FollowUpQuestions: questions,
	}, nil
}
