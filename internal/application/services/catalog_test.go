package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tricoghealth/intake-assistant/internal/application/services"
	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

func TestCatalog_SkipsInvalidRules(t *testing.T) {
	catalog, err := services.NewCatalog(context.Background(), &fakeSymptomRuleRepo{
		rules: []*entities.SymptomRule{
			{Symptom: "chest pain", FollowUpQuestions: []string{"When did it start?"}},
			{Symptom: "broken", FollowUpQuestions: nil},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"chest pain"}, catalog.Names())
	_, ok := catalog.Lookup("broken")
	assert.False(t, ok)
}

func TestCatalog_LookupNormalizes(t *testing.T) {
	catalog, err := services.NewCatalog(context.Background(), &fakeSymptomRuleRepo{
		rules: []*entities.SymptomRule{
			{Symptom: "chest pain", FollowUpQuestions: []string{"When did it start?"}},
		},
	})
	require.NoError(t, err)

	rule, ok := catalog.Lookup("  Chest Pain ")
	require.True(t, ok)
	assert.Equal(t, "chest pain", rule.Symptom)
}

func TestCatalog_Filter(t *testing.T) {
	catalog, err := services.NewCatalog(context.Background(), &fakeSymptomRuleRepo{
		rules: []*entities.SymptomRule{
			{Symptom: "chest pain", FollowUpQuestions: []string{"Q"}},
			{Symptom: "dizziness", FollowUpQuestions: []string{"Q"}},
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "Preserves input order",
			input: []string{"dizziness", "chest pain"},
			want:  []string{"dizziness", "chest pain"},
		},
		{
			name:  "Drops unknown and duplicate entries",
			input: []string{"chest pain", "headache", "Chest Pain"},
			want:  []string{"chest pain"},
		},
		{
			name:  "All unknown yields nil",
			input: []string{"headache"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Filter(tt.input))
		})
	}
}
