package database

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

func TestDecodeSymptomRule(t *testing.T) {
	tests := []struct {
		name          string
		symptom       string
		questionsJSON string
		wantQuestions []string
		wantErr       bool
	}{
		{
			name:          "Valid question list",
			symptom:       "chest pain",
			questionsJSON: `["When did the chest pain start?","Is the pain constant or does it come and go?"]`,
			wantQuestions: []string{
				"When did the chest pain start?",
				"Is the pain constant or does it come and go?",
			},
		},
		{
			name:          "Corrupt column",
			symptom:       "dizziness",
			questionsJSON: `not json`,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := decodeSymptomRule(tt.symptom, tt.questionsJSON)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.symptom, rule.Symptom)
			assert.Equal(t, tt.wantQuestions, rule.FollowUpQuestions)
		})
	}
}

func TestDefaultSymptomRules(t *testing.T) {
	rules := DefaultSymptomRules()
	require.Len(t, rules, 5)

	seen := map[string]bool{}
	for _, rule := range rules {
		assert.NoError(t, rule.Validate())
		assert.False(t, seen[rule.Symptom], "duplicate symptom %q", rule.Symptom)
		seen[rule.Symptom] = true
		assert.Len(t, rule.FollowUpQuestions, 6)
	}
	assert.True(t, seen["chest pain"])
	assert.True(t, seen["shortness of breath"])
}

// Answers within a symptom must come back in the order they were given,
// so the encoded responses column has to round-trip ordered slices.
func TestResponsesRoundTripPreservesOrder(t *testing.T) {
	responses := map[string][]entities.QuestionAnswer{
		"chest pain": {
			{Question: "When did the chest pain start?", Answer: "two days ago"},
			{Question: "Is the pain constant or does it come and go?", Answer: "it comes and goes"},
			{Question: "Does the pain get worse with activity or exercise?", Answer: "yes"},
		},
	}

	encoded, err := json.Marshal(responses)
	require.NoError(t, err)

	var decoded map[string][]entities.QuestionAnswer
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, responses, decoded)
}
