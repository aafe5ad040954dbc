package openai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSymptomList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "plain json array",
			raw:  `["chest pain", "dizziness"]`,
			want: []string{"chest pain", "dizziness"},
		},
		{
			name: "json fenced in markdown",
			raw:  "```json\n[\"fatigue\"]\n```",
			want: []string{"fatigue"},
		},
		{
			name: "bare fence",
			raw:  "```\n[\"palpitations\"]\n```",
			want: []string{"palpitations"},
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: []string{},
		},
		{
			name: "mixed case and whitespace normalized",
			raw:  `[" Chest Pain ", "DIZZINESS"]`,
			want: []string{"chest pain", "dizziness"},
		},
		{
			name:    "prose instead of json",
			raw:     `The patient seems to have chest pain.`,
			wantErr: true,
		},
		{
			name:    "json object instead of array",
			raw:     `{"symptoms": ["chest pain"]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSymptomList(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRestrictToAllowed(t *testing.T) {
	allowed := []string{"chest pain", "dizziness", "fatigue"}

	t.Run("filters unknown names", func(t *testing.T) {
		got := restrictToAllowed([]string{"chest pain", "made-up-symptom"}, allowed)
		assert.Equal(t, []string{"chest pain"}, got)
	})

	t.Run("deduplicates while preserving order", func(t *testing.T) {
		got := restrictToAllowed([]string{"dizziness", "chest pain", "dizziness"}, allowed)
		assert.Equal(t, []string{"dizziness", "chest pain"}, got)
	})

	t.Run("all unknown yields nil", func(t *testing.T) {
		got := restrictToAllowed([]string{"sore throat"}, allowed)
		assert.Nil(t, got)
	})
}

// Metric recording happens on every classifier call, so concurrent
// sessions must be able to race through the lazy instrument setup.
func TestRecordClassifierMetricConcurrent(t *testing.T) {
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recordClassifierMetric(ctx, "gpt-4o-mini", 10*time.Millisecond, nil)
			recordClassifierMetric(ctx, "gpt-4o-mini", 10*time.Millisecond, errors.New("timeout"))
		}()
	}
	wg.Wait()

	assert.True(t, classifierMetricsReady)
}

func TestBuildClassifierSystemPrompt(t *testing.T) {
	prompt := buildClassifierSystemPrompt([]string{"chest pain", "dizziness"})

	assert.Contains(t, prompt, "- chest pain")
	assert.Contains(t, prompt, "- dizziness")
	assert.Contains(t, prompt, "JSON array")
}
