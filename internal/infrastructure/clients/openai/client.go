package openai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/tricoghealth/intake-assistant/pkg/config"
	apperrors "github.com/tricoghealth/intake-assistant/pkg/errors"
)

// Client implements the symptom classifier on top of the OpenAI chat
// completion API. Anything the model returns that is not a clean JSON
// array of strings degrades to an empty result; the conversation never
// sees a parse failure.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a new OpenAI-backed symptom classifier
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		client:  openai.NewClient(cfg.APIKey),
		model:   model,
		timeout: timeout,
	}, nil
}

// IdentifySymptoms asks the model which of the allowed canonical symptoms
// appear in the patient's message. The result is deduplicated, restricted
// to the allowed set, and ordered as the model returned it.
func (c *Client) IdentifySymptoms(ctx context.Context, text string, allowed []string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildClassifierSystemPrompt(allowed)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   100,
		Temperature: 0.1,
	})
	if err != nil {
		recordClassifierMetric(ctx, c.model, time.Since(start), err)
		return nil, apperrors.NewExternalError("symptom classification request failed", err)
	}
	recordClassifierMetric(ctx, c.model, time.Since(start), nil)

	if len(resp.Choices) == 0 {
		return nil, nil
	}

	names, err := parseSymptomList(resp.Choices[0].Message.Content)
	if err != nil {
		log.Warn().Err(err).Msg("classifier returned unparsable output, treating as no symptoms")
		return nil, nil
	}
	return restrictToAllowed(names, allowed), nil
}

// parseSymptomList decodes the model output as a JSON array of strings,
// tolerating Markdown code fences around the payload.
func parseSymptomList(raw string) ([]string, error) {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	cleaned = strings.TrimSpace(cleaned)

	var names []string
	if err := json.Unmarshal([]byte(cleaned), &names); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" {
			out = append(out, n)
		}
	}
	return out, nil
}

// restrictToAllowed drops names outside the allowed set and deduplicates,
// preserving the model's relevance order.
func restrictToAllowed(names, allowed []string) []string {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		allowedSet[strings.ToLower(a)] = struct{}{}
	}

	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		if _, ok := allowedSet[n]; !ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

type classifierMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var classifierMetricsOnce sync.Once
var classifierMetricsReady bool
var classifierInstruments classifierMetrics

func ensureClassifierMetrics() {
	classifierMetricsOnce.Do(initClassifierMetrics)
}

func initClassifierMetrics() {
	meter := otel.Meter("github.com/tricoghealth/intake-assistant/openai")

	requestCount, err := meter.Int64Counter(
		"ai.classifier.request.count",
		metric.WithDescription("Number of symptom classifier requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.classifier.request.duration",
		metric.WithDescription("Symptom classifier request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.classifier.request.errors",
		metric.WithDescription("Number of symptom classifier request errors"),
	)
	if err != nil {
		return
	}

	classifierInstruments = classifierMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	classifierMetricsReady = true
}

func recordClassifierMetric(ctx context.Context, model string, duration time.Duration, err error) {
	ensureClassifierMetrics()
	if !classifierMetricsReady {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}

	classifierInstruments.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	classifierInstruments.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		classifierInstruments.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
