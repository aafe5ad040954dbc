package scheduling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	"github.com/tricoghealth/intake-assistant/internal/domain/providers"
)

// CalendlyAdapter implements SchedulingProvider for Calendly
type CalendlyAdapter struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewCalendlyAdapter creates a new Calendly adapter
func NewCalendlyAdapter(apiKey string) providers.SchedulingProvider {
	return &CalendlyAdapter{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.calendly.com",
	}
}

type calendlyOneOffEventRequest struct {
	Name        string              `json:"name"`
	Host        string              `json:"host,omitempty"`
	Duration    int                 `json:"duration"`
	DateSetting calendlyDateSetting `json:"date_setting"`
	Location    calendlyLocation    `json:"location"`
}

type calendlyDateSetting struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type calendlyLocation struct {
	Kind string `json:"kind"`
}

type calendlyOneOffEventResponse struct {
	Resource struct {
		URI           string `json:"uri"`
		SchedulingURL string `json:"scheduling_url"`
	} `json:"resource"`
}

// ScheduleConsultation books a consultation slot for the patient through
// Calendly's one-off event type API and returns the event identifier and
// the scheduling link.
func (a *CalendlyAdapter) ScheduleConsultation(ctx context.Context, record *entities.IntakeRecord, startAt time.Time, duration time.Duration) (string, string, error) {
	name := "Cardiology consultation"
	if record.Name != "" {
		name = fmt.Sprintf("Cardiology consultation: %s", record.Name)
	}

	payload, err := json.Marshal(calendlyOneOffEventRequest{
		Name:     name,
		Duration: int(duration.Minutes()),
		DateSetting: calendlyDateSetting{
			Type:      "date_range",
			StartDate: startAt.UTC().Format("2006-01-02"),
			EndDate:   startAt.Add(duration).UTC().Format("2006-01-02"),
		},
		Location: calendlyLocation{Kind: "custom"},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal event request: %w", err)
	}

	url := fmt.Sprintf("%s/one_off_event_types", a.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", "", err
	}
	a.addHeaders(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("calendly api error: status %d", resp.StatusCode)
	}

	var result calendlyOneOffEventResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", err
	}

	return eventIDFromURI(result.Resource.URI), result.Resource.SchedulingURL, nil
}

// eventIDFromURI extracts the trailing UUID from a Calendly resource URI.
func eventIDFromURI(uri string) string {
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}
	return uri
}

func (a *CalendlyAdapter) addHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.apiKey))
	req.Header.Set("Content-Type", "application/json")
}
