package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	"github.com/tricoghealth/intake-assistant/internal/domain/providers"
)

// MockAdapter books deterministic consultations for local development.
type MockAdapter struct{}

// NewMockAdapter creates a mock scheduling provider.
func NewMockAdapter() providers.SchedulingProvider {
	return &MockAdapter{}
}

// ScheduleConsultation returns a mock booking reference.
func (m *MockAdapter) ScheduleConsultation(ctx context.Context, record *entities.IntakeRecord, startAt time.Time, duration time.Duration) (string, string, error) {
	id := fmt.Sprintf("mock-%d", time.Now().UnixNano())
	return id, fmt.Sprintf("https://example.com/consultation/%s", id), nil
}
