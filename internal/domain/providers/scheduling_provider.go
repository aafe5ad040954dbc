package providers

import (
	"context"
	"time"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

// SchedulingProvider defines the interface for external scheduling services
// (Calendly, Cal.com, etc.) used to book the consultation that follows a
// completed intake.
type SchedulingProvider interface {
	// ScheduleConsultation books a consultation slot for the patient in the
	// record, starting at startAt for the given duration. It returns the
	// provider-side event ID and a booking/meeting link when available.
	ScheduleConsultation(ctx context.Context, record *entities.IntakeRecord, startAt time.Time, duration time.Duration) (externalID string, meetingLink string, err error)
}
