package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	"github.com/tricoghealth/intake-assistant/internal/domain/providers"
	"github.com/tricoghealth/intake-assistant/internal/domain/repositories"
	"github.com/tricoghealth/intake-assistant/pkg/config"
)

// CompletionService reacts to completed intakes: it books a consultation
// with the scheduling provider and notifies the on-call doctor. Both side
// effects are best effort; a failure in either is logged and never
// surfaces back into the patient conversation.
type CompletionService struct {
	bus       providers.EventBus
	scheduler providers.SchedulingProvider
	notifier  providers.MessageSender
	intakes   repositories.IntakeRepository
	offset    time.Duration
	duration  time.Duration
}

// NewCompletionService creates a new completion service. The notifier may
// be nil when no Telegram credentials are configured.
func NewCompletionService(
	bus providers.EventBus,
	scheduler providers.SchedulingProvider,
	notifier providers.MessageSender,
	intakes repositories.IntakeRepository,
	cfg *config.IntakeConfig,
) *CompletionService {
	return &CompletionService{
		bus:       bus,
		scheduler: scheduler,
		notifier:  notifier,
		intakes:   intakes,
		offset:    cfg.AppointmentOffset,
		duration:  cfg.AppointmentDuration,
	}
}

// Run subscribes to completion events and dispatches them until the
// context is cancelled.
func (s *CompletionService) Run(ctx context.Context) error {
	events, err := s.bus.Subscribe(ctx, providers.EventChannelIntakeCompleted)
	if err != nil {
		return err
	}

	log.Info().Msg("Completion dispatcher running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			s.Dispatch(ctx, &event.Record)
		}
	}
}

// Dispatch schedules a consultation and notifies the doctor for one
// completed intake.
func (s *CompletionService) Dispatch(ctx context.Context, record *entities.IntakeRecord) {
	s.schedule(ctx, record)
	s.notify(ctx, record)
}

func (s *CompletionService) schedule(ctx context.Context, record *entities.IntakeRecord) {
	startAt := time.Now().Add(s.offset)
	externalID, meetingLink, err := s.scheduler.ScheduleConsultation(ctx, record, startAt, s.duration)
	if err != nil {
		log.Error().Err(err).Str("session_id", record.SessionID).Msg("Failed to schedule consultation")
		return
	}

	log.Info().
		Str("session_id", record.SessionID).
		Str("external_id", externalID).
		Str("meeting_link", meetingLink).
		Time("start_at", startAt).
		Msg("Consultation scheduled")

	scheduled := true
	if _, err := s.intakes.Update(ctx, record.SessionID, entities.IntakeUpdate{AppointmentScheduled: &scheduled}); err != nil {
		log.Error().Err(err).Str("session_id", record.SessionID).Msg("Failed to flag appointment as scheduled")
	}
}

func (s *CompletionService) notify(ctx context.Context, record *entities.IntakeRecord) {
	if s.notifier == nil {
		log.Warn().Str("session_id", record.SessionID).Msg("No notifier configured, skipping doctor notification")
		return
	}

	messageID, err := s.notifier.SendText(ctx, buildDoctorSummary(record))
	if err != nil {
		log.Error().Err(err).Str("session_id", record.SessionID).Msg("Failed to notify doctor")
		return
	}

	log.Info().
		Str("session_id", record.SessionID).
		Str("message_id", messageID).
		Msg("Doctor notified")
}
