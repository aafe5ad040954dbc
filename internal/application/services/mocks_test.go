package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	apperrors "github.com/tricoghealth/intake-assistant/pkg/errors"
)

// fakeIntakeRepo is an in-memory IntakeRepository. Update semantics mirror
// the database adapter: nil fields untouched, non-nil fields replaced.
type fakeIntakeRepo struct {
	mu      sync.Mutex
	records map[string]*entities.IntakeRecord
	// failNext makes the next Update call fail once, then clears itself.
	failNext error
	updates  int
}

func newFakeIntakeRepo() *fakeIntakeRepo {
	return &fakeIntakeRepo{records: make(map[string]*entities.IntakeRecord)}
}

func (f *fakeIntakeRepo) Create(ctx context.Context, sessionID string) (*entities.IntakeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record := &entities.IntakeRecord{
		SessionID: sessionID,
		Symptoms:  []string{},
		Responses: map[string][]entities.QuestionAnswer{},
		Status:    entities.IntakeStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.records[sessionID] = record
	return cloneRecord(record), nil
}

func (f *fakeIntakeRepo) Update(ctx context.Context, sessionID string, update entities.IntakeUpdate) (*entities.IntakeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++

	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}

	record, ok := f.records[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("intake record not found")
	}

	if update.Name != nil {
		record.Name = *update.Name
	}
	if update.Email != nil {
		record.Email = *update.Email
	}
	if update.Gender != nil {
		record.Gender = *update.Gender
	}
	if update.Symptoms != nil {
		record.Symptoms = update.Symptoms
	}
	if update.Responses != nil {
		record.Responses = update.Responses
	}
	if update.Status != nil {
		record.Status = *update.Status
	}
	if update.AppointmentScheduled != nil {
		record.AppointmentScheduled = *update.AppointmentScheduled
	}
	record.UpdatedAt = time.Now()
	return cloneRecord(record), nil
}

func (f *fakeIntakeRepo) GetBySessionID(ctx context.Context, sessionID string) (*entities.IntakeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[sessionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("intake record not found")
	}
	return cloneRecord(record), nil
}

func (f *fakeIntakeRepo) List(ctx context.Context) ([]*entities.IntakeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.IntakeRecord, 0, len(f.records))
	for _, record := range f.records {
		out = append(out, cloneRecord(record))
	}
	return out, nil
}

func cloneRecord(record *entities.IntakeRecord) *entities.IntakeRecord {
	clone := *record
	clone.Symptoms = append([]string(nil), record.Symptoms...)
	clone.Responses = record.CloneResponses()
	return &clone
}

// fakeSymptomRuleRepo serves a fixed rule set for catalog construction.
type fakeSymptomRuleRepo struct {
	rules []*entities.SymptomRule
}

func (f *fakeSymptomRuleRepo) GetBySymptom(ctx context.Context, symptom string) (*entities.SymptomRule, error) {
	for _, rule := range f.rules {
		if rule.Symptom == entities.NormalizeSymptom(symptom) {
			return rule, nil
		}
	}
	return nil, apperrors.NewNotFoundError("symptom rule not found")
}

func (f *fakeSymptomRuleRepo) List(ctx context.Context) ([]*entities.SymptomRule, error) {
	return f.rules, nil
}

func (f *fakeSymptomRuleRepo) Seed(ctx context.Context, rules []*entities.SymptomRule) error {
	return nil
}

// MockSymptomClassifier mocks the SymptomClassifier provider
type MockSymptomClassifier struct {
	mock.Mock
}

func (m *MockSymptomClassifier) IdentifySymptoms(ctx context.Context, text string, allowed []string) ([]string, error) {
	args := m.Called(ctx, text, allowed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockSchedulingProvider mocks the SchedulingProvider
type MockSchedulingProvider struct {
	mock.Mock
}

func (m *MockSchedulingProvider) ScheduleConsultation(ctx context.Context, record *entities.IntakeRecord, startAt time.Time, duration time.Duration) (string, string, error) {
	args := m.Called(ctx, record, startAt, duration)
	return args.String(0), args.String(1), args.Error(2)
}

// MockMessageSender mocks the MessageSender
type MockMessageSender struct {
	mock.Mock
}

func (m *MockMessageSender) SendText(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
