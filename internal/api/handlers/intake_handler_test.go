package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tricoghealth/intake-assistant/internal/api/handlers"
	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	apperrors "github.com/tricoghealth/intake-assistant/pkg/errors"
)

type stubIntakeRepo struct {
	records []*entities.IntakeRecord
	listErr error
}

func (s *stubIntakeRepo) Create(ctx context.Context, sessionID string) (*entities.IntakeRecord, error) {
	record := &entities.IntakeRecord{
		SessionID: sessionID,
		Symptoms:  []string{},
		Responses: map[string][]entities.QuestionAnswer{},
		Status:    entities.IntakeStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.records = append(s.records, record)
	return record, nil
}

func (s *stubIntakeRepo) Update(ctx context.Context, sessionID string, update entities.IntakeUpdate) (*entities.IntakeRecord, error) {
	for _, record := range s.records {
		if record.SessionID != sessionID {
			continue
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
		return record, nil
	}
	return nil, errors.New("not found")
}

func (s *stubIntakeRepo) GetBySessionID(ctx context.Context, sessionID string) (*entities.IntakeRecord, error) {
	for _, record := range s.records {
		if record.SessionID == sessionID {
			return record, nil
		}
	}
	return nil, apperrors.NewNotFoundError("intake record not found")
}

func (s *stubIntakeRepo) List(ctx context.Context) ([]*entities.IntakeRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

func TestIntakeHandler_ListPatients(t *testing.T) {
	repo := &stubIntakeRepo{
		records: []*entities.IntakeRecord{
			{SessionID: "session-1", Name: "Jane Doe", Status: entities.IntakeStatusCompleted},
			{SessionID: "session-2", Name: "John Doe", Status: entities.IntakeStatusActive},
		},
	}
	handler := handlers.NewIntakeHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()

	handler.ListPatients(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Patients []entities.IntakeRecord `json:"patients"`
		Count    int                     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Patients, 2)
	assert.Equal(t, "session-1", body.Patients[0].SessionID)
}

func TestIntakeHandler_ListPatients_RepositoryError(t *testing.T) {
	repo := &stubIntakeRepo{listErr: errors.New("database unavailable")}
	handler := handlers.NewIntakeHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec := httptest.NewRecorder()

	handler.ListPatients(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
}

func TestIntakeHandler_GetPatient(t *testing.T) {
	repo := &stubIntakeRepo{
		records: []*entities.IntakeRecord{
			{SessionID: "session-1", Name: "Jane Doe", Status: entities.IntakeStatusCompleted},
		},
	}
	handler := handlers.NewIntakeHandler(repo)

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/patients/session-1", nil)
		req.SetPathValue("sessionId", "session-1")
		rec := httptest.NewRecorder()

		handler.GetPatient(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body entities.IntakeRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Jane Doe", body.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/patients/session-x", nil)
		req.SetPathValue("sessionId", "session-x")
		rec := httptest.NewRecorder()

		handler.GetPatient(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestIntakeHandler_HealthCheck(t *testing.T) {
	handler := handlers.NewIntakeHandler(&stubIntakeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
}
