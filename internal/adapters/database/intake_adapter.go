package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
	"github.com/tricoghealth/intake-assistant/internal/domain/repositories"
	"github.com/tricoghealth/intake-assistant/internal/infrastructure/clients/postgres"
	apperrors "github.com/tricoghealth/intake-assistant/pkg/errors"
)

// IntakeAdapter implements the IntakeRepository interface. Symptoms and
// responses live in TEXT columns as JSON; encoding is confined to this
// adapter so the engine only ever sees typed structures.
type IntakeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewIntakeAdapter creates a new intake record adapter
func NewIntakeAdapter(client *postgres.Client) repositories.IntakeRepository {
	return &IntakeAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a fresh active record for the session
func (a *IntakeAdapter) Create(ctx context.Context, sessionID string) (*entities.IntakeRecord, error) {
	now := time.Now()
	record := goqu.Record{
		"session_id":            sessionID,
		"status":                entities.IntakeStatusActive,
		"appointment_scheduled": false,
		"created_at":            now,
		"updated_at":            now,
	}

	query, args, err := a.db.Insert("intake_records").Rows(record).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to create intake record", err)
	}

	return &entities.IntakeRecord{
		SessionID: sessionID,
		Symptoms:  []string{},
		Responses: map[string][]entities.QuestionAnswer{},
		Status:    entities.IntakeStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update applies the non-nil fields of the update as whole-field
// replacements and returns the stored record.
func (a *IntakeAdapter) Update(ctx context.Context, sessionID string, update entities.IntakeUpdate) (*entities.IntakeRecord, error) {
	if update.IsEmpty() {
		return a.GetBySessionID(ctx, sessionID)
	}

	record := goqu.Record{"updated_at": time.Now()}
	if update.Name != nil {
		record["name"] = *update.Name
	}
	if update.Email != nil {
		record["email"] = *update.Email
	}
	if update.Gender != nil {
		record["gender"] = *update.Gender
	}
	if update.Symptoms != nil {
		encoded, err := json.Marshal(update.Symptoms)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode symptoms", err)
		}
		record["symptoms"] = string(encoded)
	}
	if update.Responses != nil {
		encoded, err := json.Marshal(update.Responses)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode responses", err)
		}
		record["responses"] = string(encoded)
	}
	if update.Status != nil {
		record["status"] = *update.Status
	}
	if update.AppointmentScheduled != nil {
		record["appointment_scheduled"] = *update.AppointmentScheduled
	}

	query, args, err := a.db.Update("intake_records").
		Set(record).
		Where(goqu.Ex{"session_id": sessionID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update intake record", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("intake record for session %s not found", sessionID))
	}

	return a.GetBySessionID(ctx, sessionID)
}

// GetBySessionID returns the record for a session
func (a *IntakeAdapter) GetBySessionID(ctx context.Context, sessionID string) (*entities.IntakeRecord, error) {
	query, args, err := a.selectColumns().
		Where(goqu.Ex{"session_id": sessionID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	record, err := scanIntakeRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("intake record for session %s not found", sessionID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get intake record", err)
	}
	return record, nil
}

// List returns all intake records ordered by creation time, newest first
func (a *IntakeAdapter) List(ctx context.Context) ([]*entities.IntakeRecord, error) {
	query, args, err := a.selectColumns().
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list intake records", err)
	}
	defer rows.Close()

	var records []*entities.IntakeRecord
	for rows.Next() {
		record, err := scanIntakeRecord(rows.Scan)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan intake record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate intake records", err)
	}
	return records, nil
}

func (a *IntakeAdapter) selectColumns() *goqu.SelectDataset {
	return a.db.Select(
		"session_id", "name", "email", "gender", "symptoms", "responses",
		"status", "appointment_scheduled", "created_at", "updated_at",
	).From("intake_records")
}

// scanIntakeRecord scans one row and decodes the JSON text columns back
// into typed structures, preserving symptom and answer order.
func scanIntakeRecord(scan func(dest ...interface{}) error) (*entities.IntakeRecord, error) {
	record := &entities.IntakeRecord{}
	var name, email, gender, symptomsJSON, responsesJSON sql.NullString

	err := scan(
		&record.SessionID,
		&name,
		&email,
		&gender,
		&symptomsJSON,
		&responsesJSON,
		&record.Status,
		&record.AppointmentScheduled,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Name = name.String
	record.Email = email.String
	record.Gender = gender.String

	record.Symptoms = []string{}
	if symptomsJSON.Valid && symptomsJSON.String != "" {
		if err := json.Unmarshal([]byte(symptomsJSON.String), &record.Symptoms); err != nil {
			return nil, fmt.Errorf("failed to decode symptoms: %w", err)
		}
	}

	record.Responses = map[string][]entities.QuestionAnswer{}
	if responsesJSON.Valid && responsesJSON.String != "" {
		if err := json.Unmarshal([]byte(responsesJSON.String), &record.Responses); err != nil {
			return nil, fmt.Errorf("failed to decode responses: %w", err)
		}
	}

	return record, nil
}
