package repositories

import (
	"context"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

// IntakeRepository defines the persistence contract for intake records.
// Updates are all-or-nothing whole-field replacements; the storage
// representation of symptoms and responses is owned by the adapter and
// opaque to callers.
type IntakeRepository interface {
	// Create inserts a fresh active record for the session
	Create(ctx context.Context, sessionID string) (*entities.IntakeRecord, error)

	// Update applies the non-nil fields of the update and returns the
	// resulting record
	Update(ctx context.Context, sessionID string, update entities.IntakeUpdate) (*entities.IntakeRecord, error)

	// GetBySessionID returns the record for a session, or a not-found error
	GetBySessionID(ctx context.Context, sessionID string) (*entities.IntakeRecord, error)

	// List returns all intake records ordered by creation time, newest first
	List(ctx context.Context) ([]*entities.IntakeRecord, error)
}
