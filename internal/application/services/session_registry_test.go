package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tricoghealth/intake-assistant/internal/application/services"
	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

func TestSessionRegistry_PutGetRemove(t *testing.T) {
	registry := services.NewSessionRegistry()

	session := entities.NewSession("conn-1", &entities.IntakeRecord{SessionID: "session-1"})
	registry.Put(session)

	got, ok := registry.Get("conn-1")
	assert.True(t, ok)
	assert.Equal(t, "session-1", got.SessionID)
	assert.Equal(t, 1, registry.Len())

	_, ok = registry.Get("conn-missing")
	assert.False(t, ok)

	registry.Remove("conn-1")
	_, ok = registry.Get("conn-1")
	assert.False(t, ok)
	assert.Equal(t, 0, registry.Len())
}

func TestSessionRegistry_ReplacesSessionForSameConnection(t *testing.T) {
	registry := services.NewSessionRegistry()

	registry.Put(entities.NewSession("conn-1", &entities.IntakeRecord{SessionID: "session-1"}))
	registry.Put(entities.NewSession("conn-1", &entities.IntakeRecord{SessionID: "session-2"}))

	got, ok := registry.Get("conn-1")
	assert.True(t, ok)
	assert.Equal(t, "session-2", got.SessionID)
	assert.Equal(t, 1, registry.Len())
}

func TestSessionRegistry_EvictIdle(t *testing.T) {
	registry := services.NewSessionRegistry()

	stale := entities.NewSession("conn-stale", &entities.IntakeRecord{SessionID: "session-stale"})
	stale.LastActivity = time.Now().Add(-time.Hour)
	registry.Put(stale)

	fresh := entities.NewSession("conn-fresh", &entities.IntakeRecord{SessionID: "session-fresh"})
	registry.Put(fresh)

	evicted := registry.EvictIdle(30 * time.Minute)

	assert.Equal(t, 1, evicted)
	_, ok := registry.Get("conn-stale")
	assert.False(t, ok)
	_, ok = registry.Get("conn-fresh")
	assert.True(t, ok)
}
