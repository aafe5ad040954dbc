package scheduling

import (
	"github.com/rs/zerolog/log"

	"github.com/tricoghealth/intake-assistant/internal/domain/providers"
	"github.com/tricoghealth/intake-assistant/pkg/config"
)

// NewSchedulingProvider selects a scheduling provider from configuration.
// An unset or unrecognized provider falls back to the mock so local
// development never needs real credentials.
func NewSchedulingProvider(cfg *config.SchedulingConfig) providers.SchedulingProvider {
	switch cfg.Provider {
	case "calendly":
		if cfg.APIKey == "" {
			log.Warn().Msg("SCHEDULING_API_KEY not set, using mock scheduling provider")
			return NewMockAdapter()
		}
		return NewCalendlyAdapter(cfg.APIKey)
	case "mock", "":
		return NewMockAdapter()
	default:
		log.Warn().Str("provider", cfg.Provider).Msg("Unknown scheduling provider, using mock")
		return NewMockAdapter()
	}
}
