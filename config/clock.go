package config

import (
	"fmt"
	"time"

	"github.com/DrDelphi/FomoBot/data"
)

// ParseGenesisTime returns the moment the local clock counts ticks from.
// The zero time is returned when no genesis is configured.
func ParseGenesisTime(cfg *data.AppConfig) (time.Time, error) {
	if cfg.Clock.GenesisTime == "" {
		return time.Time{}, nil
	}

	genesis, err := time.Parse(time.RFC3339, cfg.Clock.GenesisTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("genesis time: %w", err)
	}

	return genesis, nil
}

// TickDuration returns the length of one local clock tick
func TickDuration(cfg *data.AppConfig) time.Duration {
	return time.Duration(cfg.Clock.TickSeconds) * time.Second
}
