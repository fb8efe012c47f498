// Package store persists the ladder aggregate as a single serialized blob.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/darts-ladder/internal/config"
	"github.com/darts-ladder/internal/domain"
)

// Store loads and saves the full aggregate state. Load never fails the
// caller on an absent or malformed blob: it falls back to an empty state so
// a corrupt data file can not take the service down.
type Store interface {
	Load(ctx context.Context) (*domain.State, error)
	Save(ctx context.Context, state *domain.State) error
	Close() error
}

// Open creates the store selected by cfg.Backend.
func Open(cfg *config.StorageConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case "bolt":
		return NewBoltStore(cfg.Bolt.Path, logger)
	case "redis":
		return NewRedisStore(&cfg.Redis, logger)
	case "postgres":
		return NewPostgresStore(&cfg.Postgres, logger)
	case "memory":
		return NewMemoryStore(), nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// decodeState turns a persisted blob into a fully populated aggregate.
// Malformed content is replaced with an empty state and logged, never
// surfaced to the caller.
func decodeState(data []byte, logger *slog.Logger) *domain.State {
	if len(data) == 0 {
		return domain.NewState()
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("persisted state is malformed, starting empty", "error", err)
		return domain.NewState()
	}
	state.Sanitize(0)
	return &state
}
