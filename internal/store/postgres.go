package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darts-ladder/internal/config"
	"github.com/darts-ladder/internal/domain"
)

// PostgresStore keeps the aggregate blob in a single-row table.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresStore connects to PostgreSQL and ensures the state table exists.
func NewPostgresStore(cfg *config.PostgresConfig, logger *slog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &PostgresStore{pool: pool, logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ladder_state (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			data JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Load reads the state row. An absent row yields an empty state.
func (s *PostgresStore) Load(ctx context.Context) (*domain.State, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM ladder_state WHERE id = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewState(), nil
		}
		return nil, fmt.Errorf("reading state: %w", err)
	}

	return decodeState(data, s.logger), nil
}

// Save upserts the state row.
func (s *PostgresStore) Save(ctx context.Context, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO ladder_state (id, data, updated_at)
		VALUES (1, $1, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET data = $1, updated_at = CURRENT_TIMESTAMP`,
		data,
	)
	if err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
