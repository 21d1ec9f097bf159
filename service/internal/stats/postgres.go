package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTable = `
CREATE TABLE IF NOT EXISTS gostop_stats (
	id          SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	total_games INTEGER NOT NULL,
	wins        INTEGER NOT NULL,
	losses      INTEGER NOT NULL,
	high_score  INTEGER NOT NULL
)`

// PostgresStore keeps the record in a single-row table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects with dsn and creates the table if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	if _, err := pool.Exec(ctx, createTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres create table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Load(ctx context.Context) (Record, error) {
	var r Record
	err := s.pool.QueryRow(ctx,
		`SELECT total_games, wins, losses, high_score FROM gostop_stats WHERE id = 1`,
	).Scan(&r.TotalGames, &r.Wins, &r.Losses, &r.HighScore)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("postgres load: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *PostgresStore) Save(ctx context.Context, r Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO gostop_stats (id, total_games, wins, losses, high_score)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			total_games = EXCLUDED.total_games,
			wins        = EXCLUDED.wins,
			losses      = EXCLUDED.losses,
			high_score  = EXCLUDED.high_score`,
		r.TotalGames, r.Wins, r.Losses, r.HighScore)
	if err != nil {
		return fmt.Errorf("postgres save: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
