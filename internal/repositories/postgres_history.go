package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidtube/backend/internal/db"
)

// PostgresHistoryRepository provides PostgreSQL-backed persistence for watch
// and search histories.
type PostgresHistoryRepository struct {
	pool db.Pool
}

// NewPostgresHistoryRepository constructs a history repository backed by PostgreSQL.
func NewPostgresHistoryRepository(pool db.Pool) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{pool: pool}
}

// RecordWatch upserts a watch entry. Rewatching an already-recorded video
// re-timestamps the entry, moving it to the front of the history.
func (r *PostgresHistoryRepository) RecordWatch(ctx context.Context, userID, videoID string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO watch_history (user_id, video_id, watched_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = NOW()
    `, userID, videoID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("upsert watch history: %w", err)
	}

	return nil
}

// RecordSearch upserts a search entry keyed by the literal query string,
// re-timestamping repeats.
func (r *PostgresHistoryRepository) RecordSearch(ctx context.Context, userID, query string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO search_history (user_id, query, searched_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (user_id, query) DO UPDATE SET searched_at = NOW()
    `, userID, query)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return fmt.Errorf("upsert search history: %w", err)
	}

	return nil
}

var _ HistoryRepository = (*PostgresHistoryRepository)(nil)
