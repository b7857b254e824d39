package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
)

var likeTargetColumns = map[models.LikeTarget]string{
	models.LikeTargetVideo:   "video_id",
	models.LikeTargetTweet:   "tweet_id",
	models.LikeTargetComment: "comment_id",
	models.LikeTargetReply:   "reply_id",
}

// PostgresLikeRepository provides PostgreSQL-backed persistence for likes.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

// Toggle removes the like if the pair exists, otherwise creates it. The
// delete and insert are each atomic, so two concurrent toggles of the same
// pair settle on one of the two valid states rather than a duplicate: the
// insert ignores a conflicting row and still reports ToggleCreated because
// the pair ended up liked.
func (r *PostgresLikeRepository) Toggle(ctx context.Context, target models.LikeTarget, targetID, userID string) (ToggleResult, error) {
	column, ok := likeTargetColumns[target]
	if !ok {
		return "", fmt.Errorf("unknown like target %q", target)
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx,
		`DELETE FROM likes WHERE liked_by = $1 AND `+column+` = $2`,
		userID, targetID)
	if err != nil {
		return "", fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return ToggleDeleted, nil
	}

	_, err = conn.Exec(ctx,
		`INSERT INTO likes (id, liked_by, `+column+`) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`,
		uuid.NewString(), userID, targetID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("insert like: %w", err)
	}

	return ToggleCreated, nil
}

// PostgresSubscriptionRepository provides PostgreSQL-backed persistence for
// channel subscriptions.
type PostgresSubscriptionRepository struct {
	pool db.Pool
}

// NewPostgresSubscriptionRepository constructs a subscription repository
// backed by PostgreSQL.
func NewPostgresSubscriptionRepository(pool db.Pool) *PostgresSubscriptionRepository {
	return &PostgresSubscriptionRepository{pool: pool}
}

// Toggle unsubscribes if the pair exists, otherwise subscribes, with the same
// race settlement as like toggles.
func (r *PostgresSubscriptionRepository) Toggle(ctx context.Context, channelID, subscriberID string) (ToggleResult, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2`,
		subscriberID, channelID)
	if err != nil {
		return "", fmt.Errorf("delete subscription: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return ToggleDeleted, nil
	}

	_, err = conn.Exec(ctx, `
        INSERT INTO subscriptions (id, subscriber_id, channel_id)
        VALUES ($1, $2, $3)
        ON CONFLICT (subscriber_id, channel_id) DO NOTHING
    `, uuid.NewString(), subscriberID, channelID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23503":
				return "", ErrNotFound
			case "23514":
				return "", ErrConflict
			}
		}
		return "", fmt.Errorf("insert subscription: %w", err)
	}

	return ToggleCreated, nil
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)
var _ SubscriptionRepository = (*PostgresSubscriptionRepository)(nil)
