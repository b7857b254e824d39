package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidtube/backend/internal/db"
	"github.com/vidtube/backend/internal/models"
)

// PostgresCommentRepository provides PostgreSQL-backed persistence for comments.
type PostgresCommentRepository struct {
	pool db.Pool
}

// NewPostgresCommentRepository constructs a comment repository backed by PostgreSQL.
func NewPostgresCommentRepository(pool db.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

// Create persists a new comment. Exactly one of VideoID or TweetID must be
// set; the store's check constraint rejects anything else.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment models.Comment) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO comments (id, content, video_id, tweet_id, created_by, created_at, updated_at)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7)
    `, comment.ID, comment.Content, comment.VideoID, comment.TweetID, comment.CreatedBy, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert comment: %w", err)
	}

	return nil
}

// FindByID fetches a comment by its identifier.
func (r *PostgresCommentRepository) FindByID(ctx context.Context, id string) (models.Comment, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Comment{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, content, video_id, tweet_id, created_by, created_at, updated_at
        FROM comments
        WHERE id = $1
    `, id)

	var (
		comment models.Comment
		videoID sql.NullString
		tweetID sql.NullString
	)
	if err := row.Scan(&comment.ID, &comment.Content, &videoID, &tweetID, &comment.CreatedBy, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Comment{}, ErrNotFound
		}
		return models.Comment{}, fmt.Errorf("select comment: %w", err)
	}

	comment.VideoID = videoID.String
	comment.TweetID = tweetID.String

	return comment, nil
}

// Update rewrites a comment's content. The target association is immutable.
func (r *PostgresCommentRepository) Update(ctx context.Context, comment models.Comment) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE comments
        SET content = $2, updated_at = $3
        WHERE id = $1
    `, comment.ID, comment.Content, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a comment; replies and likes on it cascade away.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// PostgresReplyRepository provides PostgreSQL-backed persistence for replies.
type PostgresReplyRepository struct {
	pool db.Pool
}

// NewPostgresReplyRepository constructs a reply repository backed by PostgreSQL.
func NewPostgresReplyRepository(pool db.Pool) *PostgresReplyRepository {
	return &PostgresReplyRepository{pool: pool}
}

// Create persists a new reply to a comment.
func (r *PostgresReplyRepository) Create(ctx context.Context, reply models.Reply) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO replies (id, content, comment_id, created_by, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, reply.ID, reply.Content, reply.CommentID, reply.CreatedBy, reply.CreatedAt, reply.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrConflict
			case "23503":
				return ErrNotFound
			}
		}
		return fmt.Errorf("insert reply: %w", err)
	}

	return nil
}

// FindByID fetches a reply by its identifier.
func (r *PostgresReplyRepository) FindByID(ctx context.Context, id string) (models.Reply, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Reply{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT id, content, comment_id, created_by, created_at, updated_at
        FROM replies
        WHERE id = $1
    `, id)

	var reply models.Reply
	if err := row.Scan(&reply.ID, &reply.Content, &reply.CommentID, &reply.CreatedBy, &reply.CreatedAt, &reply.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reply{}, ErrNotFound
		}
		return models.Reply{}, fmt.Errorf("select reply: %w", err)
	}

	return reply, nil
}

// Update rewrites a reply's content.
func (r *PostgresReplyRepository) Update(ctx context.Context, reply models.Reply) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE replies
        SET content = $2, updated_at = $3
        WHERE id = $1
    `, reply.ID, reply.Content, reply.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update reply: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a reply along with its likes.
func (r *PostgresReplyRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reply: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

var _ CommentRepository = (*PostgresCommentRepository)(nil)
var _ ReplyRepository = (*PostgresReplyRepository)(nil)
