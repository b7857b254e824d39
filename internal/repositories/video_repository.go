package repositories

import (
	"context"

	"github.com/vidtube/backend/internal/models"
)

// VideoRepository exposes data access for uploaded videos.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id string) error
	// TogglePublish flips the publish flag and returns the new state.
	TogglePublish(ctx context.Context, id string) (bool, error)
	// IncrementViews bumps the stored view counter by exactly one.
	IncrementViews(ctx context.Context, id string) error
}

// TweetRepository exposes data access for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet models.Tweet) error
	FindByID(ctx context.Context, id string) (models.Tweet, error)
	Update(ctx context.Context, tweet models.Tweet) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository exposes data access for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	Update(ctx context.Context, comment models.Comment) error
	Delete(ctx context.Context, id string) error
}

// ReplyRepository exposes data access for replies.
type ReplyRepository interface {
	Create(ctx context.Context, reply models.Reply) error
	FindByID(ctx context.Context, id string) (models.Reply, error)
	Update(ctx context.Context, reply models.Reply) error
	Delete(ctx context.Context, id string) error
}
