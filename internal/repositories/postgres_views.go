package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/backend/internal/db"
)

// PostgresViewRepository composes denormalized projections with SQL joins and
// subqueries. Every query binds the viewer id as $1; an empty viewer id never
// matches a stored id, so anonymous viewers get false flags without a
// separate query shape.
type PostgresViewRepository struct {
	pool db.Pool
}

// NewPostgresViewRepository constructs a view repository backed by PostgreSQL.
func NewPostgresViewRepository(pool db.Pool) *PostgresViewRepository {
	return &PostgresViewRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// targetExists resolves the base row a list composition hangs off. An absent
// parent is ErrNotFound, never an empty page.
func targetExists(ctx context.Context, conn *pgxpool.Conn, table, id string) error {
	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s row: %w", table, err)
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

const videoViewColumns = `v.id, v.file_url, v.thumbnail_url, v.title, v.description, v.tags, v.duration, v.views, v.is_published, v.created_at,
           u.id, u.username, u.full_name, u.avatar_url,
           (SELECT COUNT(*) FROM likes l WHERE l.video_id = v.id),
           EXISTS (SELECT 1 FROM likes l WHERE l.video_id = v.id AND l.liked_by = $1),
           (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = v.created_by),
           EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = v.created_by AND s.subscriber_id = $1)`

const videoViewSelect = `
    SELECT ` + videoViewColumns + `
    FROM videos v
    LEFT JOIN users u ON u.id = v.created_by`

func scanVideoView(row rowScanner, extra ...any) (VideoView, error) {
	var (
		view                                  VideoView
		creatorID, username, fullName, avatar sql.NullString
	)

	dest := []any{
		&view.ID, &view.FileURL, &view.ThumbnailURL, &view.Title, &view.Description,
		&view.Tags, &view.Duration, &view.Views, &view.IsPublished, &view.CreatedAt,
		&creatorID, &username, &fullName, &avatar,
		&view.NumberOfLikes, &view.ViewerHasLiked,
		&view.NumberOfSubscribers, &view.ViewerIsSubscribed,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return VideoView{}, err
	}

	if creatorID.Valid {
		view.CreatedBy = &Creator{
			ID:       creatorID.String,
			Username: username.String,
			FullName: fullName.String,
			Avatar:   avatar.String,
		}
	}

	return view, nil
}

const tweetViewSelect = `
    SELECT t.id, t.content, t.created_at,
           u.id, u.username, u.full_name, u.avatar_url,
           (SELECT COUNT(*) FROM likes l WHERE l.tweet_id = t.id),
           EXISTS (SELECT 1 FROM likes l WHERE l.tweet_id = t.id AND l.liked_by = $1)
    FROM tweets t
    LEFT JOIN users u ON u.id = t.created_by`

func scanTweetView(row rowScanner) (TweetView, error) {
	var (
		view                                  TweetView
		creatorID, username, fullName, avatar sql.NullString
	)

	if err := row.Scan(&view.ID, &view.Content, &view.CreatedAt,
		&creatorID, &username, &fullName, &avatar,
		&view.NumberOfLikes, &view.ViewerHasLiked); err != nil {
		return TweetView{}, err
	}

	if creatorID.Valid {
		view.CreatedBy = &Creator{
			ID:       creatorID.String,
			Username: username.String,
			FullName: fullName.String,
			Avatar:   avatar.String,
		}
	}

	return view, nil
}

// VideoByID composes a single video view. Publish gating is the caller's job.
func (r *PostgresViewRepository) VideoByID(ctx context.Context, videoID, viewerID string) (VideoView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return VideoView{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, videoViewSelect+` WHERE v.id = $2`, viewerID, videoID)

	view, err := scanVideoView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VideoView{}, ErrNotFound
		}
		return VideoView{}, fmt.Errorf("select video view: %w", err)
	}

	return view, nil
}

// ListVideos returns published videos (plus the viewer's own unpublished
// ones) filtered by the optional query and ordered per the options. Ranked
// queries sort title matches ahead of tag-only matches before the requested
// field applies.
func (r *PostgresViewRepository) ListVideos(ctx context.Context, opts ListVideosOptions) ([]VideoView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	query := videoViewSelect + ` WHERE (v.is_published OR v.created_by = $1)`
	args := []any{opts.ViewerID}

	if opts.Query != "" {
		args = append(args, opts.Query)
		query += `
          AND (v.title ILIKE '%' || $2 || '%'
               OR EXISTS (SELECT 1 FROM unnest(v.tags) tag WHERE tag ILIKE '%' || $2 || '%'))`
	}

	sortColumn, ok := VideoSortFields[opts.SortBy]
	if opts.SortBy == "" {
		sortColumn = "v.created_at"
	} else if !ok {
		return nil, fmt.Errorf("unknown sort field %q", opts.SortBy)
	}

	direction := "DESC"
	if opts.Ascending {
		direction = "ASC"
	}

	query += ` ORDER BY `
	if opts.Ranked && opts.Query != "" {
		query += `CASE
                WHEN LOWER(v.title) = LOWER($2) THEN 0
                WHEN v.title ILIKE '%' || $2 || '%' THEN 1
                ELSE 2
            END, `
	}
	query += sortColumn + ` ` + direction

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var views []VideoView
	for rows.Next() {
		view, err := scanVideoView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video view: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return views, nil
}

// TweetsByUser returns a user's tweets, newest first.
func (r *PostgresViewRepository) TweetsByUser(ctx context.Context, userID, viewerID string) ([]TweetView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if err := targetExists(ctx, conn, "users", userID); err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, tweetViewSelect+`
        WHERE t.created_by = $2
        ORDER BY t.created_at DESC
    `, viewerID, userID)
	if err != nil {
		return nil, fmt.Errorf("query tweets: %w", err)
	}
	defer rows.Close()

	var views []TweetView
	for rows.Next() {
		view, err := scanTweetView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tweet view: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweets: %w", err)
	}

	return views, nil
}

const commentViewSelect = `
    SELECT c.id, c.content, c.created_at,
           u.id, u.username, u.full_name, u.avatar_url,
           (SELECT COUNT(*) FROM likes l WHERE l.comment_id = c.id),
           EXISTS (SELECT 1 FROM likes l WHERE l.comment_id = c.id AND l.liked_by = $1),
           (SELECT COUNT(*) FROM replies rp WHERE rp.comment_id = c.id)
    FROM comments c
    LEFT JOIN users u ON u.id = c.created_by`

func (r *PostgresViewRepository) commentsWhere(ctx context.Context, parent, where, targetID, viewerID string) ([]CommentView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if err := targetExists(ctx, conn, parent, targetID); err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, commentViewSelect+` WHERE `+where+` ORDER BY c.created_at DESC`, viewerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	var views []CommentView
	for rows.Next() {
		var (
			view                                  CommentView
			creatorID, username, fullName, avatar sql.NullString
		)

		if err := rows.Scan(&view.ID, &view.Content, &view.CreatedAt,
			&creatorID, &username, &fullName, &avatar,
			&view.NumberOfLikes, &view.ViewerHasLiked, &view.NumberOfReplies); err != nil {
			return nil, fmt.Errorf("scan comment view: %w", err)
		}

		if creatorID.Valid {
			view.CreatedBy = &Creator{
				ID:       creatorID.String,
				Username: username.String,
				FullName: fullName.String,
				Avatar:   avatar.String,
			}
		}

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return views, nil
}

// CommentsForVideo returns the comments on a video, newest first.
func (r *PostgresViewRepository) CommentsForVideo(ctx context.Context, videoID, viewerID string) ([]CommentView, error) {
	return r.commentsWhere(ctx, "videos", `c.video_id = $2`, videoID, viewerID)
}

// CommentsForTweet returns the comments on a tweet, newest first.
func (r *PostgresViewRepository) CommentsForTweet(ctx context.Context, tweetID, viewerID string) ([]CommentView, error) {
	return r.commentsWhere(ctx, "tweets", `c.tweet_id = $2`, tweetID, viewerID)
}

// RepliesForComment returns the replies under a comment, newest first.
func (r *PostgresViewRepository) RepliesForComment(ctx context.Context, commentID, viewerID string) ([]ReplyView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if err := targetExists(ctx, conn, "comments", commentID); err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, `
        SELECT rp.id, rp.content, rp.created_at,
               u.id, u.username, u.full_name, u.avatar_url,
               (SELECT COUNT(*) FROM likes l WHERE l.reply_id = rp.id),
               EXISTS (SELECT 1 FROM likes l WHERE l.reply_id = rp.id AND l.liked_by = $1)
        FROM replies rp
        LEFT JOIN users u ON u.id = rp.created_by
        WHERE rp.comment_id = $2
        ORDER BY rp.created_at DESC
    `, viewerID, commentID)
	if err != nil {
		return nil, fmt.Errorf("query replies: %w", err)
	}
	defer rows.Close()

	var views []ReplyView
	for rows.Next() {
		var (
			view                                  ReplyView
			creatorID, username, fullName, avatar sql.NullString
		)

		if err := rows.Scan(&view.ID, &view.Content, &view.CreatedAt,
			&creatorID, &username, &fullName, &avatar,
			&view.NumberOfLikes, &view.ViewerHasLiked); err != nil {
			return nil, fmt.Errorf("scan reply view: %w", err)
		}

		if creatorID.Valid {
			view.CreatedBy = &Creator{
				ID:       creatorID.String,
				Username: username.String,
				FullName: fullName.String,
				Avatar:   avatar.String,
			}
		}

		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate replies: %w", err)
	}

	return views, nil
}

// ChannelByUsername composes the public channel profile for a user.
func (r *PostgresViewRepository) ChannelByUsername(ctx context.Context, username, viewerID string) (ChannelProfile, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return ChannelProfile{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT u.id, u.username, u.full_name, u.email, u.avatar_url, u.cover_url,
               (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id),
               (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
               EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $1)
        FROM users u
        WHERE u.username = $2
    `, viewerID, username)

	var profile ChannelProfile
	if err := row.Scan(&profile.ID, &profile.Username, &profile.FullName, &profile.Email,
		&profile.Avatar, &profile.CoverImage,
		&profile.SubscriberCount, &profile.SubscribedToCount, &profile.ViewerIsSubscribed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ChannelProfile{}, ErrNotFound
		}
		return ChannelProfile{}, fmt.Errorf("select channel profile: %w", err)
	}

	return profile, nil
}

func (r *PostgresViewRepository) creatorsWhere(ctx context.Context, joinColumn, whereColumn, id string) ([]Creator, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if err := targetExists(ctx, conn, "users", id); err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, `
        SELECT u.id, u.username, u.full_name, u.avatar_url
        FROM subscriptions s
        JOIN users u ON u.id = s.`+joinColumn+`
        WHERE s.`+whereColumn+` = $1
        ORDER BY s.created_at DESC
    `, id)
	if err != nil {
		return nil, fmt.Errorf("query subscriptions: %w", err)
	}
	defer rows.Close()

	var creators []Creator
	for rows.Next() {
		var c Creator
		if err := rows.Scan(&c.ID, &c.Username, &c.FullName, &c.Avatar); err != nil {
			return nil, fmt.Errorf("scan subscription user: %w", err)
		}
		creators = append(creators, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}

	return creators, nil
}

// ChannelSubscribers lists the users subscribed to a channel.
func (r *PostgresViewRepository) ChannelSubscribers(ctx context.Context, channelID string) ([]Creator, error) {
	return r.creatorsWhere(ctx, "subscriber_id", "channel_id", channelID)
}

// SubscribedChannels lists the channels a user subscribes to.
func (r *PostgresViewRepository) SubscribedChannels(ctx context.Context, subscriberID string) ([]Creator, error) {
	return r.creatorsWhere(ctx, "channel_id", "subscriber_id", subscriberID)
}

// LikedVideos returns the published videos the viewer has liked, most
// recently liked first.
func (r *PostgresViewRepository) LikedVideos(ctx context.Context, viewerID string) ([]VideoView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, videoViewSelect+`
        JOIN likes lk ON lk.video_id = v.id
        WHERE lk.liked_by = $1 AND v.is_published
        ORDER BY lk.created_at DESC
    `, viewerID)
	if err != nil {
		return nil, fmt.Errorf("query liked videos: %w", err)
	}
	defer rows.Close()

	var views []VideoView
	for rows.Next() {
		view, err := scanVideoView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan liked video: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked videos: %w", err)
	}

	return views, nil
}

// LikedTweets returns the tweets the viewer has liked, most recently liked first.
func (r *PostgresViewRepository) LikedTweets(ctx context.Context, viewerID string) ([]TweetView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, tweetViewSelect+`
        JOIN likes lk ON lk.tweet_id = t.id
        WHERE lk.liked_by = $1
        ORDER BY lk.created_at DESC
    `, viewerID)
	if err != nil {
		return nil, fmt.Errorf("query liked tweets: %w", err)
	}
	defer rows.Close()

	var views []TweetView
	for rows.Next() {
		view, err := scanTweetView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan liked tweet: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked tweets: %w", err)
	}

	return views, nil
}

// WatchHistory returns the user's watch history, most recently watched first.
// Videos unpublished since being watched stay out of the result.
func (r *PostgresViewRepository) WatchHistory(ctx context.Context, userID string) ([]WatchHistoryEntry, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT `+videoViewColumns+`, wh.watched_at
        FROM watch_history wh
        JOIN videos v ON v.id = wh.video_id
        LEFT JOIN users u ON u.id = v.created_by
        WHERE wh.user_id = $1 AND (v.is_published OR v.created_by = $1)
        ORDER BY wh.watched_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query watch history: %w", err)
	}
	defer rows.Close()

	var entries []WatchHistoryEntry
	for rows.Next() {
		var entry WatchHistoryEntry
		view, err := scanVideoView(rows, &entry.WatchedAt)
		if err != nil {
			return nil, fmt.Errorf("scan watch history: %w", err)
		}
		entry.Video = view
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch history: %w", err)
	}

	return entries, nil
}

func (r *PostgresViewRepository) playlistVideos(ctx context.Context, playlistID, viewerID string) ([]VideoView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, videoViewSelect+`
        JOIN playlist_videos pv ON pv.video_id = v.id
        WHERE pv.playlist_id = $2 AND v.is_published
        ORDER BY pv.position
    `, viewerID, playlistID)
	if err != nil {
		return nil, fmt.Errorf("query playlist videos: %w", err)
	}
	defer rows.Close()

	var views []VideoView
	for rows.Next() {
		view, err := scanVideoView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playlist video: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist videos: %w", err)
	}

	return views, nil
}

func scanPlaylistView(row rowScanner) (PlaylistView, error) {
	var (
		view                                  PlaylistView
		creatorID, username, fullName, avatar sql.NullString
	)

	if err := row.Scan(&view.ID, &view.Name, &view.Description, &view.IsPublic, &view.CreatedAt,
		&creatorID, &username, &fullName, &avatar); err != nil {
		return PlaylistView{}, err
	}

	if creatorID.Valid {
		view.CreatedBy = &Creator{
			ID:       creatorID.String,
			Username: username.String,
			FullName: fullName.String,
			Avatar:   avatar.String,
		}
	}

	return view, nil
}

const playlistViewSelect = `
    SELECT p.id, p.name, p.description, p.is_public, p.created_at,
           u.id, u.username, u.full_name, u.avatar_url
    FROM playlists p
    LEFT JOIN users u ON u.id = p.created_by`

// PlaylistByID composes a playlist with its published member videos in
// playlist order. Private gating is the caller's job.
func (r *PostgresViewRepository) PlaylistByID(ctx context.Context, playlistID, viewerID string) (PlaylistView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return PlaylistView{}, fmt.Errorf("acquire connection: %w", err)
	}

	row := conn.QueryRow(ctx, playlistViewSelect+` WHERE p.id = $1`, playlistID)
	view, err := scanPlaylistView(row)
	conn.Release()
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PlaylistView{}, ErrNotFound
		}
		return PlaylistView{}, fmt.Errorf("select playlist view: %w", err)
	}

	videos, err := r.playlistVideos(ctx, playlistID, viewerID)
	if err != nil {
		return PlaylistView{}, err
	}
	view.Videos = videos

	return view, nil
}

// PlaylistsByUser lists a user's playlists, newest first. includePrivate is
// set only for the owner's own listing; it also switches the hydrated video
// flags to be owner-relative.
func (r *PostgresViewRepository) PlaylistsByUser(ctx context.Context, ownerID string, includePrivate bool) ([]PlaylistView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if err := targetExists(ctx, conn, "users", ownerID); err != nil {
		conn.Release()
		return nil, err
	}

	query := playlistViewSelect + ` WHERE p.created_by = $1`
	if !includePrivate {
		query += ` AND p.is_public`
	}
	query += ` ORDER BY p.created_at DESC`

	rows, err := conn.Query(ctx, query, ownerID)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("query playlists: %w", err)
	}

	var views []PlaylistView
	for rows.Next() {
		view, err := scanPlaylistView(rows)
		if err != nil {
			rows.Close()
			conn.Release()
			return nil, fmt.Errorf("scan playlist view: %w", err)
		}
		views = append(views, view)
	}

	err = rows.Err()
	rows.Close()
	conn.Release()
	if err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	viewerID := ""
	if includePrivate {
		viewerID = ownerID
	}

	for i := range views {
		videos, err := r.playlistVideos(ctx, views[i].ID, viewerID)
		if err != nil {
			return nil, err
		}
		views[i].Videos = videos
	}

	return views, nil
}

// ChannelStats aggregates engagement totals across the channel's videos.
func (r *PostgresViewRepository) ChannelStats(ctx context.Context, ownerID string) (ChannelStats, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return ChannelStats{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM videos v WHERE v.created_by = $1),
            (SELECT COALESCE(SUM(v.views), 0) FROM videos v WHERE v.created_by = $1),
            (SELECT COUNT(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.created_by = $1),
            (SELECT COUNT(*) FROM comments c JOIN videos v ON v.id = c.video_id WHERE v.created_by = $1),
            (SELECT COUNT(*) FROM replies rp JOIN comments c ON c.id = rp.comment_id JOIN videos v ON v.id = c.video_id WHERE v.created_by = $1),
            (SELECT COUNT(*) FROM playlist_videos pv JOIN videos v ON v.id = pv.video_id WHERE v.created_by = $1)
    `, ownerID)

	var stats ChannelStats
	if err := row.Scan(&stats.TotalVideos, &stats.TotalViews, &stats.TotalLikes,
		&stats.TotalComments, &stats.TotalReplies, &stats.TotalVideosInPlaylists); err != nil {
		return ChannelStats{}, fmt.Errorf("select channel stats: %w", err)
	}

	return stats, nil
}

// ChannelVideos lists every video a channel owns, including unpublished
// ones, with owner-relative flags. Meant for the owner's dashboard.
func (r *PostgresViewRepository) ChannelVideos(ctx context.Context, ownerID string) ([]VideoView, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, videoViewSelect+`
        WHERE v.created_by = $1
        ORDER BY v.created_at DESC
    `, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query channel videos: %w", err)
	}
	defer rows.Close()

	var views []VideoView
	for rows.Next() {
		view, err := scanVideoView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan channel video: %w", err)
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate channel videos: %w", err)
	}

	return views, nil
}

var _ ViewRepository = (*PostgresViewRepository)(nil)
