package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/cockroachdb/cockroach-go/v2/testserver"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidtube/backend/internal/models"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	server, err := testserver.NewTestServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cockroach test server: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, server.PGURL().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to cockroach test server: %v\n", err)
		server.Stop()
		os.Exit(1)
	}

	if err := applyMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		pool.Close()
		server.Stop()
		os.Exit(1)
	}

	testPool = pool

	code := m.Run()

	pool.Close()
	server.Stop()

	os.Exit(code)
}

func TestPostgresUserRepository_CreateFindAndUpdate(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresUserRepository(testPool)
	user := createTestUser(t, repo, "alice")

	dup := models.User{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Email:     "other@example.com",
		Password:  "another-hash",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict creating duplicate username, got %v", err)
	}

	byUsername, err := repo.FindByLogin(ctx, user.Username)
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	byEmail, err := repo.FindByLogin(ctx, user.Email)
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byUsername.ID != user.ID || byEmail.ID != user.ID {
		t.Fatalf("login lookups disagree: %q vs %q", byUsername.ID, byEmail.ID)
	}

	updated := user
	updated.FullName = "Alice Updated"
	updated.AvatarURL = "https://cdn.example.com/avatars/alice.png"
	updated.UpdatedAt = time.Now().UTC().Add(time.Minute)
	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update user: %v", err)
	}

	if err := repo.SetRefreshToken(ctx, user.ID, "token-1"); err != nil {
		t.Fatalf("set refresh token: %v", err)
	}
	if err := repo.SetPassword(ctx, user.ID, "rotated-hash"); err != nil {
		t.Fatalf("set password: %v", err)
	}

	fetched, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if fetched.FullName != updated.FullName || fetched.RefreshToken != "token-1" || fetched.Password != "rotated-hash" {
		t.Fatalf("expected updated fields to persist, got %+v", fetched)
	}

	if err := repo.SetRefreshToken(ctx, user.ID, ""); err != nil {
		t.Fatalf("clear refresh token: %v", err)
	}
	fetched, err = repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find after logout: %v", err)
	}
	if fetched.RefreshToken != "" {
		t.Fatalf("expected cleared refresh token, got %q", fetched.RefreshToken)
	}

	missing := user
	missing.ID = uuid.NewString()
	if err := repo.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating missing user, got %v", err)
	}
}

func TestPostgresVideoRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "creator")

	repo := NewPostgresVideoRepository(testPool)
	video := createTestVideo(t, repo, owner.ID, "First Upload", true)

	fetched, err := repo.FindByID(ctx, video.ID)
	if err != nil {
		t.Fatalf("find video: %v", err)
	}
	if fetched.Title != video.Title || !fetched.IsPublished {
		t.Fatalf("unexpected video fetched: %+v", fetched)
	}

	fetched.Title = "Renamed Upload"
	fetched.Tags = []string{"go", "tutorial"}
	fetched.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, fetched); err != nil {
		t.Fatalf("update video: %v", err)
	}

	published, err := repo.TogglePublish(ctx, video.ID)
	if err != nil {
		t.Fatalf("toggle publish: %v", err)
	}
	if published {
		t.Fatalf("expected video unpublished after toggle")
	}
	published, err = repo.TogglePublish(ctx, video.ID)
	if err != nil {
		t.Fatalf("toggle publish back: %v", err)
	}
	if !published {
		t.Fatalf("expected video republished after second toggle")
	}

	if err := repo.IncrementViews(ctx, video.ID); err != nil {
		t.Fatalf("increment views: %v", err)
	}
	fetched, err = repo.FindByID(ctx, video.ID)
	if err != nil {
		t.Fatalf("find after view: %v", err)
	}
	if fetched.Views != 1 {
		t.Fatalf("expected 1 view, got %d", fetched.Views)
	}

	if err := repo.Delete(ctx, video.ID); err != nil {
		t.Fatalf("delete video: %v", err)
	}
	if _, err := repo.FindByID(ctx, video.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, video.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestPostgresLikeRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "creator")
	fan := createTestUser(t, userRepo, "fan")

	videoRepo := NewPostgresVideoRepository(testPool)
	video := createTestVideo(t, videoRepo, owner.ID, "Likable", true)

	repo := NewPostgresLikeRepository(testPool)

	result, err := repo.Toggle(ctx, models.LikeTargetVideo, video.ID, fan.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if result != ToggleCreated {
		t.Fatalf("expected ToggleCreated, got %s", result)
	}

	result, err = repo.Toggle(ctx, models.LikeTargetVideo, video.ID, fan.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if result != ToggleDeleted {
		t.Fatalf("expected ToggleDeleted, got %s", result)
	}

	if _, err := repo.Toggle(ctx, models.LikeTargetVideo, uuid.NewString(), fan.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound liking missing video, got %v", err)
	}

	if _, err := repo.Toggle(ctx, models.LikeTarget("channel"), video.ID, fan.ID); err == nil {
		t.Fatalf("expected error for unknown like target")
	}
}

func TestPostgresSubscriptionRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	channel := createTestUser(t, userRepo, "channel")
	viewer := createTestUser(t, userRepo, "viewer")

	repo := NewPostgresSubscriptionRepository(testPool)

	result, err := repo.Toggle(ctx, channel.ID, viewer.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if result != ToggleCreated {
		t.Fatalf("expected ToggleCreated, got %s", result)
	}

	result, err = repo.Toggle(ctx, channel.ID, viewer.ID)
	if err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if result != ToggleDeleted {
		t.Fatalf("expected ToggleDeleted, got %s", result)
	}

	if _, err := repo.Toggle(ctx, viewer.ID, viewer.ID); err == nil {
		t.Fatalf("expected error subscribing to self")
	}
}

func TestPostgresPlaylistRepository_Membership(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "curator")

	videoRepo := NewPostgresVideoRepository(testPool)
	first := createTestVideo(t, videoRepo, owner.ID, "First", true)
	second := createTestVideo(t, videoRepo, owner.ID, "Second", true)

	repo := NewPostgresPlaylistRepository(testPool)
	playlist := models.Playlist{
		ID:          uuid.NewString(),
		Name:        "Favorites",
		Description: "Videos worth rewatching",
		CreatedBy:   owner.ID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := repo.Create(ctx, playlist); err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	if err := repo.AddVideo(ctx, playlist.ID, first.ID); err != nil {
		t.Fatalf("add first video: %v", err)
	}
	if err := repo.AddVideo(ctx, playlist.ID, second.ID); err != nil {
		t.Fatalf("add second video: %v", err)
	}
	if err := repo.AddVideo(ctx, playlist.ID, first.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict re-adding video, got %v", err)
	}
	if err := repo.AddVideo(ctx, playlist.ID, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound adding missing video, got %v", err)
	}

	if err := repo.RemoveVideo(ctx, playlist.ID, first.ID); err != nil {
		t.Fatalf("remove video: %v", err)
	}
	if err := repo.RemoveVideo(ctx, playlist.ID, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound removing absent video, got %v", err)
	}

	public, err := repo.ToggleVisibility(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("toggle visibility: %v", err)
	}
	if !public {
		t.Fatalf("expected playlist public after toggle")
	}

	if err := repo.Delete(ctx, playlist.ID); err != nil {
		t.Fatalf("delete playlist: %v", err)
	}
	if _, err := videoRepo.FindByID(ctx, second.ID); err != nil {
		t.Fatalf("expected member video to survive playlist deletion, got %v", err)
	}
}

func TestPostgresHistoryRepository_RewatchMovesToFront(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "creator")
	watcher := createTestUser(t, userRepo, "watcher")

	videoRepo := NewPostgresVideoRepository(testPool)
	first := createTestVideo(t, videoRepo, owner.ID, "First", true)
	second := createTestVideo(t, videoRepo, owner.ID, "Second", true)

	repo := NewPostgresHistoryRepository(testPool)
	views := NewPostgresViewRepository(testPool)

	if err := repo.RecordWatch(ctx, watcher.ID, first.ID); err != nil {
		t.Fatalf("record first watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := repo.RecordWatch(ctx, watcher.ID, second.ID); err != nil {
		t.Fatalf("record second watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := repo.RecordWatch(ctx, watcher.ID, first.ID); err != nil {
		t.Fatalf("record rewatch: %v", err)
	}

	history, err := views.WatchHistory(ctx, watcher.ID)
	if err != nil {
		t.Fatalf("load watch history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0].Video.ID != first.ID || history[1].Video.ID != second.ID {
		t.Fatalf("expected rewatched video first, got %s then %s", history[0].Video.ID, history[1].Video.ID)
	}

	if err := repo.RecordWatch(ctx, watcher.ID, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound watching missing video, got %v", err)
	}

	if err := repo.RecordSearch(ctx, watcher.ID, "go tutorials"); err != nil {
		t.Fatalf("record search: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := repo.RecordSearch(ctx, watcher.ID, "pgx pooling"); err != nil {
		t.Fatalf("record second search: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := repo.RecordSearch(ctx, watcher.ID, "go tutorials"); err != nil {
		t.Fatalf("record repeated search: %v", err)
	}

	conn, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT query FROM search_history
        WHERE user_id = $1
        ORDER BY searched_at DESC
    `, watcher.ID)
	if err != nil {
		t.Fatalf("load search history: %v", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			t.Fatalf("scan search query: %v", err)
		}
		queries = append(queries, q)
	}
	if len(queries) != 2 {
		t.Fatalf("expected 2 search entries, got %d", len(queries))
	}
	if queries[0] != "go tutorials" || queries[1] != "pgx pooling" {
		t.Fatalf("expected repeated search first, got %v", queries)
	}
}

func TestPostgresViewRepository_VideoComposition(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	creator := createTestUser(t, userRepo, "creator")
	fan := createTestUser(t, userRepo, "fan")

	videoRepo := NewPostgresVideoRepository(testPool)
	video := createTestVideo(t, videoRepo, creator.ID, "Composed", true)

	likeRepo := NewPostgresLikeRepository(testPool)
	if _, err := likeRepo.Toggle(ctx, models.LikeTargetVideo, video.ID, fan.ID); err != nil {
		t.Fatalf("like video: %v", err)
	}
	subRepo := NewPostgresSubscriptionRepository(testPool)
	if _, err := subRepo.Toggle(ctx, creator.ID, fan.ID); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	commentRepo := NewPostgresCommentRepository(testPool)
	comment := models.Comment{
		ID:        uuid.NewString(),
		Content:   "great upload",
		VideoID:   video.ID,
		CreatedBy: fan.ID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := commentRepo.Create(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	replyRepo := NewPostgresReplyRepository(testPool)
	reply := models.Reply{
		ID:        uuid.NewString(),
		Content:   "thanks",
		CommentID: comment.ID,
		CreatedBy: creator.ID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := replyRepo.Create(ctx, reply); err != nil {
		t.Fatalf("create reply: %v", err)
	}

	views := NewPostgresViewRepository(testPool)

	asFan, err := views.VideoByID(ctx, video.ID, fan.ID)
	if err != nil {
		t.Fatalf("video view for fan: %v", err)
	}
	if asFan.NumberOfLikes != 1 || !asFan.ViewerHasLiked {
		t.Fatalf("expected fan's like reflected, got %+v", asFan)
	}
	if asFan.NumberOfSubscribers != 1 || !asFan.ViewerIsSubscribed {
		t.Fatalf("expected fan's subscription reflected, got %+v", asFan)
	}
	if asFan.CreatedBy == nil || asFan.CreatedBy.Username != creator.Username {
		t.Fatalf("expected creator expanded, got %+v", asFan.CreatedBy)
	}

	anonymous, err := views.VideoByID(ctx, video.ID, "")
	if err != nil {
		t.Fatalf("video view for anonymous: %v", err)
	}
	if anonymous.ViewerHasLiked || anonymous.ViewerIsSubscribed {
		t.Fatalf("expected false flags for anonymous viewer, got %+v", anonymous)
	}
	if anonymous.NumberOfLikes != 1 || anonymous.NumberOfSubscribers != 1 {
		t.Fatalf("expected public counts intact for anonymous viewer, got %+v", anonymous)
	}

	comments, err := views.CommentsForVideo(ctx, video.ID, fan.ID)
	if err != nil {
		t.Fatalf("comments for video: %v", err)
	}
	if len(comments) != 1 || comments[0].NumberOfReplies != 1 {
		t.Fatalf("expected 1 comment with 1 reply, got %+v", comments)
	}

	replies, err := views.RepliesForComment(ctx, comment.ID, "")
	if err != nil {
		t.Fatalf("replies for comment: %v", err)
	}
	if len(replies) != 1 || replies[0].CreatedBy == nil || replies[0].CreatedBy.ID != creator.ID {
		t.Fatalf("unexpected replies: %+v", replies)
	}
}

func TestPostgresViewRepository_SearchRanking(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	creator := createTestUser(t, userRepo, "creator")

	videoRepo := NewPostgresVideoRepository(testPool)
	exact := createTestVideo(t, videoRepo, creator.ID, "Go", true)
	substring := createTestVideo(t, videoRepo, creator.ID, "Going Places", true)

	tagged := createTestVideo(t, videoRepo, creator.ID, "Kitchen Tips", true)
	tagged.Tags = []string{"go", "cooking"}
	tagged.UpdatedAt = time.Now().UTC()
	if err := videoRepo.Update(ctx, tagged); err != nil {
		t.Fatalf("tag video: %v", err)
	}

	unrelated := createTestVideo(t, videoRepo, creator.ID, "Jazz Hour", true)
	hidden := createTestVideo(t, videoRepo, creator.ID, "Go Secrets", false)

	views := NewPostgresViewRepository(testPool)

	results, err := views.ListVideos(ctx, ListVideosOptions{Query: "go", Ranked: true})
	if err != nil {
		t.Fatalf("search videos: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(results))
	}
	if results[0].ID != exact.ID || results[1].ID != substring.ID || results[2].ID != tagged.ID {
		t.Fatalf("unexpected ranking: %s, %s, %s", results[0].Title, results[1].Title, results[2].Title)
	}
	for _, v := range results {
		if v.ID == unrelated.ID || v.ID == hidden.ID {
			t.Fatalf("unexpected video %q in results", v.Title)
		}
	}

	owned, err := views.ListVideos(ctx, ListVideosOptions{Query: "go", Ranked: true, ViewerID: creator.ID})
	if err != nil {
		t.Fatalf("search as owner: %v", err)
	}
	if len(owned) != 4 {
		t.Fatalf("expected owner to see unpublished match, got %d results", len(owned))
	}

	if _, err := views.ListVideos(ctx, ListVideosOptions{SortBy: "views; DROP TABLE videos"}); err == nil {
		t.Fatalf("expected error for unknown sort field")
	}
}

func TestPostgresViewRepository_ChannelProfileAndStats(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	creator := createTestUser(t, userRepo, "creator")
	fanOne := createTestUser(t, userRepo, "fanone")
	fanTwo := createTestUser(t, userRepo, "fantwo")

	subRepo := NewPostgresSubscriptionRepository(testPool)
	if _, err := subRepo.Toggle(ctx, creator.ID, fanOne.ID); err != nil {
		t.Fatalf("subscribe fan one: %v", err)
	}
	if _, err := subRepo.Toggle(ctx, creator.ID, fanTwo.ID); err != nil {
		t.Fatalf("subscribe fan two: %v", err)
	}
	if _, err := subRepo.Toggle(ctx, fanOne.ID, creator.ID); err != nil {
		t.Fatalf("creator subscribes back: %v", err)
	}

	views := NewPostgresViewRepository(testPool)

	profile, err := views.ChannelByUsername(ctx, creator.Username, fanOne.ID)
	if err != nil {
		t.Fatalf("channel profile: %v", err)
	}
	if profile.SubscriberCount != 2 || profile.SubscribedToCount != 1 || !profile.ViewerIsSubscribed {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := views.ChannelByUsername(ctx, "nobody", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown channel, got %v", err)
	}

	subscribers, err := views.ChannelSubscribers(ctx, creator.ID)
	if err != nil {
		t.Fatalf("channel subscribers: %v", err)
	}
	if len(subscribers) != 2 {
		t.Fatalf("expected 2 subscribers, got %d", len(subscribers))
	}

	channels, err := views.SubscribedChannels(ctx, fanOne.ID)
	if err != nil {
		t.Fatalf("subscribed channels: %v", err)
	}
	if len(channels) != 1 || channels[0].ID != creator.ID {
		t.Fatalf("unexpected subscribed channels: %+v", channels)
	}

	videoRepo := NewPostgresVideoRepository(testPool)
	video := createTestVideo(t, videoRepo, creator.ID, "Counted", true)
	if err := videoRepo.IncrementViews(ctx, video.ID); err != nil {
		t.Fatalf("increment views: %v", err)
	}
	likeRepo := NewPostgresLikeRepository(testPool)
	if _, err := likeRepo.Toggle(ctx, models.LikeTargetVideo, video.ID, fanOne.ID); err != nil {
		t.Fatalf("like video: %v", err)
	}

	stats, err := views.ChannelStats(ctx, creator.ID)
	if err != nil {
		t.Fatalf("channel stats: %v", err)
	}
	if stats.TotalVideos != 1 || stats.TotalViews != 1 || stats.TotalLikes != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPostgresViewRepository_PlaylistGating(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "curator")

	videoRepo := NewPostgresVideoRepository(testPool)
	published := createTestVideo(t, videoRepo, owner.ID, "Visible", true)
	draft := createTestVideo(t, videoRepo, owner.ID, "Draft", false)

	playlistRepo := NewPostgresPlaylistRepository(testPool)
	public := models.Playlist{
		ID:        uuid.NewString(),
		Name:      "Public Picks",
		IsPublic:  true,
		CreatedBy: owner.ID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	private := models.Playlist{
		ID:        uuid.NewString(),
		Name:      "Drafting Table",
		CreatedBy: owner.ID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	for _, p := range []models.Playlist{public, private} {
		if err := playlistRepo.Create(ctx, p); err != nil {
			t.Fatalf("create playlist %s: %v", p.Name, err)
		}
	}
	if err := playlistRepo.AddVideo(ctx, public.ID, published.ID); err != nil {
		t.Fatalf("add published video: %v", err)
	}
	if err := playlistRepo.AddVideo(ctx, public.ID, draft.ID); err != nil {
		t.Fatalf("add draft video: %v", err)
	}

	views := NewPostgresViewRepository(testPool)

	view, err := views.PlaylistByID(ctx, public.ID, "")
	if err != nil {
		t.Fatalf("playlist view: %v", err)
	}
	if len(view.Videos) != 1 || view.Videos[0].ID != published.ID {
		t.Fatalf("expected only the published member video, got %+v", view.Videos)
	}
	if view.CreatedBy == nil || view.CreatedBy.ID != owner.ID {
		t.Fatalf("expected creator expanded, got %+v", view.CreatedBy)
	}

	visible, err := views.PlaylistsByUser(ctx, owner.ID, false)
	if err != nil {
		t.Fatalf("public playlists: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != public.ID {
		t.Fatalf("expected only the public playlist, got %+v", visible)
	}

	all, err := views.PlaylistsByUser(ctx, owner.ID, true)
	if err != nil {
		t.Fatalf("owner playlists: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both playlists for owner, got %d", len(all))
	}
}

func TestPostgresViewRepository_AbsentParents(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	userRepo := NewPostgresUserRepository(testPool)
	owner := createTestUser(t, userRepo, "lurker")

	views := NewPostgresViewRepository(testPool)

	lists := []struct {
		name string
		call func(id string) error
	}{
		{"comments for video", func(id string) error {
			_, err := views.CommentsForVideo(ctx, id, "")
			return err
		}},
		{"comments for tweet", func(id string) error {
			_, err := views.CommentsForTweet(ctx, id, "")
			return err
		}},
		{"replies for comment", func(id string) error {
			_, err := views.RepliesForComment(ctx, id, "")
			return err
		}},
		{"tweets by user", func(id string) error {
			_, err := views.TweetsByUser(ctx, id, "")
			return err
		}},
		{"channel subscribers", func(id string) error {
			_, err := views.ChannelSubscribers(ctx, id)
			return err
		}},
		{"subscribed channels", func(id string) error {
			_, err := views.SubscribedChannels(ctx, id)
			return err
		}},
		{"playlists by user", func(id string) error {
			_, err := views.PlaylistsByUser(ctx, id, false)
			return err
		}},
	}

	for _, list := range lists {
		if err := list.call(uuid.NewString()); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound for missing parent, got %v", list.name, err)
		}
	}

	videoRepo := NewPostgresVideoRepository(testPool)
	video := createTestVideo(t, videoRepo, owner.ID, "Quiet", true)

	comments, err := views.CommentsForVideo(ctx, video.ID, "")
	if err != nil {
		t.Fatalf("comments for empty video: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("expected no comments, got %d", len(comments))
	}

	tweets, err := views.TweetsByUser(ctx, owner.ID, "")
	if err != nil {
		t.Fatalf("tweets for quiet user: %v", err)
	}
	if len(tweets) != 0 {
		t.Fatalf("expected no tweets, got %d", len(tweets))
	}
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		if _, err := pool.Exec(ctx, string(contents)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func resetDatabase(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	conn, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `
        TRUNCATE TABLE search_history, watch_history, playlist_videos, playlists,
                       subscriptions, likes, replies, comments, tweets, videos, users CASCADE
    `); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func createTestUser(t *testing.T, repo *PostgresUserRepository, username string) models.User {
	t.Helper()
	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     username + "@example.com",
		FullName:  "Test " + username,
		Password:  "password-hash",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestVideo(t *testing.T, repo *PostgresVideoRepository, ownerID, title string, published bool) models.Video {
	t.Helper()
	video := models.Video{
		ID:           uuid.NewString(),
		FileURL:      "https://cdn.example.com/videos/" + uuid.NewString() + ".mp4",
		ThumbnailURL: "https://cdn.example.com/thumbnails/" + uuid.NewString() + ".jpg",
		Title:        title,
		Description:  "test video",
		Tags:         []string{},
		Duration:     120,
		IsPublished:  published,
		CreatedBy:    ownerID,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), video); err != nil {
		t.Fatalf("create test video: %v", err)
	}
	return video
}
