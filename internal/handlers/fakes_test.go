package handlers

import (
	"context"
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User)}
}

func (s *memUserStore) Create(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repositories.ErrConflict
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *memUserStore) FindByLogin(_ context.Context, identifier string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == identifier || user.Email == identifier {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *memUserStore) Update(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[user.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Password = stored.Password
	user.RefreshToken = stored.RefreshToken
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) SetRefreshToken(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.RefreshToken = token
	s.users[userID] = user
	return nil
}

func (s *memUserStore) SetPassword(_ context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Password = passwordHash
	s.users[userID] = user
	return nil
}

type memVideoStore struct {
	mu     sync.Mutex
	videos map[string]models.Video
}

func newMemVideoStore() *memVideoStore {
	return &memVideoStore{videos: make(map[string]models.Video)}
}

func (s *memVideoStore) Create(_ context.Context, video models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos[video.ID] = video
	return nil
}

func (s *memVideoStore) FindByID(_ context.Context, id string) (models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (s *memVideoStore) Update(_ context.Context, video models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[video.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.videos[video.ID] = video
	return nil
}

func (s *memVideoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.videos, id)
	return nil
}

func (s *memVideoStore) TogglePublish(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	video, ok := s.videos[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	video.IsPublished = !video.IsPublished
	s.videos[id] = video
	return video.IsPublished, nil
}

func (s *memVideoStore) IncrementViews(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	video, ok := s.videos[id]
	if !ok {
		return repositories.ErrNotFound
	}
	video.Views++
	s.videos[id] = video
	return nil
}

type memTweetStore struct {
	mu     sync.Mutex
	tweets map[string]models.Tweet
}

func newMemTweetStore() *memTweetStore {
	return &memTweetStore{tweets: make(map[string]models.Tweet)}
}

func (s *memTweetStore) Create(_ context.Context, tweet models.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tweets[tweet.ID] = tweet
	return nil
}

func (s *memTweetStore) FindByID(_ context.Context, id string) (models.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tweet, ok := s.tweets[id]
	if !ok {
		return models.Tweet{}, repositories.ErrNotFound
	}
	return tweet, nil
}

func (s *memTweetStore) Update(_ context.Context, tweet models.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tweets[tweet.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.tweets[tweet.ID] = tweet
	return nil
}

func (s *memTweetStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tweets[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.tweets, id)
	return nil
}

type memCommentStore struct {
	mu       sync.Mutex
	comments map[string]models.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{comments: make(map[string]models.Comment)}
}

func (s *memCommentStore) Create(_ context.Context, comment models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.ID] = comment
	return nil
}

func (s *memCommentStore) FindByID(_ context.Context, id string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment, ok := s.comments[id]
	if !ok {
		return models.Comment{}, repositories.ErrNotFound
	}
	return comment, nil
}

func (s *memCommentStore) Update(_ context.Context, comment models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[comment.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.comments[comment.ID] = comment
	return nil
}

func (s *memCommentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

type memReplyStore struct {
	mu      sync.Mutex
	replies map[string]models.Reply
}

func newMemReplyStore() *memReplyStore {
	return &memReplyStore{replies: make(map[string]models.Reply)}
}

func (s *memReplyStore) Create(_ context.Context, reply models.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[reply.ID] = reply
	return nil
}

func (s *memReplyStore) FindByID(_ context.Context, id string) (models.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reply, ok := s.replies[id]
	if !ok {
		return models.Reply{}, repositories.ErrNotFound
	}
	return reply, nil
}

func (s *memReplyStore) Update(_ context.Context, reply models.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.replies[reply.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.replies[reply.ID] = reply
	return nil
}

func (s *memReplyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.replies[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.replies, id)
	return nil
}

type memLikeStore struct {
	mu    sync.Mutex
	pairs map[string]bool
}

func newMemLikeStore() *memLikeStore {
	return &memLikeStore{pairs: make(map[string]bool)}
}

func (s *memLikeStore) Toggle(_ context.Context, target models.LikeTarget, targetID, userID string) (repositories.ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s/%s/%s", target, targetID, userID)
	if s.pairs[key] {
		delete(s.pairs, key)
		return repositories.ToggleDeleted, nil
	}
	s.pairs[key] = true
	return repositories.ToggleCreated, nil
}

type memSubscriptionStore struct {
	mu    sync.Mutex
	pairs map[string]bool
}

func newMemSubscriptionStore() *memSubscriptionStore {
	return &memSubscriptionStore{pairs: make(map[string]bool)}
}

func (s *memSubscriptionStore) Toggle(_ context.Context, channelID, subscriberID string) (repositories.ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := channelID + "/" + subscriberID
	if s.pairs[key] {
		delete(s.pairs, key)
		return repositories.ToggleDeleted, nil
	}
	s.pairs[key] = true
	return repositories.ToggleCreated, nil
}

type memPlaylistStore struct {
	mu        sync.Mutex
	playlists map[string]models.Playlist
	members   map[string][]string
}

func newMemPlaylistStore() *memPlaylistStore {
	return &memPlaylistStore{
		playlists: make(map[string]models.Playlist),
		members:   make(map[string][]string),
	}
}

func (s *memPlaylistStore) Create(_ context.Context, playlist models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists[playlist.ID] = playlist
	return nil
}

func (s *memPlaylistStore) FindByID(_ context.Context, id string) (models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	playlist, ok := s.playlists[id]
	if !ok {
		return models.Playlist{}, repositories.ErrNotFound
	}
	return playlist, nil
}

func (s *memPlaylistStore) Update(_ context.Context, playlist models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[playlist.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.playlists[playlist.ID] = playlist
	return nil
}

func (s *memPlaylistStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.playlists[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.playlists, id)
	delete(s.members, id)
	return nil
}

func (s *memPlaylistStore) ToggleVisibility(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	playlist, ok := s.playlists[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	playlist.IsPublic = !playlist.IsPublic
	s.playlists[id] = playlist
	return playlist.IsPublic, nil
}

func (s *memPlaylistStore) AddVideo(_ context.Context, playlistID, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, member := range s.members[playlistID] {
		if member == videoID {
			return repositories.ErrConflict
		}
	}
	s.members[playlistID] = append(s.members[playlistID], videoID)
	return nil
}

func (s *memPlaylistStore) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := s.members[playlistID]
	for i, member := range members {
		if member == videoID {
			s.members[playlistID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type memHistoryStore struct {
	mu       sync.Mutex
	watches  []string
	searches []string
}

func newMemHistoryStore() *memHistoryStore {
	return &memHistoryStore{}
}

func (s *memHistoryStore) RecordWatch(_ context.Context, userID, videoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watches = append(s.watches, userID+"/"+videoID)
	return nil
}

func (s *memHistoryStore) RecordSearch(_ context.Context, userID, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, userID+"/"+query)
	return nil
}

// fakeMedia pretends to host assets; it deletes the spooled file the way the
// real ingestor does and records retirements.
type fakeMedia struct {
	mu       sync.Mutex
	ingested []string
	retired  []string
	fail     bool
	// failAfter, when positive, fails every Ingest beyond that many successes.
	failAfter int
}

func (m *fakeMedia) Ingest(_ context.Context, localPath, keyPrefix string, _ bool) (media.Asset, error) {
	os.Remove(localPath)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail || (m.failAfter > 0 && len(m.ingested) >= m.failAfter) {
		return media.Asset{}, media.ErrStorageUnavailable
	}
	url := "https://cdn.test/" + path.Join(keyPrefix, path.Base(localPath))
	m.ingested = append(m.ingested, url)
	return media.Asset{URL: url, Duration: 42}, nil
}

func (m *fakeMedia) Retire(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retired = append(m.retired, url)
}

// stubViews satisfies ViewStore with canned results; tests set only the
// fields they exercise.
type stubViews struct {
	video     repositories.VideoView
	videos    []repositories.VideoView
	tweets    []repositories.TweetView
	comments  []repositories.CommentView
	replies   []repositories.ReplyView
	channel   repositories.ChannelProfile
	creators  []repositories.Creator
	history   []repositories.WatchHistoryEntry
	playlist  repositories.PlaylistView
	playlists []repositories.PlaylistView
	stats     repositories.ChannelStats
	err       error
}

func (s stubViews) VideoByID(context.Context, string, string) (repositories.VideoView, error) {
	return s.video, s.err
}

func (s stubViews) ListVideos(context.Context, repositories.ListVideosOptions) ([]repositories.VideoView, error) {
	return s.videos, s.err
}

func (s stubViews) TweetsByUser(context.Context, string, string) ([]repositories.TweetView, error) {
	return s.tweets, s.err
}

func (s stubViews) CommentsForVideo(context.Context, string, string) ([]repositories.CommentView, error) {
	return s.comments, s.err
}

func (s stubViews) CommentsForTweet(context.Context, string, string) ([]repositories.CommentView, error) {
	return s.comments, s.err
}

func (s stubViews) RepliesForComment(context.Context, string, string) ([]repositories.ReplyView, error) {
	return s.replies, s.err
}

func (s stubViews) ChannelByUsername(context.Context, string, string) (repositories.ChannelProfile, error) {
	return s.channel, s.err
}

func (s stubViews) ChannelSubscribers(context.Context, string) ([]repositories.Creator, error) {
	return s.creators, s.err
}

func (s stubViews) SubscribedChannels(context.Context, string) ([]repositories.Creator, error) {
	return s.creators, s.err
}

func (s stubViews) LikedVideos(context.Context, string) ([]repositories.VideoView, error) {
	return s.videos, s.err
}

func (s stubViews) LikedTweets(context.Context, string) ([]repositories.TweetView, error) {
	return s.tweets, s.err
}

func (s stubViews) WatchHistory(context.Context, string) ([]repositories.WatchHistoryEntry, error) {
	return s.history, s.err
}

func (s stubViews) PlaylistByID(context.Context, string, string) (repositories.PlaylistView, error) {
	return s.playlist, s.err
}

func (s stubViews) PlaylistsByUser(context.Context, string, bool) ([]repositories.PlaylistView, error) {
	return s.playlists, s.err
}

func (s stubViews) ChannelStats(context.Context, string) (repositories.ChannelStats, error) {
	return s.stats, s.err
}

func (s stubViews) ChannelVideos(context.Context, string) ([]repositories.VideoView, error) {
	return s.videos, s.err
}
