package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidtube/backend/internal/middleware"
)

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users          UserStore
	Sessions       SessionManager
	Verifier       middleware.AccessVerifier
	Videos         VideoStore
	Tweets         TweetStore
	Comments       CommentStore
	Replies        ReplyStore
	Likes          LikeStore
	Subscriptions  SubscriptionStore
	Playlists      PlaylistStore
	History        HistoryStore
	Views          ViewStore
	Media          MediaIngestor
	AuthLimiter    RateLimiter
	UploadDir      string
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// NewRouter wires every handler into a chi router. Read endpoints run behind
// optional auth so viewer-relative fields resolve; write endpoints require a
// session.
func NewRouter(deps Dependencies) http.Handler {
	requireAuth := middleware.RequireAuth(deps.Verifier, deps.Users)
	optionalAuth := middleware.OptionalAuth(deps.Verifier, deps.Users)

	health := HealthHandler{}
	authH := AuthHandler{
		Users:     deps.Users,
		Sessions:  deps.Sessions,
		Media:     deps.Media,
		Limiter:   deps.AuthLimiter,
		UploadDir: deps.UploadDir,
	}
	users := UserHandler{Users: deps.Users, Views: deps.Views, Media: deps.Media, UploadDir: deps.UploadDir}
	videos := VideoHandler{
		Videos:         deps.Videos,
		Views:          deps.Views,
		History:        deps.History,
		Media:          deps.Media,
		UploadDir:      deps.UploadDir,
		MaxUploadBytes: deps.MaxUploadBytes,
	}
	tweets := TweetHandler{Tweets: deps.Tweets, Views: deps.Views}
	comments := CommentHandler{Comments: deps.Comments, Views: deps.Views}
	replies := ReplyHandler{Replies: deps.Replies, Views: deps.Views}
	likes := LikeHandler{Likes: deps.Likes, Views: deps.Views}
	subscriptions := SubscriptionHandler{Subscriptions: deps.Subscriptions, Views: deps.Views}
	playlists := PlaylistHandler{Playlists: deps.Playlists, Videos: deps.Videos, Views: deps.Views}
	dashboard := DashboardHandler{Views: deps.Views}

	r := chi.NewRouter()
	if deps.Logger != nil {
		r.Use(middleware.RequestLogger(deps.Logger))
	}

	r.Get("/healthz", health.Handle)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
			r.Post("/refresh-token", authH.Refresh)
			r.With(optionalAuth).Get("/channel/{username}", users.Channel)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/logout", authH.Logout)
				r.Patch("/password", authH.ChangePassword)
				r.Get("/me", users.Current)
				r.Patch("/me", users.UpdateAccount)
				r.Patch("/avatar", users.UpdateAvatar)
				r.Patch("/cover-image", users.UpdateCover)
				r.Get("/watch-history", users.WatchHistory)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.With(optionalAuth).Get("/", videos.List)
			r.With(optionalAuth).Get("/search", videos.Search)
			r.With(optionalAuth).Get("/{videoId}", videos.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", videos.Upload)
				r.Patch("/{videoId}", videos.Update)
				r.Delete("/{videoId}", videos.Delete)
				r.Patch("/toggle/publish/{videoId}", videos.TogglePublish)
			})
		})

		r.Route("/tweets", func(r chi.Router) {
			r.With(optionalAuth).Get("/user/{userId}", tweets.ByUser)
			r.With(optionalAuth).Get("/{tweetId}", tweets.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", tweets.Create)
				r.Patch("/{tweetId}", tweets.Update)
				r.Delete("/{tweetId}", tweets.Delete)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.With(optionalAuth).Get("/v/{videoId}", comments.ForVideo)
			r.With(optionalAuth).Get("/t/{tweetId}", comments.ForTweet)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/v/{videoId}", comments.CreateForVideo)
				r.Post("/t/{tweetId}", comments.CreateForTweet)
				r.Patch("/{commentId}", comments.Update)
				r.Delete("/{commentId}", comments.Delete)
			})
		})

		r.Route("/replies", func(r chi.Router) {
			r.With(optionalAuth).Get("/c/{commentId}", replies.ForComment)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/c/{commentId}", replies.Create)
				r.Patch("/{replyId}", replies.Update)
				r.Delete("/{replyId}", replies.Delete)
			})
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/toggle/v/{videoId}", likes.ToggleVideo)
			r.Post("/toggle/t/{tweetId}", likes.ToggleTweet)
			r.Post("/toggle/c/{commentId}", likes.ToggleComment)
			r.Post("/toggle/r/{replyId}", likes.ToggleReply)
			r.Get("/videos", likes.Videos)
			r.Get("/tweets", likes.Tweets)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.With(optionalAuth).Get("/c/{channelId}", subscriptions.Subscribers)
			r.With(optionalAuth).Get("/u/{subscriberId}", subscriptions.Subscribed)
			r.With(requireAuth).Post("/c/{channelId}", subscriptions.Toggle)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.With(optionalAuth).Get("/{playlistId}", playlists.Get)
			r.With(optionalAuth).Get("/user/{userId}", playlists.ByUser)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", playlists.Create)
				r.Patch("/add/{videoId}/{playlistId}", playlists.AddVideo)
				r.Patch("/remove/{videoId}/{playlistId}", playlists.RemoveVideo)
				r.Patch("/{playlistId}", playlists.Update)
				r.Delete("/{playlistId}", playlists.Delete)
				r.Patch("/toggle/{playlistId}", playlists.ToggleVisibility)
			})
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/stats", dashboard.Stats)
			r.Get("/videos", dashboard.Videos)
		})
	})

	return r
}
