package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/models"
	"github.com/vidtube/backend/internal/repositories"
)

// AuthHandler implements account registration and session endpoints.
type AuthHandler struct {
	Users     UserStore
	Sessions  SessionManager
	Media     MediaIngestor
	Limiter   RateLimiter
	UploadDir string
	NowFunc   func() time.Time
}

// Register handles POST /api/v1/users/register. The request is multipart so
// the optional avatar and cover image can ride along with the account fields.
func (h AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !limiterAllows(h.Limiter, r, "register") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many registration attempts")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logger.Warn("invalid registration payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	username := strings.TrimSpace(strings.ToLower(r.FormValue("username")))
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	fullName := strings.TrimSpace(r.FormValue("fullName"))
	password := r.FormValue("password")

	if username == "" || email == "" || password == "" {
		respondError(ctx, w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(password) < 8 {
		respondError(ctx, w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
		return
	}

	now := h.now()
	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		FullName:  fullName,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}

	avatar, err := h.ingestImage(r, "avatar")
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to store avatar")
		return
	}
	user.AvatarURL = avatar

	cover, err := h.ingestImage(r, "coverImage")
	if err != nil {
		h.retire(user.AvatarURL)
		respondError(ctx, w, http.StatusInternalServerError, "failed to store cover image")
		return
	}
	user.CoverURL = cover

	if err := h.Users.Create(ctx, user); err != nil {
		h.retire(user.AvatarURL)
		h.retire(user.CoverURL)
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, http.StatusConflict, "username or email already taken")
			return
		}
		logger.Error("failed to create user", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create account")
		return
	}

	tokens, err := h.issueSession(w, r, user.ID)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to create session")
		return
	}

	respond(ctx, w, http.StatusCreated, map[string]any{
		"user":   user,
		"tokens": tokens,
	}, "account created")
}

// Login handles POST /api/v1/users/login. The identifier may be a username
// or an email address.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !limiterAllows(h.Limiter, r, "login") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	identifier := strings.TrimSpace(strings.ToLower(req.Username))
	if identifier == "" {
		identifier = strings.TrimSpace(strings.ToLower(req.Email))
	}
	if identifier == "" || req.Password == "" {
		respondError(ctx, w, http.StatusBadRequest, "username or email and password are required")
		return
	}

	user, err := h.Users.FindByLogin(ctx, identifier)
	if err != nil {
		logger.Warn("login user lookup failed", "identifier", identifier, "error", err)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Warn("login password mismatch", "user_id", user.ID)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tokens, err := h.issueSession(w, r, user.ID)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to create session")
		return
	}

	respond(ctx, w, http.StatusOK, map[string]any{
		"user":   user,
		"tokens": tokens,
	}, "logged in")
}

// Logout handles POST /api/v1/users/logout. It clears the stored refresh
// token so every outstanding refresh cookie stops working.
func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.Users.SetRefreshToken(ctx, user.ID, ""); err != nil {
		logging.FromContext(ctx).Error("failed to clear refresh token", "error", err, "user_id", user.ID)
		respondError(ctx, w, http.StatusInternalServerError, "failed to log out")
		return
	}

	clearSessionCookies(w)
	respond(ctx, w, http.StatusOK, nil, "logged out")
}

// Refresh handles POST /api/v1/users/refresh-token. The presented token must
// both verify and match the single stored token for its user; a rotated or
// logged-out token fails the equality check even when its signature is valid.
func (h AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	token := h.refreshToken(r)
	if token == "" {
		respondError(ctx, w, http.StatusUnauthorized, "refresh token is required")
		return
	}

	userID, err := h.Sessions.VerifyRefresh(token)
	if err != nil {
		logger.Warn("refresh token rejected", "error", err)
		respondError(ctx, w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("refresh user lookup failed", "user_id", userID, "error", err)
		respondError(ctx, w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	if user.RefreshToken == "" || user.RefreshToken != token {
		logger.Warn("refresh token superseded", "user_id", userID)
		respondError(ctx, w, http.StatusUnauthorized, "refresh token is expired or used")
		return
	}

	tokens, err := h.issueSession(w, r, user.ID)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError, "failed to refresh session")
		return
	}

	respond(ctx, w, http.StatusOK, map[string]any{"tokens": tokens}, "session refreshed")
}

// ChangePassword handles PATCH /api/v1/users/password.
func (h AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := sessionUser(r)
	if !ok {
		respondError(ctx, w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		respondError(ctx, w, http.StatusBadRequest, "old and new passwords are required")
		return
	}
	if len(req.NewPassword) < 8 {
		respondError(ctx, w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		respondError(ctx, w, http.StatusUnauthorized, "incorrect password")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
		return
	}

	if err := h.Users.SetPassword(ctx, user.ID, string(hashed)); err != nil {
		respondStoreError(ctx, w, err, "user not found", "failed to change password")
		return
	}

	respond(ctx, w, http.StatusOK, nil, "password changed")
}

func (h AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, userID string) (models.SessionTokens, error) {
	ctx := r.Context()

	tokens, err := h.Sessions.Issue(userID)
	if err != nil {
		logging.FromContext(ctx).Error("failed to issue session", "error", err, "user_id", userID)
		return models.SessionTokens{}, err
	}

	if err := h.Users.SetRefreshToken(ctx, userID, tokens.RefreshToken); err != nil {
		logging.FromContext(ctx).Error("failed to store refresh token", "error", err, "user_id", userID)
		return models.SessionTokens{}, err
	}

	setSessionCookies(w, tokens)
	return tokens, nil
}

func (h AuthHandler) refreshToken(r *http.Request) string {
	if cookie, err := r.Cookie(RefreshCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var req refreshRequest
	if err := decodeJSON(r, &req); err == nil {
		return strings.TrimSpace(req.RefreshToken)
	}
	return ""
}

// ingestImage uploads the named multipart image when present. A missing file
// is not an error; the account simply has no image yet.
func (h AuthHandler) ingestImage(r *http.Request, field string) (string, error) {
	if h.Media == nil {
		return "", nil
	}

	path, err := saveUpload(r, field, h.UploadDir)
	if err != nil {
		if errors.Is(err, errNoFile) {
			return "", nil
		}
		return "", err
	}

	asset, err := h.Media.Ingest(r.Context(), path, "images", false)
	if err != nil {
		return "", err
	}
	return asset.URL, nil
}

func (h AuthHandler) retire(url string) {
	if h.Media == nil || url == "" {
		return
	}
	h.Media.Retire(url)
}

func (h AuthHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
