package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vidtube/backend/internal/models"
)

const (
	tokenKindAccess  = "access"
	tokenKindRefresh = "refresh"
)

var (
	// ErrInvalidToken indicates the token failed signature or structural validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the JWT payload for both access and refresh tokens.
type Claims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed access/refresh token pairs.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	now func() time.Time
}

// NewManager constructs a Manager that signs tokens with the provided secret.
func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	if secret == "" {
		panic("auth: token secret must not be empty")
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue creates a new pair of access and refresh tokens for the provided user identifier.
func (m *Manager) Issue(userID string) (models.SessionTokens, error) {
	if userID == "" {
		return models.SessionTokens{}, errors.New("user id must be provided")
	}

	now := m.now().UTC()

	access, accessExp, err := m.sign(userID, tokenKindAccess, now, m.accessTTL)
	if err != nil {
		return models.SessionTokens{}, err
	}

	refresh, refreshExp, err := m.sign(userID, tokenKindRefresh, now, m.refreshTTL)
	if err != nil {
		return models.SessionTokens{}, err
	}

	return models.SessionTokens{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// VerifyAccess validates an access token and returns the subject user id.
func (m *Manager) VerifyAccess(token string) (string, error) {
	return m.verify(token, tokenKindAccess)
}

// VerifyRefresh validates a refresh token and returns the subject user id.
// Callers must additionally compare the presented token against the single
// active value stored on the user; signature validity alone is not enough.
func (m *Manager) VerifyRefresh(token string) (string, error) {
	return m.verify(token, tokenKindRefresh)
}

func (m *Manager) sign(userID, kind string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", kind, err)
	}

	return signed, expiresAt, nil
}

func (m *Manager) verify(token, kind string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if !parsed.Valid || claims.Kind != kind || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
