// Package token issues and verifies the access/refresh JWT pair.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSecret = errors.New("token signing secret is not configured")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// Claims identifies the user a token was issued to. The JSON key matches the
// payload older clients already decode.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Pair is a freshly issued access + refresh token.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

func (m *Manager) Issue(userID string) (*Pair, error) {
	access, err := m.sign(userID, m.accessSecret, m.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.sign(userID, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *Manager) ParseAccess(tokenString string) (string, error) {
	return m.parse(tokenString, m.accessSecret)
}

func (m *Manager) ParseRefresh(tokenString string) (string, error) {
	return m.parse(tokenString, m.refreshSecret)
}

func (m *Manager) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *Manager) parse(tokenString string, secret []byte) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// Hash returns the hex SHA-256 of a token. Only hashes of refresh and reset
// tokens are persisted.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
