package repository

import (
	"context"
	"time"

	authdomain "taskpro-backend/internal/auth/domain"
)

// UserRepository defines persistence for users and their credential material.
// Finders return (nil, nil) when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	// FindByResetTokenHash returns the user holding hash with an expiry after now.
	FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*authdomain.User, error)
	// Update writes the profile columns only: name, email, password, avatar and theme.
	Update(ctx context.Context, user *authdomain.User) error
	// ResetPassword stores a new password hash and clears the reset token.
	ResetPassword(ctx context.Context, userID, passwordHash string) error
	SetRefreshTokenHash(ctx context.Context, userID, hash string) error
	SetPasswordResetToken(ctx context.Context, userID, hash string, expiry *time.Time) error
}

// DeviceTokenRepository stores FCM registration tokens per user.
type DeviceTokenRepository interface {
	SaveToken(ctx context.Context, userID, token, deviceInfo string) error
	GetTokensByUserID(ctx context.Context, userID string) ([]authdomain.DeviceToken, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteUserToken(ctx context.Context, userID, token string) error
}
