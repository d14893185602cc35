package usecase

import (
	"context"

	authdomain "taskpro-backend/internal/auth/domain"
	authdto "taskpro-backend/internal/auth/dto"
)

// AuthUsecase is the credential and session manager.
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error)
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error)
	// RefreshToken rotates the pair; the presented refresh token stops working.
	RefreshToken(ctx context.Context, refreshToken string) (*authdto.AuthResponse, error)
	// Logout forgets the stored session. Invalid tokens are not an error.
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *authdto.ResetPasswordRequest) (*authdto.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*authdomain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error)
	// ValidateToken verifies an access token and returns the user id it carries.
	ValidateToken(accessToken string) (string, error)
	RegisterDevice(ctx context.Context, userID string, req *authdto.RegisterDeviceRequest) error
	UnregisterDevice(ctx context.Context, userID, deviceToken string) error
}
