package dto

import (
	authdomain "taskpro-backend/internal/auth/domain"
	"taskpro-backend/pkg/storage"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type RegisterDeviceRequest struct {
	Token      string `json:"token" binding:"required"`
	DeviceInfo string `json:"deviceInfo"`
}

// UpdateProfileRequest holds the optional multipart fields of PATCH /auth/profile.
type UpdateProfileRequest struct {
	Name     *string
	Email    *string
	Password *string
	Theme    *string
	Avatar   *FileUpload
}

type FileUpload = storage.File

// ProfilePatch is the JSON form of a profile update.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Theme    *string `json:"theme,omitempty"`
}

// AuthResponse is returned by every endpoint that issues a token pair.
type AuthResponse struct {
	Message      string           `json:"message,omitempty"`
	Token        string           `json:"token"`
	RefreshToken string           `json:"refreshToken"`
	User         *authdomain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	User *authdomain.User `json:"user"`
}
