package usecase

import "taskpro-backend/internal/apperror"

const (
	MsgForgotPasswordSent = "If the email is registered, a reset link has been sent"
	MsgLoggedOut          = "Logged out"
)

var (
	ErrRegisterFieldsRequired = apperror.BadRequest("Name, email and password are required")
	ErrLoginFieldsRequired    = apperror.BadRequest("Email and password are required")
	ErrInvalidEmail           = apperror.BadRequest("Please enter a valid email address")
	ErrWeakPassword           = apperror.BadRequest("Password must be at least 8 characters and contain at least one number and one uppercase letter")
	ErrNameTooShort           = apperror.BadRequest("Name must be at least 2 characters")
	ErrInvalidTheme           = apperror.BadRequest("Theme must be one of light, dark, violet")
	ErrEmailTaken             = apperror.Conflict("A user with this email already exists")
	ErrInvalidCredentials     = apperror.Unauthorized("Email or password is incorrect")

	ErrRefreshTokenRequired = apperror.BadRequest("Refresh token is required")
	ErrRefreshTokenInvalid  = apperror.Unauthorized("Invalid or expired refresh token")
	ErrRefreshTokenRejected = apperror.Unauthorized("Refresh token could not be verified")

	ErrResetFieldsRequired = apperror.BadRequest("Token and new password are required")
	ErrResetTokenInvalid   = apperror.BadRequest("Invalid or expired token")
	ErrResetEmailFailed    = apperror.Internal("Failed to send password reset email")

	ErrInvalidAccessToken  = apperror.Unauthorized("Token is not valid")
	ErrUserNotFound        = apperror.NotFound("User not found")
	ErrAvatarUpload        = apperror.Internal("Failed to upload avatar")
	ErrUnsupportedImage    = apperror.BadRequest("Only jpg, jpeg, png and webp images are allowed")
	ErrServerMisconfigured = apperror.Internal("Token signing is not configured")
)
