package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	authdomain "taskpro-backend/internal/auth/domain"
	authdto "taskpro-backend/internal/auth/dto"
	"taskpro-backend/internal/auth/repository"
	"taskpro-backend/internal/auth/token"
	"taskpro-backend/pkg/mailer"
	"taskpro-backend/pkg/storage"

	"github.com/google/uuid"
)

// Options configures authUsecase collaborators that are not repositories.
type Options struct {
	Tokens             *token.Manager
	Mailer             mailer.Sender
	Uploader           storage.Uploader
	ClientBaseURL      string
	ResetTokenLifetime time.Duration
	Now                func() time.Time
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo   repository.UserRepository
	deviceRepo repository.DeviceTokenRepository
	tokens     *token.Manager
	mailer     mailer.Sender
	uploader   storage.Uploader
	clientURL  string
	resetTTL   time.Duration
	now        func() time.Time
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, deviceRepo repository.DeviceTokenRepository, opts Options) AuthUsecase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ResetTokenLifetime <= 0 {
		opts.ResetTokenLifetime = time.Hour
	}
	if opts.Uploader == nil {
		opts.Uploader = storage.Disabled{}
	}
	return &authUsecase{
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		tokens:     opts.Tokens,
		mailer:     opts.Mailer,
		uploader:   opts.Uploader,
		clientURL:  strings.TrimRight(opts.ClientBaseURL, "/"),
		resetTTL:   opts.ResetTokenLifetime,
		now:        opts.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, ErrRegisterFieldsRequired
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !isStrongPassword(req.Password) {
		return nil, ErrWeakPassword
	}
	if len([]rune(name)) < 2 {
		return nil, ErrNameTooShort
	}

	email = NormalizeEmail(email)
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Theme:    authdomain.ThemeLight,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.Printf("[Auth] Registered user %s", user.ID)
	return u.issueSession(ctx, user, "User created successfully")
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrLoginFieldsRequired
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	user, err := u.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		// same bcrypt cost as a real mismatch
		repository.CheckPasswordHash(req.Password, dummyPasswordHash())
		return nil, ErrInvalidCredentials
	}
	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return u.issueSession(ctx, user, "Logged in successfully")
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*authdto.AuthResponse, error) {
	user, err := u.userForRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return u.issueSession(ctx, user, "Token refreshed")
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := u.userForRefreshToken(ctx, refreshToken)
	if err != nil {
		if isClientError(err) {
			return nil
		}
		return err
	}

	if err := u.userRepo.SetRefreshTokenHash(ctx, user.ID, ""); err != nil {
		return err
	}
	log.Printf("[Auth] User %s logged out", user.ID)
	return nil
}

func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return ErrInvalidEmail
	}

	user, err := u.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	rawToken, err := randomToken()
	if err != nil {
		return err
	}
	expiry := u.now().Add(u.resetTTL)
	if err := u.userRepo.SetPasswordResetToken(ctx, user.ID, token.Hash(rawToken), &expiry); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", u.clientURL, url.QueryEscape(rawToken))
	if err := u.sendResetEmail(ctx, user, resetURL); err != nil {
		log.Printf("[Auth] Reset email for user %s failed, clearing token: %v", user.ID, err)
		if clearErr := u.userRepo.SetPasswordResetToken(ctx, user.ID, "", nil); clearErr != nil {
			log.Printf("[Auth] Failed to clear reset token for user %s: %v", user.ID, clearErr)
			return errors.Join(ErrResetEmailFailed.Wrap(err), clearErr)
		}
		return ErrResetEmailFailed.Wrap(err)
	}

	return nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, req *authdto.ResetPasswordRequest) (*authdto.AuthResponse, error) {
	if req.Token == "" || req.Password == "" {
		return nil, ErrResetFieldsRequired
	}
	if !isStrongPassword(req.Password) {
		return nil, ErrWeakPassword
	}

	user, err := u.userRepo.FindByResetTokenHash(ctx, token.Hash(req.Token), u.now())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrResetTokenInvalid
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	if err := u.userRepo.ResetPassword(ctx, user.ID, hashedPassword); err != nil {
		return nil, err
	}
	user.Password = hashedPassword
	user.PasswordResetTokenHash = ""
	user.PasswordResetTokenExpiry = nil

	log.Printf("[Auth] Password reset for user %s", user.ID)
	return u.issueSession(ctx, user, "Your password has been updated")
}

func (u *authUsecase) GetProfile(ctx context.Context, userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error) {
	user, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len([]rune(name)) < 2 {
			return nil, ErrNameTooShort
		}
		user.Name = name
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !isValidEmail(email) {
			return nil, ErrInvalidEmail
		}
		email = NormalizeEmail(email)
		if email != user.Email {
			other, err := u.userRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}

	if req.Password != nil && *req.Password != "" {
		if !isStrongPassword(*req.Password) {
			return nil, ErrWeakPassword
		}
		hashedPassword, err := repository.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if req.Theme != nil {
		theme := authdomain.Theme(strings.ToLower(strings.TrimSpace(*req.Theme)))
		if !theme.Valid() {
			return nil, ErrInvalidTheme
		}
		user.Theme = theme
	}

	if req.Avatar != nil {
		avatarURL, err := u.uploadAvatar(ctx, user.ID, req.Avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = avatarURL
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) ValidateToken(accessToken string) (string, error) {
	userID, err := u.tokens.ParseAccess(accessToken)
	if err != nil {
		if errors.Is(err, token.ErrMissingSecret) {
			return "", ErrServerMisconfigured.Wrap(err)
		}
		return "", ErrInvalidAccessToken
	}
	return userID, nil
}

func (u *authUsecase) RegisterDevice(ctx context.Context, userID string, req *authdto.RegisterDeviceRequest) error {
	return u.deviceRepo.SaveToken(ctx, userID, req.Token, req.DeviceInfo)
}

func (u *authUsecase) UnregisterDevice(ctx context.Context, userID, deviceToken string) error {
	return u.deviceRepo.DeleteUserToken(ctx, userID, deviceToken)
}

// userForRefreshToken verifies the signature, then the stored hash. Rotation
// means only the most recently issued refresh token matches.
func (u *authUsecase) userForRefreshToken(ctx context.Context, refreshToken string) (*authdomain.User, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	userID, err := u.tokens.ParseRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrMissingSecret) {
			return nil, ErrServerMisconfigured.Wrap(err)
		}
		return nil, ErrRefreshTokenInvalid
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshTokenHash == "" {
		return nil, ErrRefreshTokenRejected
	}
	if subtle.ConstantTimeCompare([]byte(user.RefreshTokenHash), []byte(token.Hash(refreshToken))) != 1 {
		return nil, ErrRefreshTokenRejected
	}
	return user, nil
}

// issueSession signs a new pair and overwrites the stored refresh hash, which
// invalidates any refresh token issued before.
func (u *authUsecase) issueSession(ctx context.Context, user *authdomain.User, message string) (*authdto.AuthResponse, error) {
	pair, err := u.tokens.Issue(user.ID)
	if err != nil {
		if errors.Is(err, token.ErrMissingSecret) {
			return nil, ErrServerMisconfigured.Wrap(err)
		}
		return nil, err
	}

	hash := token.Hash(pair.RefreshToken)
	if err := u.userRepo.SetRefreshTokenHash(ctx, user.ID, hash); err != nil {
		return nil, err
	}
	user.RefreshTokenHash = hash

	return &authdto.AuthResponse{
		Message:      message,
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) sendResetEmail(ctx context.Context, user *authdomain.User, resetURL string) error {
	if u.mailer == nil {
		return mailer.ErrNotConfigured
	}
	msg, err := mailer.PasswordReset(user.Email, user.Name, resetURL)
	if err != nil {
		return err
	}
	return u.mailer.Send(ctx, msg)
}

func (u *authUsecase) uploadAvatar(ctx context.Context, userID string, file *authdto.FileUpload) (string, error) {
	ext, contentType, err := storage.ImageContentType(file.Filename)
	if err != nil {
		return "", ErrUnsupportedImage
	}
	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), ext)
	avatarURL, err := u.uploader.Upload(ctx, key, contentType, file.Body, file.Size)
	if err != nil {
		log.Printf("[Auth] Avatar upload for user %s failed: %v", userID, err)
		return "", ErrAvatarUpload.Wrap(err)
	}
	return avatarURL, nil
}

// dummyPasswordHash is compared against when Login finds no account, so an
// unknown email costs the same bcrypt round as a wrong password.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, err := repository.HashPassword("not-a-real-password")
	if err != nil {
		log.Printf("[Auth] Failed to build dummy password hash: %v", err)
	}
	return hash
})

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func isClientError(err error) bool {
	return errors.Is(err, ErrRefreshTokenRequired) ||
		errors.Is(err, ErrRefreshTokenInvalid) ||
		errors.Is(err, ErrRefreshTokenRejected)
}
