package repository

import (
	"context"
	"errors"
	"time"

	authdomain "taskpro-backend/internal/auth/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt work factor for stored passwords.
const PasswordCost = 10

// ErrEmailTaken is returned by Create and Update when the unique email index rejects the row.
var ErrEmailTaken = errors.New("email already registered")

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Theme == "" {
		user.Theme = authdomain.ThemeLight
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByResetTokenHash(ctx context.Context, hash string, now time.Time) (*authdomain.User, error) {
	if hash == "" {
		return nil, nil
	}
	return r.first(ctx, "password_reset_token_hash = ? AND password_reset_token_expiry > ?", hash, now)
}

// profileColumns are the columns Update writes. Token material has its own
// setters so a stale profile copy never overwrites a rotation.
var profileColumns = []string{"name", "email", "password", "avatar_url", "theme", "updated_at"}

func (r *userRepository) Update(ctx context.Context, user *authdomain.User) error {
	user.UpdatedAt = time.Now()
	return translate(r.db.WithContext(ctx).Model(user).Select(profileColumns).Updates(user).Error)
}

func (r *userRepository) ResetPassword(ctx context.Context, userID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":                    passwordHash,
			"password_reset_token_hash":   "",
			"password_reset_token_expiry": nil,
			"updated_at":                  time.Now(),
		}).Error
}

func (r *userRepository) SetRefreshTokenHash(ctx context.Context, userID, hash string) error {
	return r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token_hash": hash,
			"updated_at":         time.Now(),
		}).Error
}

func (r *userRepository) SetPasswordResetToken(ctx context.Context, userID, hash string, expiry *time.Time) error {
	return r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_reset_token_hash":   hash,
			"password_reset_token_expiry": expiry,
			"updated_at":                  time.Now(),
		}).Error
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password with a hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
