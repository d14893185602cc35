package repository

import (
	"context"
	"time"

	authdomain "taskpro-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type deviceTokenRepository struct {
	db *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

// SaveToken registers a device token, moving it to userID if another account held it.
func (r *deviceTokenRepository) SaveToken(ctx context.Context, userID, token, deviceInfo string) error {
	now := time.Now()
	deviceToken := &authdomain.DeviceToken{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		DeviceInfo: deviceInfo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "device_info", "updated_at"}),
	}).Create(deviceToken).Error
}

func (r *deviceTokenRepository) GetTokensByUserID(ctx context.Context, userID string) ([]authdomain.DeviceToken, error) {
	var tokens []authdomain.DeviceToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *deviceTokenRepository) DeleteToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&authdomain.DeviceToken{}).Error
}

func (r *deviceTokenRepository) DeleteUserToken(ctx context.Context, userID, token string) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND token = ?", userID, token).Delete(&authdomain.DeviceToken{}).Error
}
