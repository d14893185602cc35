package domain

import "time"

// Theme is the UI colour scheme a user picked.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeViolet Theme = "violet"
)

func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeViolet:
		return true
	}
	return false
}

type User struct {
	ID        string `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
	Password  string `json:"-" gorm:"not null"` // bcrypt hash
	AvatarURL string `json:"avatarURL"`
	Theme     Theme  `json:"theme" gorm:"not null;default:light"`

	// Single active session: a new login or refresh overwrites the hash.
	RefreshTokenHash string `json:"-"`

	PasswordResetTokenHash   string     `json:"-" gorm:"index"`
	PasswordResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeviceToken is a Firebase Cloud Messaging registration token used for
// deadline reminders.
type DeviceToken struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"userId" gorm:"index;not null"`
	Token      string    `json:"-" gorm:"uniqueIndex;not null"`
	DeviceInfo string    `json:"deviceInfo"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
