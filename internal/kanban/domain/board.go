package domain

import "time"

// Board is the root of the ownership chain. CreatedBy never changes after
// creation.
type Board struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"not null"`
	Icon       string    `json:"icon" gorm:"not null"`
	Background string    `json:"background" gorm:"not null"`
	IsFavorite bool      `json:"isFavorite" gorm:"not null;default:false"`
	CreatedBy  string    `json:"createdBy" gorm:"index;not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Column belongs to one board and is ordered among its siblings by Order.
// Orders may have gaps and are never renumbered.
type Column struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	BoardID   string    `json:"board" gorm:"index;not null"`
	Order     int       `json:"order" gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
