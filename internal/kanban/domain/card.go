package domain

import "time"

type Priority string

const (
	PriorityLow     Priority = "Low"
	PriorityMedium  Priority = "Medium"
	PriorityHigh    Priority = "High"
	PriorityWithout Priority = "Without"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityWithout:
		return true
	}
	return false
}

// Card belongs to one column. BoardID is a denormalized copy of the column's
// board; authorization always resolves through the column instead.
type Card struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"not null"`
	Priority    Priority   `json:"priority" gorm:"not null;default:Without"`
	Deadline    *time.Time `json:"deadline"`
	ColumnID    string     `json:"column" gorm:"index;not null"`
	BoardID     string     `json:"board" gorm:"index;not null"`
	CreatedBy   string     `json:"createdBy" gorm:"not null"`
	Order       int        `json:"order" gorm:"column:sort_order;not null;default:0"`

	// ReminderSent is reset whenever the deadline changes.
	ReminderSent bool `json:"-" gorm:"index;not null;default:false"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Models lists every kanban table for migration.
func Models() []interface{} {
	return []interface{}{&Board{}, &Column{}, &Card{}}
}
