package repository

import (
	"context"
	"errors"
	"time"

	"taskpro-backend/internal/kanban/domain"
)

// ErrParentNotFound is returned by Append and MoveToColumn when the parent row
// disappeared before it could be locked.
var ErrParentNotFound = errors.New("parent not found")

// Finders return (nil, nil) when nothing matches. Lists are sorted by order
// ascending, then creation time, then id.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	FindByID(ctx context.Context, id string) (*domain.Board, error)
	// ListByOwner returns the user's boards, newest first.
	ListByOwner(ctx context.Context, userID string) ([]*domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id string) error
	// DeleteCascade removes the board with its columns and cards in one transaction.
	DeleteCascade(ctx context.Context, id string) error
}

type ColumnRepository interface {
	// Append inserts column at the end of its board.
	Append(ctx context.Context, column *domain.Column) error
	FindByID(ctx context.Context, id string) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error)
	Update(ctx context.Context, column *domain.Column) error
	// DeleteWithCards removes the column's cards, then the column, as two
	// separate statements.
	DeleteWithCards(ctx context.Context, id string) error
}

type CardRepository interface {
	// Append inserts card at the end of its column.
	Append(ctx context.Context, card *domain.Card) error
	FindByID(ctx context.Context, id string) (*domain.Card, error)
	ListByColumn(ctx context.Context, columnID string) ([]*domain.Card, error)
	// ListByBoard returns the cards of every column of boardID, grouped by
	// column order. A non-empty priority filters the result.
	ListByBoard(ctx context.Context, boardID string, priority domain.Priority) ([]*domain.Card, error)
	Update(ctx context.Context, card *domain.Card) error
	Delete(ctx context.Context, id string) error
	// MoveToColumn re-parents card to the end of dest, updating its board.
	MoveToColumn(ctx context.Context, card *domain.Card, dest *domain.Column) error
	// FindDueReminders returns cards with a deadline at or before until that
	// have not been reminded yet.
	FindDueReminders(ctx context.Context, until time.Time) ([]*domain.Card, error)
	MarkReminderSent(ctx context.Context, id string) error
}
