package usecase

import (
	"context"

	"taskpro-backend/internal/apperror"
	"taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/repository"
)

// Ownership resolves an entity's root board by walking card -> column -> board
// and checks that userID created it. A missing target is 404, a missing
// ancestor is 400, a foreign board is 403.
type Ownership struct {
	boards  repository.BoardRepository
	columns repository.ColumnRepository
	cards   repository.CardRepository
}

func NewOwnership(boards repository.BoardRepository, columns repository.ColumnRepository, cards repository.CardRepository) *Ownership {
	return &Ownership{boards: boards, columns: columns, cards: cards}
}

func (o *Ownership) BoardFor(ctx context.Context, userID, boardID string) (*domain.Board, error) {
	board, err := o.boards.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	if board.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return board, nil
}

func (o *Ownership) ColumnFor(ctx context.Context, userID, columnID string) (*domain.Column, *domain.Board, error) {
	return o.column(ctx, userID, columnID, ErrColumnNotFound)
}

// TargetColumnFor is ColumnFor for a move destination.
func (o *Ownership) TargetColumnFor(ctx context.Context, userID, columnID string) (*domain.Column, *domain.Board, error) {
	return o.column(ctx, userID, columnID, ErrTargetColumnNotFound)
}

// CardFor never trusts card.BoardID; the board is resolved through the column.
func (o *Ownership) CardFor(ctx context.Context, userID, cardID string) (*domain.Card, *domain.Column, error) {
	card, err := o.cards.FindByID(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}
	if card == nil {
		return nil, nil, ErrCardNotFound
	}

	column, err := o.columns.FindByID(ctx, card.ColumnID)
	if err != nil {
		return nil, nil, err
	}
	if column == nil {
		return nil, nil, ErrColumnMissing
	}

	if _, err := o.ownedBoard(ctx, userID, column.BoardID); err != nil {
		return nil, nil, err
	}
	return card, column, nil
}

func (o *Ownership) column(ctx context.Context, userID, columnID string, notFound *apperror.Error) (*domain.Column, *domain.Board, error) {
	column, err := o.columns.FindByID(ctx, columnID)
	if err != nil {
		return nil, nil, err
	}
	if column == nil {
		return nil, nil, notFound
	}

	board, err := o.ownedBoard(ctx, userID, column.BoardID)
	if err != nil {
		return nil, nil, err
	}
	return column, board, nil
}

// ownedBoard loads an ancestor board; its absence is a data-integrity error.
func (o *Ownership) ownedBoard(ctx context.Context, userID, boardID string) (*domain.Board, error) {
	board, err := o.boards.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardMissing
	}
	if board.CreatedBy != userID {
		return nil, ErrForbidden
	}
	return board, nil
}
