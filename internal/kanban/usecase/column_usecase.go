package usecase

import (
	"context"
	"strings"

	"taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/dto"
	"taskpro-backend/internal/kanban/repository"
)

type columnUsecase struct {
	columns   repository.ColumnRepository
	ownership *Ownership
}

func NewColumnUsecase(columns repository.ColumnRepository, ownership *Ownership) ColumnUsecase {
	return &columnUsecase{columns: columns, ownership: ownership}
}

func (u *columnUsecase) List(ctx context.Context, userID, boardID string) ([]*domain.Column, error) {
	if _, err := u.ownership.BoardFor(ctx, userID, boardID); err != nil {
		return nil, err
	}
	return u.columns.ListByBoard(ctx, boardID)
}

func (u *columnUsecase) Create(ctx context.Context, userID, boardID string, req *dto.ColumnRequest) (*domain.Column, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrColumnTitleRequired
	}
	if _, err := u.ownership.BoardFor(ctx, userID, boardID); err != nil {
		return nil, err
	}

	column := &domain.Column{Title: title, BoardID: boardID}
	if err := u.appendColumn(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (u *columnUsecase) Update(ctx context.Context, userID, columnID string, req *dto.ColumnRequest) (*domain.Column, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrColumnTitleRequired
	}
	column, _, err := u.ownership.ColumnFor(ctx, userID, columnID)
	if err != nil {
		return nil, err
	}

	column.Title = title
	if err := u.columns.Update(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (u *columnUsecase) Delete(ctx context.Context, userID, columnID string) error {
	if _, _, err := u.ownership.ColumnFor(ctx, userID, columnID); err != nil {
		return err
	}
	return u.columns.DeleteWithCards(ctx, columnID)
}
