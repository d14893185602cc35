package usecase

import (
	"context"

	"taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/dto"
	"taskpro-backend/pkg/storage"
)

// Every method takes the requesting user's id and fails with ErrForbidden when
// the target belongs to someone else.

type BoardUsecase interface {
	List(ctx context.Context, userID string) ([]*domain.Board, error)
	Create(ctx context.Context, userID string, req *dto.CreateBoardRequest) (*domain.Board, error)
	Update(ctx context.Context, userID, boardID string, req *dto.UpdateBoardRequest) (*domain.Board, error)
	Delete(ctx context.Context, userID, boardID string) error
	UploadBackground(ctx context.Context, userID string, file *storage.File) (*dto.BackgroundResponse, error)
}

type ColumnUsecase interface {
	List(ctx context.Context, userID, boardID string) ([]*domain.Column, error)
	Create(ctx context.Context, userID, boardID string, req *dto.ColumnRequest) (*domain.Column, error)
	Update(ctx context.Context, userID, columnID string, req *dto.ColumnRequest) (*domain.Column, error)
	Delete(ctx context.Context, userID, columnID string) error
}

type CardUsecase interface {
	List(ctx context.Context, userID, columnID string) ([]*domain.Card, error)
	Create(ctx context.Context, userID, columnID string, req *dto.CreateCardRequest) (*domain.Card, error)
	Update(ctx context.Context, userID, cardID string, req *dto.UpdateCardRequest) (*domain.Card, error)
	Delete(ctx context.Context, userID, cardID string) error
	// Move re-parents the card to the end of columnID.
	Move(ctx context.Context, userID, cardID, columnID string) (*domain.Card, error)
	// Search lists a board's cards filtered by priority and a fuzzy match on
	// title or description.
	Search(ctx context.Context, userID, boardID string, query *dto.SearchCardsQuery) ([]*domain.Card, error)
}
