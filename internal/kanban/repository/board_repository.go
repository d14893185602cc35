package repository

import (
	"context"
	"errors"
	"time"

	"taskpro-backend/internal/kanban/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type boardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepository{db: db}
}

func (r *boardRepository) Create(ctx context.Context, board *domain.Board) error {
	if board.ID == "" {
		board.ID = uuid.New().String()
	}
	now := time.Now()
	board.CreatedAt = now
	board.UpdatedAt = now
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *boardRepository) FindByID(ctx context.Context, id string) (*domain.Board, error) {
	var board domain.Board
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &board, nil
}

func (r *boardRepository) ListByOwner(ctx context.Context, userID string) ([]*domain.Board, error) {
	boards := []*domain.Board{}
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&boards).Error
	return boards, err
}

func (r *boardRepository) Update(ctx context.Context, board *domain.Board) error {
	board.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(board).
		Select("title", "icon", "background", "is_favorite", "updated_at").
		Updates(board).Error
}

func (r *boardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Board{}, "id = ?", id).Error
}

func (r *boardRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		columnIDs := tx.Model(&domain.Column{}).Select("id").Where("board_id = ?", id)
		if err := tx.Where("column_id IN (?) OR board_id = ?", columnIDs, id).Delete(&domain.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&domain.Column{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Board{}, "id = ?", id).Error
	})
}
