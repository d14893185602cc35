package repository

import (
	"context"
	"errors"
	"time"

	"taskpro-backend/internal/kanban/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type columnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepository{db: db}
}

func (r *columnRepository) Append(ctx context.Context, column *domain.Column) error {
	if column.ID == "" {
		column.ID = uuid.New().String()
	}
	now := time.Now()
	column.CreatedAt = now
	column.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockParent(tx, &domain.Board{}, column.BoardID); err != nil {
			return err
		}
		order, err := nextOrder(tx, &domain.Column{}, "board_id", column.BoardID)
		if err != nil {
			return err
		}
		column.Order = order
		return tx.Create(column).Error
	})
}

func (r *columnRepository) FindByID(ctx context.Context, id string) (*domain.Column, error) {
	var column domain.Column
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&column).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &column, nil
}

func (r *columnRepository) ListByBoard(ctx context.Context, boardID string) ([]*domain.Column, error) {
	columns := []*domain.Column{}
	err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order(listOrder).Find(&columns).Error
	return columns, err
}

func (r *columnRepository) Update(ctx context.Context, column *domain.Column) error {
	column.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(column).Select("title", "updated_at").Updates(column).Error
}

func (r *columnRepository) DeleteWithCards(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("column_id = ?", id).Delete(&domain.Card{}).Error; err != nil {
		return err
	}
	return db.Delete(&domain.Column{}, "id = ?", id).Error
}
