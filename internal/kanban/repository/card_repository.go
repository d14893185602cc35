package repository

import (
	"context"
	"errors"
	"time"

	"taskpro-backend/internal/kanban/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Append(ctx context.Context, card *domain.Card) error {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	now := time.Now()
	card.CreatedAt = now
	card.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockParent(tx, &domain.Column{}, card.ColumnID); err != nil {
			return err
		}
		order, err := nextOrder(tx, &domain.Card{}, "column_id", card.ColumnID)
		if err != nil {
			return err
		}
		card.Order = order
		return tx.Create(card).Error
	})
}

func (r *cardRepository) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	var card domain.Card
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) ListByColumn(ctx context.Context, columnID string) ([]*domain.Card, error) {
	cards := []*domain.Card{}
	err := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order(listOrder).Find(&cards).Error
	return cards, err
}

func (r *cardRepository) ListByBoard(ctx context.Context, boardID string, priority domain.Priority) ([]*domain.Card, error) {
	cards := []*domain.Card{}
	query := r.db.WithContext(ctx).
		Select("cards.*").
		Joins("JOIN columns ON columns.id = cards.column_id").
		Where("columns.board_id = ?", boardID)
	if priority != "" {
		query = query.Where("cards.priority = ?", priority)
	}
	err := query.
		Order("columns.sort_order ASC, columns.created_at ASC, columns.id ASC").
		Order("cards.sort_order ASC, cards.created_at ASC, cards.id ASC").
		Find(&cards).Error
	return cards, err
}

// cardFields are the columns Update writes. Placement belongs to
// MoveToColumn, so an edit racing a move cannot put the card back.
var cardFields = []string{"title", "description", "priority", "deadline", "reminder_sent", "updated_at"}

func (r *cardRepository) Update(ctx context.Context, card *domain.Card) error {
	card.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(card).Select(cardFields).Updates(card).Error
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Card{}, "id = ?", id).Error
}

func (r *cardRepository) MoveToColumn(ctx context.Context, card *domain.Card, dest *domain.Column) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockParent(tx, &domain.Column{}, dest.ID); err != nil {
			return err
		}
		order, err := nextOrder(tx, &domain.Card{}, "column_id", dest.ID)
		if err != nil {
			return err
		}

		now := time.Now()
		err = tx.Model(&domain.Card{}).
			Where("id = ?", card.ID).
			Updates(map[string]interface{}{
				"column_id":  dest.ID,
				"board_id":   dest.BoardID,
				"sort_order": order,
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}

		card.ColumnID = dest.ID
		card.BoardID = dest.BoardID
		card.Order = order
		card.UpdatedAt = now
		return nil
	})
}

func (r *cardRepository) FindDueReminders(ctx context.Context, until time.Time) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.WithContext(ctx).
		Where("deadline IS NOT NULL AND deadline <= ? AND reminder_sent = ?", until, false).
		Order("deadline ASC").
		Find(&cards).Error
	return cards, err
}

func (r *cardRepository) MarkReminderSent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Card{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
}
