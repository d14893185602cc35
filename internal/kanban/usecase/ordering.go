package usecase

import (
	"context"
	"errors"
	"log"

	"taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/repository"
)

// New columns and cards always land after their last sibling: order is
// max(order)+1, or 0 for the first child. Deletes never renumber, so orders
// are a relative ranking with gaps.

func (u *columnUsecase) appendColumn(ctx context.Context, column *domain.Column) error {
	err := u.columns.Append(ctx, column)
	if errors.Is(err, repository.ErrParentNotFound) {
		return ErrBoardNotFound
	}
	return err
}

func (u *cardUsecase) appendCard(ctx context.Context, card *domain.Card) error {
	err := u.cards.Append(ctx, card)
	if errors.Is(err, repository.ErrParentNotFound) {
		return ErrColumnNotFound
	}
	return err
}

// Move checks the destination board independently of the source: both must
// belong to userID. The source column keeps its remaining orders.
func (u *cardUsecase) Move(ctx context.Context, userID, cardID, columnID string) (*domain.Card, error) {
	if columnID == "" {
		return nil, ErrTargetColumnRequired
	}

	card, source, err := u.ownership.CardFor(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	dest, _, err := u.ownership.TargetColumnFor(ctx, userID, columnID)
	if err != nil {
		return nil, err
	}

	if err := u.cards.MoveToColumn(ctx, card, dest); err != nil {
		if errors.Is(err, repository.ErrParentNotFound) {
			return nil, ErrTargetColumnNotFound
		}
		return nil, err
	}

	log.Printf("[Card] Moved card %s from column %s to %s (order %d)", card.ID, source.ID, dest.ID, card.Order)
	return card, nil
}
