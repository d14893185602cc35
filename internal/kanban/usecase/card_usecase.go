package usecase

import (
	"context"
	"strings"
	"time"

	"taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/dto"
	"taskpro-backend/internal/kanban/repository"
	"taskpro-backend/pkg/fuzzy"
)

type cardUsecase struct {
	cards     repository.CardRepository
	ownership *Ownership
	now       func() time.Time
}

// NewCardUsecase builds the card usecase. now decides which calendar day counts
// as today for deadline checks; nil means time.Now.
func NewCardUsecase(cards repository.CardRepository, ownership *Ownership, now func() time.Time) CardUsecase {
	if now == nil {
		now = time.Now
	}
	return &cardUsecase{cards: cards, ownership: ownership, now: now}
}

func (u *cardUsecase) List(ctx context.Context, userID, columnID string) ([]*domain.Card, error) {
	if _, _, err := u.ownership.ColumnFor(ctx, userID, columnID); err != nil {
		return nil, err
	}
	return u.cards.ListByColumn(ctx, columnID)
}

func (u *cardUsecase) Create(ctx context.Context, userID, columnID string, req *dto.CreateCardRequest) (*domain.Card, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" {
		return nil, ErrCardTitleRequired
	}
	if description == "" {
		return nil, ErrCardDescriptionRequired
	}

	priority := domain.PriorityWithout
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
	}

	var deadline *time.Time
	if strings.TrimSpace(req.Deadline) != "" {
		d, err := parseDeadline(req.Deadline, u.now())
		if err != nil {
			return nil, err
		}
		deadline = d
	}

	column, _, err := u.ownership.ColumnFor(ctx, userID, columnID)
	if err != nil {
		return nil, err
	}

	card := &domain.Card{
		Title:       title,
		Description: description,
		Priority:    priority,
		Deadline:    deadline,
		ColumnID:    column.ID,
		BoardID:     column.BoardID,
		CreatedBy:   userID,
	}
	if err := u.appendCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (u *cardUsecase) Update(ctx context.Context, userID, cardID string, req *dto.UpdateCardRequest) (*domain.Card, error) {
	card, _, err := u.ownership.CardFor(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrCardTitleEmpty
		}
		card.Title = title
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrCardDescriptionEmpty
		}
		card.Description = description
	}
	if req.Priority != nil && *req.Priority != "" {
		priority := domain.Priority(*req.Priority)
		if !priority.Valid() {
			return nil, ErrInvalidPriority
		}
		card.Priority = priority
	}

	switch {
	case req.Deadline.Cleared():
		card.Deadline = nil
		card.ReminderSent = false
	case req.Deadline.Set:
		deadline, err := parseDeadline(*req.Deadline.Value, u.now())
		if err != nil {
			return nil, err
		}
		card.Deadline = deadline
		card.ReminderSent = false
	}

	if err := u.cards.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (u *cardUsecase) Delete(ctx context.Context, userID, cardID string) error {
	if _, _, err := u.ownership.CardFor(ctx, userID, cardID); err != nil {
		return err
	}
	return u.cards.Delete(ctx, cardID)
}

func (u *cardUsecase) Search(ctx context.Context, userID, boardID string, query *dto.SearchCardsQuery) ([]*domain.Card, error) {
	if _, err := u.ownership.BoardFor(ctx, userID, boardID); err != nil {
		return nil, err
	}

	priority := domain.Priority(strings.TrimSpace(query.Priority))
	if priority != "" && !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	cards, err := u.cards.ListByBoard(ctx, boardID, priority)
	if err != nil {
		return nil, err
	}

	q := strings.TrimSpace(query.Q)
	if q == "" {
		return cards, nil
	}
	matched := make([]*domain.Card, 0, len(cards))
	for _, card := range cards {
		if fuzzy.MatchCard(q, card.Title, card.Description) {
			matched = append(matched, card)
		}
	}
	return matched, nil
}
