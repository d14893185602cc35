package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/dto"
	"taskpro-backend/internal/kanban/repository"
	"taskpro-backend/pkg/storage"
)

type boardUsecase struct {
	boards    repository.BoardRepository
	ownership *Ownership
	uploader  storage.Uploader
	cascade   bool
	now       func() time.Time
}

// NewBoardUsecase builds the board usecase. With cascade set, deleting a board
// also deletes its columns and cards; otherwise they are left in place.
func NewBoardUsecase(boards repository.BoardRepository, ownership *Ownership, uploader storage.Uploader, cascade bool) BoardUsecase {
	if uploader == nil {
		uploader = storage.Disabled{}
	}
	return &boardUsecase{
		boards:    boards,
		ownership: ownership,
		uploader:  uploader,
		cascade:   cascade,
		now:       time.Now,
	}
}

func (u *boardUsecase) List(ctx context.Context, userID string) ([]*domain.Board, error) {
	return u.boards.ListByOwner(ctx, userID)
}

func (u *boardUsecase) Create(ctx context.Context, userID string, req *dto.CreateBoardRequest) (*domain.Board, error) {
	title := strings.TrimSpace(req.Title)
	icon := strings.TrimSpace(req.Icon)
	background := strings.TrimSpace(req.Background)
	if title == "" || icon == "" || background == "" {
		return nil, ErrBoardFieldsRequired
	}

	board := &domain.Board{
		Title:      title,
		Icon:       icon,
		Background: background,
		CreatedBy:  userID,
	}
	if err := u.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (u *boardUsecase) Update(ctx context.Context, userID, boardID string, req *dto.UpdateBoardRequest) (*domain.Board, error) {
	board, err := u.ownership.BoardFor(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}

	for _, f := range []struct {
		in  *string
		out *string
	}{
		{req.Title, &board.Title},
		{req.Icon, &board.Icon},
		{req.Background, &board.Background},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			return nil, ErrBoardFieldEmpty
		}
		*f.out = v
	}
	if req.IsFavorite != nil {
		board.IsFavorite = *req.IsFavorite
	}

	if err := u.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (u *boardUsecase) Delete(ctx context.Context, userID, boardID string) error {
	if _, err := u.ownership.BoardFor(ctx, userID, boardID); err != nil {
		return err
	}
	if u.cascade {
		return u.boards.DeleteCascade(ctx, boardID)
	}
	return u.boards.Delete(ctx, boardID)
}

func (u *boardUsecase) UploadBackground(ctx context.Context, userID string, file *storage.File) (*dto.BackgroundResponse, error) {
	if file == nil {
		return nil, ErrBackgroundRequired
	}
	_, contentType, err := storage.ImageContentType(file.Filename)
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	bgID := fmt.Sprintf("custom_%d", u.now().UnixMilli())
	url, err := u.uploader.Upload(ctx, "backgrounds/"+bgID, contentType, file.Body, file.Size)
	if err != nil {
		log.Printf("[Board] Background upload for user %s failed: %v", userID, err)
		return nil, ErrBackgroundUpload.Wrap(err)
	}

	return &dto.BackgroundResponse{BgID: bgID, URL: url}, nil
}
