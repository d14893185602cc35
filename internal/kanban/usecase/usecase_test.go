package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"taskpro-backend/internal/apperror"
	"taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/dto"
	"taskpro-backend/internal/kanban/repository"
	"taskpro-backend/pkg/database"
	"taskpro-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUploader struct {
	key string
	err error
}

func (s *stubUploader) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	_, _ = io.Copy(io.Discard, body)
	s.key = key
	return "https://cdn.test/" + key, nil
}

type env struct {
	db       *gorm.DB
	boards   BoardUsecase
	columns  ColumnUsecase
	cards    CardUsecase
	cardRepo repository.CardRepository
	colRepo  repository.ColumnRepository
	uploader *stubUploader
	now      time.Time
}

func newEnv(t *testing.T, cascade bool) *env {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Models()...))

	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	cardRepo := repository.NewCardRepository(db)
	ownership := NewOwnership(boardRepo, columnRepo, cardRepo)

	e := &env{
		db:       db,
		cardRepo: cardRepo,
		colRepo:  columnRepo,
		uploader: &stubUploader{},
		now:      time.Date(2025, 3, 14, 15, 30, 0, 0, time.Local),
	}
	e.boards = NewBoardUsecase(boardRepo, ownership, e.uploader, cascade)
	e.columns = NewColumnUsecase(columnRepo, ownership)
	e.cards = NewCardUsecase(cardRepo, ownership, func() time.Time { return e.now })
	return e
}

func (e *env) board(t *testing.T, owner string) *domain.Board {
	t.Helper()
	b, err := e.boards.Create(context.Background(), owner, &dto.CreateBoardRequest{Title: "Project", Icon: "icon-1", Background: "bg-2"})
	require.NoError(t, err)
	return b
}

func (e *env) column(t *testing.T, owner, boardID, title string) *domain.Column {
	t.Helper()
	c, err := e.columns.Create(context.Background(), owner, boardID, &dto.ColumnRequest{Title: title})
	require.NoError(t, err)
	return c
}

func (e *env) card(t *testing.T, owner, columnID, title string) *domain.Card {
	t.Helper()
	c, err := e.cards.Create(context.Background(), owner, columnID, &dto.CreateCardRequest{Title: title, Description: "desc"})
	require.NoError(t, err)
	return c
}

func status(err error) int {
	return apperror.StatusOf(err)
}

func TestBoardCRUD(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	_, err := e.boards.Create(ctx, "u1", &dto.CreateBoardRequest{Title: "x", Icon: "", Background: "b"})
	assert.ErrorIs(t, err, ErrBoardFieldsRequired)

	first := e.board(t, "u1")
	assert.Equal(t, "u1", first.CreatedBy)
	assert.False(t, first.IsFavorite)
	e.board(t, "u2")

	fav := true
	title := " Renamed "
	updated, err := e.boards.Update(ctx, "u1", first.ID, &dto.UpdateBoardRequest{Title: &title, IsFavorite: &fav})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, "icon-1", updated.Icon)

	empty := "  "
	_, err = e.boards.Update(ctx, "u1", first.ID, &dto.UpdateBoardRequest{Icon: &empty})
	assert.ErrorIs(t, err, ErrBoardFieldEmpty)

	list, err := e.boards.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)
}

func TestOwnership_ForeignAndMissing(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	b := e.board(t, "owner")
	col := e.column(t, "owner", b.ID, "Todo")
	card := e.card(t, "owner", col.ID, "Task")
	title := "hijack"

	tests := []struct {
		name string
		call func(user string, ids ...string) error
		id   string
	}{
		{"update board", func(user string, ids ...string) error {
			_, err := e.boards.Update(ctx, user, ids[0], &dto.UpdateBoardRequest{Title: &title})
			return err
		}, b.ID},
		{"delete board", func(user string, ids ...string) error { return e.boards.Delete(ctx, user, ids[0]) }, b.ID},
		{"list columns", func(user string, ids ...string) error {
			_, err := e.columns.List(ctx, user, ids[0])
			return err
		}, b.ID},
		{"update column", func(user string, ids ...string) error {
			_, err := e.columns.Update(ctx, user, ids[0], &dto.ColumnRequest{Title: title})
			return err
		}, col.ID},
		{"delete column", func(user string, ids ...string) error { return e.columns.Delete(ctx, user, ids[0]) }, col.ID},
		{"update card", func(user string, ids ...string) error {
			_, err := e.cards.Update(ctx, user, ids[0], &dto.UpdateCardRequest{Title: &title})
			return err
		}, card.ID},
		{"delete card", func(user string, ids ...string) error { return e.cards.Delete(ctx, user, ids[0]) }, card.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 403, status(tt.call("intruder", tt.id)))
			assert.Equal(t, 404, status(tt.call("intruder", "does-not-exist")))
		})
	}

	// nothing was changed by the rejected calls
	still, err := e.cards.List(ctx, "owner", col.ID)
	require.NoError(t, err)
	require.Len(t, still, 1)
	assert.Equal(t, "Task", still[0].Title)
}

func TestOwnership_UsesColumnNotDenormalizedBoard(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	mine := e.board(t, "attacker")
	theirs := e.board(t, "victim")
	col := e.column(t, "victim", theirs.ID, "Todo")
	card := e.card(t, "victim", col.ID, "secret")

	// a stale denormalized board id must not grant access
	require.NoError(t, e.db.Model(&domain.Card{}).Where("id = ?", card.ID).Update("board_id", mine.ID).Error)

	err := e.cards.Delete(ctx, "attacker", card.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOwnership_MissingAncestorIsBadRequest(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	b := e.board(t, "u1")
	col := e.column(t, "u1", b.ID, "Todo")
	card := e.card(t, "u1", col.ID, "Task")

	require.NoError(t, e.db.Delete(&domain.Board{}, "id = ?", b.ID).Error)
	_, err := e.columns.Update(ctx, "u1", col.ID, &dto.ColumnRequest{Title: "x"})
	assert.ErrorIs(t, err, ErrBoardMissing)
	assert.Equal(t, 400, status(err))

	require.NoError(t, e.db.Delete(&domain.Column{}, "id = ?", col.ID).Error)
	err = e.cards.Delete(ctx, "u1", card.ID)
	assert.ErrorIs(t, err, ErrColumnMissing)
	assert.Equal(t, 400, status(err))
}

func TestCreateCards_OrderedAndListed(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	col := e.column(t, "u1", e.board(t, "u1").ID, "Todo")

	for i, title := range []string{"one", "two", "three", "four", "five"} {
		c := e.card(t, "u1", col.ID, title)
		assert.Equal(t, i, c.Order)
		assert.Equal(t, domain.PriorityWithout, c.Priority)
		assert.Equal(t, col.BoardID, c.BoardID)
	}

	cards, err := e.cards.List(ctx, "u1", col.ID)
	require.NoError(t, err)
	require.Len(t, cards, 5)
	for i := 1; i < len(cards); i++ {
		assert.Less(t, cards[i-1].Order, cards[i].Order)
	}
}

func TestCreateCard_Validation(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	col := e.column(t, "u1", e.board(t, "u1").ID, "Todo")

	tests := []struct {
		name string
		req  dto.CreateCardRequest
		want error
	}{
		{"no title", dto.CreateCardRequest{Title: " ", Description: "d"}, ErrCardTitleRequired},
		{"no description", dto.CreateCardRequest{Title: "t"}, ErrCardDescriptionRequired},
		{"bad priority", dto.CreateCardRequest{Title: "t", Description: "d", Priority: "Urgent"}, ErrInvalidPriority},
		{"bad deadline", dto.CreateCardRequest{Title: "t", Description: "d", Deadline: "next week"}, ErrInvalidDeadline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.cards.Create(ctx, "u1", col.ID, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeadline_DayBoundary(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	col := e.column(t, "u1", e.board(t, "u1").ID, "Todo")

	yesterday := e.now.AddDate(0, 0, -1).Format(dateLayout)
	today := e.now.Format(dateLayout)
	earlierToday := time.Date(2025, 3, 14, 0, 5, 0, 0, time.Local).Format(time.RFC3339)

	_, err := e.cards.Create(ctx, "u1", col.ID, &dto.CreateCardRequest{Title: "t", Description: "d", Deadline: yesterday})
	assert.ErrorIs(t, err, ErrPastDeadline)
	assert.Equal(t, 400, status(err))

	card, err := e.cards.Create(ctx, "u1", col.ID, &dto.CreateCardRequest{Title: "t", Description: "d", Deadline: today, Priority: "High"})
	require.NoError(t, err)
	require.NotNil(t, card.Deadline)
	assert.Equal(t, today, card.Deadline.Format(dateLayout))

	// an instant already past but on the current day is still accepted
	_, err = e.cards.Create(ctx, "u1", col.ID, &dto.CreateCardRequest{Title: "t", Description: "d", Deadline: earlierToday})
	assert.NoError(t, err)

	past := yesterday
	_, err = e.cards.Update(ctx, "u1", card.ID, &dto.UpdateCardRequest{Deadline: dto.NullableString{Set: true, Value: &past}})
	assert.ErrorIs(t, err, ErrPastDeadline)
}

func TestUpdateCard(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	col := e.column(t, "u1", e.board(t, "u1").ID, "Todo")
	tomorrow := e.now.AddDate(0, 0, 1).Format(dateLayout)
	card, err := e.cards.Create(ctx, "u1", col.ID, &dto.CreateCardRequest{Title: "t", Description: "d", Deadline: tomorrow})
	require.NoError(t, err)
	require.NoError(t, e.cardRepo.MarkReminderSent(ctx, card.ID))

	title, prio := "  New title ", "Medium"
	updated, err := e.cards.Update(ctx, "u1", card.ID, &dto.UpdateCardRequest{Title: &title, Priority: &prio})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, domain.PriorityMedium, updated.Priority)
	assert.NotNil(t, updated.Deadline)
	assert.True(t, updated.ReminderSent)

	updated, err = e.cards.Update(ctx, "u1", card.ID, &dto.UpdateCardRequest{Deadline: dto.NullableString{Set: true}})
	require.NoError(t, err)
	assert.Nil(t, updated.Deadline)
	assert.False(t, updated.ReminderSent)

	blank := ""
	_, err = e.cards.Update(ctx, "u1", card.ID, &dto.UpdateCardRequest{Description: &blank})
	assert.ErrorIs(t, err, ErrCardDescriptionEmpty)
}

func TestMoveCard_AcrossBoards(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	x := e.board(t, "u1")
	y := e.board(t, "u1")
	a := e.column(t, "u1", x.ID, "A")
	b := e.column(t, "u1", y.ID, "B")

	a0 := e.card(t, "u1", a.ID, "a0")
	c := e.card(t, "u1", a.ID, "C")
	a2 := e.card(t, "u1", a.ID, "a2")
	e.card(t, "u1", b.ID, "b0")
	b1 := e.card(t, "u1", b.ID, "b1")

	moved, err := e.cards.Move(ctx, "u1", c.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.ColumnID)
	assert.Equal(t, y.ID, moved.BoardID)
	assert.Equal(t, b1.Order+1, moved.Order)

	remaining, err := e.cards.List(ctx, "u1", a.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, a0.Order, remaining[0].Order)
	assert.Equal(t, a2.Order, remaining[1].Order)
}

func TestMoveCard_Errors(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	mine := e.column(t, "u1", e.board(t, "u1").ID, "Mine")
	theirs := e.column(t, "u2", e.board(t, "u2").ID, "Theirs")
	card := e.card(t, "u1", mine.ID, "c")

	_, err := e.cards.Move(ctx, "u1", card.ID, "")
	assert.ErrorIs(t, err, ErrTargetColumnRequired)

	_, err = e.cards.Move(ctx, "u1", card.ID, "missing")
	assert.ErrorIs(t, err, ErrTargetColumnNotFound)

	_, err = e.cards.Move(ctx, "u1", card.ID, theirs.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = e.cards.Move(ctx, "u2", card.ID, theirs.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = e.cards.Move(ctx, "u1", "missing", mine.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestDeleteColumn_CascadesCards(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	b := e.board(t, "u1")
	col := e.column(t, "u1", b.ID, "Todo")
	e.card(t, "u1", col.ID, "x")
	e.card(t, "u1", col.ID, "y")

	require.NoError(t, e.columns.Delete(ctx, "u1", col.ID))

	var n int64
	require.NoError(t, e.db.Model(&domain.Card{}).Where("column_id = ?", col.ID).Count(&n).Error)
	assert.Zero(t, n)

	cols, err := e.columns.List(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.Empty(t, cols)
}

// Without the cascade policy a deleted board leaves its columns and cards
// behind. This pins the current behaviour; see BOARD_DELETE_CASCADE.
func TestDeleteBoard_DefaultLeavesChildren(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	b := e.board(t, "u1")
	col := e.column(t, "u1", b.ID, "Todo")
	card := e.card(t, "u1", col.ID, "x")

	require.NoError(t, e.boards.Delete(ctx, "u1", b.ID))

	orphanCol, err := e.colRepo.FindByID(ctx, col.ID)
	require.NoError(t, err)
	assert.NotNil(t, orphanCol)
	orphanCard, err := e.cardRepo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.NotNil(t, orphanCard)

	// the orphans are unreachable through the API
	_, err = e.cards.List(ctx, "u1", col.ID)
	assert.ErrorIs(t, err, ErrBoardMissing)
}

func TestDeleteBoard_Cascade(t *testing.T) {
	e := newEnv(t, true)
	ctx := context.Background()
	b := e.board(t, "u1")
	col := e.column(t, "u1", b.ID, "Todo")
	card := e.card(t, "u1", col.ID, "x")

	require.NoError(t, e.boards.Delete(ctx, "u1", b.ID))

	gone, err := e.colRepo.FindByID(ctx, col.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	goneCard, err := e.cardRepo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Nil(t, goneCard)
}

func TestSearch(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	b := e.board(t, "u1")
	todo := e.column(t, "u1", b.ID, "Todo")
	done := e.column(t, "u1", b.ID, "Done")

	_, err := e.cards.Create(ctx, "u1", done.ID, &dto.CreateCardRequest{Title: "Write release notes", Description: "for v2", Priority: "High"})
	require.NoError(t, err)
	_, err = e.cards.Create(ctx, "u1", todo.ID, &dto.CreateCardRequest{Title: "Fix login", Description: "release blocker", Priority: "Low"})
	require.NoError(t, err)
	_, err = e.cards.Create(ctx, "u1", todo.ID, &dto.CreateCardRequest{Title: "Buy milk", Description: "groceries"})
	require.NoError(t, err)

	found, err := e.cards.Search(ctx, "u1", b.ID, &dto.SearchCardsQuery{Q: "relase"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Fix login", found[0].Title)
	assert.Equal(t, "Write release notes", found[1].Title)

	found, err = e.cards.Search(ctx, "u1", b.ID, &dto.SearchCardsQuery{Q: "release", Priority: "High"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Write release notes", found[0].Title)

	all, err := e.cards.Search(ctx, "u1", b.ID, &dto.SearchCardsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = e.cards.Search(ctx, "u1", b.ID, &dto.SearchCardsQuery{Priority: "Urgent"})
	assert.ErrorIs(t, err, ErrInvalidPriority)

	_, err = e.cards.Search(ctx, "u2", b.ID, &dto.SearchCardsQuery{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUploadBackground(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	_, err := e.boards.UploadBackground(ctx, "u1", nil)
	assert.ErrorIs(t, err, ErrBackgroundRequired)

	_, err = e.boards.UploadBackground(ctx, "u1", &storage.File{Filename: "x.gif", Body: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	resp, err := e.boards.UploadBackground(ctx, "u1", &storage.File{Filename: "sunset.JPG", Size: 3, Body: strings.NewReader("jpg")})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.BgID, "custom_"))
	assert.Equal(t, "backgrounds/"+resp.BgID, e.uploader.key)
	assert.Equal(t, "https://cdn.test/backgrounds/"+resp.BgID, resp.URL)

	e.uploader.err = errors.New("denied")
	_, err = e.boards.UploadBackground(ctx, "u1", &storage.File{Filename: "a.png", Body: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrBackgroundUpload)
	assert.Equal(t, 500, status(err))
}

func TestParseDeadline(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)

	d, err := parseDeadline("2025-12-31", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *d)

	_, err = parseDeadline("2025-12-30", now)
	assert.ErrorIs(t, err, ErrPastDeadline)

	_, err = parseDeadline("2026-01-01T00:00:00Z", now)
	assert.NoError(t, err)

	assert.Equal(t, time.Date(2025, 12, 31, 23, 59, 59, 999999999, time.UTC), EndOfDay(now))
}
