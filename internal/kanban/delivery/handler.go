package delivery

import (
	"net/http"

	"taskpro-backend/internal/apperror"
	authdelivery "taskpro-backend/internal/auth/delivery"
	"taskpro-backend/internal/kanban/dto"
	"taskpro-backend/internal/kanban/usecase"

	"github.com/gin-gonic/gin"
)

var errInvalidBody = apperror.BadRequest("Invalid request body")

// KanbanHandler serves boards, columns and cards. Every route sits behind
// the auth middleware.
type KanbanHandler struct {
	boards        usecase.BoardUsecase
	columns       usecase.ColumnUsecase
	cards         usecase.CardUsecase
	maxUploadSize int64
}

func NewKanbanHandler(boards usecase.BoardUsecase, columns usecase.ColumnUsecase, cards usecase.CardUsecase, maxUploadSize int64) *KanbanHandler {
	return &KanbanHandler{
		boards:        boards,
		columns:       columns,
		cards:         cards,
		maxUploadSize: maxUploadSize,
	}
}

func userID(c *gin.Context) string {
	return c.GetString(authdelivery.UserIDKey)
}

// GetBoards lists the caller's boards, newest first
// GET /api/boards
func (h *KanbanHandler) GetBoards(c *gin.Context) {
	boards, err := h.boards.List(c.Request.Context(), userID(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

// POST /api/boards
func (h *KanbanHandler) CreateBoard(c *gin.Context) {
	var req dto.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	board, err := h.boards.Create(c.Request.Context(), userID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// PUT /api/boards/:boardId
func (h *KanbanHandler) UpdateBoard(c *gin.Context) {
	var req dto.UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	board, err := h.boards.Update(c.Request.Context(), userID(c), c.Param("boardId"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// DELETE /api/boards/:boardId
func (h *KanbanHandler) DeleteBoard(c *gin.Context) {
	if err := h.boards.Delete(c.Request.Context(), userID(c), c.Param("boardId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Board deleted"})
}

// UploadBackground stores a custom board background from the "image" field
// POST /api/boards/upload-bg
func (h *KanbanHandler) UploadBackground(c *gin.Context) {
	file, err := authdelivery.FormImage(c, "image", h.maxUploadSize)
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer file.Close()

	resp, err := h.boards.UploadBackground(c.Request.Context(), userID(c), file)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/boards/:boardId/columns
func (h *KanbanHandler) GetColumns(c *gin.Context) {
	columns, err := h.columns.List(c.Request.Context(), userID(c), c.Param("boardId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, columns)
}

// POST /api/boards/:boardId/columns
func (h *KanbanHandler) CreateColumn(c *gin.Context) {
	var req dto.ColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	column, err := h.columns.Create(c.Request.Context(), userID(c), c.Param("boardId"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

// PUT /api/columns/:columnId
func (h *KanbanHandler) UpdateColumn(c *gin.Context) {
	var req dto.ColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	column, err := h.columns.Update(c.Request.Context(), userID(c), c.Param("columnId"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// DeleteColumn removes the column and all of its cards
// DELETE /api/columns/:columnId
func (h *KanbanHandler) DeleteColumn(c *gin.Context) {
	if err := h.columns.Delete(c.Request.Context(), userID(c), c.Param("columnId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Column deleted"})
}

// GET /api/columns/:columnId/cards
func (h *KanbanHandler) GetCards(c *gin.Context) {
	cards, err := h.cards.List(c.Request.Context(), userID(c), c.Param("columnId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// POST /api/columns/:columnId/cards
func (h *KanbanHandler) CreateCard(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	card, err := h.cards.Create(c.Request.Context(), userID(c), c.Param("columnId"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

// PUT /api/cards/:cardId
func (h *KanbanHandler) UpdateCard(c *gin.Context) {
	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	card, err := h.cards.Update(c.Request.Context(), userID(c), c.Param("cardId"), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// DELETE /api/cards/:cardId
func (h *KanbanHandler) DeleteCard(c *gin.Context) {
	if err := h.cards.Delete(c.Request.Context(), userID(c), c.Param("cardId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Card deleted successfully"})
}

// MoveCard appends the card to the end of another column
// PATCH /api/cards/:cardId/move
func (h *KanbanHandler) MoveCard(c *gin.Context) {
	var req dto.MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	card, err := h.cards.Move(c.Request.Context(), userID(c), c.Param("cardId"), req.ColumnID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, card)
}

// SearchCards filters a board's cards
// GET /api/boards/:boardId/cards?q=&priority=
func (h *KanbanHandler) SearchCards(c *gin.Context) {
	var query dto.SearchCardsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(errInvalidBody.Wrap(err))
		return
	}

	cards, err := h.cards.Search(c.Request.Context(), userID(c), c.Param("boardId"), &query)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cards)
}
