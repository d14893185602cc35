package client

import (
	"context"
	"net/http"
	"net/url"

	"taskpro-backend/internal/kanban/domain"
	"taskpro-backend/internal/kanban/dto"
)

func (c *Client) Boards(ctx context.Context) ([]domain.Board, error) {
	var boards []domain.Board
	if err := c.do(ctx, http.MethodGet, "/boards", nil, &boards); err != nil {
		return nil, err
	}
	c.cache.SetBoards(boards)
	return boards, nil
}

func (c *Client) CreateBoard(ctx context.Context, req dto.CreateBoardRequest) (*domain.Board, error) {
	var board domain.Board
	if err := c.do(ctx, http.MethodPost, "/boards", req, &board); err != nil {
		return nil, err
	}
	c.cache.PutBoard(board)
	return &board, nil
}

func (c *Client) UpdateBoard(ctx context.Context, boardID string, req dto.UpdateBoardRequest) (*domain.Board, error) {
	var board domain.Board
	if err := c.do(ctx, http.MethodPut, "/boards/"+url.PathEscape(boardID), req, &board); err != nil {
		return nil, err
	}
	c.cache.PutBoard(board)
	return &board, nil
}

func (c *Client) DeleteBoard(ctx context.Context, boardID string) error {
	if err := c.do(ctx, http.MethodDelete, "/boards/"+url.PathEscape(boardID), nil, nil); err != nil {
		return err
	}
	c.cache.RemoveBoard(boardID)
	return nil
}

func (c *Client) Columns(ctx context.Context, boardID string) ([]domain.Column, error) {
	var columns []domain.Column
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(boardID)+"/columns", nil, &columns); err != nil {
		return nil, err
	}
	c.cache.SetColumns(boardID, columns)
	return columns, nil
}

func (c *Client) CreateColumn(ctx context.Context, boardID, title string) (*domain.Column, error) {
	var column domain.Column
	path := "/boards/" + url.PathEscape(boardID) + "/columns"
	if err := c.do(ctx, http.MethodPost, path, dto.ColumnRequest{Title: title}, &column); err != nil {
		return nil, err
	}
	c.cache.PutColumn(column)
	return &column, nil
}

func (c *Client) UpdateColumn(ctx context.Context, columnID, title string) (*domain.Column, error) {
	var column domain.Column
	if err := c.do(ctx, http.MethodPut, "/columns/"+url.PathEscape(columnID), dto.ColumnRequest{Title: title}, &column); err != nil {
		return nil, err
	}
	c.cache.PutColumn(column)
	return &column, nil
}

func (c *Client) DeleteColumn(ctx context.Context, columnID string) error {
	if err := c.do(ctx, http.MethodDelete, "/columns/"+url.PathEscape(columnID), nil, nil); err != nil {
		return err
	}
	c.cache.RemoveColumn(columnID)
	return nil
}

func (c *Client) Cards(ctx context.Context, columnID string) ([]domain.Card, error) {
	var cards []domain.Card
	if err := c.do(ctx, http.MethodGet, "/columns/"+url.PathEscape(columnID)+"/cards", nil, &cards); err != nil {
		return nil, err
	}
	c.cache.SetCards(columnID, cards)
	return cards, nil
}

func (c *Client) CreateCard(ctx context.Context, columnID string, req dto.CreateCardRequest) (*domain.Card, error) {
	var card domain.Card
	if err := c.do(ctx, http.MethodPost, "/columns/"+url.PathEscape(columnID)+"/cards", req, &card); err != nil {
		return nil, err
	}
	c.cache.PutCard(card)
	return &card, nil
}

func (c *Client) UpdateCard(ctx context.Context, cardID string, req dto.UpdateCardRequest) (*domain.Card, error) {
	var card domain.Card
	if err := c.do(ctx, http.MethodPut, "/cards/"+url.PathEscape(cardID), req, &card); err != nil {
		return nil, err
	}
	c.cache.PutCard(card)
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, cardID string) error {
	if err := c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(cardID), nil, nil); err != nil {
		return err
	}
	c.cache.RemoveCard(cardID)
	return nil
}

// MoveCard appends the card to columnID and re-files it in the cache.
func (c *Client) MoveCard(ctx context.Context, cardID, columnID string) (*domain.Card, error) {
	var card domain.Card
	path := "/cards/" + url.PathEscape(cardID) + "/move"
	if err := c.do(ctx, http.MethodPatch, path, dto.MoveCardRequest{ColumnID: columnID}, &card); err != nil {
		return nil, err
	}
	c.cache.PutCard(card)
	return &card, nil
}

// SearchCards does not touch the cache; results are a filtered view.
func (c *Client) SearchCards(ctx context.Context, boardID, query, priority string) ([]domain.Card, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if priority != "" {
		params.Set("priority", priority)
	}
	path := "/boards/" + url.PathEscape(boardID) + "/cards"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var cards []domain.Card
	if err := c.do(ctx, http.MethodGet, path, nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
