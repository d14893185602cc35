package client

import (
	"sort"
	"sync"

	"taskpro-backend/internal/kanban/domain"
)

// Cache holds boards, columns and cards normalized by id. Child id lists
// are kept in display order: columns and cards by order, boards newest first.
type Cache struct {
	mu sync.RWMutex

	boards     map[string]*domain.Board
	boardOrder []string

	columns        map[string]*domain.Column
	columnsByBoard map[string][]string

	cards         map[string]*domain.Card
	cardsByColumn map[string][]string
}

func NewCache() *Cache {
	c := &Cache{}
	c.Reset()
	return c
}

// Reset drops everything, as after a logout.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boards = make(map[string]*domain.Board)
	c.boardOrder = nil
	c.columns = make(map[string]*domain.Column)
	c.columnsByBoard = make(map[string][]string)
	c.cards = make(map[string]*domain.Card)
	c.cardsByColumn = make(map[string][]string)
}

func (c *Cache) SetBoards(boards []domain.Board) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(boards))
	c.boardOrder = make([]string, 0, len(boards))
	for i := range boards {
		b := boards[i]
		c.boards[b.ID] = &b
		c.boardOrder = append(c.boardOrder, b.ID)
		seen[b.ID] = true
	}
	for id := range c.boards {
		if !seen[id] {
			c.removeBoardLocked(id)
		}
	}
}

// PutBoard inserts a new board at the front or replaces an existing one in place.
func (c *Cache) PutBoard(board domain.Board) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.boards[board.ID]; !ok {
		c.boardOrder = append([]string{board.ID}, c.boardOrder...)
	}
	c.boards[board.ID] = &board
}

// RemoveBoard drops the board along with any cached columns and cards under it.
func (c *Cache) RemoveBoard(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeBoardLocked(id)
}

func (c *Cache) removeBoardLocked(id string) {
	delete(c.boards, id)
	c.boardOrder = without(c.boardOrder, id)
	for _, columnID := range c.columnsByBoard[id] {
		c.removeColumnLocked(columnID)
	}
	delete(c.columnsByBoard, id)
}

func (c *Cache) Board(id string) (domain.Board, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.boards[id]
	if !ok {
		return domain.Board{}, false
	}
	return *b, true
}

func (c *Cache) Boards() []domain.Board {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Board, 0, len(c.boardOrder))
	for _, id := range c.boardOrder {
		if b, ok := c.boards[id]; ok {
			out = append(out, *b)
		}
	}
	return out
}

// SetColumns replaces the cached column list of a board. A column that now
// belongs to boardID is taken out of its previous board's list.
func (c *Cache) SetColumns(boardID string, columns []domain.Column) {
	c.mu.Lock()
	defer c.mu.Unlock()

	incoming := make(map[string]bool, len(columns))
	for i := range columns {
		incoming[columns[i].ID] = true
	}
	for _, id := range c.columnsByBoard[boardID] {
		if col, ok := c.columns[id]; ok && !incoming[id] && col.BoardID == boardID {
			delete(c.columns, id)
		}
	}
	ids := make([]string, 0, len(columns))
	for i := range columns {
		col := columns[i]
		if prev, ok := c.columns[col.ID]; ok && prev.BoardID != boardID {
			c.columnsByBoard[prev.BoardID] = without(c.columnsByBoard[prev.BoardID], col.ID)
		}
		c.columns[col.ID] = &col
		ids = append(ids, col.ID)
	}
	c.columnsByBoard[boardID] = ids
	c.sortColumnsLocked(boardID)
}

func (c *Cache) PutColumn(column domain.Column) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.columns[column.ID]; !ok {
		c.columnsByBoard[column.BoardID] = append(c.columnsByBoard[column.BoardID], column.ID)
	}
	c.columns[column.ID] = &column
	c.sortColumnsLocked(column.BoardID)
}

// RemoveColumn drops the column and its cards, mirroring the server cascade.
func (c *Cache) RemoveColumn(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeColumnLocked(id)
}

func (c *Cache) removeColumnLocked(id string) {
	if col, ok := c.columns[id]; ok {
		c.columnsByBoard[col.BoardID] = without(c.columnsByBoard[col.BoardID], id)
		delete(c.columns, id)
	}
	for _, cardID := range c.cardsByColumn[id] {
		if card, ok := c.cards[cardID]; ok && card.ColumnID == id {
			delete(c.cards, cardID)
		}
	}
	delete(c.cardsByColumn, id)
}

func (c *Cache) Columns(boardID string) []domain.Column {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.columnsByBoard[boardID]
	out := make([]domain.Column, 0, len(ids))
	for _, id := range ids {
		if col, ok := c.columns[id]; ok {
			out = append(out, *col)
		}
	}
	return out
}

// SetCards replaces the cached card list of a column. A card fetched here
// that was cached under another column, because it was moved elsewhere, is
// taken out of that column's list.
func (c *Cache) SetCards(columnID string, cards []domain.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()

	incoming := make(map[string]bool, len(cards))
	for i := range cards {
		incoming[cards[i].ID] = true
	}
	for _, id := range c.cardsByColumn[columnID] {
		if card, ok := c.cards[id]; ok && !incoming[id] && card.ColumnID == columnID {
			delete(c.cards, id)
		}
	}
	ids := make([]string, 0, len(cards))
	for i := range cards {
		card := cards[i]
		if prev, ok := c.cards[card.ID]; ok && prev.ColumnID != columnID {
			c.cardsByColumn[prev.ColumnID] = without(c.cardsByColumn[prev.ColumnID], card.ID)
		}
		c.cards[card.ID] = &card
		ids = append(ids, card.ID)
	}
	c.cardsByColumn[columnID] = ids
	c.sortCardsLocked(columnID)
}

// PutCard stores a created, updated or moved card. A card whose column
// changed is taken out of its previous column's list.
func (c *Cache) PutCard(card domain.Card) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.cards[card.ID]; ok && prev.ColumnID != card.ColumnID {
		c.cardsByColumn[prev.ColumnID] = without(c.cardsByColumn[prev.ColumnID], card.ID)
	}
	if prev, ok := c.cards[card.ID]; !ok || prev.ColumnID != card.ColumnID {
		c.cardsByColumn[card.ColumnID] = append(c.cardsByColumn[card.ColumnID], card.ID)
	}
	c.cards[card.ID] = &card
	c.sortCardsLocked(card.ColumnID)
}

func (c *Cache) RemoveCard(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if card, ok := c.cards[id]; ok {
		c.cardsByColumn[card.ColumnID] = without(c.cardsByColumn[card.ColumnID], id)
		delete(c.cards, id)
	}
}

func (c *Cache) Card(id string) (domain.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	card, ok := c.cards[id]
	if !ok {
		return domain.Card{}, false
	}
	return *card, true
}

func (c *Cache) Cards(columnID string) []domain.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.cardsByColumn[columnID]
	out := make([]domain.Card, 0, len(ids))
	for _, id := range ids {
		if card, ok := c.cards[id]; ok {
			out = append(out, *card)
		}
	}
	return out
}

func (c *Cache) sortColumnsLocked(boardID string) {
	ids := c.columnsByBoard[boardID]
	sort.SliceStable(ids, func(i, j int) bool {
		return c.columns[ids[i]].Order < c.columns[ids[j]].Order
	})
}

func (c *Cache) sortCardsLocked(columnID string) {
	ids := c.cardsByColumn[columnID]
	sort.SliceStable(ids, func(i, j int) bool {
		return c.cards[ids[i]].Order < c.cards[ids[j]].Order
	})
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
