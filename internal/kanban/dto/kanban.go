package dto

import (
	"bytes"
	"encoding/json"
)

type CreateBoardRequest struct {
	Title      string `json:"title"`
	Icon       string `json:"icon"`
	Background string `json:"background"`
}

// UpdateBoardRequest is a partial update; nil fields are left unchanged.
type UpdateBoardRequest struct {
	Title      *string `json:"title,omitempty"`
	Icon       *string `json:"icon,omitempty"`
	Background *string `json:"background,omitempty"`
	IsFavorite *bool   `json:"isFavorite,omitempty"`
}

type ColumnRequest struct {
	Title string `json:"title"`
}

type CreateCardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
}

type UpdateCardRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Priority    *string        `json:"priority,omitempty"`
	Deadline    NullableString `json:"deadline,omitzero"`
}

type MoveCardRequest struct {
	ColumnID string `json:"columnId"`
}

type SearchCardsQuery struct {
	Q        string `form:"q"`
	Priority string `form:"priority"`
}

// NullableString tells an absent field apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func StringValue(s string) NullableString {
	return NullableString{Set: true, Value: &s}
}

func Null() NullableString {
	return NullableString{Set: true}
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// Cleared reports whether the field was sent as null or "".
func (n NullableString) Cleared() bool {
	return n.Set && (n.Value == nil || *n.Value == "")
}

type BackgroundResponse struct {
	BgID string `json:"bgId"`
	URL  string `json:"url"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
