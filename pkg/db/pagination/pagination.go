package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 250
)

var ErrInvalidPageToken = errors.New("invalid_page_token")

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size,default=20"`
}

// Limit clamps the requested page size.
func (p Pagination) Limit() int {
	switch {
	case p.PageSize <= 0:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	default:
		return p.PageSize
	}
}

type Cursor struct {
	ID string `json:"id,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(data Cursor) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeCursor parses a page token. An empty token yields a nil cursor.
func DecodeCursor(data string) (*Cursor, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return nil, ErrInvalidPageToken
	}

	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, ErrInvalidPageToken
	}

	return &cursor, nil
}

// BuildCursorPageInfo trims data to limit and reports whether more rows exist.
// Callers fetch limit+1 rows.
func BuildCursorPageInfo[T any](data []T, limit int, extractCursor func(T) string) ([]T, PageInfo) {
	if len(data) <= limit || limit <= 0 {
		return data, PageInfo{HasMore: false}
	}

	data = data[:limit]
	token, err := EncodeCursor(Cursor{ID: extractCursor(data[len(data)-1])})
	if err != nil {
		return data, PageInfo{HasMore: true}
	}
	return data, PageInfo{HasMore: true, NextPageToken: token}
}
