package option

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// QueryOption mutates a query before it is executed.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type queryOptionFunc func(db *gorm.DB) *gorm.DB

func (f queryOptionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// SortBy is a validated column/direction pair.
type SortBy struct {
	Column    string
	Direction string
}

// WithQuerySortBy validates the requested column against allowed and falls
// back to created_at descending.
func WithQuerySortBy(column, direction string, allowed map[string]bool) SortBy {
	column = strings.ToLower(strings.TrimSpace(column))
	if !allowed[column] {
		column = "created_at"
	}
	direction = strings.ToLower(strings.TrimSpace(direction))
	if direction != "asc" {
		direction = "desc"
	}
	return SortBy{Column: column, Direction: direction}
}

func WithSortBy(sort SortBy) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if sort.Column == "" {
			return db
		}
		return db.Order(fmt.Sprintf("%s %s, id %s", sort.Column, sort.Direction, sort.Direction))
	})
}

func WithLimit(limit int) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Limit(limit)
	})
}

// WithIDBefore restricts the query to rows older than the cursor id.
func WithIDBefore(id int64) QueryOption {
	return queryOptionFunc(func(db *gorm.DB) *gorm.DB {
		if id <= 0 {
			return db
		}
		return db.Where("id < ?", id)
	})
}
