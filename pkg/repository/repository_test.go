package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/fmis/pkg/db/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID   int64 `gorm:"primaryKey;autoIncrement:false"`
	Name string
	Kind string
}

func newStore(t *testing.T) Repository[widget] {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&widget{}))
	return ProvideStore[widget](conn)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Create(ctx, &widget{ID: 1, Name: "a", Kind: "x"}))
	require.NoError(t, s.Create(ctx, &widget{ID: 2, Name: "b", Kind: "x"}))
	require.NoError(t, s.Create(ctx, &widget{ID: 3, Name: "c", Kind: "y"}))

	items, err := s.Find(ctx, &widget{Kind: "x"}, option.WithSortBy(option.SortBy{Column: "name", Direction: "desc"}))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].Name)

	got, err := s.FindByID(ctx, int64(3))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "c", got.Name)

	missing, err := s.FindOne(ctx, &widget{Name: "zzz"})
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.Update(ctx, int64(3), map[string]any{"name": "cc"}))
	got, err = s.FindByID(ctx, int64(3))
	require.NoError(t, err)
	assert.Equal(t, "cc", got.Name)

	count, err := s.Count(ctx, &widget{Kind: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
