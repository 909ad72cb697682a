package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "1234"})
	require.NoError(t, err)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "1234", cursor.ID)
}

func TestDecodeCursorEmptyAndInvalid(t *testing.T) {
	cursor, err := DecodeCursor("  ")
	require.NoError(t, err)
	assert.Nil(t, cursor)

	_, err = DecodeCursor("%%%")
	assert.ErrorIs(t, err, ErrInvalidPageToken)
}

func TestBuildCursorPageInfo(t *testing.T) {
	rows := []string{"5", "4", "3"}

	page, info := BuildCursorPageInfo(rows, 2, func(s string) string { return s })
	assert.Equal(t, []string{"5", "4"}, page)
	assert.True(t, info.HasMore)

	cursor, err := DecodeCursor(info.NextPageToken)
	require.NoError(t, err)
	assert.Equal(t, "4", cursor.ID)

	page, info = BuildCursorPageInfo(rows, 3, func(s string) string { return s })
	assert.Len(t, page, 3)
	assert.False(t, info.HasMore)
}

func TestLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Pagination{}.Limit())
	assert.Equal(t, MaxPageSize, Pagination{PageSize: 1000}.Limit())
	assert.Equal(t, 7, Pagination{PageSize: 7}.Limit())
}
