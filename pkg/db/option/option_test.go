package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithQuerySortBy(t *testing.T) {
	allowed := map[string]bool{"name": true, "created_at": true}

	assert.Equal(t, SortBy{Column: "name", Direction: "asc"}, WithQuerySortBy(" Name ", "ASC", allowed))
	assert.Equal(t, SortBy{Column: "created_at", Direction: "desc"}, WithQuerySortBy("password", "sideways", allowed))
}
