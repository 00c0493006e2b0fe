package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPaginated[int](nil, 0, 1, 20)
	assert.NotNil(t, empty.Items)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: 0, PageSize: 500}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.NotNil(t, f.Filters)
	assert.Equal(t, 0, f.Offset())

	f.Page = 3
	assert.Equal(t, 200, f.Offset())
}

func TestListQuery_ToFilter(t *testing.T) {
	allowed := []string{"created_at", "name"}

	f, err := ListQuery{Search: "  kopi ", OrderBy: "name", OrderDir: "ASC"}.ToFilter(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "kopi", f.Search)
	assert.Equal(t, "name", f.OrderBy)
	assert.Equal(t, "asc", f.OrderDir)
	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultPageSize, f.PageSize)

	f, err = ListQuery{}.ToFilter(allowed, "created_at")
	require.NoError(t, err)
	assert.Equal(t, "created_at", f.OrderBy)
	assert.Equal(t, "desc", f.OrderDir)

	_, err = ListQuery{OrderBy: "password_hash"}.ToFilter(allowed, "created_at")
	assert.ErrorIs(t, err, ErrInvalidSortField)
}
