package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageSize(t *testing.T) {
	for _, n := range []int{12, 24, 48} {
		size, err := ParsePageSize(n)
		require.NoError(t, err)
		assert.Equal(t, n, int(size))
	}
	for _, n := range []int{0, -12, 1, 13, 100} {
		_, err := ParsePageSize(n)
		if !errors.Is(err, ErrInvalidPageSize) {
			t.Errorf("ParsePageSize(%d) err = %v, want ErrInvalidPageSize", n, err)
		}
	}
	_, err := ParsePageSizeString("twelve")
	assert.ErrorIs(t, err, ErrInvalidPageSize)
	size, err := ParsePageSizeString(" 24 ")
	require.NoError(t, err)
	assert.Equal(t, PageSize24, size)
}

func TestQueryWith(t *testing.T) {
	q := DefaultQuery()

	q2, err := q.with(FilterText, "  laptop ")
	require.NoError(t, err)
	assert.Equal(t, "laptop", q2.Text)
	assert.Equal(t, "", q.Text, "receiver left untouched")

	q2, err = q.with(FilterSortField, "PRICE")
	require.NoError(t, err)
	assert.Equal(t, SortByPrice, q2.SortField)

	_, err = q.with(FilterSortField, "popularity")
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = q.with(FilterSortDirection, "up")
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = q.with(FilterKey("color"), "red")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestQueryParams(t *testing.T) {
	q := Query{Text: "mug", Category: "Home", SortField: SortByRating, SortDirection: Desc}
	p := q.Params(3)
	assert.Equal(t, "mug", p.Query)
	assert.Equal(t, "Home", p.Category)
	assert.Equal(t, "rating", p.SortBy)
	assert.Equal(t, "desc", p.SortDir)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 12, p.Size, "zero size falls back to default")
	assert.Equal(t, "rating-desc", q.SortValue())
}

func TestParseSortOption(t *testing.T) {
	opt, err := ParseSortOption("price-desc")
	require.NoError(t, err)
	assert.Equal(t, SortByPrice, opt.Field)
	assert.Equal(t, Desc, opt.Direction)

	_, err = ParseSortOption("rating-asc")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
