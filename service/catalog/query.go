package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"storefront.GO/api"
)

var (
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrDisposed        = errors.New("catalog view disposed")
)

type SortField string

const (
	SortByName   SortField = "name"
	SortByPrice  SortField = "price"
	SortByRating SortField = "rating"
)

func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByName, SortByPrice, SortByRating:
		return f, nil
	}
	return "", fmt.Errorf("%w: sort field %q", ErrInvalidFilter, s)
}

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, error) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("%w: sort direction %q", ErrInvalidFilter, s)
}

// PageSize is one of the offered page sizes. Anything else is rejected before it
// reaches the query.
type PageSize int

const (
	PageSize12 PageSize = 12
	PageSize24 PageSize = 24
	PageSize48 PageSize = 48

	DefaultPageSize = PageSize12
)

// PageSizes lists the valid sizes in display order.
var PageSizes = []PageSize{PageSize12, PageSize24, PageSize48}

func ParsePageSize(n int) (PageSize, error) {
	for _, s := range PageSizes {
		if int(s) == n {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
}

// ParsePageSizeString is ParsePageSize for form and CLI input.
func ParsePageSizeString(s string) (PageSize, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPageSize, s)
	}
	return ParsePageSize(n)
}

// SortOption is a combined field/direction choice as offered in the sort menu.
type SortOption struct {
	Value     string
	Label     string
	Field     SortField
	Direction SortDirection
}

var SortOptions = []SortOption{
	{"name-asc", "Name (A-Z)", SortByName, Asc},
	{"name-desc", "Name (Z-A)", SortByName, Desc},
	{"price-asc", "Price (low to high)", SortByPrice, Asc},
	{"price-desc", "Price (high to low)", SortByPrice, Desc},
	{"rating-desc", "Rating (best first)", SortByRating, Desc},
}

func ParseSortOption(value string) (SortOption, error) {
	for _, o := range SortOptions {
		if o.Value == value {
			return o, nil
		}
	}
	return SortOption{}, fmt.Errorf("%w: sort option %q", ErrInvalidFilter, value)
}

// FilterKey names a single Query field for SetFilter.
type FilterKey string

const (
	FilterText          FilterKey = "text"
	FilterCategory      FilterKey = "category"
	FilterBrand         FilterKey = "brand"
	FilterSortField     FilterKey = "sortField"
	FilterSortDirection FilterKey = "sortDirection"
)

// Query is the filter/sort/size part of a catalog request. The page travels
// separately so every fetch names it explicitly.
type Query struct {
	Text          string
	Category      string
	Brand         string
	SortField     SortField
	SortDirection SortDirection
	PageSize      PageSize
}

func DefaultQuery() Query {
	return Query{SortField: SortByName, SortDirection: Asc, PageSize: DefaultPageSize}
}

// SortValue is the combined option value ("price-asc") for the current sort.
func (q Query) SortValue() string {
	return string(q.SortField) + "-" + string(q.SortDirection)
}

// with returns a copy of q with key set to value.
func (q Query) with(key FilterKey, value string) (Query, error) {
	switch key {
	case FilterText:
		q.Text = strings.TrimSpace(value)
	case FilterCategory:
		q.Category = value
	case FilterBrand:
		q.Brand = value
	case FilterSortField:
		f, err := ParseSortField(value)
		if err != nil {
			return q, err
		}
		q.SortField = f
	case FilterSortDirection:
		d, err := ParseSortDirection(value)
		if err != nil {
			return q, err
		}
		q.SortDirection = d
	default:
		return q, fmt.Errorf("%w: unknown key %q", ErrInvalidFilter, key)
	}
	return q, nil
}

// Params serialises q and page for the listing endpoint.
func (q Query) Params(page int) api.ListParams {
	size := q.PageSize
	if size == 0 {
		size = DefaultPageSize
	}
	return api.ListParams{
		Query:    q.Text,
		Category: q.Category,
		Brand:    q.Brand,
		SortBy:   string(q.SortField),
		SortDir:  string(q.SortDirection),
		Page:     page,
		Size:     int(size),
	}
}
