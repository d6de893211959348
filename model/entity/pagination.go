package entity

// Pagination is the `pagination` block of a product listing response.
type Pagination struct {
	CurrentPage   int   `json:"currentPage" mapstructure:"currentPage"`
	TotalPages    int   `json:"totalPages" mapstructure:"totalPages"`
	TotalElements int64 `json:"totalElements" mapstructure:"totalElements"`
	Size          int   `json:"size" mapstructure:"size"`
	HasNext       bool  `json:"hasNext" mapstructure:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious" mapstructure:"hasPrevious"`
}

// CanNext is derived from CurrentPage/TotalPages; the server's HasNext is kept
// verbatim but not consulted by the view.
func (p Pagination) CanNext() bool {
	return p.CurrentPage < p.TotalPages-1
}

// CanPrevious is derived like CanNext.
func (p Pagination) CanPrevious() bool {
	return p.CurrentPage > 0 && p.TotalPages > 0
}

// PageResult is one fetched page. It is replaced wholesale, never merged.
type PageResult struct {
	Items      []Product
	Pagination Pagination
}
