package html

import (
	"fmt"
	"html/template"

	"storefront.GO/core/notify"
	"storefront.GO/html/parts"
	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
)

// Card is a product prepared for display.
type Card struct {
	ID          int64
	Name        string
	Description string
	Price       string
	Rating      string
	Stars       string
	ReviewCount int
	Stock       int
	Category    string
	Brand       string
	ImageURL    string
	Badge       string
	OutOfStock  bool
	LowStock    bool
}

func NewCard(p entity.Product) Card {
	return Card{
		ID:          p.ID,
		Name:        p.Name,
		Description: Truncate(p.Description, DescriptionRunes),
		Price:       FormatPrice(p.Price),
		Rating:      FormatRating(p.Rating),
		Stars:       Stars(p.Rating).String(),
		ReviewCount: p.ReviewCount,
		Stock:       p.Stock,
		Category:    p.Category,
		Brand:       p.Brand,
		ImageURL:    ImageURL(p.ImageURL),
		Badge:       StockBadge(p),
		OutOfStock:  !p.InStock(),
		LowStock:    p.LowStock(),
	}
}

// PageData feeds catalog.html.
type PageData struct {
	Title       string
	AppName     string
	CriticalCSS template.CSS
	Query       catalog.Query
	SortValue   string
	PageSize    int
	Categories  []string
	Brands      []string
	SortOptions []catalog.SortOption
	PageSizes   []int
	Cards       []Card
	Pagination  catalog.Window
	Summary     string
	Error       string
	Loading     bool
	Empty       bool
	CartCount   int
	Toasts      []notify.Toast
}

func NewPageData(appName string, snap catalog.Snapshot, toasts []notify.Toast) PageData {
	sizes := make([]int, len(catalog.PageSizes))
	for i, s := range catalog.PageSizes {
		sizes[i] = int(s)
	}
	cards := make([]Card, len(snap.Result.Items))
	for i, p := range snap.Result.Items {
		cards[i] = NewCard(p)
	}
	return PageData{
		Title:       "Products - " + appName,
		AppName:     appName,
		CriticalCSS: template.CSS(parts.CriticalCSS()),
		Query:       snap.Query,
		SortValue:   snap.Query.SortValue(),
		PageSize:    int(snap.Query.PageSize),
		Categories:  snap.Categories,
		Brands:      snap.Brands,
		SortOptions: catalog.SortOptions,
		PageSizes:   sizes,
		Cards:       cards,
		Pagination:  snap.Window,
		Summary:     Summary(snap.Result.Pagination),
		Error:       snap.Error,
		Loading:     snap.Status == catalog.Loading,
		Empty:       snap.Status == catalog.Success && len(cards) == 0,
		CartCount:   snap.CartCount,
		Toasts:      toasts,
	}
}

// Summary is the line above the grid: "58 products, page 1 of 5".
func Summary(p entity.Pagination) string {
	if p.TotalPages == 0 {
		return fmt.Sprintf("%d products", p.TotalElements)
	}
	return fmt.Sprintf("%d products, page %d of %d", p.TotalElements, p.CurrentPage+1, p.TotalPages)
}
