package html

import (
	"fmt"
	"math"
	"strings"

	"storefront.GO/model/entity"
)

const (
	PlaceholderImage   = "/images/placeholder.jpg"
	DescriptionRunes   = 60
	MaxStars           = 5
	currencySymbol     = "¥"
	descriptionPostfix = "..."
)

// FormatPrice renders an amount with two decimals and the shop currency.
func FormatPrice(m entity.Money) string {
	return currencySymbol + m.FloatString(2)
}

func FormatRating(r float64) string {
	return fmt.Sprintf("%.1f", r)
}

// StarSet splits a 0..5 rating into full, half and empty stars. A half star is
// shown for a fractional part of .5 or more.
type StarSet struct {
	Full, Half, Empty int
}

func Stars(rating float64) StarSet {
	if rating < 0 {
		rating = 0
	}
	if rating > MaxStars {
		rating = MaxStars
	}
	full := int(math.Floor(rating))
	half := 0
	if rating-float64(full) >= 0.5 {
		half = 1
	}
	return StarSet{Full: full, Half: half, Empty: MaxStars - full - half}
}

func (s StarSet) String() string {
	return strings.Repeat("★", s.Full) + strings.Repeat("½", s.Half) + strings.Repeat("☆", s.Empty)
}

// ImageURL resolves a product image reference to something a page can load.
func ImageURL(ref string) string {
	switch {
	case ref == "":
		return PlaceholderImage
	case strings.HasPrefix(ref, "http"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return ref
	default:
		return "/" + ref
	}
}

// Truncate shortens s to n runes followed by "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + descriptionPostfix
}

// StockBadge is the card badge text, empty for healthy stock.
func StockBadge(p entity.Product) string {
	switch {
	case !p.InStock():
		return "Out of stock"
	case p.LowStock():
		return fmt.Sprintf("Only %d left", p.Stock)
	}
	return ""
}
