package html

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
)

// RenderText writes the catalog view for a terminal.
func RenderText(w io.Writer, snap catalog.Snapshot) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Cart: %d\n", snap.CartCount)
	fmt.Fprintf(&b, "Search: %q  Category: %s  Brand: %s  Sort: %s  Size: %d\n",
		snap.Query.Text, orAll(snap.Query.Category), orAll(snap.Query.Brand), snap.Query.SortValue(), snap.Query.PageSize)
	if snap.PendingText != snap.Query.Text {
		fmt.Fprintf(&b, "Typing: %q\n", snap.PendingText)
	}
	switch {
	case snap.Status == catalog.Loading:
		b.WriteString("Loading...\n")
	case snap.Error != "":
		fmt.Fprintf(&b, "! %s\n", snap.Error)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	if len(snap.Result.Items) == 0 {
		if snap.Status == catalog.Success {
			_, err := io.WriteString(w, "No products match\n")
			return err
		}
		return nil
	}
	if err := WriteProductTable(w, snap.Result.Items); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", Summary(snap.Result.Pagination), PaginationLine(snap.Window))
	return err
}

// WriteProductTable prints one row per product.
func WriteProductTable(w io.Writer, items []entity.Product) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tRATING\tCATEGORY\tSTOCK")
	for _, p := range items {
		stock := StockBadge(p)
		if stock == "" {
			stock = fmt.Sprintf("%d", p.Stock)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s %s (%d)\t%s\t%s\n",
			p.ID, Truncate(p.Name, 40), FormatPrice(p.Price), Stars(p.Rating), FormatRating(p.Rating), p.ReviewCount, p.Category, stock)
	}
	return tw.Flush()
}

// PaginationLine renders a window as "< prev  1 ... 4 [5] 6 ... 10  next >".
// Empty when there is no pagination control.
func PaginationLine(w catalog.Window) string {
	if !w.Visible {
		return ""
	}
	var parts []string
	if w.HasPrevious() {
		parts = append(parts, "< prev")
	}
	if w.ShowFirst {
		parts = append(parts, "1")
		if w.LeadingEllipsis {
			parts = append(parts, "...")
		}
	}
	for _, p := range w.Pages {
		if p == w.Current {
			parts = append(parts, fmt.Sprintf("[%d]", p+1))
		} else {
			parts = append(parts, fmt.Sprintf("%d", p+1))
		}
	}
	if w.ShowLast {
		if w.TrailingEllipsis {
			parts = append(parts, "...")
		}
		parts = append(parts, fmt.Sprintf("%d", w.Total))
	}
	if w.HasNext() {
		parts = append(parts, "next >")
	}
	return strings.Join(parts, " ")
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
