package html

import (
	"bytes"
	"strings"
	"testing"

	"storefront.GO/model/entity"
	"storefront.GO/service/catalog"
)

func TestPaginationLine(t *testing.T) {
	tests := []struct {
		cur, total int
		want       string
	}{
		{0, 1, ""},
		{0, 5, "[1] 2 3 4 5 next >"},
		{4, 5, "< prev 1 2 3 4 [5]"},
		{5, 10, "< prev 1 ... 4 5 [6] 7 8 ... 10 next >"},
	}
	for _, tt := range tests {
		got := PaginationLine(catalog.ComputeWindow(tt.cur, tt.total, 5))
		if got != tt.want {
			t.Errorf("PaginationLine(%d, %d) = %q, want %q", tt.cur, tt.total, got, tt.want)
		}
	}
}

func TestRenderText(t *testing.T) {
	snap := catalog.Snapshot{
		Query:     catalog.DefaultQuery(),
		Status:    catalog.Failed,
		Error:     "server error",
		CartCount: 3,
		Result: entity.PageResult{
			Items: []entity.Product{
				{ID: 1, Name: "Mug", Price: entity.MustMoney("12.5"), Rating: 4.5, Stock: 2, Category: "Home"},
			},
			Pagination: entity.Pagination{CurrentPage: 0, TotalPages: 2, TotalElements: 13, Size: 12},
		},
		Window: catalog.ComputeWindow(0, 2, 5),
	}
	var buf bytes.Buffer
	if err := RenderText(&buf, snap); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Cart: 3", "! server error", "¥12.50", "★★★★½ 4.5", "Only 2 left", "13 products, page 1 of 2", "[1] 2 next >"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderText output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderText_Empty(t *testing.T) {
	var buf bytes.Buffer
	_ = RenderText(&buf, catalog.Snapshot{Query: catalog.DefaultQuery(), Status: catalog.Success})
	if !strings.Contains(buf.String(), "No products match") {
		t.Errorf("RenderText(empty) = %q", buf.String())
	}
}
