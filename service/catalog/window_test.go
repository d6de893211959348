package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeWindow(t *testing.T) {
	tests := []struct {
		name                       string
		cur, total, max            int
		pages                      []int
		first, leading, last, tail bool
	}{
		{"first of five", 0, 5, 5, []int{0, 1, 2, 3, 4}, false, false, false, false},
		{"middle of ten", 5, 10, 5, []int{3, 4, 5, 6, 7}, true, true, true, true},
		{"start one away", 3, 10, 5, []int{1, 2, 3, 4, 5}, true, false, true, true},
		{"trailing one away", 6, 10, 5, []int{4, 5, 6, 7, 8}, true, true, true, false},
		{"last of ten", 9, 10, 5, []int{5, 6, 7, 8, 9}, true, true, false, false},
		{"fewer pages than links", 1, 3, 5, []int{0, 1, 2}, false, false, false, false},
		{"default max", 0, 20, 0, []int{0, 1, 2, 3, 4}, false, false, true, true},
		{"even max", 4, 10, 4, []int{2, 3, 4, 5}, true, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComputeWindow(tt.cur, tt.total, tt.max)
			assert.True(t, w.Visible)
			assert.Equal(t, tt.pages, w.Pages)
			assert.Equal(t, tt.first, w.ShowFirst, "ShowFirst")
			assert.Equal(t, tt.leading, w.LeadingEllipsis, "LeadingEllipsis")
			assert.Equal(t, tt.last, w.ShowLast, "ShowLast")
			assert.Equal(t, tt.tail, w.TrailingEllipsis, "TrailingEllipsis")
		})
	}
}

func TestComputeWindow_NoControlForSinglePage(t *testing.T) {
	for _, total := range []int{0, 1} {
		w := ComputeWindow(0, total, 5)
		if w.Visible {
			t.Errorf("ComputeWindow(0, %d).Visible = true, want false", total)
		}
		if len(w.Pages) != 0 {
			t.Errorf("ComputeWindow(0, %d).Pages = %v, want none", total, w.Pages)
		}
	}
}

func TestComputeWindow_SizeAndContainsCurrent(t *testing.T) {
	for max := 1; max <= 7; max++ {
		for total := 2; total <= 30; total++ {
			for cur := 0; cur < total; cur++ {
				w := ComputeWindow(cur, total, max)
				want := max
				if total < want {
					want = total
				}
				if len(w.Pages) != want {
					t.Fatalf("ComputeWindow(%d, %d, %d) has %d pages, want %d", cur, total, max, len(w.Pages), want)
				}
				if !contains(w.Pages, cur) {
					t.Fatalf("ComputeWindow(%d, %d, %d) = %v, missing current page", cur, total, max, w.Pages)
				}
				for i := 1; i < len(w.Pages); i++ {
					if w.Pages[i] != w.Pages[i-1]+1 {
						t.Fatalf("ComputeWindow(%d, %d, %d) = %v, not contiguous", cur, total, max, w.Pages)
					}
				}
				if w.ShowFirst != (w.Pages[0] > 0) || w.ShowLast != (w.Pages[len(w.Pages)-1] < total-1) {
					t.Fatalf("ComputeWindow(%d, %d, %d) edge flags inconsistent: %+v", cur, total, max, w)
				}
			}
		}
	}
}

func TestWindow_PrevNext(t *testing.T) {
	w := ComputeWindow(0, 5, 5)
	assert.False(t, w.HasPrevious())
	assert.True(t, w.HasNext())

	w = ComputeWindow(4, 5, 5)
	assert.True(t, w.HasPrevious())
	assert.False(t, w.HasNext())
}

func contains(pages []int, p int) bool {
	for _, v := range pages {
		if v == p {
			return true
		}
	}
	return false
}
