package catalog

// DefaultMaxVisible is the number of direct page links shown by default.
const DefaultMaxVisible = 5

// Window describes the pagination control for one page of results. Pages are
// 0-based indices; front ends add 1 for display.
type Window struct {
	Pages            []int
	ShowFirst        bool // page 0 rendered separately before Pages
	LeadingEllipsis  bool
	ShowLast         bool // last page rendered separately after Pages
	TrailingEllipsis bool
	Visible          bool // false when there is at most one page
	Current          int
	Total            int
}

// ComputeWindow picks the direct page links around currentPage. currentPage is
// assumed valid; the controller refetches the last page when a result comes back
// for a page past the end.
func ComputeWindow(currentPage, totalPages, maxVisible int) Window {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	w := Window{Current: currentPage, Total: totalPages}
	if totalPages <= 1 {
		return w
	}
	w.Visible = true

	start := currentPage - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible - 1
	if end > totalPages-1 {
		end = totalPages - 1
		// near the last page, slide back so the window stays full; the web
		// frontend's renderPagination shrinks the window here instead
		if start = end - maxVisible + 1; start < 0 {
			start = 0
		}
	}

	w.Pages = make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		w.Pages = append(w.Pages, p)
	}
	w.ShowFirst = start > 0
	w.LeadingEllipsis = start > 1
	w.ShowLast = end < totalPages-1
	w.TrailingEllipsis = end < totalPages-2
	return w
}

func (w Window) HasPrevious() bool { return w.Current > 0 }

func (w Window) HasNext() bool { return w.Current < w.Total-1 }
