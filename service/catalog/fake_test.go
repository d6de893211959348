package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront.GO/api"
	"storefront.GO/core/notify"
	"storefront.GO/model/entity"
)

// fakeBackend answers listing calls through list; tests that need to hold a call
// open install gates keyed by the query text.
type fakeBackend struct {
	mu    sync.Mutex
	list  func(p api.ListParams) (entity.PageResult, error)
	gates map[string]chan struct{}
	calls []api.ListParams

	categories    []string
	categoriesErr error
	brands        []string
	optionCalls   int

	count    int
	countErr error

	addTotals entity.CartTotals
	addErr    error
	addCalls  []int64

	suggestCalls []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		list:       pagedList(58),
		gates:      map[string]chan struct{}{},
		categories: []string{"Books", "Electronics"},
		brands:     []string{"Acme"},
	}
}

func products(n, offset int) []entity.Product {
	out := make([]entity.Product, n)
	for i := range out {
		id := int64(offset + i + 1)
		out[i] = entity.Product{ID: id, Name: fmt.Sprintf("Product %d", id), Price: entity.MustMoney("9.99"), Stock: 10}
	}
	return out
}

// pagedList serves total products split into pages of the requested size.
func pagedList(total int) func(p api.ListParams) (entity.PageResult, error) {
	return func(p api.ListParams) (entity.PageResult, error) {
		size := p.Size
		pages := (total + size - 1) / size
		n := size
		if rest := total - p.Page*size; rest < n {
			n = rest
		}
		if n < 0 {
			n = 0
		}
		return entity.PageResult{
			Items: products(n, p.Page*size),
			Pagination: entity.Pagination{
				CurrentPage: p.Page, TotalPages: pages, TotalElements: int64(total), Size: size,
				HasNext: p.Page < pages-1, HasPrevious: p.Page > 0,
			},
		}, nil
	}
}

func (f *fakeBackend) gate(text string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[text] = ch
	return ch
}

func (f *fakeBackend) ListProducts(_ context.Context, p api.ListParams) (entity.PageResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	gate := f.gates[p.Query]
	list := f.list
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return list(p)
}

func (f *fakeBackend) setList(fn func(p api.ListParams) (entity.PageResult, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.list = fn
}

func (f *fakeBackend) listCalls() []api.ListParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.ListParams(nil), f.calls...)
}

func (f *fakeBackend) Categories(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.optionCalls++
	return f.categories, f.categoriesErr
}

func (f *fakeBackend) Brands(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.optionCalls++
	return f.brands, nil
}

func (f *fakeBackend) CartCount(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count, f.countErr
}

func (f *fakeBackend) AddToCart(_ context.Context, id int64, _ int) (entity.CartTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls = append(f.addCalls, id)
	return f.addTotals, f.addErr
}

func (f *fakeBackend) Suggestions(_ context.Context, q string) ([]entity.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suggestCalls = append(f.suggestCalls, q)
	return []entity.Suggestion{{ID: 1, Name: "Lamp " + q, Category: "Home", Price: entity.MustMoney("19.99")}}, nil
}

func (f *fakeBackend) suggestionCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.suggestCalls...)
}

type toast struct {
	message string
	level   notify.Level
}

type recorder struct {
	mu     sync.Mutex
	toasts []toast
}

func (r *recorder) Notify(message string, level notify.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast{message, level})
}

func (r *recorder) all() []toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]toast(nil), r.toasts...)
}

var errServer = &api.Error{Kind: api.KindApplication, Message: "server error"}

var errNetwork = errors.New("connection refused")
