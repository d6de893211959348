// Package catalog is the state engine behind the product listing: the current
// query, the fetch lifecycle of the visible page, filter options and the cart
// badge. Front ends drive it through Controller and render Snapshots.
package catalog

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront.GO/api"
	"storefront.GO/core/cache"
	"storefront.GO/core/notify"
	"storefront.GO/model/entity"
)

// Backend is the part of the REST client the controller needs. *api.Client
// implements it.
type Backend interface {
	ListProducts(ctx context.Context, p api.ListParams) (entity.PageResult, error)
	Categories(ctx context.Context) ([]string, error)
	Brands(ctx context.Context) ([]string, error)
	CartCount(ctx context.Context) (int, error)
	AddToCart(ctx context.Context, productID int64, quantity int) (entity.CartTotals, error)
	Suggestions(ctx context.Context, q string) ([]entity.Suggestion, error)
}

type FetchStatus int

const (
	Idle FetchStatus = iota
	Loading
	Success
	Failed
)

func (s FetchStatus) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is an immutable copy of the view state.
type Snapshot struct {
	Version     uint64
	Query       Query
	PendingText string // typed but not yet committed by the debouncer
	Page        int    // page the displayed result was requested for
	Status      FetchStatus
	Error       string // set while Status is Failed
	Result      entity.PageResult
	Window      Window
	Categories  []string
	Brands      []string
	CartCount   int
}

// Controller owns the catalog view state. Mutations are serialised on mu; network
// calls run without it.
type Controller struct {
	backend    Backend
	notifier   notify.Notifier
	logger     *logrus.Entry
	options    cache.Store
	optionsTTL time.Duration
	maxVisible int
	debounce   time.Duration
	onChange   []func(Snapshot)
	text       *Debouncer[typedText]

	mu          sync.Mutex
	query       Query
	pendingText string
	textGen     uint64 // bumped when a whole query replaces the typed text
	page        int
	status      FetchStatus
	errMsg      string
	result      entity.PageResult
	categories  []string
	brands      []string
	cartCount   int
	names       map[int64]string
	issued      uint64 // sequence of the latest issued fetch
	applied     uint64 // highest sequence whose outcome was applied
	version     uint64
	disposed    bool

	emitMu      sync.Mutex
	lastEmitted uint64

	wg sync.WaitGroup
}

type Option func(*Controller)

func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger.WithField("component", "catalog")
		}
	}
}

func WithDebounceDelay(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

func WithPageSize(size PageSize) Option {
	return func(c *Controller) {
		if _, err := ParsePageSize(int(size)); err == nil {
			c.query.PageSize = size
		}
	}
}

func WithMaxVisible(n int) Option {
	return func(c *Controller) { c.maxVisible = n }
}

// WithOnChange subscribes fn to state changes. Snapshots are delivered in version
// order; one that is older than an already delivered snapshot is skipped.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = append(c.onChange, fn) }
}

// WithOptionsCache caches the category and brand lists.
func WithOptionsCache(store cache.Store, ttl time.Duration) Option {
	return func(c *Controller) {
		c.options = store
		c.optionsTTL = ttl
	}
}

func New(backend Backend, opts ...Option) *Controller {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	c := &Controller{
		backend:    backend,
		notifier:   notify.Discard,
		logger:     discard.WithField("component", "catalog"),
		maxVisible: DefaultMaxVisible,
		debounce:   DefaultDebounce,
		query:      DefaultQuery(),
		names:      map[int64]string{},
		categories: []string{},
		brands:     []string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.text = NewDebouncer(c.debounce, c.commitText)
	return c
}

// typedText is search box input tagged with the text generation it was typed in.
type typedText struct {
	text string
	gen  uint64
}

// Init loads the filter options and the cart count, then fetches page 0. The
// options load in parallel and are joined before the first fetch.
func (c *Controller) Init(ctx context.Context) error {
	if c.isDisposed() {
		return ErrDisposed
	}
	c.LoadFilters(ctx)
	_ = c.RefreshCartCount(ctx)

	c.mu.Lock()
	q := c.query
	c.mu.Unlock()
	return c.FetchPage(ctx, q, 0)
}

func (c *Controller) isDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// SetFilter sets one query field and fetches page 0.
func (c *Controller) SetFilter(key FilterKey, value string) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	q, err := c.query.with(key, value)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if key == FilterText {
		c.pendingText = q.Text
	}
	c.issueLocked(q, 0)
	return nil
}

// SetText feeds the search box. The text is committed through SetFilter once the
// debounce delay passes without further typing.
func (c *Controller) SetText(text string) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.pendingText = text
	gen := c.textGen
	c.version++
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.emit(snap)
	c.text.Call(typedText{text: text, gen: gen})
}

// commitText is the debouncer callback. Text typed before a SetQuery is stale even
// when its timer already fired.
func (c *Controller) commitText(t typedText) {
	c.mu.Lock()
	if c.disposed || t.gen != c.textGen {
		c.mu.Unlock()
		return
	}
	q, err := c.query.with(FilterText, t.text)
	if err != nil {
		c.mu.Unlock()
		return
	}
	c.pendingText = q.Text
	c.issueLocked(q, 0)
}

// FlushText commits pending search text immediately.
func (c *Controller) FlushText() bool {
	return c.text.Flush()
}

// SetSort changes field and direction together with a single fetch.
func (c *Controller) SetSort(field SortField, dir SortDirection) error {
	if _, err := ParseSortField(string(field)); err != nil {
		return err
	}
	if _, err := ParseSortDirection(string(dir)); err != nil {
		return err
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	q := c.query
	q.SortField, q.SortDirection = field, dir
	c.issueLocked(q, 0)
	return nil
}

// ApplySortOption accepts a combined value such as "price-asc".
func (c *Controller) ApplySortOption(value string) error {
	opt, err := ParseSortOption(value)
	if err != nil {
		return err
	}
	return c.SetSort(opt.Field, opt.Direction)
}

// SetPageSize rejects anything outside 12, 24 and 48 without touching state.
func (c *Controller) SetPageSize(n int) error {
	size, err := ParsePageSize(n)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	q := c.query
	q.PageSize = size
	c.issueLocked(q, 0)
	return nil
}

// SetQuery replaces the whole query at once, as a submitted filter form does.
// A zero page size keeps the current one.
func (c *Controller) SetQuery(q Query) error {
	if _, err := ParseSortField(string(q.SortField)); err != nil {
		return err
	}
	if _, err := ParseSortDirection(string(q.SortDirection)); err != nil {
		return err
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	if q.PageSize == 0 {
		q.PageSize = c.query.PageSize
	} else if _, err := ParsePageSize(int(q.PageSize)); err != nil {
		c.mu.Unlock()
		return err
	}
	c.text.Drop()
	c.textGen++
	c.pendingText = q.Text
	c.issueLocked(q, 0)
	return nil
}

// ChangePage fetches page n with the current query. Pages outside
// [0, totalPages) are ignored and false is returned.
func (c *Controller) ChangePage(n int) bool {
	c.mu.Lock()
	if c.disposed || n < 0 || n >= c.result.Pagination.TotalPages {
		c.mu.Unlock()
		return false
	}
	c.issueLocked(c.query, n)
	return true
}

func (c *Controller) NextPage() bool {
	c.mu.Lock()
	next := c.page + 1
	c.mu.Unlock()
	return c.ChangePage(next)
}

func (c *Controller) PreviousPage() bool {
	c.mu.Lock()
	prev := c.page - 1
	c.mu.Unlock()
	return c.ChangePage(prev)
}

// issueLocked starts a tracked background fetch. The sequence number is taken
// here, under mu, so issue order is call order. It releases mu.
func (c *Controller) issueLocked(q Query, page int) {
	seq, snap := c.beginLocked(q, page)
	c.wg.Add(1)
	c.mu.Unlock()
	c.emit(snap)

	go func() {
		defer c.wg.Done()
		_ = c.resolve(context.Background(), seq, q, page)
	}()
}

// FetchPage fetches page of q and waits for the outcome. A negative page is
// treated as 0. The returned error is the one shown in the view; results
// superseded by a newer fetch are dropped and return nil.
func (c *Controller) FetchPage(ctx context.Context, q Query, page int) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	seq, snap := c.beginLocked(q, page)
	c.mu.Unlock()
	c.emit(snap)
	return c.resolve(ctx, seq, q, page)
}

func (c *Controller) beginLocked(q Query, page int) (uint64, Snapshot) {
	if page < 0 {
		page = 0
	}
	if q.PageSize == 0 {
		q.PageSize = DefaultPageSize
	}
	c.issued++
	c.query = q
	c.status = Loading
	c.errMsg = ""
	c.version++
	return c.issued, c.snapshotLocked()
}

func (c *Controller) resolve(ctx context.Context, seq uint64, q Query, page int) error {
	if page < 0 {
		page = 0
	}
	log := c.logger.WithFields(logrus.Fields{"seq": seq, "page": page})
	res, err := c.backend.ListProducts(ctx, q.Params(page))

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	if seq < c.applied {
		c.mu.Unlock()
		log.Debug("dropping superseded result")
		return nil
	}
	latest := seq == c.issued
	if err == nil && pageOutOfRange(page, res.Pagination.TotalPages) {
		if !latest {
			c.mu.Unlock()
			log.Debug("dropping out-of-range result of a superseded fetch")
			return nil
		}
		// the query shrank under the requested page; fetch its last page instead
		c.applied = seq
		last := lastPage(res.Pagination.TotalPages)
		next, snap := c.beginLocked(q, last)
		c.mu.Unlock()
		log.WithField("total_pages", res.Pagination.TotalPages).Info("page out of range, refetching last page")
		c.emit(snap)
		return c.resolve(ctx, next, q, last)
	}
	c.applied = seq

	if err != nil {
		if !latest {
			c.mu.Unlock()
			log.WithError(err).Debug("superseded fetch failed")
			return nil
		}
		msg := api.Message(err)
		c.status = Failed
		c.errMsg = msg
		c.version++
		snap := c.snapshotLocked()
		c.mu.Unlock()

		log.WithError(err).Warn("product fetch failed")
		c.emit(snap)
		c.notifier.Notify(msg, notify.Error)
		return err
	}

	c.result = res
	c.page = page
	for _, p := range res.Items {
		c.names[p.ID] = p.Name
	}
	if latest {
		c.status = Success
	}
	c.version++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	log.WithField("items", len(res.Items)).Debug("page applied")
	c.emit(snap)
	return nil
}

func pageOutOfRange(page, totalPages int) bool {
	return page > 0 && page >= totalPages
}

func lastPage(totalPages int) int {
	if totalPages < 1 {
		return 0
	}
	return totalPages - 1
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	items := make([]entity.Product, len(c.result.Items))
	copy(items, c.result.Items)
	return Snapshot{
		Version:     c.version,
		Query:       c.query,
		PendingText: c.pendingText,
		Page:        c.page,
		Status:      c.status,
		Error:       c.errMsg,
		Result:      entity.PageResult{Items: items, Pagination: c.result.Pagination},
		Window:      ComputeWindow(c.page, c.result.Pagination.TotalPages, c.maxVisible),
		Categories:  append([]string(nil), c.categories...),
		Brands:      append([]string(nil), c.brands...),
		CartCount:   c.cartCount,
	}
}

func (c *Controller) emit(snap Snapshot) {
	if len(c.onChange) == 0 {
		return
	}
	c.emitMu.Lock()
	defer c.emitMu.Unlock()
	if snap.Version < c.lastEmitted {
		return
	}
	c.lastEmitted = snap.Version
	for _, fn := range c.onChange {
		fn(snap)
	}
}

// Wait blocks until every background fetch and cart call has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Dispose stops the search debouncer. Every later call is a no-op and results
// still in flight are dropped.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()
	c.text.Cancel()
}
