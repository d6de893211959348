package integration

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront.GO/api"
	"storefront.GO/api/apitest"
	"storefront.GO/core/cache"
	"storefront.GO/core/notify"
	"storefront.GO/html"
	"storefront.GO/service/catalog"
)

type flow struct {
	srv    *apitest.Server
	ctl    *catalog.Controller
	toasts *notify.Queue

	mu        sync.Mutex
	snapshots []catalog.Snapshot
}

func newFlow(t *testing.T, products int) *flow {
	t.Helper()
	f := &flow{srv: apitest.NewServer(apitest.Fixtures(products)), toasts: notify.NewQueue(time.Minute)}
	t.Cleanup(f.srv.Close)

	store := cache.NewMemoryStore(cache.NewCache(), "flow")
	f.ctl = catalog.New(api.New(f.srv.URL()),
		catalog.WithNotifier(f.toasts),
		catalog.WithDebounceDelay(80*time.Millisecond),
		catalog.WithOptionsCache(store, time.Minute),
		catalog.WithOnChange(func(s catalog.Snapshot) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.snapshots = append(f.snapshots, s)
		}),
	)
	t.Cleanup(func() {
		f.ctl.Dispose()
		f.ctl.Wait()
	})
	return f
}

func (f *flow) text(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.RenderText(&buf, f.ctl.Snapshot()))
	return buf.String()
}

func TestCatalogFlow_BrowseFilterAndAdd(t *testing.T) {
	f := newFlow(t, 58)
	ctx := context.Background()

	require.NoError(t, f.ctl.Init(ctx))
	snap := f.ctl.Snapshot()
	assert.Equal(t, catalog.Success, snap.Status)
	assert.Equal(t, []string{"Books", "Electronics", "Home"}, snap.Categories)
	assert.Equal(t, []string{"Acme", "Globex"}, snap.Brands)
	assert.Len(t, snap.Result.Items, 12)
	assert.Contains(t, f.text(t), "[1] 2 3 4 5 next >")

	require.True(t, f.ctl.ChangePage(4))
	f.ctl.Wait()
	assert.Equal(t, 4, f.ctl.Snapshot().Page)
	assert.Len(t, f.ctl.Snapshot().Result.Items, 10)
	assert.False(t, f.ctl.NextPage())

	require.NoError(t, f.ctl.SetFilter(catalog.FilterCategory, "Books"))
	f.ctl.Wait()
	reqs := f.srv.RequestsTo("/products")
	last := reqs[len(reqs)-1].Query
	assert.Equal(t, "0", last.Get("page"))
	assert.Equal(t, "Books", last.Get("category"))

	for _, s := range []string{"P", "Pr", "Pro", "Product 1"} {
		f.ctl.SetText(s)
	}
	require.Eventually(t, func() bool {
		return f.ctl.Snapshot().Query.Text == "Product 1"
	}, 2*time.Second, 5*time.Millisecond)
	f.ctl.Wait()
	texts := 0
	for _, r := range f.srv.RequestsTo("/products") {
		if r.Query.Get("query") != "" {
			texts++
		}
	}
	assert.Equal(t, 1, texts, "typing is batched into one fetch")

	f.srv.SetCartQuantity(1, 2)
	require.NoError(t, f.ctl.AddToCart(ctx, 11, 1))
	assert.Equal(t, 3, f.ctl.Snapshot().CartCount)
	assert.Contains(t, f.text(t), "Cart: 3")
}

func TestCatalogFlow_ServerErrorKeepsListing(t *testing.T) {
	f := newFlow(t, 30)
	ctx := context.Background()
	require.NoError(t, f.ctl.Init(ctx))
	before := f.ctl.Snapshot().Result.Items

	f.srv.FailProducts("server error")
	require.True(t, f.ctl.ChangePage(1))
	f.ctl.Wait()

	snap := f.ctl.Snapshot()
	assert.Equal(t, catalog.Failed, snap.Status)
	assert.Equal(t, before, snap.Result.Items)
	active := f.toasts.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "server error", active[0].Message)
	assert.Equal(t, notify.Error, active[0].Level)
	assert.Contains(t, f.text(t), "! server error")

	f.srv.FailProducts("")
	require.True(t, f.ctl.ChangePage(1))
	f.ctl.Wait()
	assert.Equal(t, catalog.Success, f.ctl.Snapshot().Status)
	assert.Empty(t, f.ctl.Snapshot().Error)
}

func TestCatalogFlow_OptionsServedFromCache(t *testing.T) {
	f := newFlow(t, 10)
	ctx := context.Background()
	f.ctl.LoadFilters(ctx)
	f.ctl.LoadFilters(ctx)

	assert.Len(t, f.srv.RequestsTo("/products/categories"), 1)
	assert.Len(t, f.srv.RequestsTo("/products/brands"), 1)
}

func TestCatalogFlow_SnapshotsArriveInOrder(t *testing.T) {
	f := newFlow(t, 40)
	require.NoError(t, f.ctl.Init(context.Background()))
	for i := 0; i < 5; i++ {
		require.NoError(t, f.ctl.ApplySortOption([]string{"price-asc", "price-desc", "rating-desc"}[i%3]))
	}
	f.ctl.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 1; i < len(f.snapshots); i++ {
		if f.snapshots[i].Version <= f.snapshots[i-1].Version {
			t.Fatalf("snapshot %d version %d after %d", i, f.snapshots[i].Version, f.snapshots[i-1].Version)
		}
	}
	final := f.ctl.Snapshot()
	assert.Equal(t, catalog.Success, final.Status)
	assert.Equal(t, "price-desc", final.Query.SortValue())
	assert.Equal(t, "price-desc", f.snapshots[len(f.snapshots)-1].Query.SortValue())
}
