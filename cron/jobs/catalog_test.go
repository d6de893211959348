package jobs

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"storefront.GO/cron"
)

type fakeCatalog struct {
	refreshes int
	loads     int
	err       error
}

func (f *fakeCatalog) RefreshCartCount(context.Context) error {
	f.refreshes++
	return f.err
}

func (f *fakeCatalog) LoadFilters(context.Context) { f.loads++ }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRegisterCartCount(t *testing.T) {
	f := &fakeCatalog{err: errors.New("offline")}
	RegisterCartCount(f, "@every 30s", quietLogger())
	defer cron.Unregister(CartCountJob)

	j, ok := cron.Jobs()[CartCountJob]
	if !ok {
		t.Fatal("cart_count job not registered")
	}
	if j.Schedule != "@every 30s" {
		t.Errorf("Schedule = %q, want @every 30s", j.Schedule)
	}
	j.Run()
	if f.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", f.refreshes)
	}
}

func TestRegisterOptionsRefresh(t *testing.T) {
	f := &fakeCatalog{}
	purged := false
	RegisterOptionsRefresh(f, func() { purged = true }, "", quietLogger())
	defer cron.Unregister(OptionsRefreshJob)

	cron.Jobs()[OptionsRefreshJob].Run()
	if !purged || f.loads != 1 {
		t.Errorf("purged = %v, loads = %d; want true, 1", purged, f.loads)
	}
}
