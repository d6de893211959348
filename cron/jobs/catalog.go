// Package jobs holds the scheduled work of a running catalog view.
package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"storefront.GO/cron"
)

const (
	CartCountJob      = "cart_count"
	OptionsRefreshJob = "filter_options"

	jobTimeout = 10 * time.Second
)

// CartCounter is satisfied by *catalog.Controller.
type CartCounter interface {
	RefreshCartCount(ctx context.Context) error
}

// FilterLoader is satisfied by *catalog.Controller.
type FilterLoader interface {
	LoadFilters(ctx context.Context)
}

// RegisterCartCount keeps the badge in step with carts changed elsewhere (other
// tabs, other devices).
func RegisterCartCount(ctl CartCounter, schedule string, logger *logrus.Logger) {
	cron.Register(CartCountJob, schedule, func(...string) {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := ctl.RefreshCartCount(ctx); err != nil {
			logger.WithField("job", CartCountJob).WithError(err).Warn("cart refresh failed")
		}
	})
}

// RegisterOptionsRefresh drops the cached category and brand lists and loads
// them again. purge may be nil when nothing is cached locally.
func RegisterOptionsRefresh(ctl FilterLoader, purge func(), schedule string, logger *logrus.Logger) {
	cron.Register(OptionsRefreshJob, schedule, func(...string) {
		if purge != nil {
			purge()
		}
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		ctl.LoadFilters(ctx)
		logger.WithField("job", OptionsRefreshJob).Debug("filter options reloaded")
	})
}
