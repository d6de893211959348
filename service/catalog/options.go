package catalog

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront.GO/api"
	"storefront.GO/core/cache"
	"storefront.GO/model/entity"
)

// SuggestionTTL bounds how long a suggestion list is reused. Shorter than the
// options TTL since it tracks stock and pricing.
const SuggestionTTL = time.Minute

// LoadFilters fetches categories and brands in parallel. A failing list is logged
// and left empty; it never blocks the listing.
func (c *Controller) LoadFilters(ctx context.Context) {
	var categories, brands []string
	g := new(errgroup.Group)
	g.Go(func() error {
		categories = c.loadOptions(ctx, "categories", c.backend.Categories)
		return nil
	})
	g.Go(func() error {
		brands = c.loadOptions(ctx, "brands", c.backend.Brands)
		return nil
	})
	_ = g.Wait()

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.categories = categories
	c.brands = brands
	c.version++
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.emit(snap)
}

func (c *Controller) loadOptions(ctx context.Context, name string, fetch func(context.Context) ([]string, error)) []string {
	key := cache.Key("catalog", "options", name)
	var cached []string
	if cache.GetJSON(ctx, c.options, key, &cached) {
		return cached
	}
	list, err := fetch(ctx)
	if err != nil {
		c.logger.WithError(err).WithField("options", name).Warn("filter options unavailable")
		return []string{}
	}
	if err := cache.SetJSON(ctx, c.options, key, list, c.optionsTTL); err != nil {
		c.logger.WithError(err).Debug("options cache write failed")
	}
	return list
}

// Suggestions returns search suggestions for q, served from the options cache
// when possible. Matching ignores case and surrounding space; queries shorter
// than api.MinSuggestionQuery never reach the backend.
func (c *Controller) Suggestions(ctx context.Context, q string) ([]entity.Suggestion, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < api.MinSuggestionQuery {
		return []entity.Suggestion{}, nil
	}
	key := cache.Key("catalog", "suggest", strings.ToLower(q))
	var cached []entity.Suggestion
	if cache.GetJSON(ctx, c.options, key, &cached) {
		return cached, nil
	}
	list, err := c.backend.Suggestions(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, c.options, key, list, SuggestionTTL); err != nil {
		c.logger.WithError(err).Debug("suggestion cache write failed")
	}
	return list, nil
}
