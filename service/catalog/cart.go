package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront.GO/api"
	"storefront.GO/core/notify"
)

// AddToCart adds quantity (at least 1) of a product. The badge is set to the
// total the server reports; nothing changes before the server confirms.
func (c *Controller) AddToCart(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if c.isDisposed() {
		return nil
	}
	log := c.logger.WithFields(logrus.Fields{"product_id": productID, "quantity": quantity})
	totals, err := c.backend.AddToCart(ctx, productID, quantity)

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.mu.Unlock()
		log.WithError(err).Warn("add to cart failed")
		c.notifier.Notify(api.Message(err), notify.Error)
		return err
	}
	c.cartCount = totals.TotalQuantity
	name := c.names[productID]
	c.version++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	msg := "Added to cart"
	if name != "" {
		msg = fmt.Sprintf("%s added to cart", name)
	}
	c.notifier.Notify(msg, notify.Success)
	return nil
}

// AddToCartAsync is AddToCart on a tracked goroutine, for front ends that do not
// wait on the result.
func (c *Controller) AddToCartAsync(productID int64, quantity int) {
	if c.isDisposed() {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_ = c.AddToCart(context.Background(), productID, quantity)
	}()
}

// RefreshCartCount reloads the badge. Failures are logged and keep the old count.
func (c *Controller) RefreshCartCount(ctx context.Context) error {
	if c.isDisposed() {
		return nil
	}
	n, err := c.backend.CartCount(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("cart count unavailable")
		return err
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.cartCount = n
	c.version++
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.emit(snap)
	return nil
}
