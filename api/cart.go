package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"storefront.GO/model/entity"
)

// CartCount is GET /cart/count. Anonymous sessions get 0.
func (c *Client) CartCount(ctx context.Context) (int, error) {
	env, err := c.do(ctx, "GET", "/cart/count", nil, "failed to load cart count")
	if err != nil {
		return 0, err
	}
	var data struct {
		Count int `mapstructure:"count"`
	}
	if err := decodeData(env.Data, &data); err != nil {
		return 0, &Error{Kind: KindTransport, Message: "invalid cart data", Err: err}
	}
	return data.Count, nil
}

// AddToCart is POST /cart/add. The returned totals are the server's view of the
// whole cart after the add.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (entity.CartTotals, error) {
	q := url.Values{
		"productId": {strconv.FormatInt(productID, 10)},
		"quantity":  {strconv.Itoa(quantity)},
	}
	return c.totals(ctx, "POST", "/cart/add", q, "failed to add to cart")
}

// UpdateCartItem is PUT /cart/update.
func (c *Client) UpdateCartItem(ctx context.Context, cartItemID int64, quantity int) (entity.CartTotals, error) {
	q := url.Values{
		"cartItemId": {strconv.FormatInt(cartItemID, 10)},
		"quantity":   {strconv.Itoa(quantity)},
	}
	return c.totals(ctx, "PUT", "/cart/update", q, "failed to update cart")
}

// RemoveCartItem is DELETE /cart/remove/{id}.
func (c *Client) RemoveCartItem(ctx context.Context, cartItemID int64) (entity.CartTotals, error) {
	return c.totals(ctx, "DELETE", fmt.Sprintf("/cart/remove/%d", cartItemID), nil, "failed to remove item")
}

// ClearCart is DELETE /cart/clear.
func (c *Client) ClearCart(ctx context.Context) error {
	_, err := c.do(ctx, "DELETE", "/cart/clear", nil, "failed to clear cart")
	return err
}

// Cart is GET /cart.
func (c *Client) Cart(ctx context.Context) (entity.Cart, error) {
	env, err := c.do(ctx, "GET", "/cart", nil, "failed to load cart")
	if err != nil {
		return entity.Cart{}, err
	}
	var cart entity.Cart
	if err := decodeData(env.Data, &cart); err != nil {
		return entity.Cart{}, &Error{Kind: KindTransport, Message: "invalid cart data", Err: err}
	}
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}
	return cart, nil
}

func (c *Client) totals(ctx context.Context, method, path string, q url.Values, fallback string) (entity.CartTotals, error) {
	env, err := c.do(ctx, method, path, q, fallback)
	if err != nil {
		return entity.CartTotals{}, err
	}
	var t entity.CartTotals
	if env.Data != nil {
		if err := decodeData(env.Data, &t); err != nil {
			return entity.CartTotals{}, &Error{Kind: KindTransport, Message: "invalid cart data", Err: err}
		}
	}
	return t, nil
}
