package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"storefront.GO/model/entity"
)

// ListParams is the serialised catalog query. Empty strings are omitted.
type ListParams struct {
	Query    string
	Category string
	Brand    string
	SortBy   string
	SortDir  string
	Page     int
	Size     int
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("query", p.Query)
	set("category", p.Category)
	set("brand", p.Brand)
	set("sortBy", p.SortBy)
	set("sortDir", p.SortDir)
	v.Set("page", strconv.Itoa(p.Page))
	if p.Size > 0 {
		v.Set("size", strconv.Itoa(p.Size))
	}
	return v
}

// MinSuggestionQuery is the shortest trimmed query the backend answers with
// suggestions.
const MinSuggestionQuery = 2

// ListProducts is GET /products.
func (c *Client) ListProducts(ctx context.Context, p ListParams) (entity.PageResult, error) {
	env, err := c.do(ctx, "GET", "/products", p.values(), "failed to load products")
	if err != nil {
		return entity.PageResult{}, err
	}
	var res entity.PageResult
	if err := decodeData(env.Data, &res.Items); err != nil {
		return entity.PageResult{}, &Error{Kind: KindTransport, Message: "invalid product data", Err: err}
	}
	if env.Pagination != nil {
		if err := decodeData(env.Pagination, &res.Pagination); err != nil {
			return entity.PageResult{}, &Error{Kind: KindTransport, Message: "invalid pagination data", Err: err}
		}
	}
	if res.Items == nil {
		res.Items = []entity.Product{}
	}
	return res, nil
}

// Product is GET /products/{id}.
func (c *Client) Product(ctx context.Context, id int64) (entity.Product, error) {
	env, err := c.do(ctx, "GET", fmt.Sprintf("/products/%d", id), nil, "product not found")
	if err != nil {
		return entity.Product{}, err
	}
	var p entity.Product
	if err := decodeData(env.Data, &p); err != nil {
		return entity.Product{}, &Error{Kind: KindTransport, Message: "invalid product data", Err: err}
	}
	return p, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/products/categories", "failed to load categories")
}

func (c *Client) Brands(ctx context.Context) ([]string, error) {
	return c.stringList(ctx, "/products/brands", "failed to load brands")
}

func (c *Client) stringList(ctx context.Context, path, fallback string) ([]string, error) {
	env, err := c.do(ctx, "GET", path, nil, fallback)
	if err != nil {
		return nil, err
	}
	out := []string{}
	if err := decodeData(env.Data, &out); err != nil {
		return nil, &Error{Kind: KindTransport, Message: fallback, Err: err}
	}
	return out, nil
}

// Suggestions is GET /products/suggestions. Queries shorter than two characters
// are answered locally with no results.
func (c *Client) Suggestions(ctx context.Context, q string) ([]entity.Suggestion, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < MinSuggestionQuery {
		return []entity.Suggestion{}, nil
	}
	env, err := c.do(ctx, "GET", "/products/suggestions", url.Values{"q": {q}}, "failed to load suggestions")
	if err != nil {
		return nil, err
	}
	out := []entity.Suggestion{}
	if err := decodeData(env.Data, &out); err != nil {
		return nil, &Error{Kind: KindTransport, Message: "invalid suggestion data", Err: err}
	}
	return out, nil
}
