// Package apitest serves the storefront REST contract from in-memory fixtures so
// the client, the catalog controller and the front ends can be tested end to end.
package apitest

import (
	"fmt"
	"math"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"storefront.GO/model/entity"
)

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
}

type cartLine struct {
	id        int64
	productID int64
	quantity  int
}

// Server is a fake backend. Zero configuration gives an anonymous-friendly cart
// (every caller shares one cart).
type Server struct {
	*httptest.Server

	// SessionCookie, when set, makes calls without a matching Cookie header
	// anonymous: cart count is 0 and cart mutations answer 401 UNAUTHORIZED.
	SessionCookie string

	mu           sync.Mutex
	products     []entity.Product
	lines        []*cartLine
	nextLineID   int64
	failProducts string
	requests     []Request
}

// NewServer starts a fake backend serving products.
func NewServer(products []entity.Product) *Server {
	s := &Server{products: products, nextLineID: 1}
	s.Server = httptest.NewServer(s.routes())
	return s
}

// URL is the base the client expects, ending in /api.
func (s *Server) URL() string { return s.Server.URL + "/api" }

// FailProducts makes GET /products answer {success:false, message}. An empty
// message restores normal answers.
func (s *Server) FailProducts(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failProducts = message
}

// Requests returns the calls seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo filters Requests by path (relative to /api).
func (s *Server) RequestsTo(path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Path == "/api"+path {
			out = append(out, r)
		}
	}
	return out
}

// SetCartQuantity seeds the cart.
func (s *Server) SetCartQuantity(productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(productID, quantity)
}

// Fixtures builds n products across three categories and two brands.
func Fixtures(n int) []entity.Product {
	categories := []string{"Electronics", "Books", "Home"}
	brands := []string{"Acme", "Globex"}
	out := make([]entity.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entity.Product{
			ID:          int64(i + 1),
			Name:        fmt.Sprintf("Product %02d", i+1),
			Description: fmt.Sprintf("Description of product %02d, a fine %s item", i+1, strings.ToLower(categories[i%3])),
			Price:       entity.MustMoney(fmt.Sprintf("%d.99", i*10+9)),
			Rating:      float64(i%10) / 2,
			ReviewCount: i * 3,
			Stock:       (i * 7) % 20,
			Category:    categories[i%3],
			Brand:       brands[i%2],
			ImageURL:    fmt.Sprintf("/images/products/%d.jpg", i+1),
		})
	}
	return out
}

type body map[string]interface{}

func fail(c echo.Context, status int, message, code string) error {
	b := body{"success": false, "message": message}
	if code != "" {
		b["code"] = code
	}
	return c.JSON(status, b)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, body{"success": true, "data": data})
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s.mu.Lock()
			s.requests = append(s.requests, Request{
				Method: c.Request().Method,
				Path:   c.Request().URL.Path,
				Query:  c.QueryParams(),
			})
			s.mu.Unlock()
			return next(c)
		}
	})

	g := e.Group("/api")
	g.GET("/products", s.listProducts)
	g.GET("/products/categories", s.categories)
	g.GET("/products/brands", s.brands)
	g.GET("/products/suggestions", s.suggestions)
	g.GET("/products/:id", s.product)
	g.GET("/cart", s.cart)
	g.GET("/cart/count", s.cartCount)
	g.POST("/cart/add", s.addToCart)
	g.PUT("/cart/update", s.updateCart)
	g.DELETE("/cart/remove/:id", s.removeFromCart)
	g.DELETE("/cart/clear", s.clearCart)
	return e
}

func intParam(c echo.Context, name string, def int) int {
	if v, err := strconv.Atoi(c.QueryParam(name)); err == nil {
		return v
	}
	return def
}

func (s *Server) listProducts(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failProducts != "" {
		return fail(c, http.StatusOK, s.failProducts, "")
	}

	query := strings.ToLower(strings.TrimSpace(c.QueryParam("query")))
	category := c.QueryParam("category")
	brand := c.QueryParam("brand")
	matched := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if brand != "" && p.Brand != brand {
			continue
		}
		matched = append(matched, p)
	}

	desc := c.QueryParam("sortDir") == "desc"
	var less func(a, b entity.Product) bool
	switch c.QueryParam("sortBy") {
	case "price":
		less = func(a, b entity.Product) bool { return a.Price.Cmp(b.Price) < 0 }
	case "rating":
		less = func(a, b entity.Product) bool { return a.Rating < b.Rating }
	default:
		less = func(a, b entity.Product) bool { return a.Name < b.Name }
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	page := intParam(c, "page", 0)
	size := intParam(c, "size", 12)
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 12
	}
	total := len(matched)
	totalPages := int(math.Ceil(float64(total) / float64(size)))
	from := page * size
	if from > total {
		from = total
	}
	to := from + size
	if to > total {
		to = total
	}

	return c.JSON(http.StatusOK, body{
		"success": true,
		"data":    matched[from:to],
		"pagination": entity.Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalElements: int64(total),
			Size:          size,
			HasNext:       page < totalPages-1,
			HasPrevious:   page > 0,
		},
	})
}

func (s *Server) distinct(field func(entity.Product) string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range s.products {
		v := field(p)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Server) categories(c echo.Context) error {
	return ok(c, s.distinct(func(p entity.Product) string { return p.Category }))
}

func (s *Server) brands(c echo.Context) error {
	return ok(c, s.distinct(func(p entity.Product) string { return p.Brand }))
}

func (s *Server) suggestions(c echo.Context) error {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	out := []entity.Suggestion{}
	if len(q) < 2 {
		return ok(c, out)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, entity.Suggestion{ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price})
		}
		if len(out) == 10 {
			break
		}
	}
	return ok(c, out)
}

func (s *Server) findLocked(id int64) (entity.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (s *Server) product(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.findLocked(id)
	if !found {
		return c.NoContent(http.StatusNotFound)
	}
	return ok(c, p)
}

func (s *Server) anonymous(c echo.Context) bool {
	if s.SessionCookie == "" {
		return false
	}
	return c.Request().Header.Get("Cookie") != s.SessionCookie
}

func (s *Server) totalsLocked() entity.CartTotals {
	qty := 0
	amount := new(big.Rat)
	for _, l := range s.lines {
		qty += l.quantity
		if p, found := s.findLocked(l.productID); found {
			line, _ := new(big.Rat).SetString(p.Price.FloatString(2))
			amount.Add(amount, line.Mul(line, new(big.Rat).SetInt64(int64(l.quantity))))
		}
	}
	m, _ := entity.NewMoneyFromDecimal(amount.FloatString(2))
	return entity.CartTotals{TotalQuantity: qty, TotalAmount: m, IsEmpty: qty == 0}
}

func (s *Server) addLocked(productID int64, quantity int) {
	for _, l := range s.lines {
		if l.productID == productID {
			l.quantity += quantity
			return
		}
	}
	s.lines = append(s.lines, &cartLine{id: s.nextLineID, productID: productID, quantity: quantity})
	s.nextLineID++
}

func (s *Server) unauthorized(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "please log in first", "UNAUTHORIZED")
}

func (s *Server) cart(c echo.Context) error {
	if s.anonymous(c) {
		return s.unauthorized(c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []entity.CartItem{}
	for _, l := range s.lines {
		p, _ := s.findLocked(l.productID)
		items = append(items, entity.CartItem{ID: l.id, Product: p, Quantity: l.quantity, UnitPrice: p.Price})
	}
	t := s.totalsLocked()
	return ok(c, entity.Cart{Items: items, TotalAmount: t.TotalAmount, TotalQuantity: t.TotalQuantity, IsEmpty: t.IsEmpty})
}

func (s *Server) cartCount(c echo.Context) error {
	if s.anonymous(c) {
		return ok(c, body{"count": 0})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return ok(c, body{"count": s.totalsLocked().TotalQuantity})
}

func (s *Server) addToCart(c echo.Context) error {
	if s.anonymous(c) {
		return s.unauthorized(c)
	}
	id, _ := strconv.ParseInt(c.QueryParam("productId"), 10, 64)
	qty := intParam(c, "quantity", 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.findLocked(id)
	if !found {
		return fail(c, http.StatusOK, "product not found", "")
	}
	if qty < 1 {
		return fail(c, http.StatusOK, "quantity must be positive", "")
	}
	if p.Stock < qty {
		return fail(c, http.StatusOK, "insufficient stock", "")
	}
	s.addLocked(id, qty)
	return ok(c, s.totalsLocked())
}

func (s *Server) updateCart(c echo.Context) error {
	if s.anonymous(c) {
		return s.unauthorized(c)
	}
	id, _ := strconv.ParseInt(c.QueryParam("cartItemId"), 10, 64)
	qty := intParam(c, "quantity", 0)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lines {
		if l.id != id {
			continue
		}
		if qty <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			l.quantity = qty
		}
		return ok(c, s.totalsLocked())
	}
	return fail(c, http.StatusOK, "cart item not found", "")
}

func (s *Server) removeFromCart(c echo.Context) error {
	if s.anonymous(c) {
		return s.unauthorized(c)
	}
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lines {
		if l.id == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return ok(c, s.totalsLocked())
		}
	}
	return fail(c, http.StatusOK, "cart item not found", "")
}

func (s *Server) clearCart(c echo.Context) error {
	if s.anonymous(c) {
		return s.unauthorized(c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	return ok(c, nil)
}
