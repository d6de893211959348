package entity

// Product is a catalog entry as served by GET /api/products. Read-only on this side.
type Product struct {
	ID          int64   `json:"id" mapstructure:"id"`
	Name        string  `json:"name" mapstructure:"name"`
	Description string  `json:"description,omitempty" mapstructure:"description"`
	Price       Money   `json:"price" mapstructure:"price"`
	Rating      float64 `json:"rating" mapstructure:"rating"`
	ReviewCount int     `json:"reviewCount" mapstructure:"reviewCount"`
	Stock       int     `json:"stock" mapstructure:"stock"`
	Category    string  `json:"category,omitempty" mapstructure:"category"`
	Brand       string  `json:"brand,omitempty" mapstructure:"brand"`
	ImageURL    string  `json:"imageUrl,omitempty" mapstructure:"imageUrl"`
}

// LowStockThreshold is the stock level at which cards show "only N left".
const LowStockThreshold = 5

func (p Product) InStock() bool { return p.Stock > 0 }

func (p Product) LowStock() bool { return p.Stock > 0 && p.Stock <= LowStockThreshold }

// Suggestion is one row of GET /api/products/suggestions.
type Suggestion struct {
	ID       int64  `json:"id" mapstructure:"id"`
	Name     string `json:"name" mapstructure:"name"`
	Category string `json:"category,omitempty" mapstructure:"category"`
	Price    Money  `json:"price" mapstructure:"price"`
}
