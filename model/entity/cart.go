package entity

// CartTotals is the `data` block returned by the cart mutation endpoints.
type CartTotals struct {
	TotalQuantity int   `json:"totalQuantity" mapstructure:"totalQuantity"`
	TotalAmount   Money `json:"totalAmount" mapstructure:"totalAmount"`
	IsEmpty       bool  `json:"isEmpty" mapstructure:"isEmpty"`
}

// CartItem is a line of GET /api/cart.
type CartItem struct {
	ID        int64   `json:"id" mapstructure:"id"`
	Product   Product `json:"product" mapstructure:"product"`
	Quantity  int     `json:"quantity" mapstructure:"quantity"`
	UnitPrice Money   `json:"unitPrice" mapstructure:"unitPrice"`
}

// Cart is the `data` block of GET /api/cart.
type Cart struct {
	Items         []CartItem `json:"items" mapstructure:"items"`
	TotalAmount   Money      `json:"totalAmount" mapstructure:"totalAmount"`
	TotalQuantity int        `json:"totalQuantity" mapstructure:"totalQuantity"`
	IsEmpty       bool       `json:"isEmpty" mapstructure:"isEmpty"`
}
