package api

// types.go defines the wire model of the commerce API. All of these are
// read-only from the client's perspective.

// Product is a catalog entry. Discount is a percentage in [0, 100].
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Category string  `json:"category"`
}

// OrderItem is one line of a past order; the product is embedded as it was
// at order time.
type OrderItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// Order is a past order as returned by the server. Status values are opaque
// and echoed verbatim into the page.
type Order struct {
	ID          string       `json:"id"`
	OrderDate   string       `json:"orderDate"`
	Status      string       `json:"status"`
	Items       []*OrderItem `json:"items"`
	TotalAmount float64      `json:"totalAmount"`
}

// RegisterRequest is the registration form payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PriceIndex builds the product-id → price lookup the cart totals join
// against.
func PriceIndex(products []*Product) map[string]float64 {
	idx := make(map[string]float64, len(products))
	for _, p := range products {
		idx[p.ID] = p.Price
	}
	return idx
}

// OriginalPrice is the pre-discount price shown struck through on the offers
// page.
func (p *Product) OriginalPrice() float64 {
	return p.Price * (1 + p.Discount/100)
}
