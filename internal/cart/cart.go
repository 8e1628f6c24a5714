// Package cart implements the in-session shopping cart: an insertion-ordered
// list of product-id/quantity pairs with merge-by-id accumulation and total
// computation against the fetched product catalog.
package cart

// DeliveryFee is the flat fee added to every order total.
const DeliveryFee = 2.99

// Item is a single cart entry. A cart holds at most one Item per ProductID.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Add merges qty into the existing entry for id, or appends a new entry.
// Quantities accumulate without an upper bound.
func Add(items []Item, id string, qty int) []Item {
	for i := range items {
		if items[i].ProductID == id {
			items[i].Quantity += qty
			return items
		}
	}
	return append(items, Item{ProductID: id, Quantity: qty})
}

// Remove drops the entry for id, leaving all other entries untouched.
func Remove(items []Item, id string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProductID != id {
			out = append(out, it)
		}
	}
	return out
}

// SetQuantity overwrites the quantity of the entry for id. Quantities below 1
// leave the cart unchanged; removal is only ever explicit via Remove.
func SetQuantity(items []Item, id string, qty int) []Item {
	if qty < 1 {
		return items
	}
	for i := range items {
		if items[i].ProductID == id {
			items[i].Quantity = qty
			break
		}
	}
	return items
}

// Count returns the badge value: the sum of all quantities.
func Count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// Subtotal joins the cart against a product-id → price index and sums
// price × quantity. Items whose product is no longer in the catalog
// contribute nothing.
func Subtotal(items []Item, prices map[string]float64) float64 {
	sum := 0.0
	for _, it := range items {
		if price, ok := prices[it.ProductID]; ok {
			sum += price * float64(it.Quantity)
		}
	}
	return sum
}

// Total is Subtotal plus the delivery fee. An empty cart totals exactly the
// delivery fee.
func Total(items []Item, prices map[string]float64) float64 {
	return Subtotal(items, prices) + DeliveryFee
}
