package domain

// CartLineItem is one product entry in the cart, carrying a quantity.
// At most one line item exists per product id; quantity is never below 1.
type CartLineItem struct {
	ProductID int            `json:"id"`
	Name      string         `json:"name"`
	Price     float64        `json:"price"`
	Category  string         `json:"category"`
	Images    []ProductImage `json:"images"`
	Quantity  int            `json:"quantity"`
}

// ValidateLineItem checks the fields a line item must carry before it can
// enter the cart.
func ValidateLineItem(item CartLineItem) error {
	if item.ProductID <= 0 {
		return NewInvalidLineItemError("id", "must be positive", item.ProductID)
	}
	if item.Name == "" {
		return NewInvalidLineItemError("name", "cannot be empty", item.Name)
	}
	if item.Price < 0 {
		return NewInvalidLineItemError("price", "must be non-negative", item.Price)
	}
	return nil
}

// LineItemFromProduct builds a cart line item snapshotting the catalog
// fields the cart displays. Quantities below 1 are clamped to 1.
func LineItemFromProduct(p Product, quantity int) CartLineItem {
	if quantity < 1 {
		quantity = 1
	}
	return CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Images:    p.Images,
		Quantity:  quantity,
	}
}
