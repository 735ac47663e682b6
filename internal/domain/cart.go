package domain

// CartLineItem is one entry in the cart. Its identity is the triple
// (ProductID, Color, Size); an empty Color or Size means the attribute is absent.
type CartLineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
}

// LineKey identifies a line item inside a cart.
type LineKey struct {
	ProductID string
	Color     string
	Size      string
}

func (i CartLineItem) Key() LineKey {
	return LineKey{ProductID: i.ProductID, Color: i.Color, Size: i.Size}
}

// Subtotal is price times quantity for the line.
func (i CartLineItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type WishlistEntry struct {
	ProductID string `json:"productId"`
}

// AppliedPromotion is the single promotion applied to the cart. Discount is
// computed once, when the code is applied.
type AppliedPromotion struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}
