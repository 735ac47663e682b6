package domain

type Product struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description,omitempty" yaml:"description"`
	Price         float64  `json:"price" yaml:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty" yaml:"originalPrice"`
	Image         string   `json:"image" yaml:"image"`
	Category      string   `json:"category" yaml:"category"`
	Colors        []string `json:"colors,omitempty" yaml:"colors"`
	Sizes         []string `json:"sizes,omitempty" yaml:"sizes"`
	Stock         int      `json:"stock" yaml:"stock"`
}

// LineItem builds a cart line for the product with the chosen options.
func (p Product) LineItem(color, size string, quantity int) CartLineItem {
	return CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  quantity,
		Color:     color,
		Size:      size,
	}
}
