package models

// Product is a catalog item from the drinkware range.
type Product struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Collection  string   `json:"collection,omitempty"`
	Price       float64  `json:"price"`
	SalePrice   float64  `json:"sale_price,omitempty"`
	OnPromotion bool     `json:"on_promotion,omitempty"`
	Material    string   `json:"material,omitempty"`
	Capacity    string   `json:"capacity,omitempty"`
	Colors      []string `json:"colors,omitempty"`
}

// EffectivePrice is the price a customer pays today: the sale price while a
// promotion is running, the regular price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.OnPromotion && p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}
