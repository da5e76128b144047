package domain

// CartLine is uniquely keyed by (ProductID, Size, Color). Price, Name and
// Image are snapshotted at add time and never recomputed against the catalog.
type CartLine struct {
	ProductID string  `json:"productId"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
}

// LineKey identifies a cart line.
type LineKey struct {
	ProductID string
	Size      string
	Color     string
}

func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Size: l.Size, Color: l.Color}
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}
