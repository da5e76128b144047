package domain

// WishlistEntry is a product snapshot; a product appears at most once.
type WishlistEntry struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category,omitempty"`
	Image     string  `json:"image"`
}

func EntryFromProduct(p Product) WishlistEntry {
	return WishlistEntry{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Image:     p.Image,
	}
}
