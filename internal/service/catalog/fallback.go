package catalog

import (
	"time"

	"tienda-storefront/internal/domain"
)

// FallbackProducts is the hard-coded catalog used whenever the remote store
// is unreachable; it guarantees the store is never empty.
func FallbackProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Camisa Casual", Price: 25, Category: "hombre", Image: "images/camisa.jpg", Description: "Camisa cómoda para el día a día."},
		{ID: "2", Name: "Vestido Elegante", Price: 50, Category: "mujer", Image: "images/vestido.jpg", Description: "Vestido perfecto para ocasiones especiales."},
		{ID: "3", Name: "Pantalones Jeans", Price: 40, Category: "hombre", Image: "images/pantalones.jpg", Description: "Pantalones jeans de alta calidad."},
		{ID: "4", Name: "Blusa Floral", Price: 30, Category: "mujer", Image: "images/blusa.jpg", Description: "Blusa con estampado floral."},
		{ID: "5", Name: "Zapatillas Deportivas", Price: 60, Category: "hombre", Image: "images/zapatillas.jpg", Description: "Zapatillas cómodas para el deporte."},
		{ID: "6", Name: "Falda Plisada", Price: 35, Category: "mujer", Image: "images/falda.jpg", Description: "Falda plisada elegante."},
		{ID: "7", Name: "Sudadera con Capucha", Price: 45, Category: "hombre", Image: "images/sudadera.jpg", Description: "Sudadera cálida y cómoda."},
		{ID: "8", Name: "Bolso de Mano", Price: 55, Category: "accesorios", Image: "images/bolso.jpg", Description: "Bolso elegante para llevar tus essentials."},
		{ID: "9", Name: "Gorra Deportiva", Price: 20, Category: "accesorios", Image: "images/gorra.jpg", Description: "Gorra perfecta para actividades al aire libre."},
		{ID: "10", Name: "Vestido de Niña", Price: 28, Category: "ninos", Image: "images/vestido-nina.jpg", Description: "Vestido adorable para niñas."},
		{ID: "11", Name: "Camiseta de Niño", Price: 15, Category: "ninos", Image: "images/camiseta-nino.jpg", Description: "Camiseta cómoda para niños."},
		{ID: "12", Name: "Pantalones Cortos", Price: 22, Category: "ninos", Image: "images/pantalones-cortos.jpg", Description: "Pantalones cortos ideales para el verano."},
	}
}

func FallbackReviews() []domain.Review {
	return []domain.Review{
		{ProductID: "1", User: "Juan", Rating: 5, Comment: "Excelente calidad, muy cómodo.", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{ProductID: "1", User: "María", Rating: 4, Comment: "Buen producto, llegó rápido.", Date: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)},
		{ProductID: "2", User: "Ana", Rating: 5, Comment: "Me encanta, perfecto para una cena.", Date: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)},
	}
}
