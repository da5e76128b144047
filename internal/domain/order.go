package domain

import "time"

// OrderStatusPending is the initial status of every order. Further
// transitions are managed outside this system.
const OrderStatusPending = "Pendiente"

// Order is an immutable snapshot of the cart at checkout time. Total is
// fixed at creation and must never be recomputed against the catalog.
type Order struct {
	ID     string     `json:"id"`
	UserID string     `json:"userId"`
	Items  []CartLine `json:"items"`
	Total  float64    `json:"total"`
	Date   time.Time  `json:"date"`
	Status string     `json:"status"`
}
