package domain

import "time"

// Review is append-only; UserID is empty for anonymous authors.
type Review struct {
	ID        string    `json:"id,omitempty"`
	ProductID string    `json:"productId"`
	UserID    string    `json:"userId,omitempty"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}
