package domain

// Session exists only while a user is authenticated. Its absence means the
// cart and wishlist operate against local persistence only.
type Session struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}
