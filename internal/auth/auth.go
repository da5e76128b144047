package auth

import "context"

// User is the provider's view of an authenticated account.
type User struct {
	ID          string
	DisplayName string
	Email       string
}

// Confirmation completes a phone sign-in started with SignInWithPhone.
type Confirmation interface {
	Confirm(ctx context.Context, code string) (*User, error)
}

// Provider is the opaque authentication capability. Errors carry the
// provider's own message and are surfaced to the user verbatim.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*User, error)
	SignUp(ctx context.Context, email, password, displayName string) (*User, error)
	SignInWithGoogle(ctx context.Context, idToken string) (*User, error)
	SignInWithPhone(ctx context.Context, phoneNumber string) (Confirmation, error)
	SignOut(ctx context.Context, userID string) error
}
