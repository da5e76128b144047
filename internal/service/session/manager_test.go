package session

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/repository/remote"
)

type stubProvider struct {
	user       *auth.User
	signInErr  error
	signOutErr error
	signedOut  []string
	phoneConf  auth.Confirmation
	phoneErr   error
}

func (p *stubProvider) SignIn(_ context.Context, _, _ string) (*auth.User, error) {
	return p.user, p.signInErr
}

func (p *stubProvider) SignUp(_ context.Context, _, _, _ string) (*auth.User, error) {
	return p.user, p.signInErr
}

func (p *stubProvider) SignInWithGoogle(_ context.Context, _ string) (*auth.User, error) {
	return p.user, p.signInErr
}

func (p *stubProvider) SignInWithPhone(_ context.Context, _ string) (auth.Confirmation, error) {
	return p.phoneConf, p.phoneErr
}

func (p *stubProvider) SignOut(_ context.Context, userID string) error {
	p.signedOut = append(p.signedOut, userID)
	return p.signOutErr
}

type stubConfirmation struct {
	user *auth.User
	err  error
	code string
}

func (c *stubConfirmation) Confirm(_ context.Context, code string) (*auth.User, error) {
	c.code = code
	return c.user, c.err
}

type stubRemote struct {
	profiles map[string]remote.Doc
	getErr   error
	setErr   error
	setCalls int
	lastData map[string]interface{}
}

func newStubRemote() *stubRemote {
	return &stubRemote{profiles: make(map[string]remote.Doc)}
}

func (s *stubRemote) Get(_ context.Context, _, id string) (remote.Doc, error) {
	if s.getErr != nil {
		return remote.Doc{}, s.getErr
	}
	doc, ok := s.profiles[id]
	if !ok {
		return remote.Doc{}, domain.ErrNotFound
	}
	return doc, nil
}

func (s *stubRemote) Set(_ context.Context, _, id string, data map[string]interface{}) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setCalls++
	s.lastData = data
	s.profiles[id] = remote.Doc{ID: id, Data: data}
	return nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestSignInEstablishesSession(t *testing.T) {
	provider := &stubProvider{user: &auth.User{ID: "u1", DisplayName: "Juan", Email: "juan@example.com"}}
	m := New(provider, newStubRemote(), testLogger())

	s, err := m.SignIn(context.Background(), "juan@example.com", "secret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if s.UserID != "u1" || s.Name != "Juan" {
		t.Fatalf("unexpected session %+v", s)
	}

	current := m.Current()
	if current == nil || current.UserID != "u1" {
		t.Fatalf("expected current session after sign in, got %+v", current)
	}
}

func TestSignInProviderErrorSurfacedVerbatim(t *testing.T) {
	provider := &stubProvider{signInErr: errors.New("INVALID_PASSWORD")}
	m := New(provider, newStubRemote(), testLogger())

	_, err := m.SignIn(context.Background(), "a@b.c", "wrong")
	if err == nil || err.Error() != "INVALID_PASSWORD" {
		t.Fatalf("expected provider error passed through, got %v", err)
	}
	if m.Current() != nil {
		t.Fatalf("expected no session after failed sign in")
	}
}

func TestSignInWithoutProvider(t *testing.T) {
	m := New(nil, newStubRemote(), testLogger())
	if _, err := m.SignIn(context.Background(), "a@b.c", "pw"); err == nil {
		t.Fatalf("expected error with no provider configured")
	}
}

func TestNameFallsBackToEmail(t *testing.T) {
	provider := &stubProvider{user: &auth.User{ID: "u1", Email: "juan@example.com"}}
	m := New(provider, newStubRemote(), testLogger())

	s, err := m.SignIn(context.Background(), "juan@example.com", "secret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if s.Name != "juan@example.com" {
		t.Fatalf("expected name defaulted to email, got %q", s.Name)
	}
}

func TestProfileCreatedOnFirstLoginOnly(t *testing.T) {
	provider := &stubProvider{user: &auth.User{ID: "u1", DisplayName: "Juan", Email: "juan@example.com"}}
	rs := newStubRemote()
	m := New(provider, rs, testLogger())

	if _, err := m.SignIn(context.Background(), "juan@example.com", "secret"); err != nil {
		t.Fatalf("first sign in: %v", err)
	}
	if rs.setCalls != 1 {
		t.Fatalf("expected profile created on first login, got %d writes", rs.setCalls)
	}

	if _, err := m.SignIn(context.Background(), "juan@example.com", "secret"); err != nil {
		t.Fatalf("second sign in: %v", err)
	}
	if rs.setCalls != 1 {
		t.Fatalf("expected no profile write on re-login, got %d writes", rs.setCalls)
	}
}

func TestStoredProfileOverridesSessionFields(t *testing.T) {
	data, err := remote.Encode(profile{Name: "Don Juan", Email: "stored@example.com"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	rs := newStubRemote()
	rs.profiles["u1"] = remote.Doc{ID: "u1", Data: data}
	provider := &stubProvider{user: &auth.User{ID: "u1", DisplayName: "Juan", Email: "juan@example.com"}}
	m := New(provider, rs, testLogger())

	s, err := m.SignIn(context.Background(), "juan@example.com", "secret")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if s.Name != "Don Juan" || s.Email != "stored@example.com" {
		t.Fatalf("expected stored profile fields, got %+v", s)
	}
}

func TestProfileLookupFailureDoesNotBlockSession(t *testing.T) {
	rs := newStubRemote()
	rs.getErr = errors.New("unavailable")
	provider := &stubProvider{user: &auth.User{ID: "u1", Email: "juan@example.com"}}
	m := New(provider, rs, testLogger())

	s, err := m.SignIn(context.Background(), "juan@example.com", "secret")
	if err != nil {
		t.Fatalf("expected session despite profile failure, got %v", err)
	}
	if s.UserID != "u1" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestSubscribeNotifiedOnLoginAndLogout(t *testing.T) {
	provider := &stubProvider{user: &auth.User{ID: "u1", Email: "juan@example.com"}}
	m := New(provider, newStubRemote(), testLogger())

	var got []*domain.Session
	m.Subscribe(func(s *domain.Session) {
		got = append(got, s)
	})

	if _, err := m.SignIn(context.Background(), "juan@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	m.SignOut(context.Background())

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0] == nil || got[0].UserID != "u1" {
		t.Fatalf("expected login notification with session, got %+v", got[0])
	}
	if got[1] != nil {
		t.Fatalf("expected nil logout notification, got %+v", got[1])
	}
}

func TestSubscribeTeardown(t *testing.T) {
	provider := &stubProvider{user: &auth.User{ID: "u1", Email: "juan@example.com"}}
	m := New(provider, newStubRemote(), testLogger())

	calls := 0
	cancel := m.Subscribe(func(*domain.Session) { calls++ })
	cancel()

	if _, err := m.SignIn(context.Background(), "juan@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no notifications after teardown, got %d", calls)
	}
}

func TestSignOutCallsProvider(t *testing.T) {
	provider := &stubProvider{user: &auth.User{ID: "u1", Email: "juan@example.com"}}
	m := New(provider, newStubRemote(), testLogger())

	if _, err := m.SignIn(context.Background(), "juan@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	m.SignOut(context.Background())

	if len(provider.signedOut) != 1 || provider.signedOut[0] != "u1" {
		t.Fatalf("expected provider sign-out for u1, got %v", provider.signedOut)
	}
	if m.Current() != nil {
		t.Fatalf("expected nil session after sign out")
	}
}

func TestPhoneSignInFlow(t *testing.T) {
	conf := &stubConfirmation{user: &auth.User{ID: "u1", Email: "juan@example.com"}}
	provider := &stubProvider{phoneConf: conf}
	m := New(provider, newStubRemote(), testLogger())

	if err := m.StartPhoneSignIn(context.Background(), "+34600000000"); err != nil {
		t.Fatalf("start phone sign in: %v", err)
	}
	s, err := m.ConfirmPhoneSignIn(context.Background(), "123456")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if conf.code != "123456" {
		t.Fatalf("expected code forwarded to confirmation, got %q", conf.code)
	}
	if s.UserID != "u1" {
		t.Fatalf("unexpected session %+v", s)
	}

	// The confirmation is consumed.
	if _, err := m.ConfirmPhoneSignIn(context.Background(), "123456"); err == nil {
		t.Fatalf("expected error confirming with no sign-in in progress")
	}
}
