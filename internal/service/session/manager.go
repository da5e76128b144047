package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/repository/remote"
)

type remoteStore interface {
	Get(ctx context.Context, collection, id string) (remote.Doc, error)
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
}

// profile is the stored user record; created once on first login and never
// overwritten with session-only data afterwards.
type profile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Listener is invoked once per authentication transition, with the new
// session on login and nil on logout.
type Listener func(*domain.Session)

// Manager wraps the auth capability, holds the current session and fans out
// session transitions to its subscribers. It is the system's sole
// asynchronous notification channel; dependent stores subscribe instead of
// polling.
type Manager struct {
	provider auth.Provider
	remote   remoteStore
	logger   *log.Logger

	mu      sync.Mutex
	current *domain.Session
	subs    map[int]Listener
	nextSub int
	pending auth.Confirmation
}

func New(provider auth.Provider, rs remoteStore, logger *log.Logger) *Manager {
	return &Manager{
		provider: provider,
		remote:   rs,
		logger:   logger,
		subs:     make(map[int]Listener),
	}
}

// Current returns the active session, or nil when unauthenticated.
func (m *Manager) Current() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// Subscribe registers a listener and returns its teardown func. Listeners
// registered after login are not retroactively notified.
func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify(s *domain.Session) {
	m.mu.Lock()
	listeners := make([]Listener, 0, len(m.subs))
	for _, fn := range m.subs {
		listeners = append(listeners, fn)
	}
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(s)
	}
}

// SignIn authenticates with email and password. Provider failures are
// returned verbatim for the caller to show the user.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.provider == nil {
		return nil, errors.New("authentication provider not configured")
	}
	user, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, user), nil
}

// SignUp registers a new account and starts its session.
func (m *Manager) SignUp(ctx context.Context, email, password, displayName string) (*domain.Session, error) {
	if m.provider == nil {
		return nil, errors.New("authentication provider not configured")
	}
	user, err := m.provider.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, user), nil
}

// SignInWithGoogle authenticates with a Google-provider ID token.
func (m *Manager) SignInWithGoogle(ctx context.Context, idToken string) (*domain.Session, error) {
	if m.provider == nil {
		return nil, errors.New("authentication provider not configured")
	}
	user, err := m.provider.SignInWithGoogle(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, user), nil
}

// StartPhoneSignIn sends the verification code; the pending confirmation is
// completed by ConfirmPhoneSignIn. A second start replaces the first.
func (m *Manager) StartPhoneSignIn(ctx context.Context, phoneNumber string) error {
	if m.provider == nil {
		return errors.New("authentication provider not configured")
	}
	confirmation, err := m.provider.SignInWithPhone(ctx, phoneNumber)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.pending = confirmation
	m.mu.Unlock()
	return nil
}

// ConfirmPhoneSignIn completes a phone sign-in with the received code.
func (m *Manager) ConfirmPhoneSignIn(ctx context.Context, code string) (*domain.Session, error) {
	m.mu.Lock()
	confirmation := m.pending
	m.pending = nil
	m.mu.Unlock()
	if confirmation == nil {
		return nil, errors.New("no phone sign-in in progress")
	}
	user, err := confirmation.Confirm(ctx, code)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, user), nil
}

// SignOut destroys the session and notifies subscribers. In-memory cart and
// wishlist are deliberately untouched; they fall back to local-only mode.
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.Lock()
	current := m.current
	m.current = nil
	m.mu.Unlock()

	if current != nil && m.provider != nil {
		if err := m.provider.SignOut(ctx, current.UserID); err != nil {
			m.logger.Printf("session: provider sign-out failed: %v", err)
		}
	}
	m.notify(nil)
}

// establish builds the session, reconciles the stored profile and notifies
// subscribers. The profile is created iff absent; re-login never overwrites
// stored profile fields with session-only data. A failed profile fetch only
// warns and never blocks the session.
func (m *Manager) establish(ctx context.Context, user *auth.User) *domain.Session {
	session := &domain.Session{
		UserID: user.ID,
		Name:   user.DisplayName,
		Email:  user.Email,
	}
	if session.Name == "" {
		session.Name = user.Email
	}

	doc, err := m.remote.Get(ctx, remote.CollectionUsers, user.ID)
	switch {
	case err == nil:
		var p profile
		if err := remote.Decode(doc, &p); err != nil {
			m.logger.Printf("session: malformed profile for %s: %v", user.ID, err)
			break
		}
		if p.Name != "" {
			session.Name = p.Name
		}
		if p.Email != "" {
			session.Email = p.Email
		}
	case errors.Is(err, domain.ErrNotFound):
		data, encErr := remote.Encode(profile{
			Name:      session.Name,
			Email:     session.Email,
			CreatedAt: time.Now().UTC(),
		})
		if encErr == nil {
			if err := m.remote.Set(ctx, remote.CollectionUsers, user.ID, data); err != nil {
				m.logger.Printf("session: creating profile for %s failed: %v", user.ID, err)
			}
		}
	default:
		m.logger.Printf("session: profile lookup for %s failed: %v", user.ID, err)
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	m.notify(m.Current())
	return m.Current()
}
