package order

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/repository/remote"
)

type remoteStore interface {
	Query(ctx context.Context, collection, field, value string) ([]remote.Doc, error)
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
}

type cartStore interface {
	Lines() []domain.CartLine
	Clear(ctx context.Context) error
}

type sessionSource interface {
	Current() *domain.Session
}

// Processor converts the current cart into an immutable order and keeps the
// order history for the active session.
type Processor struct {
	remote   remoteStore
	cart     cartStore
	sessions sessionSource
	logger   *log.Logger

	mu      sync.Mutex
	history []domain.Order
	lastID  int64
}

func New(rs remoteStore, cart cartStore, sessions sessionSource, logger *log.Logger) *Processor {
	return &Processor{remote: rs, cart: cart, sessions: sessions, logger: logger}
}

// Checkout snapshots the cart into an order and persists it remotely. The
// cart is cleared only after the order is confirmed persisted; on a failed
// write the cart is left intact and the error is surfaced to the caller.
func (p *Processor) Checkout(ctx context.Context) (*domain.Order, error) {
	session := p.sessions.Current()
	if session == nil {
		return nil, domain.ErrNotAuthenticated
	}
	lines := p.cart.Lines()
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	// Total is computed from the snapshot, not from the live cart, so a
	// concurrent mutation cannot make it disagree with Items.
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}

	order := domain.Order{
		ID:     p.nextID(),
		UserID: session.UserID,
		Items:  lines,
		Total:  total,
		Date:   time.Now().UTC(),
		Status: domain.OrderStatusPending,
	}

	data, err := remote.Encode(order)
	if err != nil {
		return nil, err
	}
	if err := p.remote.Set(ctx, remote.CollectionOrders, order.ID, data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}

	p.mu.Lock()
	p.history = append(p.history, order)
	p.mu.Unlock()

	if err := p.cart.Clear(ctx); err != nil {
		p.logger.Printf("order %s placed but clearing cart failed: %v", order.ID, err)
	}
	return &order, nil
}

// nextID issues a time-based identifier, strictly increasing so two
// checkouts in the same millisecond never collide.
func (p *Processor) nextID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= p.lastID {
		id = p.lastID + 1
	}
	p.lastID = id
	return strconv.FormatInt(id, 10)
}

// LoadHistory fetches the user's orders from the remote store; on failure
// the current history is kept.
func (p *Processor) LoadHistory(ctx context.Context, userID string) {
	docs, err := p.remote.Query(ctx, remote.CollectionOrders, remote.FieldUserID, userID)
	if err != nil {
		p.logger.Printf("orders: loading history failed: %v", err)
		return
	}
	orders := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		var o domain.Order
		if err := remote.Decode(doc, &o); err != nil {
			p.logger.Printf("orders: skipping malformed order %s: %v", doc.ID, err)
			continue
		}
		if o.ID == "" {
			o.ID = doc.ID
		}
		orders = append(orders, o)
	}

	p.mu.Lock()
	p.history = orders
	p.mu.Unlock()
}

// ClearHistory drops the in-memory history; called on logout so one user's
// orders never show under the next session.
func (p *Processor) ClearHistory() {
	p.mu.Lock()
	p.history = nil
	p.mu.Unlock()
}

// History returns a snapshot of the loaded order history.
func (p *Processor) History() []domain.Order {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Order(nil), p.history...)
}
