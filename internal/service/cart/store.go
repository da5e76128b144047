package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/repository/localstore"
	"tienda-storefront/internal/repository/remote"
)

type remoteStore interface {
	Query(ctx context.Context, collection, field, value string) ([]remote.Doc, error)
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	Delete(ctx context.Context, collection, id string) error
}

type sessionSource interface {
	Current() *domain.Session
}

// Store holds the cart lines for the active session. Every mutation persists
// to local storage unconditionally (the fallback of record) and then mirrors
// to the remote store when a session exists; a failed mirror degrades to a
// warning and leaves local state authoritative.
type Store struct {
	local    localstore.Store
	remote   remoteStore
	sessions sessionSource
	logger   *log.Logger

	mu    sync.Mutex
	lines []domain.CartLine
}

// New builds a Store loaded from local storage.
func New(local localstore.Store, rs remoteStore, sessions sessionSource, logger *log.Logger) *Store {
	s := &Store{local: local, remote: rs, sessions: sessions, logger: logger}
	s.loadLocal()
	return s
}

func (s *Store) loadLocal() {
	raw, ok := s.local.Get(localstore.KeyCart)
	if !ok {
		return
	}
	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logger.Printf("cart: discarding malformed local state: %v", err)
		return
	}
	s.lines = lines
}

// persistLocal serializes the full collection to local storage. It is the
// last step of every successful mutation and is never skipped.
func (s *Store) persistLocal() error {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		return err
	}
	return s.local.Set(localstore.KeyCart, string(raw))
}

// Add appends a line for (product, size, color), or increments the quantity
// when that exact key already exists. A different size or color of the same
// product is a distinct line.
func (s *Store) Add(ctx context.Context, product domain.Product, size, color string) error {
	if strings.TrimSpace(size) == "" || strings.TrimSpace(color) == "" {
		return fmt.Errorf("%w: size and color required", domain.ErrValidation)
	}
	key := domain.LineKey{ProductID: product.ID, Size: size, Color: color}

	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].Key() == key {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, domain.CartLine{
			ProductID: product.ID,
			Size:      size,
			Color:     color,
			Quantity:  1,
			Price:     product.Price,
			Name:      product.Name,
			Image:     product.Image,
		})
	}
	err := s.persistLocal()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.syncBestEffort(ctx)
	return nil
}

// Remove deletes the line with the given key; absent keys are a no-op.
func (s *Store) Remove(ctx context.Context, key domain.LineKey) error {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.Key() != key {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	err := s.persistLocal()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.syncBestEffort(ctx)
	return nil
}

// Clear empties the cart; used by checkout after the order is persisted.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.lines = nil
	err := s.persistLocal()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.syncBestEffort(ctx)
	return nil
}

// Lines returns a snapshot of the cart.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartLine(nil), s.lines...)
}

// Total is the sum of price×quantity over the current lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

func (s *Store) syncBestEffort(ctx context.Context) {
	if s.sessions.Current() == nil {
		return
	}
	if err := s.SyncRemote(ctx); err != nil {
		s.logger.Printf("cart: remote sync failed, local state remains source of truth: %v", err)
	}
}

// SyncRemote mirrors the cart to the remote store with a full replace:
// every record tagged with the session's user id is deleted, then the
// current lines are written as new records. Deletes complete before inserts
// begin, so a failed sync never interleaves old and new records.
func (s *Store) SyncRemote(ctx context.Context) error {
	session := s.sessions.Current()
	if session == nil {
		return domain.ErrNotAuthenticated
	}
	lines := s.Lines()

	existing, err := s.remote.Query(ctx, remote.CollectionCarts, remote.FieldUserID, session.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	for _, doc := range existing {
		if err := s.remote.Delete(ctx, remote.CollectionCarts, doc.ID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
		}
	}
	for _, line := range lines {
		data, err := remote.Encode(line)
		if err != nil {
			return err
		}
		data[remote.FieldUserID] = session.UserID
		if _, err := s.remote.Add(ctx, remote.CollectionCarts, data); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
		}
	}
	return nil
}

// ReconcileOnLogin loads the user's remote cart. On success the remote
// contents replace the in-memory lines (remote wins, even when empty) and
// are re-persisted locally; on failure whatever is in memory is kept.
func (s *Store) ReconcileOnLogin(ctx context.Context, userID string) {
	docs, err := s.remote.Query(ctx, remote.CollectionCarts, remote.FieldUserID, userID)
	if err != nil {
		s.logger.Printf("cart: reconcile failed, keeping local state: %v", err)
		return
	}
	lines := make([]domain.CartLine, 0, len(docs))
	for _, doc := range docs {
		var l domain.CartLine
		if err := remote.Decode(doc, &l); err != nil {
			s.logger.Printf("cart: skipping malformed remote line %s: %v", doc.ID, err)
			continue
		}
		lines = append(lines, l)
	}

	s.mu.Lock()
	s.lines = lines
	if err := s.persistLocal(); err != nil {
		s.logger.Printf("cart: persisting reconciled state failed: %v", err)
	}
	s.mu.Unlock()
}
