package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
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

// Store holds the wishlist: a set of product snapshots keyed by product id.
// Persistence follows the cart store's pattern: local storage after every
// mutation, best-effort full-replace mirror to the remote store under a
// session.
type Store struct {
	local    localstore.Store
	remote   remoteStore
	sessions sessionSource
	logger   *log.Logger

	mu      sync.Mutex
	entries []domain.WishlistEntry
}

func New(local localstore.Store, rs remoteStore, sessions sessionSource, logger *log.Logger) *Store {
	s := &Store{local: local, remote: rs, sessions: sessions, logger: logger}
	s.loadLocal()
	return s
}

func (s *Store) loadLocal() {
	raw, ok := s.local.Get(localstore.KeyWishlist)
	if !ok {
		return
	}
	var entries []domain.WishlistEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Printf("wishlist: discarding malformed local state: %v", err)
		return
	}
	s.entries = entries
}

func (s *Store) persistLocal() error {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	return s.local.Set(localstore.KeyWishlist, string(raw))
}

// Add saves a product snapshot. Adding a product already present is a no-op;
// the return value reports whether the entry was actually added.
func (s *Store) Add(ctx context.Context, product domain.Product) (bool, error) {
	s.mu.Lock()
	for _, e := range s.entries {
		if e.ProductID == product.ID {
			s.mu.Unlock()
			return false, nil
		}
	}
	s.entries = append(s.entries, domain.EntryFromProduct(product))
	err := s.persistLocal()
	s.mu.Unlock()
	if err != nil {
		return false, err
	}

	s.syncBestEffort(ctx)
	return true, nil
}

// Remove deletes the entry for the product id; absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	err := s.persistLocal()
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.syncBestEffort(ctx)
	return nil
}

// Contains reports whether the product is saved.
func (s *Store) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// Entries returns a snapshot of the wishlist.
func (s *Store) Entries() []domain.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.WishlistEntry(nil), s.entries...)
}

func (s *Store) syncBestEffort(ctx context.Context) {
	if s.sessions.Current() == nil {
		return
	}
	if err := s.SyncRemote(ctx); err != nil {
		s.logger.Printf("wishlist: remote sync failed, local state remains source of truth: %v", err)
	}
}

// SyncRemote mirrors the wishlist with the same full-replace policy as the
// cart store.
func (s *Store) SyncRemote(ctx context.Context) error {
	session := s.sessions.Current()
	if session == nil {
		return domain.ErrNotAuthenticated
	}
	entries := s.Entries()

	existing, err := s.remote.Query(ctx, remote.CollectionWishlists, remote.FieldUserID, session.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	for _, doc := range existing {
		if err := s.remote.Delete(ctx, remote.CollectionWishlists, doc.ID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
		}
	}
	for _, entry := range entries {
		data, err := remote.Encode(entry)
		if err != nil {
			return err
		}
		data[remote.FieldUserID] = session.UserID
		if _, err := s.remote.Add(ctx, remote.CollectionWishlists, data); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
		}
	}
	return nil
}

// ReconcileOnLogin replaces the wishlist with the user's remote entries on
// success; memory is kept on failure.
func (s *Store) ReconcileOnLogin(ctx context.Context, userID string) {
	docs, err := s.remote.Query(ctx, remote.CollectionWishlists, remote.FieldUserID, userID)
	if err != nil {
		s.logger.Printf("wishlist: reconcile failed, keeping local state: %v", err)
		return
	}
	entries := make([]domain.WishlistEntry, 0, len(docs))
	for _, doc := range docs {
		var e domain.WishlistEntry
		if err := remote.Decode(doc, &e); err != nil {
			s.logger.Printf("wishlist: skipping malformed remote entry %s: %v", doc.ID, err)
			continue
		}
		entries = append(entries, e)
	}

	s.mu.Lock()
	s.entries = entries
	if err := s.persistLocal(); err != nil {
		s.logger.Printf("wishlist: persisting reconciled state failed: %v", err)
	}
	s.mu.Unlock()
}
