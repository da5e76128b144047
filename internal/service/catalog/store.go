package catalog

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/repository/remote"
)

// SortCriterion selects the ordering produced by SortedBy. Values match the
// storefront's sort selector.
type SortCriterion string

const (
	SortPriceAsc  SortCriterion = "price-low"
	SortPriceDesc SortCriterion = "price-high"
	SortName      SortCriterion = "name"
	SortRating    SortCriterion = "rating"
)

type remoteStore interface {
	All(ctx context.Context, collection string) ([]remote.Doc, error)
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
}

// Store holds the product and review collections. It is read-mostly: the
// catalog is replaced wholesale on refresh, reviews are append-only.
type Store struct {
	remote remoteStore
	logger *log.Logger

	mu       sync.Mutex
	products []domain.Product
	reviews  []domain.Review
}

// New builds a Store preloaded with the fallback catalog, so reads succeed
// before (and despite) any remote refresh.
func New(rs remoteStore, logger *log.Logger) *Store {
	return &Store{
		remote:   rs,
		logger:   logger,
		products: FallbackProducts(),
		reviews:  FallbackReviews(),
	}
}

// Refresh replaces the catalog from the remote store. Any failure is
// silent: the current contents (at minimum the fallback catalog) are kept
// and a warning is logged.
func (s *Store) Refresh(ctx context.Context) {
	productDocs, err := s.remote.All(ctx, remote.CollectionProducts)
	if err != nil {
		s.logger.Printf("catalog refresh failed, keeping current products: %v", err)
		return
	}
	products := make([]domain.Product, 0, len(productDocs))
	for _, doc := range productDocs {
		var p domain.Product
		if err := remote.Decode(doc, &p); err != nil {
			s.logger.Printf("catalog refresh: skipping malformed product %s: %v", doc.ID, err)
			continue
		}
		p.ID = doc.ID
		products = append(products, p)
	}
	if len(products) == 0 {
		s.logger.Printf("catalog refresh returned no products, keeping current catalog")
		return
	}

	reviews := s.loadReviews(ctx)

	s.mu.Lock()
	s.products = products
	if reviews != nil {
		s.reviews = reviews
	}
	s.mu.Unlock()
}

func (s *Store) loadReviews(ctx context.Context) []domain.Review {
	docs, err := s.remote.All(ctx, remote.CollectionReviews)
	if err != nil {
		s.logger.Printf("review refresh failed, keeping current reviews: %v", err)
		return nil
	}
	reviews := make([]domain.Review, 0, len(docs))
	for _, doc := range docs {
		var r domain.Review
		if err := remote.Decode(doc, &r); err != nil {
			s.logger.Printf("review refresh: skipping malformed review %s: %v", doc.ID, err)
			continue
		}
		r.ID = doc.ID
		reviews = append(reviews, r)
	}
	return reviews
}

// Products returns the full catalog in catalog order.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

// Featured returns the first n products in catalog order. A non-positive n
// yields an empty slice.
func (s *Store) Featured(n int) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n > len(s.products) {
		n = len(s.products)
	}
	return append([]domain.Product(nil), s.products[:n]...)
}

// FindByID returns the product or domain.ErrNotFound.
func (s *Store) FindByID(id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ByCategory filters by exact category tag.
func (s *Store) ByCategory(category string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search matches the term case-insensitively against product names.
func (s *Store) Search(term string) []domain.Product {
	term = strings.ToLower(term)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

// SortedBy orders the given products by the criterion. The sort is stable:
// ties keep catalog order. A product's rating is the average of its reviews,
// zero when it has none. An unknown criterion returns the input unchanged.
func (s *Store) SortedBy(products []domain.Product, criterion SortCriterion) []domain.Product {
	out := append([]domain.Product(nil), products...)
	switch criterion {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case SortRating:
		ratings := s.averageRatings()
		sort.SliceStable(out, func(i, j int) bool { return ratings[out[i].ID] > ratings[out[j].ID] })
	}
	return out
}

func (s *Store) averageRatings() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, r := range s.reviews {
		sums[r.ProductID] += r.Rating
		counts[r.ProductID]++
	}
	avg := make(map[string]float64, len(sums))
	for id, sum := range sums {
		avg[id] = float64(sum) / float64(counts[id])
	}
	return avg
}

// ReviewsFor lists the reviews of one product.
func (s *Store) ReviewsFor(productID string) []domain.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Review
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out
}

// ReviewsBy lists the reviews a user has written. Anonymous reviews carry no
// user id and are never attributed, so a blank id matches nothing.
func (s *Store) ReviewsBy(userID string) []domain.Review {
	if userID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Review
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// AddReview validates and persists a review, then appends it in memory.
// A failed remote write surfaces as ErrRemoteUnavailable and leaves the
// collection unchanged.
func (s *Store) AddReview(ctx context.Context, review domain.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	}
	if strings.TrimSpace(review.ProductID) == "" {
		return fmt.Errorf("%w: product id required", domain.ErrValidation)
	}
	if strings.TrimSpace(review.User) == "" {
		review.User = "Anónimo"
	}
	if review.Date.IsZero() {
		review.Date = time.Now().UTC()
	}

	data, err := remote.Encode(review)
	if err != nil {
		return err
	}
	id, err := s.remote.Add(ctx, remote.CollectionReviews, data)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	review.ID = id

	s.mu.Lock()
	s.reviews = append(s.reviews, review)
	s.mu.Unlock()
	return nil
}
