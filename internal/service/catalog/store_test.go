package catalog

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/repository/remote"
)

type stubRemote struct {
	products []remote.Doc
	reviews  []remote.Doc
	allErr   error
	addErr   error
	added    []map[string]interface{}
}

func (s *stubRemote) All(_ context.Context, collection string) ([]remote.Doc, error) {
	if s.allErr != nil {
		return nil, s.allErr
	}
	if collection == remote.CollectionReviews {
		return s.reviews, nil
	}
	return s.products, nil
}

func (s *stubRemote) Add(_ context.Context, _ string, data map[string]interface{}) (string, error) {
	if s.addErr != nil {
		return "", s.addErr
	}
	s.added = append(s.added, data)
	return "r-new", nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestNewPreloadsFallbackCatalog(t *testing.T) {
	s := New(&stubRemote{}, testLogger())
	if len(s.Products()) == 0 {
		t.Fatalf("expected non-empty catalog before any refresh")
	}
}

func TestRefreshFailureKeepsFallback(t *testing.T) {
	s := New(&stubRemote{allErr: errors.New("unavailable")}, testLogger())
	before := len(s.Products())

	s.Refresh(context.Background())

	if got := len(s.Products()); got != before {
		t.Fatalf("expected catalog unchanged after failed refresh, got %d products", got)
	}
}

func TestRefreshEmptyResultKeepsCatalog(t *testing.T) {
	s := New(&stubRemote{}, testLogger())

	s.Refresh(context.Background())

	if len(s.Products()) == 0 {
		t.Fatalf("expected fallback catalog kept when remote returns no products")
	}
}

func TestRefreshReplacesCatalog(t *testing.T) {
	data, err := remote.Encode(domain.Product{Name: "Remoto", Price: 99})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	rs := &stubRemote{products: []remote.Doc{{ID: "p-remote", Data: data}}}
	s := New(rs, testLogger())

	s.Refresh(context.Background())

	products := s.Products()
	if len(products) != 1 || products[0].ID != "p-remote" {
		t.Fatalf("expected remote catalog to replace fallback, got %v", products)
	}
}

func TestFindByID(t *testing.T) {
	s := New(&stubRemote{}, testLogger())
	first := s.Products()[0]

	got, err := s.FindByID(first.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != first.Name {
		t.Fatalf("expected %q, got %q", first.Name, got.Name)
	}

	if _, err := s.FindByID("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	s := New(&stubRemote{}, testLogger())
	name := s.Products()[0].Name

	lower := s.Search(strings.ToLower(name))
	upper := s.Search(strings.ToUpper(name))
	if len(lower) == 0 {
		t.Fatalf("expected search to match %q", name)
	}
	if len(lower) != len(upper) {
		t.Fatalf("expected case-insensitive match counts to agree")
	}
	if len(s.Search("zzzz-no-match")) != 0 {
		t.Fatalf("expected no matches for unknown term")
	}
}

func TestSortedByPrice(t *testing.T) {
	s := New(&stubRemote{}, testLogger())
	in := []domain.Product{
		{ID: "a", Name: "A", Price: 50},
		{ID: "b", Name: "B", Price: 25},
		{ID: "c", Name: "C", Price: 40},
	}

	asc := s.SortedBy(in, SortPriceAsc)
	if asc[0].Price != 25 || asc[1].Price != 40 || asc[2].Price != 50 {
		t.Fatalf("ascending sort wrong: %v", asc)
	}
	desc := s.SortedBy(in, SortPriceDesc)
	if desc[0].Price != 50 || desc[2].Price != 25 {
		t.Fatalf("descending sort wrong: %v", desc)
	}

	// Input order is untouched.
	if in[0].ID != "a" {
		t.Fatalf("expected input slice unmodified")
	}
}

func TestSortedByPriceTiesKeepOrder(t *testing.T) {
	s := New(&stubRemote{}, testLogger())
	in := []domain.Product{
		{ID: "a", Name: "A", Price: 25},
		{ID: "b", Name: "B", Price: 25},
		{ID: "c", Name: "C", Price: 10},
	}

	out := s.SortedBy(in, SortPriceAsc)
	if out[1].ID != "a" || out[2].ID != "b" {
		t.Fatalf("expected equal prices to keep input order, got %v", out)
	}
}

func TestSortedByUnknownCriterion(t *testing.T) {
	s := New(&stubRemote{}, testLogger())
	in := []domain.Product{{ID: "b"}, {ID: "a"}}

	out := s.SortedBy(in, SortCriterion("bogus"))
	if out[0].ID != "b" || out[1].ID != "a" {
		t.Fatalf("expected unknown criterion to preserve order, got %v", out)
	}
}

func TestSortedByRating(t *testing.T) {
	s := New(&stubRemote{}, testLogger())
	reviewed := s.Products()[0]
	unreviewed := domain.Product{ID: "no-reviews", Name: "Sin reseñas"}

	out := s.SortedBy([]domain.Product{unreviewed, reviewed}, SortRating)
	if out[0].ID != reviewed.ID {
		t.Fatalf("expected reviewed product ranked above unrated one, got %v", out)
	}
}

func TestFeatured(t *testing.T) {
	s := New(&stubRemote{}, testLogger())
	all := s.Products()

	first := s.Featured(3)
	if len(first) != 3 {
		t.Fatalf("expected 3 featured products, got %d", len(first))
	}
	for i := range first {
		if first[i].ID != all[i].ID {
			t.Fatalf("expected catalog order, got %v", first)
		}
	}

	if got := s.Featured(len(all) + 5); len(got) != len(all) {
		t.Fatalf("expected whole catalog for oversized n, got %d", len(got))
	}
	if got := s.Featured(0); len(got) != 0 {
		t.Fatalf("expected empty slice for n=0, got %d", len(got))
	}
	if got := s.Featured(-1); len(got) != 0 {
		t.Fatalf("expected empty slice for negative n, got %d", len(got))
	}
}

func TestReviewsBy(t *testing.T) {
	rs := &stubRemote{}
	s := New(rs, testLogger())

	if err := s.AddReview(context.Background(), domain.Review{ProductID: "1", UserID: "u1", User: "Juan", Rating: 4, Comment: "bien"}); err != nil {
		t.Fatalf("add review: %v", err)
	}
	if err := s.AddReview(context.Background(), domain.Review{ProductID: "2", UserID: "u2", User: "Ana", Rating: 5}); err != nil {
		t.Fatalf("add review: %v", err)
	}

	mine := s.ReviewsBy("u1")
	if len(mine) != 1 || mine[0].Comment != "bien" {
		t.Fatalf("expected u1's single review, got %v", mine)
	}
	if got := s.ReviewsBy("nobody"); len(got) != 0 {
		t.Fatalf("expected no reviews for unknown user, got %v", got)
	}

	// The fallback reviews are anonymous; a blank id must not claim them.
	if got := s.ReviewsBy(""); len(got) != 0 {
		t.Fatalf("expected blank user id to match nothing, got %v", got)
	}
}

func TestAddReviewValidation(t *testing.T) {
	s := New(&stubRemote{}, testLogger())

	err := s.AddReview(context.Background(), domain.Review{ProductID: "p1", Rating: 0})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for rating 0, got %v", err)
	}
	err = s.AddReview(context.Background(), domain.Review{ProductID: "p1", Rating: 6})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for rating 6, got %v", err)
	}
	err = s.AddReview(context.Background(), domain.Review{Rating: 3})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for missing product id, got %v", err)
	}
}

func TestAddReviewDefaultsAnonymousUser(t *testing.T) {
	rs := &stubRemote{}
	s := New(rs, testLogger())

	if err := s.AddReview(context.Background(), domain.Review{ProductID: "p1", Rating: 4}); err != nil {
		t.Fatalf("add review: %v", err)
	}
	if len(rs.added) != 1 {
		t.Fatalf("expected review written remotely")
	}
	if rs.added[0]["user"] != "Anónimo" {
		t.Fatalf("expected blank user defaulted to Anónimo, got %v", rs.added[0]["user"])
	}

	reviews := s.ReviewsFor("p1")
	if len(reviews) != 1 || reviews[0].ID != "r-new" {
		t.Fatalf("expected review appended in memory with remote id, got %v", reviews)
	}
}

func TestAddReviewRemoteFailure(t *testing.T) {
	rs := &stubRemote{addErr: errors.New("unavailable")}
	s := New(rs, testLogger())
	before := len(s.ReviewsFor("p1"))

	err := s.AddReview(context.Background(), domain.Review{ProductID: "p1", Rating: 5})
	if !errors.Is(err, domain.ErrRemoteUnavailable) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
	if len(s.ReviewsFor("p1")) != before {
		t.Fatalf("expected reviews unchanged after failed write")
	}
}
