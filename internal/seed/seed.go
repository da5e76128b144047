package seed

import (
	"context"
	"fmt"

	"tienda-storefront/internal/repository/remote"
	"tienda-storefront/internal/service/catalog"
)

// Apply writes the fallback catalog into the remote store for manual
// testing. It is idempotent: products and reviews are written under fixed
// ids, so re-running overwrites rather than duplicates.
func Apply(ctx context.Context, store remote.Store) error {
	for _, p := range catalog.FallbackProducts() {
		data, err := remote.Encode(p)
		if err != nil {
			return fmt.Errorf("encode product %s: %w", p.ID, err)
		}
		if err := store.Set(ctx, remote.CollectionProducts, p.ID, data); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}

	for i, r := range catalog.FallbackReviews() {
		data, err := remote.Encode(r)
		if err != nil {
			return fmt.Errorf("encode review %d: %w", i, err)
		}
		id := fmt.Sprintf("seed-review-%d", i+1)
		if err := store.Set(ctx, remote.CollectionReviews, id, data); err != nil {
			return fmt.Errorf("seed review %s: %w", id, err)
		}
	}
	return nil
}
