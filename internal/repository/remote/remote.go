package remote

import (
	"context"
	"encoding/json"
)

// Collection names used by the storefront. User-scoped collections tag every
// record with a "userId" field.
const (
	CollectionProducts  = "products"
	CollectionReviews   = "reviews"
	CollectionOrders    = "orders"
	CollectionUsers     = "users"
	CollectionCarts     = "carts"
	CollectionWishlists = "wishlists"
)

// FieldUserID is the tag field queried for user-scoped records.
const FieldUserID = "userId"

// Doc is a single record of a keyed collection.
type Doc struct {
	ID   string
	Data map[string]interface{}
}

// Store is a keyed-collection CRUD capability. Every call is fallible and
// network-latent; callers treat failures as recoverable and fall back to
// local state.
type Store interface {
	All(ctx context.Context, collection string) ([]Doc, error)
	Query(ctx context.Context, collection, field, value string) ([]Doc, error)
	Get(ctx context.Context, collection, id string) (Doc, error)
	Set(ctx context.Context, collection, id string, data map[string]interface{}) error
	Add(ctx context.Context, collection string, data map[string]interface{}) (string, error)
	Delete(ctx context.Context, collection, id string) error
}

// Encode converts a domain value into a collection record via its JSON form.
func Encode(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Decode maps a record back onto a domain value.
func Decode(doc Doc, v interface{}) error {
	raw, err := json.Marshal(doc.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
