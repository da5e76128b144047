package localstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Keys under which the storefront persists its collections.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
)

// Store is durable local key-value storage, synchronous from the caller's
// point of view. It is the fallback of record when the remote store is
// unreachable.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

type fileStore struct {
	dir string
}

// NewFile returns a Store keeping one file per key under dir.
func NewFile(dir string) (Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) Get(key string) (string, bool) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// Set writes via a temp file and rename so a crash never leaves a torn value.
func (s *fileStore) Set(key, value string) error {
	tmp, err := os.CreateTemp(s.dir, key+"-*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}
