package cas

import (
	"errors"

	"github.com/spf13/afero"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
)

var (
	_ ports.CacheStore = (*TieredStore)(nil)
	_ Pruner           = (*TieredStore)(nil)
)

// TieredStore serves lookups from a fast store and falls back to a slower one.
// Hits in the slow store are promoted.
type TieredStore struct {
	fast ports.CacheStore
	slow ports.CacheStore
}

// NewTieredStore creates a TieredStore.
func NewTieredStore(fast, slow ports.CacheStore) *TieredStore {
	return &TieredStore{fast: fast, slow: slow}
}

// Get retrieves the entry stored under key.
func (s *TieredStore) Get(key string) (*domain.CacheEntry, error) {
	entry, err := s.fast.Get(key)
	if err != nil || entry != nil {
		return entry, err
	}

	entry, err = s.slow.Get(key)
	if err != nil || entry == nil {
		return entry, err
	}
	if err := s.fast.Put(key, *entry, entry.Size()); err != nil {
		return nil, err
	}
	return entry, nil
}

// Put writes the entry to both tiers.
func (s *TieredStore) Put(key string, entry domain.CacheEntry, size int64) error {
	return errors.Join(
		s.fast.Put(key, entry, size),
		s.slow.Put(key, entry, size),
	)
}

// Prune forwards to the slow tier. The fast tier is bounded on its own.
func (s *TieredStore) Prune(keep []string) (int, error) {
	p, ok := s.slow.(Pruner)
	if !ok {
		return 0, nil
	}
	return p.Prune(keep)
}

// Open creates the cache store described by cfg.
// The memory tier is always present; cfg.Dir adds a persistent tier on fsys.
func Open(fsys afero.Fs, cfg domain.CacheConfig) (ports.CacheStore, error) {
	mem := NewMemoryStore(cfg.Size)
	if cfg.Dir == "" {
		return mem, nil
	}

	disk, err := NewStore(fsys, cfg.Dir)
	if err != nil {
		return nil, err
	}
	return NewTieredStore(mem, disk), nil
}
