package ports

import "go.trai.ch/lessc/internal/core/domain"

// CacheStore stores compile results between compilations.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks
type CacheStore interface {
	// Get retrieves the entry stored under key.
	// Returns nil, nil if not found.
	Get(key string) (*domain.CacheEntry, error)

	// Put stores the entry under key, replacing any previous entry.
	// size is the approximate number of bytes the entry occupies.
	Put(key string, entry domain.CacheEntry, size int64) error
}
