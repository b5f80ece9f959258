package cas

import (
	"sync"

	"github.com/golang/groupcache/lru"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
)

var _ ports.CacheStore = (*MemoryStore)(nil)

type memoryItem struct {
	entry domain.CacheEntry
	size  int64
}

// MemoryStore is an in-memory ports.CacheStore bounded by the total size of its entries.
// The least recently used entries are evicted first.
type MemoryStore struct {
	mu      sync.Mutex
	entries *lru.Cache
	maxSize int64
	size    int64
}

// NewMemoryStore creates a MemoryStore holding at most maxSize bytes.
// A non-positive maxSize selects domain.DefaultCacheSize.
func NewMemoryStore(maxSize int64) *MemoryStore {
	if maxSize <= 0 {
		maxSize = domain.DefaultCacheSize
	}
	s := &MemoryStore{
		entries: lru.New(0),
		maxSize: maxSize,
	}
	s.entries.OnEvicted = func(_ lru.Key, value any) {
		s.size -= value.(memoryItem).size
	}
	return s
}

// Get retrieves the entry stored under key.
func (s *MemoryStore) Get(key string) (*domain.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.entries.Get(key)
	if !ok {
		return nil, nil
	}
	entry := v.(memoryItem).entry
	return &entry, nil
}

// Put stores the entry under key, evicting old entries until the bound holds.
// Entries larger than the bound are not kept.
func (s *MemoryStore) Put(key string, entry domain.CacheEntry, size int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries.Remove(key)
	if size > s.maxSize {
		return nil
	}

	s.entries.Add(key, memoryItem{entry: entry, size: size})
	s.size += size
	for s.size > s.maxSize {
		s.entries.RemoveOldest()
	}
	return nil
}

// Len returns the number of cached entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}

// Size returns the total size of the cached entries.
func (s *MemoryStore) Size() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}
