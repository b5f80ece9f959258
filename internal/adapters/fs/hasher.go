package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/lessc/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes content hashes of source files.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashContents returns the XXHash of data as a fixed width hex string.
func (h *Hasher) HashContents(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
