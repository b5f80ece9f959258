package domain

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheSize is the default bound of the in-memory result cache (10 MiB).
const DefaultCacheSize int64 = 1024 * 1024 * 10

// CacheKey identifies a candidate prior result for a root file.
type CacheKey struct {
	Arch string `cbor:"1,keyasint"`
	Hash string `cbor:"2,keyasint"`
}

// KeyOf returns the cache key of a source file.
func KeyOf(f *SourceFile) CacheKey {
	return CacheKey{Arch: f.Arch.String(), Hash: f.Hash}
}

// CacheSlot returns the store key under which the entry of a root is kept.
// There is one slot per root and architecture, so a fresh result replaces a stale one.
func CacheSlot(root *SourceFile) string {
	return root.Arch.String() + ":" + root.Path
}

// FileDigest records the content hash a file had when a result was produced.
type FileDigest struct {
	Path string `cbor:"1,keyasint"`
	Hash string `cbor:"2,keyasint"`
}

// CacheEntry is a stored compile result together with everything its validity depends on.
// Dependencies holds the digests of every import consulted by the compile, sorted by path.
type CacheEntry struct {
	Key          CacheKey      `cbor:"1,keyasint"`
	Dependencies []FileDigest  `cbor:"2,keyasint"`
	Result       CompileResult `cbor:"3,keyasint"`
}

// NewCacheEntry builds an entry for root from the files it referenced.
// Paths missing from files are skipped; duplicates are collapsed.
func NewCacheEntry(root *SourceFile, referenced []string, files *FileSet, result CompileResult) CacheEntry {
	deps := make([]FileDigest, 0, len(referenced))
	for _, p := range referenced {
		f, ok := files.Get(p)
		if !ok {
			continue
		}
		deps = append(deps, FileDigest{Path: f.Path, Hash: f.Hash})
	}
	slices.SortFunc(deps, func(a, b FileDigest) int { return cmp.Compare(a.Path, b.Path) })
	deps = slices.CompactFunc(deps, func(a, b FileDigest) bool { return a.Path == b.Path })

	return CacheEntry{
		Key:          KeyOf(root),
		Dependencies: deps,
		Result:       result,
	}
}

// Valid reports whether the entry may be reused for root given the current files.
// The root key must match and every recorded dependency must still exist with the same hash.
func (e *CacheEntry) Valid(root *SourceFile, files *FileSet) bool {
	if e.Key != KeyOf(root) {
		return false
	}
	for _, dep := range e.Dependencies {
		f, ok := files.Get(dep.Path)
		if !ok || f.Hash != dep.Hash {
			return false
		}
	}
	return true
}

// DependencyPaths returns the virtual paths the entry depends on.
func (e *CacheEntry) DependencyPaths() []string {
	paths := make([]string, len(e.Dependencies))
	for i, d := range e.Dependencies {
		paths[i] = d.Path
	}
	return paths
}

// Size returns the size estimate reported to the cache store.
func (e *CacheEntry) Size() int64 {
	return e.Result.Size()
}

// Fingerprint digests the key and dependency set of the entry.
// Dependencies are kept sorted, so the result does not depend on the order imports were met in.
func (e *CacheEntry) Fingerprint() string {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	write(e.Key.Arch)
	write(e.Key.Hash)
	for _, dep := range e.Dependencies {
		write(dep.Path)
		write(dep.Hash)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
