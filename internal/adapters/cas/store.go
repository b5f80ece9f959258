// Package cas implements the compile result caches.
package cas

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/zerr"
)

const entryExt = ".cbor.zst"

var (
	_ ports.CacheStore = (*Store)(nil)
	_ Pruner           = (*Store)(nil)
)

// Pruner is implemented by stores that can drop entries for slots that no longer exist.
type Pruner interface {
	Prune(keep []string) (int, error)
}

// record is the on-disk form of an entry. Key guards against file name collisions.
type record struct {
	Key   string            `cbor:"1,keyasint"`
	Entry domain.CacheEntry `cbor:"2,keyasint"`
}

// Store implements ports.CacheStore using a file-per-slot strategy.
// Entries are CBOR encoded with deterministic options and zstd compressed.
type Store struct {
	fs   afero.Fs
	dir  string
	enc  cbor.EncMode
	dec  cbor.DecMode
	zenc *zstd.Encoder
	zdec *zstd.Decoder
}

// NewStore creates a new Store backed by the directory at the given path.
func NewStore(fsys afero.Fs, dir string) (*Store, error) {
	dir = filepath.Clean(dir)
	if err := fsys.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "dir", dir)
	}

	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to configure cache encoder")
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to configure cache decoder")
	}
	zenc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to configure cache compressor")
	}
	zdec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to configure cache decompressor")
	}

	return &Store{
		fs:   fsys,
		dir:  dir,
		enc:  enc,
		dec:  dec,
		zenc: zenc,
		zdec: zdec,
	}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string {
	return s.dir
}

// Get retrieves the entry stored under key.
func (s *Store) Get(key string) (*domain.CacheEntry, error) {
	data, err := afero.ReadFile(s.fs, s.filename(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}

	raw, err := s.zdec.DecodeAll(data, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreDecodeFailed.Error()), "key", key)
	}

	var rec record
	if err := s.dec.Unmarshal(raw, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreDecodeFailed.Error()), "key", key)
	}
	if rec.Key != key {
		return nil, nil
	}
	return &rec.Entry, nil
}

// Put stores the entry under key. The file is replaced atomically, so
// concurrent writers of one key leave the last complete entry behind.
func (s *Store) Put(key string, entry domain.CacheEntry, _ int64) error {
	raw, err := s.enc.Marshal(record{Key: key, Entry: entry})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreEncodeFailed.Error()), "key", key)
	}
	data := s.zenc.EncodeAll(raw, nil)

	tmp, err := afero.TempFile(s.fs, s.dir, "entry-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	if err := s.fs.Rename(tmpName, s.filename(key)); err != nil {
		_ = s.fs.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	return nil
}

// Prune removes every entry whose key is not in keep and returns how many were removed.
// Entries written after the directory is listed are left alone.
func (s *Store) Prune(keep []string) (int, error) {
	kept := make(map[string]bool, len(keep))
	for _, key := range keep {
		kept[filepath.Base(s.filename(key))] = true
	}

	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrStorePruneFailed.Error()), "dir", s.dir)
	}

	removed := 0
	var errs error
	for _, info := range infos {
		name := info.Name()
		if info.IsDir() || !strings.HasSuffix(name, entryExt) || kept[name] {
			continue
		}
		if err := s.fs.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrStorePruneFailed.Error()), "file", name))
			continue
		}
		removed++
	}
	return removed, errs
}

func (s *Store) filename(key string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(key), 16)+entryExt)
}
