// Package fs provides file system adapters for discovering, hashing and writing stylesheets.
package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/zerr"
)

// Walker provides file walking functionality.
type Walker struct {
	fs afero.Fs
}

// NewWalker creates a new Walker over fsys.
func NewWalker(fsys afero.Fs) *Walker {
	return &Walker{fs: fsys}
}

// WalkFiles yields all files below root, skipping VCS and workspace directories,
// directories listed in skipDirs and entries whose name matches an ignore pattern.
// Yielded paths include root. A directory that cannot be read ends the walk
// with a single non-nil error.
func (w *Walker) WalkFiles(root string, ignores, skipDirs []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stopped := false
		err := afero.Walk(w.fs, root, func(path string, info iofs.FileInfo, err error) error {
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrSourceWalkFailed.Error()), "path", path)
			}

			if info.IsDir() && path != root && slices.Contains(skipDirs, filepath.Clean(path)) {
				return filepath.SkipDir
			}
			if skip, action := w.shouldSkip(info, ignores); skip {
				return action
			}
			if info.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil && !stopped {
			yield("", err)
		}
	}
}

// shouldSkip reports whether an entry is skipped and what the walk should do about it.
func (w *Walker) shouldSkip(info iofs.FileInfo, ignores []string) (bool, error) {
	name := info.Name()

	if info.IsDir() && (name == ".git" || name == ".jj" || name == domain.LesscDirName) {
		return true, filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if info.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}
	return false, nil
}
