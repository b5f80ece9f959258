// Package importer resolves stylesheet imports against the virtual file namespace.
package importer

import (
	"context"
	"regexp"
	"strconv"

	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Importer = (*FileManager)(nil)

// networkImportRe matches imports that point outside the project, e.g. native CSS imports.
var networkImportRe = regexp.MustCompile(`^(https?:)?//`)

// FileManager serves imports from a read-only FileSet.
// It holds no per-resolution state, so one instance may serve concurrent lookups.
type FileManager struct {
	files     *domain.FileSet
	extension string
}

// Option configures a FileManager.
type Option func(*FileManager)

// WithExtension sets the suffix tried when an import does not name an existing file.
func WithExtension(ext string) Option {
	return func(m *FileManager) {
		if ext != "" {
			m.extension = ext
		}
	}
}

// New creates a FileManager over files.
func New(files *domain.FileSet, opts ...Option) *FileManager {
	m := &FileManager{
		files:     files,
		extension: domain.DefaultExtension,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Supports claims every import except network ones.
func (m *FileManager) Supports(specifier string) bool {
	return !networkImportRe.MatchString(specifier)
}

// Resolve maps specifier, written in a file located in currentDir, to a known file.
func (m *FileManager) Resolve(ctx context.Context, specifier, currentDir string) (domain.ResolvedImport, error) {
	if err := ctx.Err(); err != nil {
		return domain.ResolvedImport{}, err
	}

	resolved, err := domain.CanonicalPath(currentDir, specifier)
	if err != nil {
		return domain.ResolvedImport{}, err
	}

	// "./themes/index" resolves to "./themes/index.less".
	if !m.files.Has(resolved) && m.files.Has(resolved+m.extension) {
		resolved += m.extension
	}

	f, ok := m.files.Get(resolved)
	if !ok {
		return domain.ResolvedImport{}, zerr.With(
			zerr.Wrap(domain.ErrUnknownImport, "failed to resolve "+strconv.Quote(specifier)),
			"specifier", specifier,
		)
	}

	return domain.ResolvedImport{
		Path:     f.Path,
		Contents: string(f.Contents),
	}, nil
}
