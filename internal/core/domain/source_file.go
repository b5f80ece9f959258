package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// FileOptions holds per-file options declared by the project configuration.
// A nil field means the option was not set.
type FileOptions struct {
	IsImport *bool `yaml:"isImport,omitempty"`
	Lazy     *bool `yaml:"lazy,omitempty"`
}

// SourceFile is one style source in the virtual namespace.
type SourceFile struct {
	// Path is the virtual path, e.g. "{}/app.less" or "{ui-kit}/button.less".
	Path     string
	Contents []byte
	// Hash is the content hash of Contents.
	Hash    string
	Arch    InternedString
	Options FileOptions
}

// Package returns the package name of the file ("" for the top-level unit).
func (f *SourceFile) Package() string {
	pkg, _, _ := SplitVirtualPath(f.Path)
	return pkg
}

// PathInPackage returns the package-relative path of the file.
func (f *SourceFile) PathInPackage() string {
	_, rel, err := SplitVirtualPath(f.Path)
	if err != nil {
		return f.Path
	}
	return rel
}

// OriginPath returns the human readable path of the file.
func (f *SourceFile) OriginPath() string {
	p, err := OriginPath(f.Path)
	if err != nil {
		return f.Path
	}
	return p
}

// FileSet is the read-only set of source files of one compilation batch.
// It must not be modified after construction, which makes it safe for concurrent reads.
type FileSet struct {
	files map[string]*SourceFile
	order []string
}

// NewFileSet creates a FileSet from the given files, keeping their order.
func NewFileSet(files ...SourceFile) (*FileSet, error) {
	fs := &FileSet{
		files: make(map[string]*SourceFile, len(files)),
		order: make([]string, 0, len(files)),
	}
	for i := range files {
		f := files[i]
		if _, _, err := SplitVirtualPath(f.Path); err != nil {
			return nil, err
		}
		if _, exists := fs.files[f.Path]; exists {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateSourceFile, "failed to build file set"), "path", f.Path)
		}
		fs.files[f.Path] = &f
		fs.order = append(fs.order, f.Path)
	}
	return fs, nil
}

// Has reports whether a file with the given virtual path exists.
func (s *FileSet) Has(virtualPath string) bool {
	_, ok := s.files[virtualPath]
	return ok
}

// Get returns the file with the given virtual path.
func (s *FileSet) Get(virtualPath string) (*SourceFile, bool) {
	f, ok := s.files[virtualPath]
	return f, ok
}

// Len returns the number of files.
func (s *FileSet) Len() int {
	return len(s.order)
}

// Paths returns the virtual paths in insertion order.
func (s *FileSet) Paths() []string {
	return slices.Clone(s.order)
}

// All returns the files in insertion order.
func (s *FileSet) All() []*SourceFile {
	out := make([]*SourceFile, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, s.files[p])
	}
	return out
}

// ResolvedImport is the outcome of resolving one import specifier.
type ResolvedImport struct {
	// Path is the canonical virtual path, always a member of the FileSet.
	Path     string
	Contents string
}
