package fs

import (
	"context"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.SourceLoader = (*Loader)(nil)

// Loader discovers the style sources of a project and maps them into the virtual namespace.
type Loader struct {
	fs     afero.Fs
	walker *Walker
	hasher ports.Hasher
}

// NewLoader creates a new Loader.
func NewLoader(fsys afero.Fs, walker *Walker, hasher ports.Hasher) *Loader {
	return &Loader{fs: fsys, walker: walker, hasher: hasher}
}

type sourceRef struct {
	pkg  string
	dir  string
	path string
}

// Load walks the top-level unit and every package of project.
// Files are ordered by unit (top-level first, then packages by name) and path.
func (l *Loader) Load(ctx context.Context, project *domain.Project) (*domain.FileSet, error) {
	refs, err := l.discover(project)
	if err != nil {
		return nil, err
	}

	arch := domain.NewInternedString(project.Arch)
	files := make([]domain.SourceFile, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := l.read(ref, arch, project)
			if err != nil {
				return err
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.NewFileSet(files...)
}

func (l *Loader) discover(project *domain.Project) ([]sourceRef, error) {
	packages := slices.Clone(project.Packages)
	slices.SortFunc(packages, func(a, b domain.Package) int { return strings.Compare(a.Name, b.Name) })

	skipDirs := lo.Map(packages, func(p domain.Package, _ int) string { return filepath.Clean(p.Dir) })
	if project.OutputDir != "" {
		skipDirs = append(skipDirs, filepath.Clean(project.OutputDir))
	}

	units := append([]domain.Package{{Name: "", Dir: project.Root}}, packages...)

	var refs []sourceRef
	for _, unit := range units {
		exists, err := afero.DirExists(l.fs, unit.Dir)
		if err != nil || !exists {
			return nil, zerr.With(zerr.Wrap(domain.ErrSourceWalkFailed, "source directory does not exist"), "dir", unit.Dir)
		}
		for path, err := range l.walker.WalkFiles(unit.Dir, project.Ignore, skipDirs) {
			if err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrSourceWalkFailed, err.Error()), "dir", unit.Dir)
			}
			if !slices.Contains(domain.SourceExtensions, filepath.Ext(path)) {
				continue
			}
			refs = append(refs, sourceRef{pkg: unit.Name, dir: unit.Dir, path: path})
		}
	}
	return refs, nil
}

func (l *Loader) read(ref sourceRef, arch domain.InternedString, project *domain.Project) (domain.SourceFile, error) {
	data, err := afero.ReadFile(l.fs, ref.path)
	if err != nil {
		return domain.SourceFile{}, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", ref.path)
	}

	rel, err := filepath.Rel(ref.dir, ref.path)
	if err != nil {
		return domain.SourceFile{}, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", ref.path)
	}
	virtualPath := domain.VirtualPath(ref.pkg, filepath.ToSlash(rel))

	return domain.SourceFile{
		Path:     virtualPath,
		Contents: data,
		Hash:     l.hasher.HashContents(data),
		Arch:     arch,
		Options:  project.OptionsFor(virtualPath),
	}, nil
}
