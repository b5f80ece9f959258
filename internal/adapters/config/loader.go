// Package config provides the configuration loader for lessc.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	fs     afero.Fs
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger, fsys afero.Fs) *Loader {
	return &Loader{Logger: logger, fs: fsys}
}

// Load reads the configuration file at path and returns the project it describes.
// Relative paths in the file are resolved against the file's directory.
// A missing file yields the default project rooted at that directory.
func (l *Loader) Load(path string) (*domain.Project, error) {
	var lessfile Lessfile

	data, err := afero.ReadFile(l.fs, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.Logger.Warn("no " + filepath.Base(path) + " found, using defaults")
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	default:
		if err := yaml.Unmarshal(data, &lessfile); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
		}
	}

	return l.buildProject(filepath.Dir(path), &lessfile)
}

func (l *Loader) buildProject(baseDir string, lf *Lessfile) (*domain.Project, error) {
	resolve := func(p, fallback string) string {
		if p == "" {
			p = fallback
		}
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(baseDir, p)
	}

	project := &domain.Project{
		Root:      resolve(lf.Root, "."),
		Arch:      lf.Arch,
		Extension: lf.Extension,
		OutputDir: resolve(lf.Output, domain.DefaultOutPath()),
		Files:     lf.Files,
		Ignore:    lf.Ignore,
	}
	if project.Arch == "" {
		project.Arch = domain.DefaultArch
	}
	if project.Extension == "" {
		project.Extension = domain.DefaultExtension
	}
	if !strings.HasPrefix(project.Extension, ".") {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidExtension, "invalid configuration"), "extension", project.Extension)
	}

	for _, name := range slices.Sorted(maps.Keys(lf.Packages)) {
		if name == "" || strings.ContainsAny(name, "{}/") {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPackageName, "invalid configuration"), "package", name)
		}
		project.Packages = append(project.Packages, domain.Package{
			Name: name,
			Dir:  resolve(lf.Packages[name], filepath.Join(domain.PackagesDirName, name)),
		})
	}

	for vp := range lf.Files {
		if _, _, err := domain.SplitVirtualPath(vp); err != nil {
			return nil, zerr.Wrap(err, "invalid configuration")
		}
	}

	cache, err := parseCache(lf.Cache, resolve)
	if err != nil {
		return nil, err
	}
	project.Cache = cache

	return project, nil
}

func parseCache(dto CacheDTO, resolve func(p, fallback string) string) (domain.CacheConfig, error) {
	cfg := domain.CacheConfig{Size: domain.DefaultCacheSize}
	if !dto.Disabled {
		cfg.Dir = resolve(dto.Dir, domain.DefaultCachePath())
	}

	if dto.Size == "" {
		return cfg, nil
	}
	size, err := humanize.ParseBytes(dto.Size)
	if err != nil || size == 0 || size > 1<<62 {
		return cfg, zerr.With(zerr.Wrap(domain.ErrInvalidCacheSize, "invalid configuration"), "size", dto.Size)
	}
	cfg.Size = int64(size)
	return cfg, nil
}
