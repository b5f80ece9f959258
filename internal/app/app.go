// Package app implements the application layer for lessc.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.trai.ch/lessc/internal/adapters/cas" //nolint:depguard // Stores are opened per project
	"go.trai.ch/lessc/internal/adapters/fs"  //nolint:depguard // Emitters are opened per project
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/lessc/internal/engine/compiler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	sourceLoader ports.SourceLoader
	engine       ports.Engine
	locker       ports.Locker
	telemetry    ports.Telemetry
	logger       ports.Logger
	fs           afero.Fs
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	sourceLoader ports.SourceLoader,
	engine ports.Engine,
	locker ports.Locker,
	telemetry ports.Telemetry,
	log ports.Logger,
	fsys afero.Fs,
) *App {
	return &App{
		configLoader: configLoader,
		sourceLoader: sourceLoader,
		engine:       engine,
		locker:       locker,
		telemetry:    telemetry,
		logger:       log,
		fs:           fsys,
	}
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// ConfigPath is the path of lessc.yaml.
	ConfigPath string
	// NoCache recompiles every root, ignoring cached results.
	NoCache bool
	// Jobs bounds the number of roots compiled at once. Zero means one per CPU.
	Jobs int
}

// BuildReport summarizes a finished build.
type BuildReport struct {
	Compiled int
	Cached   int
	Failed   int
	// Bytes is the total size of the emitted CSS.
	Bytes int64
}

// Build compiles every root of the project and writes the stylesheets to its output directory.
// Roots that fail to compile are logged and reported together as ErrBuildFailed;
// stylesheets of the remaining roots are still written.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*BuildReport, error) {
	project, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	var report *BuildReport
	err = a.locker.WithLock(ctx, lockPath(project), func() error {
		var buildErr error
		report, buildErr = a.build(ctx, project, opts)
		return buildErr
	})
	return report, err
}

func (a *App) build(ctx context.Context, project *domain.Project, opts BuildOptions) (*BuildReport, error) {
	files, err := a.sourceLoader.Load(ctx, project)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load sources")
	}

	store, err := cas.Open(a.fs, project.Cache)
	if err != nil {
		return nil, err
	}

	comp := compiler.New(a.engine, store, a.telemetry, a.logger)
	res, err := comp.CompileBatch(ctx, files, compiler.Options{
		Parallelism: opts.Jobs,
		NoCache:     opts.NoCache,
		Extension:   project.Extension,
	})
	if err != nil {
		return nil, err
	}
	a.prune(store, files)

	report := &BuildReport{
		Compiled: len(res.Stylesheets),
		Cached:   res.Cached,
		Failed:   len(res.Errors),
	}

	emitter := fs.NewEmitter(a.fs, project.OutputDir)
	var errs error
	for _, sheet := range res.Stylesheets {
		if err := emitter.Emit(ctx, sheet); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		report.Bytes += int64(len(sheet.Data))
	}
	for _, ce := range res.Errors {
		a.logger.Error(ce)
		errs = errors.Join(errs, ce)
	}

	a.logger.Info(fmt.Sprintf("compiled %d stylesheets (%d cached, %d failed), %s",
		report.Compiled, report.Cached, report.Failed, humanize.Bytes(uint64(report.Bytes))))

	if errs != nil {
		return report, errors.Join(domain.ErrBuildFailed, errs)
	}
	return report, nil
}

// prune drops persisted results of roots that no longer exist.
func (a *App) prune(store ports.CacheStore, files *domain.FileSet) {
	p, ok := store.(cas.Pruner)
	if !ok {
		return
	}
	roots, _ := domain.Partition(files)
	removed, err := p.Prune(lo.Map(roots, func(root *domain.SourceFile, _ int) string {
		return domain.CacheSlot(root)
	}))
	if err != nil {
		a.logger.Warn(err.Error())
	}
	if removed > 0 {
		a.logger.Info(fmt.Sprintf("pruned %d stale cache entries", removed))
	}
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	Cache      bool
	Output     bool
}

// Clean removes the result cache and build output based on the provided options.
func (a *App) Clean(ctx context.Context, opts CleanOptions) error {
	project, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	return a.locker.WithLock(ctx, lockPath(project), func() error {
		var errs error

		remove := func(path, name string) {
			if path == "" {
				return
			}
			a.logger.Info(fmt.Sprintf("removing %s...", name))
			if err := a.fs.RemoveAll(path); err != nil {
				errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
				return
			}
			a.logger.Info(fmt.Sprintf("removed %s", name))
		}

		if opts.Cache {
			remove(project.Cache.Dir, "result cache")
		}
		if opts.Output {
			remove(project.OutputDir, "build output")
		}
		return errs
	})
}

func lockPath(project *domain.Project) string {
	return filepath.Join(project.Root, domain.DefaultLockPath())
}
