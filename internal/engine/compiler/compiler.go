// Package compiler turns the root files of a file set into stylesheets.
package compiler

import (
	"context"
	"runtime"

	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Options configures a batch compilation.
type Options struct {
	// Parallelism bounds the number of roots compiled at once.
	// Zero or less means runtime.NumCPU().
	Parallelism int
	// NoCache skips cache lookups. Fresh results are still stored.
	NoCache bool
	// Extension is tried when an import omits it. Empty means ".less".
	Extension string
}

// BatchResult holds the outcome of a batch, both slices in root order.
type BatchResult struct {
	Stylesheets []domain.Stylesheet
	Errors      []*domain.CompileError
	// Cached counts the roots served from the cache.
	Cached int
}

// outcome is the result of compiling one root.
type outcome struct {
	sheet  *domain.Stylesheet
	err    *domain.CompileError
	cached bool
}

// Compiler compiles root files with an engine, memoizing results in a cache store.
type Compiler struct {
	engine    ports.Engine
	store     ports.CacheStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Compiler.
func New(engine ports.Engine, store ports.CacheStore, telemetry ports.Telemetry, logger ports.Logger) *Compiler {
	return &Compiler{
		engine:    engine,
		store:     store,
		telemetry: telemetry,
		logger:    logger,
	}
}

// CompileBatch compiles every root of files.
//
// A root that fails to compile is reported in BatchResult.Errors and does not
// affect its siblings. The returned error is non-nil only when ctx is done.
func (c *Compiler) CompileBatch(ctx context.Context, files *domain.FileSet, opts Options) (*BatchResult, error) {
	roots, _ := domain.Partition(files)
	outcomes := make([]outcome, len(roots))

	limit := opts.Parallelism
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, root := range roots {
		g.Go(func() error {
			out, err := c.compileRoot(ctx, root, files, opts)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &BatchResult{}
	for _, out := range outcomes {
		if out.cached {
			res.Cached++
		}
		if out.err != nil {
			res.Errors = append(res.Errors, out.err)
			continue
		}
		res.Stylesheets = append(res.Stylesheets, *out.sheet)
	}
	return res, nil
}

// compileRoot produces the stylesheet of one root, from the cache when possible.
// Only context errors are returned; every other failure becomes part of the outcome.
func (c *Compiler) compileRoot(
	ctx context.Context,
	root *domain.SourceFile,
	files *domain.FileSet,
	opts Options,
) (outcome, error) {
	if err := ctx.Err(); err != nil {
		return outcome{}, err
	}

	ctx, vertex := c.telemetry.Record(ctx, root.OriginPath())

	if !opts.NoCache {
		if entry := c.lookup(root, files); entry != nil {
			vertex.Log(domain.LogLevelDebug, "cache hit "+entry.Fingerprint())
			vertex.Cached()
			sheet := domain.NewStylesheet(root, entry.Result)
			return outcome{sheet: &sheet, cached: true}, nil
		}
	}

	result, referenced, err := c.invoke(ctx, root, files, opts)
	if err != nil {
		vertex.Complete(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome{}, ctxErr
		}
		return outcome{err: c.diagnose(root, err)}, nil
	}

	entry := c.remember(root, referenced, files, result)
	vertex.Log(domain.LogLevelDebug, "cache store "+entry.Fingerprint())
	vertex.Complete(nil)

	sheet := domain.NewStylesheet(root, result)
	return outcome{sheet: &sheet}, nil
}
