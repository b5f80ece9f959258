// Package inline provides an engine that flattens @import graphs into a single stylesheet.
//
// It resolves imports through the importer supplied with each render and
// records a line level source map. It does not evaluate the stylesheet
// language: variables, mixins and nesting are emitted as written.
package inline

import (
	"context"
	"errors"
	"path"
	"strings"

	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ErrNoImporter is returned when a render is started without an importer.
var ErrNoImporter = zerr.New("render requires an importer")

var _ ports.Engine = (*Engine)(nil)

// Engine implements ports.Engine. It is stateless and safe for concurrent renders.
type Engine struct{}

// New creates a new Engine.
func New() *Engine {
	return &Engine{}
}

// Render flattens source, the contents of opts.Filename, into one stylesheet.
func (e *Engine) Render(ctx context.Context, source string, opts ports.RenderOptions) (*ports.RenderOutput, error) {
	if opts.Importer == nil {
		return nil, zerr.With(zerr.Wrap(ErrNoImporter, "failed to render"), "filename", opts.Filename)
	}

	r := &render{
		ctx:      ctx,
		importer: opts.Importer,
		visited:  map[string]bool{opts.Filename: true},
		active:   make(map[string]bool),
		index:    make(map[string]int),
	}
	if err := r.file(opts.Filename, source); err != nil {
		return nil, err
	}

	out := &ports.RenderOutput{
		CSS:     r.out.String(),
		Imports: r.imports,
	}
	if !opts.SourceMap {
		return out, nil
	}

	sm := &domain.SourceMap{
		Version:  domain.SourceMapVersion,
		File:     path.Base(opts.Filename) + ".css",
		Sources:  r.sources,
		Names:    []string{},
		Mappings: r.out.mappings(),
	}
	if opts.OutputSourceFiles {
		sm.SourcesContent = r.contents
	}
	data, err := sm.Marshal()
	if err != nil {
		return nil, err
	}
	out.Map = data
	return out, nil
}

// resolution is the outcome of looking up one import statement.
type resolution struct {
	imp     domain.ResolvedImport
	missing bool
}

type render struct {
	ctx      context.Context
	importer ports.Importer
	out      output

	visited  map[string]bool
	active   map[string]bool
	imports  []string
	sources  []string
	contents []string
	index    map[string]int
}

func (r *render) source(name, contents string) int {
	if idx, ok := r.index[name]; ok {
		return idx
	}
	idx := len(r.sources)
	r.index[name] = idx
	r.sources = append(r.sources, name)
	r.contents = append(r.contents, contents)
	return idx
}

func (r *render) file(name, contents string) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}

	text := newSourceText(contents)
	stmts, serr := scan(text)
	if serr != nil {
		line, col := text.pos(serr.off)
		return &domain.EngineError{Message: serr.msg, Filename: name, Line: line + 1, Column: col + 1}
	}
	src := r.source(name, contents)
	r.active[name] = true
	defer delete(r.active, name)

	resolved, err := r.resolveAll(name, text, stmts)
	if err != nil {
		return err
	}

	cursor := 0
	for i, stmt := range stmts {
		line, col := text.pos(cursor)
		r.out.write(contents[cursor:stmt.start], src, line, col)
		cursor = stmt.end
		if err := r.include(text, src, stmt, resolved[i]); err != nil {
			return err
		}
	}
	line, col := text.pos(cursor)
	r.out.write(contents[cursor:], src, line, col)
	return nil
}

func (r *render) passThrough(stmt importStmt) bool {
	if stmt.isURL || stmt.has("css") {
		return true
	}
	if strings.HasSuffix(stmt.target, ".css") && !stmt.has("less") {
		return true
	}
	return !r.importer.Supports(stmt.target)
}

// resolveAll looks up the imports of one file concurrently.
// Results are indexed like stmts; the first failure in statement order is reported.
func (r *render) resolveAll(name string, text *sourceText, stmts []importStmt) ([]resolution, error) {
	results := make([]resolution, len(stmts))
	errs := make([]error, len(stmts))
	dir := domain.VirtualDir(name)

	g, ctx := errgroup.WithContext(r.ctx)
	for i, stmt := range stmts {
		if r.passThrough(stmt) {
			continue
		}
		g.Go(func() error {
			imp, err := r.importer.Resolve(ctx, stmt.target, dir)
			switch {
			case err == nil:
				results[i] = resolution{imp: imp}
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			case stmt.has("optional") && errors.Is(err, domain.ErrUnknownImport):
				results[i] = resolution{missing: true}
			default:
				errs[i] = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, err := range errs {
		if err == nil {
			continue
		}
		line, col := text.pos(stmts[i].start)
		return nil, &domain.EngineError{
			Message:  err.Error(),
			Filename: name,
			Line:     line + 1,
			Column:   col + 1,
		}
	}
	return results, nil
}

func (r *render) include(text *sourceText, src int, stmt importStmt, res resolution) error {
	if r.passThrough(stmt) {
		r.imports = append(r.imports, stmt.target)
		line, col := text.pos(stmt.start)
		r.out.write(text.text[stmt.start:stmt.end], src, line, col)
		return nil
	}
	if res.missing {
		return nil
	}

	r.imports = append(r.imports, res.imp.Path)
	if r.visited[res.imp.Path] && !stmt.has("multiple") {
		return nil
	}
	r.visited[res.imp.Path] = true

	if stmt.has("reference") {
		r.out.muted++
		defer func() { r.out.muted-- }()
	}
	if stmt.media != "" {
		r.out.write("@media "+stmt.media+" {\n", -1, 0, 0)
		defer r.out.write("\n}", -1, 0, 0)
	}

	if stmt.has("inline") {
		r.out.write(res.imp.Contents, r.source(res.imp.Path, res.imp.Contents), 0, 0)
		return nil
	}
	// A (multiple) import of a file still being rendered would never terminate.
	if r.active[res.imp.Path] {
		line, col := text.pos(stmt.start)
		return &domain.EngineError{
			Message:  "recursive import of " + res.imp.Path,
			Filename: r.sources[src],
			Line:     line + 1,
			Column:   col + 1,
		}
	}
	return r.file(res.imp.Path, res.imp.Contents)
}
