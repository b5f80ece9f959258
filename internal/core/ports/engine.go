// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/lessc/internal/core/domain"
)

// RenderOptions configures one engine invocation.
type RenderOptions struct {
	// Filename is the virtual path of the root being compiled.
	Filename string
	// Importer is the only import handler consulted during this render.
	Importer Importer
	// SourceMap requests a source map alongside the CSS.
	SourceMap bool
	// OutputSourceFiles inlines original sources into the map's sourcesContent.
	OutputSourceFiles bool
}

// RenderOutput is the result of a successful render.
type RenderOutput struct {
	CSS string
	// Map is the JSON encoded source map, empty when none was requested.
	Map []byte
	// Imports lists every import target the engine encountered, including
	// targets that are not files (e.g. url() imports).
	Imports []string
}

// Engine is the stylesheet transformation engine.
//
//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type Engine interface {
	// Render compiles source to CSS.
	//
	// Stylesheet errors are reported as *domain.EngineError carrying the virtual
	// path, line and column of the offending file.
	Render(ctx context.Context, source string, opts RenderOptions) (*RenderOutput, error)
}

// Importer resolves import specifiers against the virtual file namespace.
// Implementations must be safe for concurrent use by a single render.
type Importer interface {
	// Supports reports whether the importer handles the specifier.
	Supports(specifier string) bool

	// Resolve maps a specifier written in a file located in currentDir to a file.
	Resolve(ctx context.Context, specifier, currentDir string) (domain.ResolvedImport, error)
}
