package compiler

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"go.trai.ch/lessc/internal/adapters/importer" //nolint:depguard // Each render gets its own importer
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/zerr"
)

// invoke renders root once and returns the result together with the virtual
// paths of every file the render consulted.
func (c *Compiler) invoke(
	ctx context.Context,
	root *domain.SourceFile,
	files *domain.FileSet,
	opts Options,
) (domain.CompileResult, []string, error) {
	out, err := c.engine.Render(ctx, string(root.Contents), ports.RenderOptions{
		Filename:          root.Path,
		Importer:          importer.New(files, importer.WithExtension(opts.Extension)),
		SourceMap:         true,
		OutputSourceFiles: true,
	})
	if err != nil {
		return domain.CompileResult{}, nil, err
	}

	result := domain.CompileResult{CSS: out.CSS}
	if len(out.Map) > 0 {
		sm, err := domain.ParseSourceMap(out.Map)
		if err != nil {
			return domain.CompileResult{}, nil, err
		}
		if err := sm.RewriteSources(domain.OriginPath); err != nil {
			return domain.CompileResult{}, nil, err
		}
		result.SourceMap = sm
	}

	referenced := lo.Uniq(lo.Filter(out.Imports, func(p string, _ int) bool {
		return files.Has(p)
	}))
	return result, referenced, nil
}

// diagnose turns a failed render of root into the diagnostic reported for it.
// Engine errors point at the offending file, which may be an import of root.
func (c *Compiler) diagnose(root *domain.SourceFile, err error) *domain.CompileError {
	var engineErr *domain.EngineError
	if errors.As(err, &engineErr) {
		sourcePath, pathErr := domain.OriginPath(engineErr.Filename)
		if pathErr != nil {
			sourcePath = engineErr.Filename
		}
		return &domain.CompileError{
			Message:    engineErr.Message,
			SourcePath: sourcePath,
			Line:       engineErr.Line,
			Column:     engineErr.Column,
			Root:       root.Path,
		}
	}

	return &domain.CompileError{
		Message:    zerr.Wrap(err, domain.ErrCompileFailed.Error()).Error(),
		SourcePath: root.OriginPath(),
		Root:       root.Path,
	}
}
