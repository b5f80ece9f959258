package fs

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/lessc/internal/core/domain"
	"go.trai.ch/lessc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Emitter = (*Emitter)(nil)

// Emitter writes compiled stylesheets below an output directory.
// A stylesheet compiled from "{ui}/button.less" lands at "<out>/packages/ui/button.less.css".
type Emitter struct {
	fs     afero.Fs
	outDir string
}

// NewEmitter creates a new Emitter writing to outDir.
func NewEmitter(fsys afero.Fs, outDir string) *Emitter {
	return &Emitter{fs: fsys, outDir: outDir}
}

// Emit writes the stylesheet and, when present, its source map.
func (e *Emitter) Emit(ctx context.Context, sheet domain.Stylesheet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(e.outDir, filepath.FromSlash(sheet.OriginPath()))
	if err := e.fs.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "path", target)
	}

	css := sheet.Data
	if sheet.SourceMap != nil {
		data, err := sheet.SourceMap.Marshal()
		if err != nil {
			return zerr.With(err, "path", target)
		}
		mapPath := target + ".map"
		if err := afero.WriteFile(e.fs, mapPath, data, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "path", mapPath)
		}
		css += "\n/*# sourceMappingURL=" + filepath.Base(mapPath) + " */\n"
	}

	if err := afero.WriteFile(e.fs, target, []byte(css), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrEmitFailed.Error()), "path", target)
	}
	return nil
}
