package fs_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessc/internal/adapters/fs"
	"go.trai.ch/lessc/internal/core/domain"
)

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
}

func TestWalker_WalkFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"/proj/.git/config":             "git",
		"/proj/.lessc/cache/x.less":     "cache",
		"/proj/node_modules/lib/x.less": "dep",
		"/proj/src/app.less":            "app",
		"/proj/src/notes.tmp":           "tmp",
		"/proj/packages/ui/button.less": "ui",
		"/proj/README.md":               "readme",
	})

	walker := fs.NewWalker(fsys)
	var got []string
	for path, err := range walker.WalkFiles("/proj", []string{"node_modules", "*.tmp"}, []string{"/proj/packages"}) {
		require.NoError(t, err)
		got = append(got, path)
	}

	assert.Equal(t, []string{"/proj/README.md", "/proj/src/app.less"}, got)
}

// lockedFs refuses to open one directory.
type lockedFs struct {
	afero.Fs
	dir string
}

func (l lockedFs) Open(name string) (afero.File, error) {
	if name == l.dir {
		return nil, os.ErrPermission
	}
	return l.Fs.Open(name)
}

func TestWalker_ReportsUnreadableDirectory(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFiles(t, mem, map[string]string{"/p/a.less": "", "/p/locked/b.less": ""})
	fsys := lockedFs{Fs: mem, dir: "/p/locked"}

	var paths []string
	var errs []error
	for path, err := range fs.NewWalker(fsys).WalkFiles("/p", nil, nil) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		paths = append(paths, path)
	}

	assert.Equal(t, []string{"/p/a.less"}, paths)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], os.ErrPermission))
}

func TestWalker_StopsEarly(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{"/p/a": "", "/p/b": "", "/p/c": ""})

	var got []string
	for path, err := range fs.NewWalker(fsys).WalkFiles("/p", nil, nil) {
		require.NoError(t, err)
		got = append(got, path)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestHasher_HashContents(t *testing.T) {
	h := fs.NewHasher()

	a := h.HashContents([]byte("a{}"))
	assert.Len(t, a, 16)
	assert.Equal(t, a, h.HashContents([]byte("a{}")))
	assert.NotEqual(t, a, h.HashContents([]byte("b{}")))
	assert.Equal(t, "ef46db3751d8e999", h.HashContents(nil))
}

func TestLoader_Load(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{
		"/proj/app.less":                          "@import './themes/index';",
		"/proj/themes/index.less":                 ".theme{}",
		"/proj/vars.import.less":                  "@c: red;",
		"/proj/readme.md":                         "not a style",
		"/proj/packages/ui-kit/button.less":       ".btn{}",
		"/proj/packages/ui-kit/mixins.lessimport": ".m(){}",
		"/proj/packages/zz/z.less":                "z{}",
		"/proj/.lessc/out/app.less.css":           "stale",
	})

	isImport := true
	project := &domain.Project{
		Root:      "/proj",
		Arch:      "web.browser",
		OutputDir: "/proj/.lessc/out",
		Packages: []domain.Package{
			{Name: "zz", Dir: "/proj/packages/zz"},
			{Name: "ui-kit", Dir: "/proj/packages/ui-kit"},
		},
		Files: map[string]domain.FileOptions{"{}/themes/index.less": {IsImport: &isImport}},
	}

	loader := fs.NewLoader(fsys, fs.NewWalker(fsys), fs.NewHasher())
	files, err := loader.Load(context.Background(), project)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"{}/app.less",
		"{}/themes/index.less",
		"{}/vars.import.less",
		"{ui-kit}/button.less",
		"{ui-kit}/mixins.lessimport",
		"{zz}/z.less",
	}, files.Paths())

	app, ok := files.Get("{}/app.less")
	require.True(t, ok)
	assert.Equal(t, "@import './themes/index';", string(app.Contents))
	assert.Equal(t, fs.NewHasher().HashContents(app.Contents), app.Hash)
	assert.Equal(t, "web.browser", app.Arch.String())
	assert.Nil(t, app.Options.IsImport)

	index, ok := files.Get("{}/themes/index.less")
	require.True(t, ok)
	require.NotNil(t, index.Options.IsImport)
	assert.True(t, *index.Options.IsImport)
	assert.Equal(t, domain.ClassImport, domain.Classify(index))
}

func TestLoader_MissingDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	loader := fs.NewLoader(fsys, fs.NewWalker(fsys), fs.NewHasher())

	_, err := loader.Load(context.Background(), &domain.Project{Root: "/nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceWalkFailed))
}

func TestLoader_UnreadableDirectory(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFiles(t, mem, map[string]string{"/proj/app.less": "a{}", "/proj/private/b.less": "b{}"})
	fsys := lockedFs{Fs: mem, dir: "/proj/private"}
	loader := fs.NewLoader(fsys, fs.NewWalker(fsys), fs.NewHasher())

	_, err := loader.Load(context.Background(), &domain.Project{Root: "/proj"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceWalkFailed))
}

func TestLoader_Cancelled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFiles(t, fsys, map[string]string{"/proj/a.less": "a{}"})
	loader := fs.NewLoader(fsys, fs.NewWalker(fsys), fs.NewHasher())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, &domain.Project{Root: "/proj"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEmitter_Emit(t *testing.T) {
	fsys := afero.NewMemMapFs()
	emitter := fs.NewEmitter(fsys, "/out")

	root := domain.SourceFile{Path: "{ui}/components/button.less"}
	sheet := domain.NewStylesheet(&root, domain.CompileResult{
		CSS:       ".btn{}",
		SourceMap: &domain.SourceMap{Version: 3, Sources: []string{"packages/ui/components/button.less"}, Names: []string{}, Mappings: "AAAA"},
	})

	require.NoError(t, emitter.Emit(context.Background(), sheet))

	css, err := afero.ReadFile(fsys, "/out/packages/ui/components/button.less.css")
	require.NoError(t, err)
	assert.Equal(t, ".btn{}\n/*# sourceMappingURL=button.less.css.map */\n", string(css))

	data, err := afero.ReadFile(fsys, "/out/packages/ui/components/button.less.css.map")
	require.NoError(t, err)
	sm, err := domain.ParseSourceMap(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"packages/ui/components/button.less"}, sm.Sources)
}

func TestEmitter_EmitWithoutMap(t *testing.T) {
	fsys := afero.NewMemMapFs()
	emitter := fs.NewEmitter(fsys, "/out")

	root := domain.SourceFile{Path: "{}/app.less"}
	require.NoError(t, emitter.Emit(context.Background(), domain.NewStylesheet(&root, domain.CompileResult{CSS: "a{}"})))

	css, err := afero.ReadFile(fsys, "/out/app.less.css")
	require.NoError(t, err)
	assert.Equal(t, "a{}", string(css))

	exists, err := afero.Exists(fsys, "/out/app.less.css.map")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEmitter_WriteFailure(t *testing.T) {
	emitter := fs.NewEmitter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/out")

	root := domain.SourceFile{Path: "{}/app.less"}
	err := emitter.Emit(context.Background(), domain.NewStylesheet(&root, domain.CompileResult{CSS: "a{}"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrEmitFailed.Error())
}
