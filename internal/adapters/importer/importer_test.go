package importer_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessc/internal/adapters/importer"
	"go.trai.ch/lessc/internal/core/domain"
)

func newFiles(t *testing.T, contents map[string]string) *domain.FileSet {
	t.Helper()
	files := make([]domain.SourceFile, 0, len(contents))
	for p, c := range contents {
		files = append(files, domain.SourceFile{Path: p, Contents: []byte(c), Hash: c})
	}
	fs, err := domain.NewFileSet(files...)
	require.NoError(t, err)
	return fs
}

func TestFileManager_Supports(t *testing.T) {
	m := importer.New(newFiles(t, nil))

	tests := map[string]bool{
		"http://fonts.example/foo.css":  false,
		"https://fonts.example/foo.css": false,
		"//fonts.example/foo.css":       false,
		"./x":                           true,
		"/x.less":                       true,
		"{ui}/x.less":                   true,
		"x":                             true,
		"ftp://example/x.less":          true,
	}
	for specifier, want := range tests {
		assert.Equal(t, want, m.Supports(specifier), specifier)
	}
}

func TestFileManager_Resolve(t *testing.T) {
	files := newFiles(t, map[string]string{
		"{}/app.less":              "@import './themes/index';",
		"{}/themes/index.less":     ".theme{}",
		"{}/vars.less":             "@c: red;",
		"{}/vars":                  "exact",
		"{ui}/components/btn.less": ".btn{}",
		"{ui}/mixins.less":         ".m(){}",
	})
	m := importer.New(files)
	ctx := context.Background()

	tests := []struct {
		name      string
		specifier string
		dir       string
		wantPath  string
		wantBody  string
	}{
		{name: "extension inference", specifier: "./themes/index", dir: "{}", wantPath: "{}/themes/index.less", wantBody: ".theme{}"},
		{name: "exact match preferred over inference", specifier: "./vars", dir: "{}", wantPath: "{}/vars", wantBody: "exact"},
		{name: "explicit extension", specifier: "vars.less", dir: "{}", wantPath: "{}/vars.less", wantBody: "@c: red;"},
		{name: "absolute rebased onto package", specifier: "/mixins", dir: "{ui}/components", wantPath: "{ui}/mixins.less", wantBody: ".m(){}"},
		{name: "qualified", specifier: "{ui}/components/btn.less", dir: "{}", wantPath: "{ui}/components/btn.less", wantBody: ".btn{}"},
		{name: "parent directory", specifier: "../mixins.less", dir: "{ui}/components", wantPath: "{ui}/mixins.less", wantBody: ".m(){}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Resolve(ctx, tt.specifier, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantBody, got.Contents)
		})
	}
}

func TestFileManager_Resolve_Unknown(t *testing.T) {
	m := importer.New(newFiles(t, map[string]string{"{}/app.less": ""}))

	_, err := m.Resolve(context.Background(), "./missing", "{}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownImport))
	assert.Contains(t, err.Error(), `"./missing"`)
}

func TestFileManager_Resolve_MalformedContext(t *testing.T) {
	m := importer.New(newFiles(t, map[string]string{"{}/app.less": ""}))

	_, err := m.Resolve(context.Background(), "./app.less", "client")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedContext))
}

func TestFileManager_Resolve_CustomExtension(t *testing.T) {
	m := importer.New(newFiles(t, map[string]string{"{}/vars.lessimport": "x"}), importer.WithExtension(".lessimport"))

	got, err := m.Resolve(context.Background(), "./vars", "{}")
	require.NoError(t, err)
	assert.Equal(t, "{}/vars.lessimport", got.Path)

	// Only the configured suffix is tried.
	_, err = importer.New(newFiles(t, map[string]string{"{}/vars.lessimport": "x"})).Resolve(context.Background(), "./vars", "{}")
	assert.True(t, errors.Is(err, domain.ErrUnknownImport))
}

func TestFileManager_Resolve_Cancelled(t *testing.T) {
	m := importer.New(newFiles(t, map[string]string{"{}/a.less": ""}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Resolve(ctx, "./a.less", "{}")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileManager_Resolve_Concurrent(t *testing.T) {
	contents := make(map[string]string)
	for i := range 32 {
		contents[fmt.Sprintf("{}/f%d.less", i)] = fmt.Sprintf("body-%d", i)
	}
	m := importer.New(newFiles(t, contents))

	var wg sync.WaitGroup
	errs := make(chan error, 32*4)
	for n := range 4 {
		for i := range 32 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				got, err := m.Resolve(context.Background(), fmt.Sprintf("./f%d", i), "{}")
				if err != nil {
					errs <- err
					return
				}
				if got.Contents != fmt.Sprintf("body-%d", i) {
					errs <- fmt.Errorf("round %d: unexpected contents %q", n, got.Contents)
				}
			}(i)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
