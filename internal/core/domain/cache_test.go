package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessc/internal/core/domain"
)

func file(path, hash string) domain.SourceFile {
	return domain.SourceFile{
		Path:     path,
		Contents: []byte(path),
		Hash:     hash,
		Arch:     domain.NewInternedString("web.browser"),
	}
}

func mustFileSet(t *testing.T, files ...domain.SourceFile) *domain.FileSet {
	t.Helper()
	fs, err := domain.NewFileSet(files...)
	require.NoError(t, err)
	return fs
}

func TestNewFileSet_Duplicate(t *testing.T) {
	_, err := domain.NewFileSet(file("{}/a.less", "1"), file("{}/a.less", "2"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateSourceFile))
}

func TestNewFileSet_MalformedPath(t *testing.T) {
	_, err := domain.NewFileSet(file("a.less", "1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedPath))
}

func TestFileSet_Accessors(t *testing.T) {
	fs := mustFileSet(t, file("{}/b.less", "1"), file("{}/a.less", "2"))

	assert.Equal(t, 2, fs.Len())
	assert.True(t, fs.Has("{}/a.less"))
	assert.False(t, fs.Has("{}/c.less"))
	assert.Equal(t, []string{"{}/b.less", "{}/a.less"}, fs.Paths())

	f, ok := fs.Get("{}/a.less")
	require.True(t, ok)
	assert.Equal(t, "2", f.Hash)
}

func TestCacheEntry_Valid(t *testing.T) {
	root := file("{}/app.less", "r1")
	dep := file("{}/vars.import.less", "d1")
	files := mustFileSet(t, root, dep)

	entry := domain.NewCacheEntry(&root, []string{dep.Path}, files, domain.CompileResult{CSS: "a{}"})
	assert.True(t, entry.Valid(&root, files))

	t.Run("dependency changed", func(t *testing.T) {
		changed := mustFileSet(t, root, file(dep.Path, "d2"))
		assert.False(t, entry.Valid(&root, changed))
	})

	t.Run("dependency removed", func(t *testing.T) {
		removed := mustFileSet(t, root)
		assert.False(t, entry.Valid(&root, removed))
	})

	t.Run("root changed", func(t *testing.T) {
		newRoot := file(root.Path, "r2")
		assert.False(t, entry.Valid(&newRoot, mustFileSet(t, newRoot, dep)))
	})

	t.Run("arch changed", func(t *testing.T) {
		other := root
		other.Arch = domain.NewInternedString("os")
		assert.False(t, entry.Valid(&other, files))
	})

	t.Run("unrelated file changed", func(t *testing.T) {
		extra := mustFileSet(t, root, dep, file("{}/other.less", "x"))
		assert.True(t, entry.Valid(&root, extra))
	})
}

func TestNewCacheEntry_DependencySetIsUnordered(t *testing.T) {
	root := file("{}/app.less", "r")
	a := file("{}/a.import.less", "a")
	b := file("{}/b.import.less", "b")
	files := mustFileSet(t, root, a, b)

	e1 := domain.NewCacheEntry(&root, []string{b.Path, a.Path, b.Path}, files, domain.CompileResult{})
	e2 := domain.NewCacheEntry(&root, []string{a.Path, b.Path}, files, domain.CompileResult{})

	assert.Equal(t, e1.Dependencies, e2.Dependencies)
	assert.Equal(t, e1.Fingerprint(), e2.Fingerprint())
	assert.Equal(t, []string{a.Path, b.Path}, e1.DependencyPaths())
}

func TestNewCacheEntry_SkipsNonFiles(t *testing.T) {
	root := file("{}/app.less", "r")
	files := mustFileSet(t, root)

	entry := domain.NewCacheEntry(&root, []string{"https://fonts.example/foo.css"}, files, domain.CompileResult{})
	assert.Empty(t, entry.Dependencies)
}

func TestCacheSlot(t *testing.T) {
	root := file("{ui}/button.less", "h")
	assert.Equal(t, "web.browser:{ui}/button.less", domain.CacheSlot(&root))
}

func TestCompileResult_Size(t *testing.T) {
	r := domain.CompileResult{CSS: "a{color:red}"}
	assert.Equal(t, int64(12), r.Size())

	r.SourceMap = &domain.SourceMap{Version: 3, Sources: []string{"a.less"}, Names: []string{}, Mappings: "AAAA"}
	data, err := r.SourceMap.Marshal()
	require.NoError(t, err)
	assert.Equal(t, int64(12+len(data)), r.Size())

	entry := domain.CacheEntry{Result: r}
	assert.Equal(t, r.Size(), entry.Size())
}

func TestCacheEntry_Fingerprint(t *testing.T) {
	root := file("{}/app.less", "r")
	dep := file("{}/a.import.less", "a")
	files := mustFileSet(t, root, dep)

	base := domain.NewCacheEntry(&root, []string{dep.Path}, files, domain.CompileResult{})
	assert.NotEmpty(t, base.Fingerprint())

	changed := domain.NewCacheEntry(&root, []string{dep.Path}, mustFileSet(t, root, file(dep.Path, "b")), domain.CompileResult{})
	assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint())

	// Results do not contribute.
	other := domain.NewCacheEntry(&root, []string{dep.Path}, files, domain.CompileResult{CSS: "x"})
	assert.Equal(t, base.Fingerprint(), other.Fingerprint())
}
