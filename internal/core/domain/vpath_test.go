package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessc/internal/core/domain"
)

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		name      string
		dir       string
		specifier string
		want      string
	}{
		{name: "relative", dir: "{}/styles", specifier: "./themes/index", want: "{}/styles/themes/index"},
		{name: "parent", dir: "{}/styles/nested", specifier: "../base.less", want: "{}/styles/base.less"},
		{name: "bare", dir: "{ui-kit}/components", specifier: "button.less", want: "{ui-kit}/components/button.less"},
		{name: "absolute rebased onto package", dir: "{ui-kit}/components", specifier: "/vars.less", want: "{ui-kit}/vars.less"},
		{name: "absolute in top-level unit", dir: "{}/a/b", specifier: "/vars.less", want: "{}/vars.less"},
		{name: "qualified", dir: "{}/styles", specifier: "{ui-kit}/vars.less", want: "{ui-kit}/vars.less"},
		{name: "collapses dots", dir: "{}/a", specifier: "./b/./c/../d.less", want: "{}/a/b/d.less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.CanonicalPath(tt.dir, tt.specifier)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalPath_MalformedContext(t *testing.T) {
	for _, dir := range []string{"styles", "/abs/dir", "", "}{/x"} {
		_, err := domain.CanonicalPath(dir, "./a.less")
		require.Error(t, err, dir)
		assert.True(t, errors.Is(err, domain.ErrMalformedContext), "dir %q: %v", dir, err)
	}
}

func TestOriginPath(t *testing.T) {
	got, err := domain.OriginPath("{}/client/app.less")
	require.NoError(t, err)
	assert.Equal(t, "client/app.less", got)

	got, err = domain.OriginPath("{ui-kit}/button.less")
	require.NoError(t, err)
	assert.Equal(t, "packages/ui-kit/button.less", got)
}

func TestOriginPath_Malformed(t *testing.T) {
	for _, p := range []string{"client/app.less", "{}", "{ui-kit}button.less", ""} {
		_, err := domain.OriginPath(p)
		require.Error(t, err, p)
		assert.True(t, errors.Is(err, domain.ErrMalformedPath), "path %q: %v", p, err)
	}
}

func TestOriginPath_RoundTrip(t *testing.T) {
	rels := []string{"app.less", "a/b/c.import.less", "themes/index.less", "x.lessimport"}
	for _, rel := range rels {
		got, err := domain.OriginPath(domain.VirtualPath("", rel))
		require.NoError(t, err)
		assert.Equal(t, rel, got)

		got, err = domain.OriginPath(domain.VirtualPath("pkg", rel))
		require.NoError(t, err)
		assert.Equal(t, "packages/pkg/"+rel, got)
	}
}

func TestVirtualDir(t *testing.T) {
	assert.Equal(t, "{}", domain.VirtualDir("{}/app.less"))
	assert.Equal(t, "{ui}/a/b", domain.VirtualDir("{ui}/a/b/c.less"))
}

func TestSplitVirtualPath(t *testing.T) {
	pkg, rel, err := domain.SplitVirtualPath("{ui}/a/b.less")
	require.NoError(t, err)
	assert.Equal(t, "ui", pkg)
	assert.Equal(t, "a/b.less", rel)
}
