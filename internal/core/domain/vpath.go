// Package domain contains the core domain models and business logic for incremental stylesheet compilation.
package domain

import (
	"path"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// PackagesDirName is the directory that package-scoped sources are reported under.
const PackagesDirName = "packages"

var (
	packagePrefixRe = regexp.MustCompile(`^(\{[^}]*\})`)
	virtualPathRe   = regexp.MustCompile(`^\{(.*)\}/(.*)$`)
)

// VirtualPath builds the virtual path "{pkg}/rel" for a file.
// An empty pkg addresses the top-level unit.
func VirtualPath(pkg, rel string) string {
	return "{" + pkg + "}/" + strings.TrimPrefix(rel, "/")
}

// VirtualDir returns the directory part of a virtual path.
// The result is what nested imports of that file are resolved against.
func VirtualDir(virtualPath string) string {
	return path.Dir(virtualPath)
}

// PackagePrefix extracts the "{pkg}" prefix of a resolver context directory.
func PackagePrefix(currentDir string) (string, error) {
	m := packagePrefixRe.FindStringSubmatch(currentDir)
	if m == nil {
		return "", zerr.With(zerr.Wrap(ErrMalformedContext, "file without package context"), "dir", currentDir)
	}
	return m[1], nil
}

// CanonicalPath resolves an import specifier written in a file that lives in currentDir.
//
// Specifiers starting with "/" are rebased onto the current package, specifiers
// starting with "{" are already qualified, and everything else is joined
// relative to currentDir.
func CanonicalPath(currentDir, specifier string) (string, error) {
	prefix, err := PackagePrefix(currentDir)
	if err != nil {
		return "", err
	}

	switch {
	case strings.HasPrefix(specifier, "/"):
		return prefix + specifier, nil
	case strings.HasPrefix(specifier, "{"):
		return specifier, nil
	default:
		return path.Join(currentDir, specifier), nil
	}
}

// SplitVirtualPath splits a virtual path into its package name and package-relative path.
func SplitVirtualPath(virtualPath string) (pkg, rel string, err error) {
	m := virtualPathRe.FindStringSubmatch(virtualPath)
	if m == nil {
		return "", "", zerr.With(zerr.Wrap(ErrMalformedPath, "failed to decode virtual path"), "path", virtualPath)
	}
	return m[1], m[2], nil
}

// OriginPath maps a virtual path back to the path a human would recognise.
// Top-level files keep their relative path; package files are reported as
// packages/{pkg}/rel.
func OriginPath(virtualPath string) (string, error) {
	pkg, rel, err := SplitVirtualPath(virtualPath)
	if err != nil {
		return "", err
	}
	if pkg == "" {
		return rel, nil
	}
	return PackagesDirName + "/" + pkg + "/" + rel, nil
}
