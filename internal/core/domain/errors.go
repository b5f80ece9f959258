package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedContext is returned when an import is resolved from a directory outside the virtual namespace.
	ErrMalformedContext = zerr.New("malformed resolver context")

	// ErrMalformedPath is returned when a path does not have the "{pkg}/rel" shape.
	ErrMalformedPath = zerr.New("malformed virtual path")

	// ErrUnknownImport is returned when an import specifier does not resolve to a known file.
	ErrUnknownImport = zerr.New("unknown import")

	// ErrDuplicateSourceFile is returned when two source files share a virtual path.
	ErrDuplicateSourceFile = zerr.New("duplicate source file")

	// ErrCompileFailed is returned when the transformation engine fails for reasons other than a stylesheet error.
	ErrCompileFailed = zerr.New("compile failed")

	// ErrBuildFailed is returned when at least one root failed to compile.
	ErrBuildFailed = zerr.New("build failed")

	// ErrEmitFailed is returned when a compiled stylesheet cannot be written.
	ErrEmitFailed = zerr.New("failed to emit stylesheet")

	// ErrSourceMapEncodeFailed is returned when a source map cannot be serialized.
	ErrSourceMapEncodeFailed = zerr.New("failed to encode source map")

	// ErrSourceMapDecodeFailed is returned when a source map cannot be parsed.
	ErrSourceMapDecodeFailed = zerr.New("failed to decode source map")

	// ErrStoreCreateFailed is returned when the cache store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache store directory")

	// ErrStoreReadFailed is returned when a cache entry cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache entry")

	// ErrStoreDecodeFailed is returned when a cache entry cannot be decoded.
	ErrStoreDecodeFailed = zerr.New("failed to decode cache entry")

	// ErrStoreEncodeFailed is returned when a cache entry cannot be encoded.
	ErrStoreEncodeFailed = zerr.New("failed to encode cache entry")

	// ErrStoreWriteFailed is returned when a cache entry cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache entry")

	// ErrStorePruneFailed is returned when stale cache entries cannot be removed.
	ErrStorePruneFailed = zerr.New("failed to prune cache entries")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidPackageName is returned when a package name contains characters that break the virtual namespace.
	ErrInvalidPackageName = zerr.New("package name must not contain '{', '}' or '/'")

	// ErrInvalidCacheSize is returned when the configured cache size cannot be parsed.
	ErrInvalidCacheSize = zerr.New("invalid cache size")

	// ErrInvalidExtension is returned when the configured extension does not start with a dot.
	ErrInvalidExtension = zerr.New("extension must start with '.'")

	// ErrSourceWalkFailed is returned when a source directory cannot be walked.
	ErrSourceWalkFailed = zerr.New("failed to walk source directory")

	// ErrLockFailed is returned when the workspace lock cannot be acquired.
	ErrLockFailed = zerr.New("failed to acquire workspace lock")

	// ErrCleanFailed is returned when build artifacts cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean workspace")

	// ErrSourceReadFailed is returned when a source file cannot be read.
	ErrSourceReadFailed = zerr.New("failed to read source file")
)
