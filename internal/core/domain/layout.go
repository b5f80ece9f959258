package domain

import "path/filepath"

const (
	// LesscDirName is the name of the internal workspace directory.
	LesscDirName = ".lessc"

	// CacheDirName is the name of the compiled result cache directory.
	CacheDirName = "cache"

	// OutDirName is the name of the default output directory.
	OutDirName = "out"

	// LockFileName is the name of the workspace lock file inside .lessc.
	LockFileName = "lock"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "lessc.yaml"

	// DefaultArch is the architecture tag used when none is configured.
	DefaultArch = "web.browser"

	// DefaultExtension is the style file extension tried when an import omits it.
	DefaultExtension = ".less"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// SourceExtensions lists the extensions picked up as style sources.
var SourceExtensions = []string{".less", ImportOnlyExtension}

// DefaultCachePath returns the default path for the on-disk result cache.
// It joins .lessc and cache.
func DefaultCachePath() string {
	return filepath.Join(LesscDirName, CacheDirName)
}

// DefaultOutPath returns the default output directory.
// It joins .lessc and out.
func DefaultOutPath() string {
	return filepath.Join(LesscDirName, OutDirName)
}

// DefaultLockPath returns the path of the workspace lock file.
// It joins .lessc and lock.
func DefaultLockPath() string {
	return filepath.Join(LesscDirName, LockFileName)
}
