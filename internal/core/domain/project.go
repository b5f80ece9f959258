package domain

// Package is a named source directory addressed as "{name}/..." in the virtual namespace.
type Package struct {
	Name string
	Dir  string
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	// Dir is the on-disk cache directory. Empty disables disk persistence.
	Dir string
	// Size bounds the in-memory cache in bytes.
	Size int64
}

// Project is the loaded build configuration of one compilation unit.
type Project struct {
	// Root is the directory of the top-level unit ("{}" package).
	Root      string
	Arch      string
	Extension string
	OutputDir string
	Packages  []Package
	// Files holds explicit per-file options keyed by virtual path.
	Files  map[string]FileOptions
	Ignore []string
	Cache  CacheConfig
}

// OptionsFor returns the configured options of a virtual path.
func (p *Project) OptionsFor(virtualPath string) FileOptions {
	if p.Files == nil {
		return FileOptions{}
	}
	return p.Files[virtualPath]
}
