package config

import "go.trai.ch/lessc/internal/core/domain"

// Lessfile represents the structure of the lessc.yaml configuration file.
type Lessfile struct {
	Version   string                        `yaml:"version"`
	Root      string                        `yaml:"root"`
	Arch      string                        `yaml:"arch"`
	Extension string                        `yaml:"extension"`
	Output    string                        `yaml:"output"`
	Packages  map[string]string             `yaml:"packages"`
	Files     map[string]domain.FileOptions `yaml:"files"`
	Ignore    []string                      `yaml:"ignore"`
	Cache     CacheDTO                      `yaml:"cache"`
}

// CacheDTO represents the cache section of the configuration.
type CacheDTO struct {
	Dir string `yaml:"dir"`
	// Size accepts byte counts with an optional unit, e.g. "10MiB" or "512 KB".
	Size string `yaml:"size"`
	// Disabled turns off the persistent cache tier.
	Disabled bool `yaml:"disabled"`
}
