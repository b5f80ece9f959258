package domain

import "strings"

// Classification tells whether a source file is compiled on its own.
type Classification uint8

const (
	// ClassRoot marks a file that produces its own stylesheet.
	ClassRoot Classification = iota
	// ClassImport marks a fragment that only contributes through @import.
	ClassImport
)

// String returns the string representation of the Classification.
func (c Classification) String() string {
	if c == ClassImport {
		return "import"
	}
	return "root"
}

// Filename conventions that mark import-only fragments.
const (
	ImportSuffix        = ".import.less"
	ImportOnlyExtension = ".lessimport"
)

// Classify decides whether a file is a compilation root.
// An explicit isImport option wins, then lazy, then the filename convention.
func Classify(f *SourceFile) Classification {
	if f.Options.IsImport != nil {
		if *f.Options.IsImport {
			return ClassImport
		}
		return ClassRoot
	}

	if f.Options.Lazy != nil && *f.Options.Lazy {
		return ClassImport
	}

	rel := f.PathInPackage()
	if strings.HasSuffix(rel, ImportSuffix) || strings.HasSuffix(rel, ImportOnlyExtension) {
		return ClassImport
	}
	return ClassRoot
}

// IsRoot reports whether f is compiled to its own stylesheet.
func IsRoot(f *SourceFile) bool {
	return Classify(f) == ClassRoot
}

// Partition splits the files of a set into roots and import-only fragments.
func Partition(files *FileSet) (roots, imports []*SourceFile) {
	for _, f := range files.All() {
		if IsRoot(f) {
			roots = append(roots, f)
		} else {
			imports = append(imports, f)
		}
	}
	return roots, imports
}
