package domain

import (
	"encoding/json"
	"fmt"

	"go.trai.ch/zerr"
)

// SourceMapVersion is the only source map revision produced and accepted.
const SourceMapVersion = 3

// SourceMap is a revision 3 source map.
type SourceMap struct {
	Version        int      `json:"version" cbor:"1,keyasint"`
	File           string   `json:"file,omitempty" cbor:"2,keyasint,omitempty"`
	SourceRoot     string   `json:"sourceRoot,omitempty" cbor:"3,keyasint,omitempty"`
	Sources        []string `json:"sources" cbor:"4,keyasint"`
	SourcesContent []string `json:"sourcesContent,omitempty" cbor:"5,keyasint,omitempty"`
	Names          []string `json:"names" cbor:"6,keyasint"`
	Mappings       string   `json:"mappings" cbor:"7,keyasint"`
}

// ParseSourceMap decodes a JSON source map.
func ParseSourceMap(data []byte) (*SourceMap, error) {
	var sm SourceMap
	if err := json.Unmarshal(data, &sm); err != nil {
		return nil, zerr.Wrap(err, ErrSourceMapDecodeFailed.Error())
	}
	if sm.Names == nil {
		sm.Names = []string{}
	}
	return &sm, nil
}

// Marshal encodes the source map as JSON.
func (m *SourceMap) Marshal() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, zerr.Wrap(err, ErrSourceMapEncodeFailed.Error())
	}
	return data, nil
}

// RewriteSources maps every entry of Sources through fn.
func (m *SourceMap) RewriteSources(fn func(string) (string, error)) error {
	for i, src := range m.Sources {
		rewritten, err := fn(src)
		if err != nil {
			return err
		}
		m.Sources[i] = rewritten
	}
	return nil
}

// CompileResult is the memoized output of compiling one root.
type CompileResult struct {
	CSS       string     `cbor:"1,keyasint"`
	SourceMap *SourceMap `cbor:"2,keyasint,omitempty"`
}

// Size returns the approximate number of bytes the result occupies.
// It is the CSS length plus the length of the serialized source map.
func (r *CompileResult) Size() int64 {
	size := int64(len(r.CSS))
	if r.SourceMap == nil {
		return size
	}
	data, err := r.SourceMap.Marshal()
	if err != nil {
		return size
	}
	return size + int64(len(data))
}

// Stylesheet is the artifact attached to a root file's output.
type Stylesheet struct {
	// Path is the output path inside the root's package, "<pathInPackage>.css".
	Path string
	// Source is the virtual path of the root the stylesheet was compiled from.
	Source    string
	Data      string
	SourceMap *SourceMap
}

// NewStylesheet builds the artifact for a compiled root.
func NewStylesheet(root *SourceFile, result CompileResult) Stylesheet {
	return Stylesheet{
		Path:      root.PathInPackage() + ".css",
		Source:    root.Path,
		Data:      result.CSS,
		SourceMap: result.SourceMap,
	}
}

// OriginPath returns the output path in origin form, e.g. "packages/ui/button.less.css".
func (s Stylesheet) OriginPath() string {
	pkg, _, err := SplitVirtualPath(s.Source)
	if err != nil || pkg == "" {
		return s.Path
	}
	return PackagesDirName + "/" + pkg + "/" + s.Path
}

// EngineError is a failure reported by the transformation engine.
// Filename is a virtual path and may name an imported file rather than the root.
type EngineError struct {
	Message  string
	Filename string
	Line     int
	Column   int
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

// CompileError is the diagnostic reported for a root that failed to compile.
type CompileError struct {
	Message string
	// SourcePath is the origin path of the offending file.
	SourcePath string
	Line       int
	Column     int
	// Root is the virtual path of the root whose compilation failed.
	Root string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.SourcePath, e.Line, e.Column, e.Message)
}
