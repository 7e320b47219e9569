// Package loader turns configuration sources into nested maps that the
// config package merges and applies. Sources are TOML or YAML files and a
// fixed set of environment variables.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads one configuration source. A source that does not exist
// yields a nil map and no error.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem is the file access a FileLoader needs. Tests substitute an
// in-memory implementation.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func DefaultFS() FileSystem { return OSFS{} }

// Format decodes one file syntax.
type Format struct {
	Name   string
	decode func(source string, data []byte) (map[string]any, error)
}

// Decode reads all of r and decodes it. source names r in errors.
func (f Format) Decode(source string, r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	return f.decode(source, data)
}

var (
	TOML = Format{Name: "toml", decode: decodeTOML}
	YAML = Format{Name: "yaml", decode: decodeYAML}
)

// formatsByExt maps lowercase file extensions to formats.
var formatsByExt = map[string]Format{
	".toml": TOML,
	".yaml": YAML,
	".yml":  YAML,
}

// FileLoader reads a configuration file in a fixed format.
type FileLoader struct {
	Format Format

	fsys FileSystem
	path string
}

func NewFileLoader(fsys FileSystem, path string, format Format) *FileLoader {
	return &FileLoader{Format: format, fsys: fsys, path: path}
}

// ForPath picks the format from the extension of path.
func ForPath(fsys FileSystem, path string) (*FileLoader, error) {
	ext := filepath.Ext(path)
	format, ok := formatsByExt[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	return NewFileLoader(fsys, path, format), nil
}

func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fsys.ReadFile(l.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return l.Format.decode(l.path, data)
}

// ParseError locates a syntax error in a configuration source. Line and
// Column are 1-based and zero when unknown.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s at line %d, column %d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s at line %d", e.Path, e.Line)
	}
	return "parse error in " + where + ": " + e.Message
}

func (e *ParseError) Unwrap() error { return e.Err }

// DeepMerge copies src over dst and returns dst, allocating it if nil.
// Nested maps present on both sides are merged key by key. Any other value
// in src replaces the one in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, val := range src {
		srcMap, ok := val.(map[string]any)
		if dstMap, isMap := dst[key].(map[string]any); ok && isMap {
			val = DeepMerge(dstMap, srcMap)
		}
		dst[key] = val
	}
	return dst
}
