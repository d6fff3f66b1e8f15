package manifest

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is the document format of a manifest
type Format int

const (
	// FormatYAML also covers JSON manifests
	FormatYAML Format = iota
	FormatTOML
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	default:
		return "yaml"
	}
}

// FormatFromPath picks the format from the file extension. Anything other
// than .toml is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Loader loads and validates manifest files
type Loader struct{}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the manifest at path with a default Loader
func Load(path string) (*Manifest, error) {
	return NewLoader().Load(path)
}

// Load reads and parses the manifest file at path. The returned manifest lists
// path as the last input of every artifact.
func (l *Loader) Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newLoadError(ErrRead, path, err)
	}
	defer f.Close()

	return l.LoadFromReader(f, path, FormatFromPath(path))
}

// LoadFromReader parses manifest content read from r. Read failures are
// reported as ErrRead against path.
func (l *Loader) LoadFromReader(r io.Reader, path string, format Format) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newLoadError(ErrRead, path, err)
	}
	return l.LoadFromBytes(data, path, format)
}

// LoadFromBytes parses manifest content that was read from path. The path is
// used in errors and appended to artifact inputs; it is not opened.
func (l *Loader) LoadFromBytes(data []byte, path string, format Format) (*Manifest, error) {
	var (
		raw *rawManifest
		err error
	)
	switch format {
	case FormatTOML:
		raw, err = decodeTOML(data)
	default:
		raw, err = decodeYAML(data)
	}
	if err != nil {
		return nil, newLoadError(ErrSyntax, path, err)
	}

	m, err := raw.build(path)
	if err != nil {
		return nil, newLoadError(ErrSyntax, path, err)
	}
	return m, nil
}
