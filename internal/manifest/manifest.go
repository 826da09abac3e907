package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrManifest is matched by every manifest failure.
var ErrManifest = errors.New("manifest error")

// Error describes why a manifest could not supply a version.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("manifest %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("manifest %s: %s", e.Path, e.Reason)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrManifest.
func (e *Error) Is(target error) bool {
	return target == ErrManifest
}

// FlexVersion handles JSON/YAML values that can be string or number.
type FlexVersion string

func (v *FlexVersion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FlexVersion(s)
		return nil
	}
	// Keep the literal so 1.10 stays 1.10
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*v = FlexVersion(n.String())
		return nil
	}
	return fmt.Errorf("version must be a string or number, got %s", data)
}

func (v *FlexVersion) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: version must be a scalar", node.Line)
	}
	*v = FlexVersion(node.Value)
	return nil
}

// Package is the [package] section of a manifest.
type Package struct {
	Name    string      `toml:"name" yaml:"name" json:"name"`
	Version FlexVersion `toml:"version" yaml:"version" json:"version"`
}

// Manifest is the subset of a package manifest this tool reads.
type Manifest struct {
	Package *Package `toml:"package" yaml:"package" json:"package"`
}

// Reader reads package manifests.
type Reader struct {
	fs afero.Fs
}

// NewReader creates a new manifest reader over fs.
func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read parses the manifest at path. The format is picked from the file
// extension; anything that is not YAML or JSON is read as TOML.
func (r *Reader) Read(path string) (*Manifest, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, &Error{Path: path, Reason: "reading file", Err: err}
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".json":
		err = json.Unmarshal(data, &m)
	default:
		err = toml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, &Error{Path: path, Reason: "parsing", Err: err}
	}

	return &m, nil
}

// Version returns package.version from the manifest at path.
func (r *Reader) Version(path string) (string, error) {
	m, err := r.Read(path)
	if err != nil {
		return "", err
	}
	if m.Package == nil {
		return "", &Error{Path: path, Reason: "missing [package] section"}
	}
	version := string(m.Package.Version)
	if strings.TrimSpace(version) == "" {
		return "", &Error{Path: path, Reason: "missing package.version"}
	}
	return version, nil
}
