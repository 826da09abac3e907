package metadata

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Reader loads previously generated artifacts.
type Reader struct {
	fs  afero.Fs
	dir string
}

// NewReader creates a reader for dir.
func NewReader(fs afero.Fs, dir string) *Reader {
	return &Reader{fs: fs, dir: dir}
}

// Read returns the metadata stored in the directory.
func (r *Reader) Read() (*Metadata, error) {
	modules, err := r.readArtifact(ModulesFile)
	if err != nil {
		return nil, err
	}
	version, err := r.readArtifact(VersionFile)
	if err != nil {
		return nil, err
	}
	build, err := r.readArtifact(BuildFile)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Modules: SplitModules(modules),
		Version: version,
		Build:   build,
	}, nil
}

func (r *Reader) readArtifact(name string) (string, error) {
	data, err := afero.ReadFile(r.fs, filepath.Join(r.dir, name))
	if err != nil {
		return "", fmt.Errorf("reading %s artifact: %w", name, err)
	}
	return string(data), nil
}
