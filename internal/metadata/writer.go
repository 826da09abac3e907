package metadata

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Writer persists metadata artifacts into a directory.
type Writer struct {
	fs  afero.Fs
	dir string
}

// NewWriter creates a writer for dir.
func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{fs: fs, dir: dir}
}

// Dir returns the metadata directory.
func (w *Writer) Dir() string {
	return w.dir
}

// EnsureDir creates the metadata directory if needed. An existing directory
// is left untouched; an existing file at the path is an error.
func (w *Writer) EnsureDir() error {
	if err := w.fs.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectory, w.dir, err)
	}

	info, err := w.fs.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDirectory, w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrDirectory, w.dir)
	}

	return nil
}

// Write ensures the directory and replaces the content of all three
// artifacts. Artifacts written before a failure are not rolled back.
func (w *Writer) Write(m Metadata) error {
	if err := w.EnsureDir(); err != nil {
		return err
	}

	for _, a := range m.artifacts() {
		path := filepath.Join(w.dir, a.name)
		if err := afero.WriteFile(w.fs, path, []byte(a.content), 0644); err != nil {
			return fmt.Errorf("%w %s: %w", ErrArtifactWrite, path, err)
		}
	}

	return nil
}
