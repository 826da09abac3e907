package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultExclude lists the source entries that are never modules: the entry
// point, the metadata output directory and the shared utilities file.
var DefaultExclude = []string{"main.rs", "metadata", "utils.rs"}

// ModuleList is the ordered list of module names found in a source directory.
type ModuleList []string

// String joins the module names with commas.
func (l ModuleList) String() string {
	return strings.Join(l, ",")
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExclude replaces the exclusion set. Names are matched against the
// entry name including its extension.
func WithExclude(names ...string) Option {
	return func(s *Scanner) {
		s.exclude = make(map[string]struct{}, len(names))
		for _, name := range names {
			s.exclude[name] = struct{}{}
		}
	}
}

// WithFilesOnly skips directory entries.
func WithFilesOnly(filesOnly bool) Option {
	return func(s *Scanner) {
		s.filesOnly = filesOnly
	}
}

// Scanner derives module names from the direct entries of a source directory.
type Scanner struct {
	fs        afero.Fs
	exclude   map[string]struct{}
	filesOnly bool
}

// New creates a scanner using DefaultExclude unless overridden.
func New(fs afero.Fs, opts ...Option) *Scanner {
	s := &Scanner{fs: fs}
	WithExclude(DefaultExclude...)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan lists dir (not recursively) and returns the stem of every entry that
// is not excluded. Entries sharing a stem are all kept.
func (s *Scanner) Scan(dir string) (ModuleList, error) {
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}

	modules := make(ModuleList, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if s.Excluded(name) {
			continue
		}
		if s.filesOnly && entry.IsDir() {
			continue
		}
		modules = append(modules, Stem(name))
	}

	return modules, nil
}

// Excluded reports whether name is in the exclusion set.
func (s *Scanner) Excluded(name string) bool {
	_, ok := s.exclude[name]
	return ok
}

// Stem strips the last extension from name. Leading dots belong to the name,
// so ".keep" and "..foo" are returned unchanged.
func Stem(name string) string {
	rest := strings.TrimLeft(name, ".")
	return strings.TrimSuffix(name, filepath.Ext(rest))
}
