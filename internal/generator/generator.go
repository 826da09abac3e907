package generator

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/frederic-klein/buildmeta/internal/manifest"
	"github.com/frederic-klein/buildmeta/internal/metadata"
	"github.com/frederic-klein/buildmeta/internal/scanner"
	"github.com/frederic-klein/buildmeta/internal/trigger"
)

// DebugProfile is the build profile that marks the version with DebugSuffix.
const (
	DebugProfile = "debug"
	DebugSuffix  = "-debug"
)

// Options are the explicit inputs of a run. No path is resolved against the
// process working directory by this package.
type Options struct {
	ManifestPath string
	SourceDir    string

	// MetadataDir is the artifact directory, relative to SourceDir. It may be
	// nested, e.g. "gen/meta".
	MetadataDir string

	// Exclude is the module exclusion set. The top-level entry of
	// MetadataDir is always added.
	Exclude []string

	FilesOnly    bool
	Profile      string
	BuildCommand string

	// BuildDir is where the build command runs; defaults to the manifest's directory.
	BuildDir string

	Strict    bool
	SkipBuild bool

	// Stdout and Stderr receive the build command's output when set.
	Stdout, Stderr io.Writer
}

// Report summarizes a run.
type Report struct {
	Metadata *metadata.Metadata
	Dir      string
	// Build is nil when the build step was skipped.
	Build *trigger.Result
}

// Generator writes build metadata and then triggers the build.
type Generator struct {
	fs       afero.Fs
	opts     Options
	log      *log.Logger
	manifest *manifest.Reader
	now      func() time.Time
}

// New creates a generator over fs.
func New(fs afero.Fs, opts Options, logger *log.Logger) *Generator {
	return &Generator{
		fs:       fs,
		opts:     opts,
		log:      logger,
		manifest: manifest.NewReader(fs),
		now:      time.Now,
	}
}

// MetadataPath returns the directory the artifacts are written to.
func (g *Generator) MetadataPath() string {
	return filepath.Join(g.opts.SourceDir, g.opts.MetadataDir)
}

// Generate reads the manifest, scans the sources and writes the artifacts
// stamped with now. The manifest is read first so a bad manifest leaves
// every artifact untouched.
func (g *Generator) Generate(now time.Time) (*metadata.Metadata, error) {
	g.log.Debug("reading manifest", "path", g.opts.ManifestPath)
	version, err := g.manifest.Version(g.opts.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if g.opts.Profile == DebugProfile {
		version += DebugSuffix
	}

	g.log.Debug("scanning sources", "dir", g.opts.SourceDir, "exclude", g.exclude())
	sc := scanner.New(g.fs, scanner.WithExclude(g.exclude()...), scanner.WithFilesOnly(g.opts.FilesOnly))
	modules, err := sc.Scan(g.opts.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("scanning modules: %w", err)
	}

	md := &metadata.Metadata{
		Modules: modules,
		Version: version,
		Build:   metadata.FormatStamp(now),
	}

	w := metadata.NewWriter(g.fs, g.MetadataPath())
	g.log.Debug("writing metadata", "dir", w.Dir(), "modules", len(md.Modules))
	if err := w.Write(*md); err != nil {
		return nil, fmt.Errorf("writing metadata: %w", err)
	}

	g.log.Info("metadata generated", "version", md.Version, "modules", md.ModuleLine())
	return md, nil
}

// Run generates the metadata and then runs the build command unless
// SkipBuild is set. In lenient mode a failed build is reported only through
// Report.Build.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	md, err := g.Generate(g.now())
	if err != nil {
		return nil, err
	}

	report := &Report{Metadata: md, Dir: g.MetadataPath()}
	if g.opts.SkipBuild {
		return report, nil
	}

	mode := trigger.ModeLenient
	if g.opts.Strict {
		mode = trigger.ModeStrict
	}
	opts := []trigger.Option{
		trigger.WithDir(g.buildDir()),
		trigger.WithMode(mode),
		trigger.WithLogger(g.log),
	}
	if g.opts.Stdout != nil && g.opts.Stderr != nil {
		opts = append(opts, trigger.WithOutput(g.opts.Stdout, g.opts.Stderr))
	}

	tr, err := trigger.New(g.opts.BuildCommand, opts...)
	if err != nil {
		return report, err
	}

	g.log.Info("building", "command", g.opts.BuildCommand)
	res, err := tr.Run(ctx)
	report.Build = &res
	if err != nil {
		return report, err
	}

	return report, nil
}

func (g *Generator) exclude() []string {
	names := append([]string(nil), g.opts.Exclude...)
	name := g.metadataEntry()
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

// metadataEntry is the entry the scanner sees for MetadataDir: "gen" for
// "gen/meta".
func (g *Generator) metadataEntry() string {
	rel := filepath.ToSlash(filepath.Clean(g.opts.MetadataDir))
	first, _, _ := strings.Cut(rel, "/")
	return first
}

func (g *Generator) buildDir() string {
	if g.opts.BuildDir != "" {
		return g.opts.BuildDir
	}
	return filepath.Dir(g.opts.ManifestPath)
}
