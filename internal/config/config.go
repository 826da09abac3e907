// Package config loads buildmeta settings from flags, environment and an
// optional YAML file.
package config

import "github.com/frederic-klein/buildmeta/internal/scanner"

// Defaults matching a Cargo project layout.
const (
	DefaultManifest     = "Cargo.toml"
	DefaultSource       = "src"
	DefaultMetadataDir  = "metadata"
	DefaultBuildCommand = "cargo build --release"
)

// Keys shared by flags, environment variables and the config file.
const (
	KeyManifest     = "manifest"
	KeySource       = "source"
	KeyMetadataDir  = "metadata-dir"
	KeyExclude      = "exclude"
	KeyFilesOnly    = "files-only"
	KeyProfile      = "profile"
	KeyBuildCommand = "build-command"
	KeyStrict       = "strict"
	KeySkipBuild    = "skip-build"
	KeyVerbose      = "verbose"
)

// Config holds the settings of a generate run.
type Config struct {
	// Manifest is the path of the package manifest.
	// Env: BUILDMETA_MANIFEST
	Manifest string `mapstructure:"manifest"`

	// Source is the directory scanned for modules.
	// Env: BUILDMETA_SOURCE
	Source string `mapstructure:"source"`

	// MetadataDir is the name of the artifact directory inside Source.
	// Env: BUILDMETA_METADATA_DIR
	MetadataDir string `mapstructure:"metadata-dir"`

	// Exclude lists source entries that are not modules.
	// Env: BUILDMETA_EXCLUDE (comma separated)
	Exclude []string `mapstructure:"exclude"`

	// FilesOnly drops directories from the module list.
	FilesOnly bool `mapstructure:"files-only"`

	// Profile is the build profile; "debug" adds a -debug version suffix.
	// Env: BUILDMETA_PROFILE or PROFILE
	Profile string `mapstructure:"profile"`

	// BuildCommand is run after the artifacts are written.
	// Env: BUILDMETA_BUILD_COMMAND
	BuildCommand string `mapstructure:"build-command"`

	// Strict makes a failed build fail the run.
	Strict bool `mapstructure:"strict"`

	// SkipBuild stops after writing the artifacts.
	SkipBuild bool `mapstructure:"skip-build"`

	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		Manifest:     DefaultManifest,
		Source:       DefaultSource,
		MetadataDir:  DefaultMetadataDir,
		Exclude:      append([]string(nil), scanner.DefaultExclude...),
		BuildCommand: DefaultBuildCommand,
	}
}
