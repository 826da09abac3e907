package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks variables that would leak into the loader from the host.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PROFILE",
		"BUILDMETA_PROFILE",
		"BUILDMETA_MANIFEST",
		"BUILDMETA_SOURCE",
		"BUILDMETA_METADATA_DIR",
		"BUILDMETA_EXCLUDE",
		"BUILDMETA_BUILD_COMMAND",
		"BUILDMETA_STRICT",
		"BUILDMETA_SKIP_BUILD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoader_Load_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewLoader().Load("", t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoader_Load_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	content := `manifest: package.yaml
source: lib
metadata-dir: meta
exclude:
  - app.go
  - meta
build-command: go build ./...
strict: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	l := NewLoader()
	cfg, err := l.Load("", dir)

	require.NoError(t, err)
	assert.Equal(t, "package.yaml", cfg.Manifest)
	assert.Equal(t, "lib", cfg.Source)
	assert.Equal(t, "meta", cfg.MetadataDir)
	assert.Equal(t, []string{"app.go", "meta"}, cfg.Exclude)
	assert.Equal(t, "go build ./...", cfg.BuildCommand)
	assert.True(t, cfg.Strict)
	assert.False(t, cfg.SkipBuild)
	assert.Equal(t, filepath.Join(dir, FileName), l.ConfigFileUsed())
}

func TestLoader_Load_ExplicitFileMissing(t *testing.T) {
	clearEnv(t)

	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"), "")

	assert.Error(t, err)
}

func TestLoader_Load_Env(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("build-command: make\n"), 0644))
	t.Setenv("BUILDMETA_BUILD_COMMAND", "just build")
	t.Setenv("BUILDMETA_METADATA_DIR", "gen")
	t.Setenv("BUILDMETA_EXCLUDE", "main.rs,gen")
	t.Setenv("PROFILE", "debug")

	cfg, err := NewLoader().Load("", dir)

	require.NoError(t, err)
	assert.Equal(t, "just build", cfg.BuildCommand)
	assert.Equal(t, "gen", cfg.MetadataDir)
	assert.Equal(t, []string{"main.rs", "gen"}, cfg.Exclude)
	assert.Equal(t, "debug", cfg.Profile)
}

func TestLoader_Load_FlagsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("BUILDMETA_BUILD_COMMAND", "just build")

	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flags.String(KeyBuildCommand, DefaultBuildCommand, "")
	flags.StringSlice(KeyExclude, DefaultConfig().Exclude, "")
	flags.Bool(KeyStrict, false, "")
	flags.String(KeySource, DefaultSource, "")
	require.NoError(t, flags.Parse([]string{"--build-command", "cargo build", "--exclude", "lib.rs", "--strict"}))

	l := NewLoader()
	require.NoError(t, l.BindFlags(flags))
	cfg, err := l.Load("", t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "cargo build", cfg.BuildCommand)
	assert.Equal(t, []string{"lib.rs"}, cfg.Exclude)
	assert.True(t, cfg.Strict)
	assert.Equal(t, DefaultSource, cfg.Source)
}
