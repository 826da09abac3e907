package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment variable prefix for buildmeta configuration.
const envPrefix = "BUILDMETA"

// FileName is the config file looked up in the project directory.
const FileName = ".buildmeta.yaml"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Cargo exports PROFILE to build scripts
	_ = v.BindEnv(KeyProfile, envPrefix+"_PROFILE", "PROFILE")

	def := DefaultConfig()
	v.SetDefault(KeyManifest, def.Manifest)
	v.SetDefault(KeySource, def.Source)
	v.SetDefault(KeyMetadataDir, def.MetadataDir)
	v.SetDefault(KeyExclude, def.Exclude)
	v.SetDefault(KeyBuildCommand, def.BuildCommand)
	v.SetDefault(KeyFilesOnly, false)
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeySkipBuild, false)
	v.SetDefault(KeyVerbose, false)

	return &Loader{v: v}
}

// BindFlags lets changed command-line flags override every other source.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	if err := l.v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// Load reads configFile, or FileName in searchDir when configFile is empty,
// and returns the merged configuration. A missing default file is not an
// error; a missing explicit file is.
func (l *Loader) Load(configFile, searchDir string) (*Config, error) {
	if configFile == "" {
		candidate := filepath.Join(searchDir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	}

	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("yaml")
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// ConfigFileUsed returns the config file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
