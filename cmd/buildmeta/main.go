package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/frederic-klein/buildmeta/internal/config"
	"github.com/frederic-klein/buildmeta/internal/logging"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// ExitError carries the process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func versionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "buildmeta",
		Short: "Generate build metadata, then run the build",
		Long: `buildmeta scans a project's source directory for modules, reads the package
version from its manifest and records a build stamp. The three values are written
as plain-text artifacts for the compiled program to embed, then the build command runs.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "Verbose output")

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newShowCmd())

	return rootCmd
}

// loadConfig merges flags, environment and the config file for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader()
	if err := loader.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := loader.Load(configFile, ".")
	if err != nil {
		return nil, err
	}

	logging.Setup(cfg.Verbose)
	if used := loader.ConfigFileUsed(); used != "" {
		logging.Logger.Debug("using config file", "path", used)
	}
	return cfg, nil
}
