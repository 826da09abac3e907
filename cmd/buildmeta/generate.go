package main

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/frederic-klein/buildmeta/internal/config"
	"github.com/frederic-klein/buildmeta/internal/generator"
	"github.com/frederic-klein/buildmeta/internal/logging"
	"github.com/frederic-klein/buildmeta/internal/trigger"
)

const builtNotice = "Executable is built!"

func newGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write module, version and build artifacts and run the build",
		Long: `Reads package.version from the manifest, lists the source directory for
modules and writes <source>/<metadata-dir>/{modules,version,build}. The build
command runs afterwards unless --skip-build is given.

By default a failed build is only logged. Use --strict to fail with the build's
exit code.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	def := config.DefaultConfig()
	flags := generateCmd.Flags()
	flags.StringP(config.KeyManifest, "m", def.Manifest, "Package manifest path")
	flags.StringP(config.KeySource, "s", def.Source, "Source directory to scan")
	flags.String(config.KeyMetadataDir, def.MetadataDir, "Metadata directory name inside the source directory")
	flags.StringSliceP(config.KeyExclude, "e", def.Exclude, "Source entries that are not modules")
	flags.Bool(config.KeyFilesOnly, false, "Do not treat directories as modules")
	flags.String(config.KeyProfile, "", "Build profile (debug appends -debug to the version)")
	flags.StringP(config.KeyBuildCommand, "b", def.BuildCommand, "Build command to run after generating")
	flags.Bool(config.KeyStrict, false, "Fail when the build command fails")
	flags.Bool(config.KeySkipBuild, false, "Only write the metadata artifacts")

	return generateCmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	gen := generator.New(afero.NewOsFs(), generator.Options{
		ManifestPath: cfg.Manifest,
		SourceDir:    cfg.Source,
		MetadataDir:  cfg.MetadataDir,
		Exclude:      cfg.Exclude,
		FilesOnly:    cfg.FilesOnly,
		Profile:      cfg.Profile,
		BuildCommand: cfg.BuildCommand,
		Strict:       cfg.Strict,
		SkipBuild:    cfg.SkipBuild,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
	}, logging.Logger)

	report, err := gen.Run(cmd.Context())
	if err != nil {
		var buildErr *trigger.BuildError
		if errors.As(err, &buildErr) && buildErr.ExitCode > 0 {
			return &ExitError{Code: buildErr.ExitCode, Err: err}
		}
		return err
	}

	if report.Build != nil {
		fmt.Fprintln(cmd.OutOrStdout(), builtNotice)
	}
	return nil
}
