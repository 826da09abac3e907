package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/frederic-klein/buildmeta/internal/config"
	"github.com/frederic-klein/buildmeta/internal/metadata"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func newShowCmd() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the generated metadata",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}

	def := config.DefaultConfig()
	showCmd.Flags().StringP(config.KeySource, "s", def.Source, "Source directory")
	showCmd.Flags().String(config.KeyMetadataDir, def.MetadataDir, "Metadata directory name inside the source directory")
	showCmd.Flags().BoolP("list", "l", false, "Print one module per line")

	return showCmd
}

func runShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}

	dir := filepath.Join(cfg.Source, cfg.MetadataDir)
	md, err := metadata.NewReader(afero.NewOsFs(), dir).Read()
	if err != nil {
		return fmt.Errorf("loading metadata from %s (run generate first): %w", dir, err)
	}

	printMetadata(cmd.OutOrStdout(), md, list)
	return nil
}

func printMetadata(w io.Writer, md *metadata.Metadata, list bool) {
	if list {
		for _, m := range md.Modules {
			fmt.Fprintln(w, m)
		}
		return
	}

	fmt.Fprintf(w, "%s %s (%s)\n", titleStyle.Render("version"), md.Version, md.Build)
	fmt.Fprintln(w, headingStyle.Render("modules:"))
	fmt.Fprintf(w, "\t[%s]\n", md.ModuleLine())
}
