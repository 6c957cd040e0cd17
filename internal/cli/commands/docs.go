package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rulelint-dev/rulelint/internal/cli/config"
	"github.com/rulelint-dev/rulelint/internal/docs"
	_ "github.com/rulelint-dev/rulelint/pkg/lint/rules" // register all rules
)

// DocsOptions holds options for the docs command.
type DocsOptions struct {
	Dir string
}

// NewDocsCommand creates the docs command.
func NewDocsCommand() *cobra.Command {
	opts := &DocsOptions{}

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate markdown documentation for all rules",
		Long: `Write one markdown page per registered rule plus an index and a JSON
manifest, ready to publish as a static site.`,
		Example: `  # Write pages to the configured docs directory
  rulelint docs

  # Write pages somewhere else
  rulelint docs --dir build/rule-docs`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocs(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Directory to write pages into (default from config)")

	return cmd
}

func runDocs(cmd *cobra.Command, opts *DocsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	outDir := opts.Dir
	if outDir == "" {
		outDir = config.DefaultDocsDir
		if cfg.Docs != nil && cfg.Docs.Dir != "" {
			outDir = cfg.Docs.Dir
		}
		if !filepath.IsAbs(outDir) && cfg.ProjectRoot != "" {
			outDir = filepath.Join(cfg.ProjectRoot, outDir)
		}
	}

	gen := docs.NewGenerator()
	r.Printf("Generating documentation for %d rules...\n", len(gen.Rules()))

	if err := gen.Build(outDir); err != nil {
		return fmt.Errorf("failed to build documentation: %w", err)
	}

	r.Success(fmt.Sprintf("Documentation written to %s", outDir))
	return nil
}
