package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Force bool
}

// exampleRule ships with new projects so the first lint run has a real
// file to check. It carries every required meta property and stays well
// under the default length limit.
const exampleRule = `// Disallow console calls inside rule implementations.
module.exports = {
  meta: {
    docs: {
      description: "disallow console calls",
      category: "Best Practices",
      recommended: true
    },
    schema: [],
    fixable: null
  },
  create(context) {
    return {
      CallExpression(node) {
        context.report({ node: node, message: "Unexpected console call." });
      }
    };
  }
};
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Scaffold a new rulelint project",
		Long: `Create a rulelint.yaml, a rules directory with an example rule, and a
.gitignore entry for the state database. With no argument the current
directory is initialized.`,
		Example: `  # Initialize the current directory
  rulelint init

  # Initialize a new directory
  rulelint init my-rules`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd, dir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, opts *InitOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, "rulelint.yaml")
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	content, err := defaultConfigYAML()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	r.StatusLine("rulelint.yaml", "success", "project configuration")

	rulesDir := filepath.Join(dir, "rules")
	if err := os.MkdirAll(rulesDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", rulesDir, err)
	}

	examplePath := filepath.Join(rulesDir, "no-console.js")
	created, err := writeIfMissing(examplePath, []byte(exampleRule), opts.Force)
	if err != nil {
		return err
	}
	if created {
		r.StatusLine("rules/no-console.js", "success", "example rule")
	} else {
		r.StatusLine("rules/no-console.js", "warning", "already exists, skipped")
	}

	gitignorePath := filepath.Join(dir, ".gitignore")
	created, err = writeIfMissing(gitignorePath, []byte(".rulelint/\n"), opts.Force)
	if err != nil {
		return err
	}
	if created {
		r.StatusLine(".gitignore", "success", "ignores the state database")
	} else {
		r.StatusLine(".gitignore", "warning", "already exists, skipped")
	}

	r.Println("")
	r.Success("rulelint project initialized")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Add rule files under rules/")
	r.Println("  2. Run 'rulelint lint' to check them")
	r.Println("  3. Run 'rulelint rules' to see what gets checked")
	r.Println("")

	return nil
}

// scaffoldConfig is the starter rulelint.yaml. A struct keeps the key
// order stable across runs.
type scaffoldConfig struct {
	RulesDir string `yaml:"rules_dir"`
	Lint     struct {
		Disabled []string       `yaml:"disabled"`
		Rules    map[string]any `yaml:"rules"`
	} `yaml:"lint"`
}

func defaultConfigYAML() ([]byte, error) {
	cfg := scaffoldConfig{RulesDir: "rules"}
	cfg.Lint.Disabled = []string{}
	cfg.Lint.Rules = map[string]any{
		"SZ01": map[string]any{"max": 300},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	header := "# rulelint configuration\n# Run 'rulelint rules' for the available rule IDs and options.\n"
	return append([]byte(header), data...), nil
}

// writeIfMissing writes the file unless it already exists, reporting
// whether it wrote.
func writeIfMissing(path string, content []byte, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil && !force {
		return false, nil
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
