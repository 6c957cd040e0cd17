package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rulelint-dev/rulelint/internal/cli/config"
	"github.com/rulelint-dev/rulelint/internal/lsp"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start a Language Server Protocol server on stdin/stdout.

Editors launch this to get diagnostics as rule files are edited. The
server re-reads rulelint.yaml when it is saved, so configuration
changes apply without a restart.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := config.GetLogger(cmd.Context())
			server := lsp.NewServerWithLogger(os.Stdin, os.Stdout, logger)
			return server.Run()
		},
	}
}
