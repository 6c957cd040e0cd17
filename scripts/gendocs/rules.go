package main

import (
	"fmt"
	"log"

	"github.com/rulelint-dev/rulelint/internal/docs"
	_ "github.com/rulelint-dev/rulelint/pkg/lint/rules" // register all rules
)

// generateRuleDocs writes one page per lint rule plus the index and
// manifest, reusing the same generator the `rulelint docs` command runs.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	gen := docs.NewGenerator()
	if err := gen.Build(outDir); err != nil {
		return fmt.Errorf("failed to build rule docs: %w", err)
	}

	log.Printf("  Generated %d rule pages", len(gen.Rules()))
	return nil
}
