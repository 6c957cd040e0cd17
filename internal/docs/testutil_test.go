package docs

import (
	"github.com/rulelint-dev/rulelint/pkg/lint"

	// Register the built-in rules for tests that read the global registry.
	_ "github.com/rulelint-dev/rulelint/pkg/lint/rules"
)

// newTestRule builds a minimal RuleInfo fixture.
func newTestRule(id, name, group string, severity lint.Severity) lint.RuleInfo {
	return lint.RuleInfo{
		ID:          id,
		Name:        name,
		Group:       group,
		Description: "Checks something about " + name + ".",
		Severity:    severity,
	}
}

// newTestGenerator builds a generator over fixture rules, bypassing the
// global registry.
func newTestGenerator(rules ...lint.RuleInfo) *Generator {
	return &Generator{rules: rules}
}
