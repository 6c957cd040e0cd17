// Package lint provides the rule framework for analyzing ESLint-style rule
// source files.
//
// # Architecture
//
// The package follows a layered design:
//
//  1. Root package (pkg/lint/): shared contracts, the registry, options
//     resolution and the analyzer that drives one traversal per file
//  2. Rules (pkg/lint/rules/): the rule implementations, registered via
//     init() when the package is imported
//
// # Rule Registration
//
// Rules register themselves when their package is imported:
//
//	import _ "github.com/rulelint-dev/rulelint/pkg/lint/rules"
//
// # Rule Categories
//
//   - SZ (Size): rules about file and construct size
//   - MT (Meta): rules about the exported rule metadata contract
//
// # Running Analysis
//
// The analyzer parses a file once and dispatches a single pre-order walk
// to every enabled rule:
//
//	analyzer := lint.NewAnalyzer(config)
//	diags, err := analyzer.AnalyzeFile("rules/my-rule.js")
//
// # Configuration
//
// Use Config to control which rules run, their severity and their options:
//
//	config := lint.NewConfig()
//	config.Disable("MT01")
//	config.SetSeverity("SZ01", lint.SeverityError)
//	config.SetRuleOptions("SZ01", map[string]any{"max": 200, "skipComments": true})
//
// A rule with a scalar shorthand also accepts a bare value:
//
//	config.SetRuleOptions("SZ01", 200)
//
// # Creating Rules
//
// Define a RuleDef whose New factory returns the handlers for one run:
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "custom.my-rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    lint.SeverityWarning,
//		New:         newMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
