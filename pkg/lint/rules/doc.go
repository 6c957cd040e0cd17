// Package rules provides the lint rule implementations for rulelint.
//
// Rules are organized by category:
//   - size: rules about file and construct size (SZ01)
//   - meta: rules about the exported rule metadata contract (MT01)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/rulelint-dev/rulelint/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/rulelint-dev/rulelint/pkg/lint/rules/size"
//	import _ "github.com/rulelint-dev/rulelint/pkg/lint/rules/meta"
package rules
