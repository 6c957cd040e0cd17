// Package meta contains rules about the exported rule metadata contract.
package meta

import (
	"github.com/rulelint-dev/rulelint/pkg/lint"
	"github.com/rulelint-dev/rulelint/pkg/parser"
)

func init() {
	lint.Register(RequiredMeta)
}

// RequiredMeta validates that an exported rule carries the complete meta
// block: meta, meta.docs with description/category/recommended, meta.schema,
// and meta.fixable when the rule body reports with a fix.
var RequiredMeta = lint.RuleDef{
	ID:          "MT01",
	Name:        "meta.required-properties",
	Group:       "meta",
	Description: "Require a complete meta block on exported rules.",
	Severity:    lint.SeverityError,
	New:         newRequiredMeta,
	Impact:      lint.ImpactHigh,
	Rationale: "The meta block drives documentation generation, config " +
		"schema validation and --fix eligibility. A rule missing meta " +
		"properties ships without docs and silently opts out of fix runs.",
	BadExample: `module.exports = {
    create(context) { /* ... */ }
};`,
	GoodExample: `module.exports = {
    meta: {
        docs: { description: "...", category: "...", recommended: false },
        schema: []
    },
    create(context) { /* ... */ }
};`,
	Fix: "Add the missing property to the meta block; declare fixable " +
		"when any report call passes a fix function.",
}

func newRequiredMeta(run *lint.RunContext) lint.Handlers {
	check := &metaCheck{run: run}
	return lint.Handlers{
		Enter: map[parser.Kind]lint.VisitFunc{
			parser.KindAssignExpression: check.enterAssign,
			parser.KindCallExpression:   check.enterCall,
		},
		Exit: check.finish,
	}
}

// metaCheck accumulates the exported config object and the fixability flag
// during the walk; validation runs once at unit exit.
type metaCheck struct {
	run      *lint.RunContext
	exported *parser.ObjectLiteral
	fixable  bool
}

// enterAssign tracks `module.exports = { ... }`. A later qualifying
// assignment replaces an earlier one, so only the last export is validated.
func (c *metaCheck) enterAssign(n parser.Node) {
	assign, ok := n.(*parser.AssignExpression)
	if !ok || assign.Operator != "=" {
		return
	}
	member, ok := assign.Left.(*parser.MemberExpression)
	if !ok || member.Computed || member.Property == nil || member.Property.Name != "exports" {
		return
	}
	obj, ok := member.Object.(*parser.Identifier)
	if !ok || obj.Name != "module" {
		return
	}
	lit, ok := assign.Right.(*parser.ObjectLiteral)
	if !ok {
		return
	}
	c.exported = lit
}

// enterCall flips the fixability flag on `context.report({...})` calls whose
// single object argument carries a fix property. Once true, it stays true.
func (c *metaCheck) enterCall(n parser.Node) {
	call, ok := n.(*parser.CallExpression)
	if !ok || len(call.Arguments) != 1 {
		return
	}
	member, ok := call.Callee.(*parser.MemberExpression)
	if !ok || member.Computed || member.Property == nil || member.Property.Name != "report" {
		return
	}
	obj, ok := member.Object.(*parser.Identifier)
	if !ok || obj.Name != "context" {
		return
	}
	arg, ok := call.Arguments[0].(*parser.ObjectLiteral)
	if !ok {
		return
	}
	if parser.Prop(arg, "fix") != nil {
		c.fixable = true
	}
}

// finish validates the exported config. Checks run in a fixed order and
// stop at the first failure; a unit without a module.exports object
// passes silently.
func (c *metaCheck) finish() {
	if c.exported == nil {
		return
	}

	metaProp := parser.Prop(c.exported, "meta")
	if metaProp == nil {
		c.run.Report(c.exported, "Rule is missing a meta property.")
		return
	}
	meta := metaProp.Value

	docsProp := parser.Prop(meta, "docs")
	if docsProp == nil {
		c.run.Report(metaProp, "Rule is missing a meta.docs property.")
		return
	}
	docs := docsProp.Value

	if parser.Prop(docs, "description") == nil {
		c.run.Report(metaProp, "Rule is missing a meta.docs.description property.")
		return
	}
	if parser.Prop(docs, "category") == nil {
		c.run.Report(metaProp, "Rule is missing a meta.docs.category property.")
		return
	}
	if parser.Prop(docs, "recommended") == nil {
		c.run.Report(metaProp, "Rule is missing a meta.docs.recommended property.")
		return
	}
	if parser.Prop(meta, "schema") == nil {
		c.run.Report(metaProp, "Rule is missing a meta.schema property.")
		return
	}
	if c.fixable && parser.Prop(meta, "fixable") == nil {
		c.run.Report(metaProp, "Rule is fixable, but is missing a meta.fixable property.")
	}
}
