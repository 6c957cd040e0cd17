package lint

import (
	"github.com/rulelint-dev/rulelint/pkg/parser"
	"github.com/rulelint-dev/rulelint/pkg/source"
	"github.com/rulelint-dev/rulelint/pkg/token"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition. Rules are stateless as values;
// per-run state lives in the handler closure returned by New, which is
// constructed fresh for every analyzed file.
type RuleDef struct {
	ID          string      // Unique identifier, e.g. "SZ01"
	Name        string      // Human-readable name, e.g. "size.file-length"
	Group       string      // Category, e.g. "size", "meta"
	Description string      // Human-readable description
	Severity    Severity    // Default severity
	New         NewFunc     // Handler factory, called once per run
	ConfigKeys  []string    // Configuration keys this rule accepts
	ScalarKey   string      // Option a bare scalar config value binds to, if any
	Impact      ImpactLevel // Weight for health score aggregation

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// NewFunc builds the traversal handlers for one analysis run. All state the
// rule accumulates during the walk belongs to the closure and is discarded
// with it.
type NewFunc func(run *RunContext) Handlers

// VisitFunc handles the enter event for one node.
type VisitFunc func(n parser.Node)

// Handlers is the dispatch table a rule registers for a run: enter handlers
// keyed by node kind, plus an optional exit handler fired once after the
// whole unit has been traversed.
type Handlers struct {
	Enter map[parser.Kind]VisitFunc
	Exit  func()
}

// =============================================================================
// Run Context
// =============================================================================

// RunContext carries one rule's view of one analysis run: the parsed unit,
// the ordered token/comment index, the resolved options, and the reporting
// sink. A fresh context is created per rule per file and never shared.
type RunContext struct {
	Unit    *parser.Unit
	File    *source.File
	Index   *source.Index
	Options map[string]any

	def   RuleDef
	diags []Diagnostic
}

// Report records a violation located at a node.
func (r *RunContext) Report(node parser.Node, message string) {
	span := node.GetSpan()
	r.ReportRange(span.Start, span.End, message)
}

// ReportAt records a violation at a fixed position.
func (r *RunContext) ReportAt(pos token.Position, message string) {
	r.ReportRange(pos, pos, message)
}

// ReportRange records a violation covering a position range.
func (r *RunContext) ReportRange(pos, end token.Position, message string) {
	r.diags = append(r.diags, Diagnostic{
		RuleID:           r.def.ID,
		Severity:         r.def.Severity,
		Message:          message,
		Pos:              pos,
		EndPos:           end,
		DocumentationURL: BuildDocURL(r.def.ID),
		ImpactScore:      r.def.Impact.Int(),
	})
}

// Diagnostics returns the violations reported so far.
func (r *RunContext) Diagnostics() []Diagnostic {
	return r.diags
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string         `json:"rule_id"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Pos      token.Position `json:"pos"`
	EndPos   token.Position `json:"end_pos"`

	// Remediation metadata
	DocumentationURL string `json:"documentation_url,omitempty"`
	ImpactScore      int    `json:"impact_score,omitempty"`
	AutoFixable      bool   `json:"auto_fixable,omitempty"`
}

// RuleInfo provides metadata about a rule for documentation and tooling.
type RuleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Description string   `json:"description"`
	Severity    Severity `json:"default_severity"`
	ConfigKeys  []string `json:"config_keys,omitempty"`
	Rationale   string   `json:"rationale,omitempty"`
	BadExample  string   `json:"bad_example,omitempty"`
	GoodExample string   `json:"good_example,omitempty"`
	Fix         string   `json:"fix,omitempty"`
}

// GetRuleInfo extracts metadata from a rule definition.
func GetRuleInfo(def RuleDef) RuleInfo {
	return RuleInfo{
		ID:          def.ID,
		Name:        def.Name,
		Group:       def.Group,
		Description: def.Description,
		Severity:    def.Severity,
		ConfigKeys:  def.ConfigKeys,
		Rationale:   def.Rationale,
		BadExample:  def.BadExample,
		GoodExample: def.GoodExample,
		Fix:         def.Fix,
	}
}
