package lint

import (
	"sort"

	"github.com/rulelint-dev/rulelint/pkg/parser"
	"github.com/rulelint-dev/rulelint/pkg/source"
)

// Analyzer runs lint rules against parsed rule source.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// AnalyzeFile reads, parses and analyzes one file.
func (a *Analyzer) AnalyzeFile(path string) ([]Diagnostic, error) {
	f, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return a.analyze(f)
}

// AnalyzeSource parses and analyzes source text under the given name.
func (a *Analyzer) AnalyzeSource(name, content string) ([]Diagnostic, error) {
	return a.analyze(source.NewFile(name, content))
}

func (a *Analyzer) analyze(f *source.File) ([]Diagnostic, error) {
	unit, err := parser.Parse(f)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeUnit(unit), nil
}

// AnalyzeUnit runs all enabled rules over an already parsed unit.
//
// Every rule gets a fresh RunContext and handler set, then the unit is
// traversed exactly once: each node's enter event is dispatched to every
// rule that registered that kind, and after the walk the exit handlers
// fire so rules can finalize decisions that need the whole unit.
func (a *Analyzer) AnalyzeUnit(unit *parser.Unit) []Diagnostic {
	index := source.NewIndex(unit.Tokens, unit.Comments)

	type run struct {
		ctx      *RunContext
		handlers Handlers
	}
	var runs []run
	for _, def := range GetAll() {
		if a.config.IsDisabled(def.ID) {
			continue
		}
		ctx := &RunContext{
			Unit:    unit,
			File:    unit.File,
			Index:   index,
			Options: ExpandOptions(a.config.GetRuleOptions(def.ID), def.ScalarKey),
			def:     def,
		}
		runs = append(runs, run{ctx: ctx, handlers: def.New(ctx)})
	}

	parser.Walk(unit.Program, func(n parser.Node) bool {
		for _, r := range runs {
			if fn, ok := r.handlers.Enter[n.Kind()]; ok {
				fn(n)
			}
		}
		return true
	})
	for _, r := range runs {
		if r.handlers.Exit != nil {
			r.handlers.Exit()
		}
	}

	var diagnostics []Diagnostic
	for _, r := range runs {
		diags := r.ctx.Diagnostics()
		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(diags[i].RuleID, diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}
	sortDiagnostics(diagnostics)
	return diagnostics
}

// sortDiagnostics orders findings by position, then rule ID for stability.
func sortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Pos.Line != diags[j].Pos.Line {
			return diags[i].Pos.Line < diags[j].Pos.Line
		}
		if diags[i].Pos.Column != diags[j].Pos.Column {
			return diags[i].Pos.Column < diags[j].Pos.Column
		}
		return diags[i].RuleID < diags[j].RuleID
	})
}
