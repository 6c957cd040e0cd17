package lsp

import (
	"errors"
	"strings"

	"github.com/rulelint-dev/rulelint/pkg/lint"
	_ "github.com/rulelint-dev/rulelint/pkg/lint/rules" // Register built-in rules
	"github.com/rulelint-dev/rulelint/pkg/parser"
	"github.com/rulelint-dev/rulelint/pkg/token"
)

// diagnosticSource is the source tag attached to every published diagnostic.
const diagnosticSource = "rulelint"

// publishDiagnostics lints the document and publishes the findings. The
// params carry the version the diagnostics were computed for.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	diagnostics := []Diagnostic{}

	// Only rule source files are linted.
	if strings.HasSuffix(uri, ".js") {
		diagnostics = s.lintDocument(doc)
	}

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     doc.Version,
		Diagnostics: diagnostics,
	})
}

// lintDocument analyzes the overlay content and converts the results.
// A file that fails to parse yields a single parse error diagnostic.
func (s *Server) lintDocument(doc *Document) []Diagnostic {
	results, err := s.analyzer.AnalyzeSource(URIToPath(doc.URI), doc.Content)
	if err != nil {
		return []Diagnostic{parseErrorToDiagnostic(doc, err)}
	}

	diagnostics := make([]Diagnostic, 0, len(results))
	for _, d := range results {
		diagnostics = append(diagnostics, lintToDiagnostic(doc, d))
	}
	return diagnostics
}

// lintToDiagnostic converts a lint finding to an LSP diagnostic.
func lintToDiagnostic(doc *Document, d lint.Diagnostic) Diagnostic {
	r := Range{
		Start: positionFor(d.Pos),
		End:   positionFor(d.EndPos),
	}
	if r.Start == r.End {
		// Fixed-location findings have no extent; underline to end of line.
		r = doc.RangeToLineEnd(r.Start)
	}

	diag := Diagnostic{
		Range:    r,
		Severity: severityToLSP(d.Severity),
		Code:     d.RuleID,
		Source:   diagnosticSource,
		Message:  d.Message,
	}
	if d.DocumentationURL != "" {
		diag.CodeDescription = &CodeDescription{Href: d.DocumentationURL}
	}
	return diag
}

// parseErrorToDiagnostic converts a parse failure to an LSP diagnostic.
func parseErrorToDiagnostic(doc *Document, err error) Diagnostic {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		pos := positionFor(pe.Pos)
		return Diagnostic{
			Range:    doc.RangeToLineEnd(pos),
			Severity: DiagnosticSeverityError,
			Code:     "parse",
			Source:   diagnosticSource,
			Message:  pe.Message,
		}
	}

	return Diagnostic{
		Range:    doc.RangeToLineEnd(Position{}),
		Severity: DiagnosticSeverityError,
		Code:     "parse",
		Source:   diagnosticSource,
		Message:  err.Error(),
	}
}

// positionFor converts a one-based source position to a zero-based LSP one.
func positionFor(p token.Position) Position {
	line, col := p.Line-1, p.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return Position{
		Line:      uint32(line), //nolint:gosec // G115: clamped above
		Character: uint32(col),  //nolint:gosec // G115: clamped above
	}
}

// severityToLSP maps lint severities onto the LSP scale.
func severityToLSP(s lint.Severity) DiagnosticSeverity {
	switch s {
	case lint.SeverityError:
		return DiagnosticSeverityError
	case lint.SeverityWarning:
		return DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return DiagnosticSeverityInformation
	case lint.SeverityHint:
		return DiagnosticSeverityHint
	default:
		return DiagnosticSeverityWarning
	}
}
