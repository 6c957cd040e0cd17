package lsp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulelint-dev/rulelint/pkg/lint"
	"github.com/rulelint-dev/rulelint/pkg/token"
)

// ruleMissingMeta is a rule source that parses cleanly but violates the
// required-meta contract.
const ruleMissingMeta = `module.exports = {
  create(context) {
    return {};
  }
};
`

// ruleComplete carries the full meta contract and passes every rule.
const ruleComplete = `module.exports = {
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
    return {};
  }
};
`

func newTestDocument(uri, content string) *Document {
	return &Document{
		URI:     uri,
		Content: content,
		Version: 1,
		Lines:   computeLineOffsets(content),
	}
}

func TestSeverityToLSP(t *testing.T) {
	tests := []struct {
		severity lint.Severity
		expected DiagnosticSeverity
	}{
		{lint.SeverityError, DiagnosticSeverityError},
		{lint.SeverityWarning, DiagnosticSeverityWarning},
		{lint.SeverityInfo, DiagnosticSeverityInformation},
		{lint.SeverityHint, DiagnosticSeverityHint},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, severityToLSP(tt.severity), "severityToLSP(%v)", tt.severity)
	}
}

func TestPositionFor(t *testing.T) {
	tests := []struct {
		pos      token.Position
		expected Position
	}{
		{token.Position{Line: 1, Column: 1}, Position{Line: 0, Character: 0}},
		{token.Position{Line: 5, Column: 12}, Position{Line: 4, Character: 11}},
		// Zero positions clamp instead of wrapping around
		{token.Position{Line: 0, Column: 0}, Position{Line: 0, Character: 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, positionFor(tt.pos), "positionFor(%v)", tt.pos)
	}
}

func TestLintToDiagnostic(t *testing.T) {
	doc := newTestDocument("file:///rules/r.js", "module.exports = {};\n")

	d := lint.Diagnostic{
		RuleID:           "SZ01",
		Severity:         lint.SeverityWarning,
		Message:          "File must be at most 300 lines long",
		Pos:              token.Position{Line: 1, Column: 1},
		EndPos:           token.Position{Line: 1, Column: 1},
		DocumentationURL: "https://rulelint.dev/docs/rules/sz01",
	}

	diag := lintToDiagnostic(doc, d)

	assert.Equal(t, "SZ01", diag.Code)
	assert.Equal(t, DiagnosticSeverityWarning, diag.Severity)
	assert.Equal(t, diagnosticSource, diag.Source)
	assert.Equal(t, "File must be at most 300 lines long", diag.Message)
	require.NotNil(t, diag.CodeDescription)
	assert.Equal(t, "https://rulelint.dev/docs/rules/sz01", diag.CodeDescription.Href)

	// Zero-width finding widened to the end of its line
	assert.Equal(t, Position{Line: 0, Character: 0}, diag.Range.Start)
	assert.Equal(t, Position{Line: 0, Character: 20}, diag.Range.End)
}

func TestLintToDiagnostic_KeepsRealExtent(t *testing.T) {
	doc := newTestDocument("file:///rules/r.js", "module.exports = {};\n")

	d := lint.Diagnostic{
		RuleID:   "MT01",
		Severity: lint.SeverityError,
		Message:  "Rule is missing a meta property.",
		Pos:      token.Position{Line: 1, Column: 18},
		EndPos:   token.Position{Line: 1, Column: 20},
	}

	diag := lintToDiagnostic(doc, d)

	assert.Equal(t, Position{Line: 0, Character: 17}, diag.Range.Start)
	assert.Equal(t, Position{Line: 0, Character: 19}, diag.Range.End)
	assert.Nil(t, diag.CodeDescription)
}

func TestParseErrorToDiagnostic_PlainError(t *testing.T) {
	doc := newTestDocument("file:///rules/r.js", "module.exports = ;\n")

	diag := parseErrorToDiagnostic(doc, errors.New("something broke"))

	assert.Equal(t, "parse", diag.Code)
	assert.Equal(t, DiagnosticSeverityError, diag.Severity)
	assert.Equal(t, "something broke", diag.Message)
	assert.Equal(t, Position{Line: 0, Character: 0}, diag.Range.Start)
}

func newDiagnosticTestServer() *Server {
	return &Server{
		documents: NewDocumentStore(),
		analyzer:  lint.NewAnalyzer(nil),
	}
}

func TestLintDocument_MissingMeta(t *testing.T) {
	server := newDiagnosticTestServer()
	doc := newTestDocument("file:///rules/no-meta.js", ruleMissingMeta)

	diags := server.lintDocument(doc)

	require.Len(t, diags, 1)
	assert.Equal(t, "MT01", diags[0].Code)
	assert.Equal(t, DiagnosticSeverityError, diags[0].Severity)
	assert.Equal(t, "Rule is missing a meta property.", diags[0].Message)
	assert.Equal(t, diagnosticSource, diags[0].Source)
	require.NotNil(t, diags[0].CodeDescription)
	assert.Contains(t, diags[0].CodeDescription.Href, "/mt01")
	assert.EqualValues(t, 0, diags[0].Range.Start.Line)
}

func TestLintDocument_CleanFile(t *testing.T) {
	server := newDiagnosticTestServer()
	doc := newTestDocument("file:///rules/no-console.js", ruleComplete)

	diags := server.lintDocument(doc)

	assert.Empty(t, diags)
}

func TestLintDocument_ParseError(t *testing.T) {
	server := newDiagnosticTestServer()
	doc := newTestDocument("file:///rules/broken.js", "module.exports = ;\n")

	diags := server.lintDocument(doc)

	require.Len(t, diags, 1)
	assert.Equal(t, "parse", diags[0].Code)
	assert.Equal(t, DiagnosticSeverityError, diags[0].Severity)
	assert.NotEmpty(t, diags[0].Message)
}

func TestLintDocument_DisabledRule(t *testing.T) {
	cfg := lint.NewConfig().Disable("MT01")
	server := &Server{
		documents: NewDocumentStore(),
		analyzer:  lint.NewAnalyzer(cfg),
	}
	doc := newTestDocument("file:///rules/no-meta.js", ruleMissingMeta)

	diags := server.lintDocument(doc)

	assert.Empty(t, diags)
}
