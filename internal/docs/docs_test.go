package docs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulelint-dev/rulelint/pkg/lint"
)

func TestNewGenerator_LoadsRegistry(t *testing.T) {
	gen := NewGenerator()

	rules := gen.Rules()
	require.NotEmpty(t, rules)

	ids := make([]string, 0, len(rules))
	for _, rule := range rules {
		ids = append(ids, rule.ID)
	}
	assert.Contains(t, ids, "SZ01")
	assert.Contains(t, ids, "MT01")
}

func TestPageFileName(t *testing.T) {
	tests := []struct {
		name     string
		ruleID   string
		expected string
	}{
		{
			name:     "uppercase ID",
			ruleID:   "SZ01",
			expected: "sz01.md",
		},
		{
			name:     "already lowercase",
			ruleID:   "mt01",
			expected: "mt01.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageFileName(tt.ruleID))
		})
	}
}

func TestRulePage_FullMetadata(t *testing.T) {
	info := lint.RuleInfo{
		ID:          "SZ01",
		Name:        "size.file-length",
		Group:       "size",
		Description: "Enforce a maximum number of lines per rule file.",
		Severity:    lint.SeverityWarning,
		ConfigKeys:  []string{"max", "skipComments"},
		Rationale:   "Large files are hard to review.",
		BadExample:  "// a very long file",
		GoodExample: "// a short file",
		Fix:         "Split the file.",
	}

	page := RulePage(info)

	assert.True(t, strings.HasPrefix(page, "# SZ01 - size.file-length\n"))
	assert.Contains(t, page, "Enforce a maximum number of lines per rule file.")
	assert.Contains(t, page, "**Group:** size\n")
	assert.Contains(t, page, "**Default severity:** warning\n")
	assert.Contains(t, page, "## Why\n\nLarge files are hard to review.")
	assert.Contains(t, page, "## Options\n\n- `max`\n- `skipComments`\n")
	assert.Contains(t, page, "Incorrect:\n\n```js\n// a very long file\n```")
	assert.Contains(t, page, "Correct:\n\n```js\n// a short file\n```")
	assert.Contains(t, page, "## How to fix\n\nSplit the file.\n")
}

func TestRulePage_MinimalMetadata(t *testing.T) {
	info := newTestRule("XX01", "test.minimal", "test", lint.SeverityError)

	page := RulePage(info)

	assert.Contains(t, page, "# XX01 - test.minimal\n")
	assert.Contains(t, page, "**Default severity:** error\n")
	assert.NotContains(t, page, "## Why")
	assert.NotContains(t, page, "## Options")
	assert.NotContains(t, page, "## Examples")
	assert.NotContains(t, page, "## How to fix")
}

func TestRulePage_OnlyGoodExample(t *testing.T) {
	info := newTestRule("XX01", "test.good", "test", lint.SeverityInfo)
	info.GoodExample = "// fine"

	page := RulePage(info)

	assert.Contains(t, page, "## Examples")
	assert.Contains(t, page, "Correct:")
	assert.NotContains(t, page, "Incorrect:")
}

func TestIndexPage_GroupsAndOrder(t *testing.T) {
	gen := newTestGenerator(
		newTestRule("MT01", "meta.required-properties", "meta", lint.SeverityError),
		newTestRule("SZ01", "size.file-length", "size", lint.SeverityWarning),
		newTestRule("SZ02", "size.function-length", "size", lint.SeverityWarning),
	)

	page := gen.IndexPage()

	assert.True(t, strings.HasPrefix(page, "# Rules\n\n3 rules in 2 groups.\n"))
	assert.Contains(t, page, "## meta\n")
	assert.Contains(t, page, "## size\n")
	assert.Contains(t, page, "- [MT01](mt01.md) - meta.required-properties (`error`)")
	assert.Contains(t, page, "- [SZ01](sz01.md) - size.file-length (`warning`)")

	// Groups sorted alphabetically, rules in ID order inside each group.
	assert.Less(t, strings.Index(page, "## meta"), strings.Index(page, "## size"))
	assert.Less(t, strings.Index(page, "[SZ01]"), strings.Index(page, "[SZ02]"))
}

func TestBuild_WritesFiles(t *testing.T) {
	gen := newTestGenerator(
		newTestRule("MT01", "meta.required-properties", "meta", lint.SeverityError),
		newTestRule("SZ01", "size.file-length", "size", lint.SeverityWarning),
	)

	outDir := filepath.Join(t.TempDir(), "docs", "rules")
	require.NoError(t, gen.Build(outDir))

	for _, name := range []string{"mt01.md", "sz01.md", "README.md", "manifest.json"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, "expected %s to be written", name)
	}

	page, err := os.ReadFile(filepath.Join(outDir, "sz01.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "# SZ01 - size.file-length")

	index, err := os.ReadFile(filepath.Join(outDir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "2 rules in 2 groups.")
}

func TestBuild_RegisteredRules(t *testing.T) {
	gen := NewGenerator()

	outDir := t.TempDir()
	require.NoError(t, gen.Build(outDir))

	_, err := os.Stat(filepath.Join(outDir, "sz01.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "mt01.md"))
	assert.NoError(t, err)
}
