// Package docs generates rule documentation from the registry.
// It writes one markdown page per rule, a grouped index, and a
// manifest.json that editors and the hosted site read for navigation.
package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rulelint-dev/rulelint/pkg/lint"
)

// Generator renders documentation for a set of rules.
type Generator struct {
	rules []lint.RuleInfo
}

// NewGenerator creates a generator covering every registered rule,
// ordered by ID.
func NewGenerator() *Generator {
	defs := lint.GetAll()
	rules := make([]lint.RuleInfo, 0, len(defs))
	for _, def := range defs {
		rules = append(rules, lint.GetRuleInfo(def))
	}
	return &Generator{rules: rules}
}

// Rules returns the rules the generator documents.
func (g *Generator) Rules() []lint.RuleInfo {
	return g.rules
}

// groups returns the distinct rule groups, sorted.
func (g *Generator) groups() []string {
	seen := make(map[string]bool)
	var names []string
	for _, rule := range g.rules {
		if !seen[rule.Group] {
			seen[rule.Group] = true
			names = append(names, rule.Group)
		}
	}
	sort.Strings(names)
	return names
}

// byGroup returns the rules in one group, preserving ID order.
func (g *Generator) byGroup(group string) []lint.RuleInfo {
	var rules []lint.RuleInfo
	for _, rule := range g.rules {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// PageFileName returns the markdown file name for a rule page. Page names
// are the lowercased rule ID so they line up with the hosted doc URLs.
func PageFileName(ruleID string) string {
	return strings.ToLower(ruleID) + ".md"
}

// RulePage renders the markdown documentation page for one rule.
func RulePage(info lint.RuleInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - %s\n\n", info.ID, info.Name)
	if info.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", info.Description)
	}
	fmt.Fprintf(&b, "**Group:** %s\n", info.Group)
	fmt.Fprintf(&b, "**Default severity:** %s\n\n", info.Severity)

	if info.Rationale != "" {
		b.WriteString("## Why\n\n")
		fmt.Fprintf(&b, "%s\n\n", info.Rationale)
	}

	if len(info.ConfigKeys) > 0 {
		b.WriteString("## Options\n\n")
		for _, key := range info.ConfigKeys {
			fmt.Fprintf(&b, "- `%s`\n", key)
		}
		b.WriteString("\n")
	}

	if info.BadExample != "" || info.GoodExample != "" {
		b.WriteString("## Examples\n\n")
		if info.BadExample != "" {
			b.WriteString("Incorrect:\n\n")
			fmt.Fprintf(&b, "```js\n%s\n```\n\n", info.BadExample)
		}
		if info.GoodExample != "" {
			b.WriteString("Correct:\n\n")
			fmt.Fprintf(&b, "```js\n%s\n```\n\n", info.GoodExample)
		}
	}

	if info.Fix != "" {
		b.WriteString("## How to fix\n\n")
		fmt.Fprintf(&b, "%s\n", info.Fix)
	}

	return b.String()
}

// IndexPage renders the index listing every rule grouped by category.
func (g *Generator) IndexPage() string {
	var b strings.Builder

	b.WriteString("# Rules\n\n")
	fmt.Fprintf(&b, "%d rules in %d groups.\n", len(g.rules), len(g.groups()))

	for _, group := range g.groups() {
		fmt.Fprintf(&b, "\n## %s\n\n", group)
		for _, rule := range g.byGroup(group) {
			fmt.Fprintf(&b, "- [%s](%s) - %s (`%s`) - %s\n",
				rule.ID, PageFileName(rule.ID), rule.Name, rule.Severity, rule.Description)
		}
	}

	return b.String()
}

// Build writes the rule pages, the index, and manifest.json to outputDir.
func (g *Generator) Build(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, rule := range g.rules {
		path := filepath.Join(outputDir, PageFileName(rule.ID))
		if err := os.WriteFile(path, []byte(RulePage(rule)), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	indexPath := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(indexPath, []byte(g.IndexPage()), 0600); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	manifest := g.GenerateManifest()
	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	manifestJSON = append(manifestJSON, '\n')
	manifestPath := filepath.Join(outputDir, "manifest.json")
	if err := os.WriteFile(manifestPath, manifestJSON, 0600); err != nil {
		return fmt.Errorf("failed to write manifest.json: %w", err)
	}

	return nil
}
