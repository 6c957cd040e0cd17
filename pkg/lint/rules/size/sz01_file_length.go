// Package size contains rules about file and construct size.
package size

import (
	"fmt"
	"strings"

	"github.com/rulelint-dev/rulelint/pkg/lint"
	"github.com/rulelint-dev/rulelint/pkg/token"
)

func init() {
	lint.Register(FileLength)
}

// FileLength enforces a maximum number of lines per rule file, optionally
// ignoring blank lines and lines occupied only by comments.
var FileLength = lint.RuleDef{
	ID:          "SZ01",
	Name:        "size.file-length",
	Group:       "size",
	Description: "Enforce a maximum number of lines per rule file.",
	Severity:    lint.SeverityWarning,
	New:         newFileLength,
	ConfigKeys:  []string{"max", "skipComments", "skipBlankLines"},
	ScalarKey:   "max",
	Impact:      lint.ImpactMedium,
	Rationale: "Large rule files are hard to review and usually bundle " +
		"several concerns. Keeping files under a line limit encourages " +
		"splitting helpers out and keeps each rule readable in one sitting.",
	BadExample:  "// a 700 line rule file mixing detection, messages and helpers",
	GoodExample: "// a rule file under the limit, helpers extracted to a module",
	Fix: "Split the file: move shared helpers into their own module, or " +
		"raise the limit deliberately via the max option.",
}

func newFileLength(run *lint.RunContext) lint.Handlers {
	// Purely lexical: no node handlers, everything happens at unit exit.
	return lint.Handlers{
		Exit: func() { checkFileLength(run) },
	}
}

func checkFileLength(run *lint.RunContext) {
	maxLines := lint.GetIntOption(run.Options, "max", 300)
	skipComments := boolOption(run.Options, "skipComments", "skip_comments")
	skipBlank := boolOption(run.Options, "skipBlankLines", "skip_blank_lines")

	total := run.File.LineCount()
	excluded := make(map[int]bool)

	if skipBlank {
		for line := 1; line <= total; line++ {
			if strings.TrimSpace(run.File.Line(line)) == "" {
				excluded[line] = true
			}
		}
	}

	if skipComments {
		for _, comment := range run.Unit.Comments {
			start, end := codeFreeRange(run, comment)
			for line := start; line <= end; line++ {
				if line >= 1 && line <= total {
					excluded[line] = true
				}
			}
		}
	}

	if total-len(excluded) > maxLines {
		run.ReportAt(
			token.Position{Line: 1, Column: 1},
			fmt.Sprintf("File must be at most %d lines long", maxLines),
		)
	}
}

// codeFreeRange returns the inclusive line range a comment leaves free of
// code. The comment's own span is trimmed at each boundary where a code
// token shares the line: the nearest non-comment token before the comment
// keeps the start line counted if it ends there, and the nearest one after
// keeps the end line counted if it starts there. Comment neighbors are
// skipped during both walks, so comment-only stretches collapse together.
// The returned range is empty (start > end) when code absorbs both sides.
func codeFreeRange(run *lint.RunContext, comment *token.Comment) (int, int) {
	start := comment.Span.Start.Line
	end := comment.Span.End.Line

	if before := run.Index.TokenBefore(comment.Span); before != nil && before.End().Line == start {
		start++
	}
	if after := run.Index.TokenAfter(comment.Span); after != nil && after.Pos().Line == end {
		end--
	}
	return start, end
}

// boolOption reads a boolean option under its primary key with a YAML-style
// snake_case alias.
func boolOption(opts map[string]any, key, alias string) bool {
	return lint.GetBoolOption(opts, key, lint.GetBoolOption(opts, alias, false))
}
