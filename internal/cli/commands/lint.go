package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rulelint-dev/rulelint/internal/cli/config"
	"github.com/rulelint-dev/rulelint/internal/cli/output"
	"github.com/rulelint-dev/rulelint/internal/discover"
	"github.com/rulelint-dev/rulelint/internal/state"
	"github.com/rulelint-dev/rulelint/pkg/lint"
	_ "github.com/rulelint-dev/rulelint/pkg/lint/rules" // register all rules
	"github.com/rulelint-dev/rulelint/pkg/parser"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string
	Format   string
	Disable  []string
	Rules    []string
	Severity string
	MaxLines int
	Save     bool
	Watch    bool
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}

	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Check rule files for structural problems",
		Long: `Analyze ESLint-style rule files against the registered lint rules.

Paths may be rule files or directories; directories are walked
recursively for .js files. With no paths, the configured rules
directory is linted. The command exits non-zero when any issue at or
above the severity threshold is found.`,
		Example: `  # Lint the configured rules directory
  rulelint lint

  # Lint specific files and directories
  rulelint lint rules/no-console.js shared/

  # Only report errors, as JSON
  rulelint lint --severity error --format json

  # Record the run in history and re-lint on changes
  rulelint lint --save --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format (text, markdown, json)")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only these rule IDs (comma-separated)")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity to report (error, warning, info, hint)")
	cmd.Flags().IntVar(&opts.MaxLines, "max-lines", 0, "Override the maximum allowed file length")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Record this run in the state database")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-lint whenever a rule file changes")

	return cmd
}

// lintFileResult pairs a file with its diagnostics.
type lintFileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	roots := opts.Paths
	if len(roots) == 0 {
		roots = []string{cfg.RulesDir}
	}

	files, err := discover.RuleFiles(roots...)
	if err != nil {
		return fmt.Errorf("failed to discover rule files: %w", err)
	}
	if len(files) == 0 {
		r.Warning("No rule files found")
		return nil
	}

	lintCfg := buildLintConfig(cfg, opts)
	analyzer := lint.NewAnalyzer(lintCfg)

	results, err := lintFiles(cmd.Context(), analyzer, files)
	if err != nil {
		return err
	}
	results = filterBySeverity(results, opts.Severity)

	if opts.Save {
		runID, err := saveRun(cfg, len(files), results)
		if err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		cmdCtx.Logger.Debug("lint run recorded", "run_id", runID)
	}

	hasIssues := renderLintResults(r, results, len(files))

	if opts.Watch {
		return watchAndRelint(cmd, r, analyzer, roots, opts)
	}

	if hasIssues {
		return fmt.Errorf("lint issues found")
	}
	return nil
}

// buildLintConfig layers CLI flags over the project configuration.
func buildLintConfig(cfg *config.Config, opts *LintOptions) *lint.Config {
	lintCfg := cfg.LintSettings()

	for _, id := range opts.Disable {
		if id = strings.TrimSpace(id); id != "" {
			lintCfg.Disable(id)
		}
	}

	if len(opts.Rules) > 0 {
		enabled := make(map[string]bool, len(opts.Rules))
		for _, id := range opts.Rules {
			enabled[strings.TrimSpace(id)] = true
		}
		for _, def := range lint.GetAll() {
			if !enabled[def.ID] {
				lintCfg.Disable(def.ID)
			}
		}
	}

	if opts.MaxLines > 0 {
		lintCfg.SetRuleOptions("SZ01", opts.MaxLines)
	}

	return lintCfg
}

// lintFiles analyzes every file concurrently, keeping discovery order
// in the result. A file that fails to parse becomes a single error
// finding instead of aborting the run.
func lintFiles(ctx context.Context, analyzer *lint.Analyzer, files []string) ([]lintFileResult, error) {
	slots := make([]lintFileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			diags, err := analyzer.AnalyzeFile(path)
			if err != nil {
				var parseErr *parser.ParseError
				if !errors.As(err, &parseErr) {
					return fmt.Errorf("failed to lint %s: %w", path, err)
				}
				diags = []lint.Diagnostic{parseFailure(parseErr)}
			}
			slots[i] = lintFileResult{Path: path, Diagnostics: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []lintFileResult
	for _, res := range slots {
		if len(res.Diagnostics) > 0 {
			results = append(results, res)
		}
	}
	return results, nil
}

// parseFailure reports an unparseable file as an error finding so it
// shows up next to ordinary lint issues.
func parseFailure(parseErr *parser.ParseError) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   "parse",
		Severity: lint.SeverityError,
		Message:  parseErr.Message,
		Pos:      parseErr.Pos,
		EndPos:   parseErr.Pos,
	}
}

// filterBySeverity keeps diagnostics at or above the threshold.
func filterBySeverity(results []lintFileResult, severityThreshold string) []lintFileResult {
	threshold, err := lint.ParseSeverity(severityThreshold)
	if err != nil {
		threshold = lint.SeverityWarning
	}

	var filtered []lintFileResult
	for _, res := range results {
		var diags []lint.Diagnostic
		for _, d := range res.Diagnostics {
			if d.Severity <= threshold {
				diags = append(diags, d)
			}
		}
		if len(diags) > 0 {
			filtered = append(filtered, lintFileResult{
				Path:        res.Path,
				Diagnostics: diags,
			})
		}
	}
	return filtered
}

// saveRun records a completed lint run and its findings in the state
// database, returning the new run ID.
func saveRun(cfg *config.Config, filesLinted int, results []lintFileResult) (string, error) {
	store, err := openStateStore(cfg)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close() }()

	run, err := store.CreateRun()
	if err != nil {
		return "", err
	}

	var findings []state.Finding
	issues := 0
	for _, res := range results {
		for _, d := range res.Diagnostics {
			issues++
			findings = append(findings, state.Finding{
				RunID:    run.ID,
				Path:     res.Path,
				RuleID:   d.RuleID,
				Severity: d.Severity.String(),
				Message:  d.Message,
				Line:     d.Pos.Line,
				Column:   d.Pos.Column,
			})
		}
	}

	if err := store.InsertFindings(run.ID, findings); err != nil {
		_ = store.CompleteRun(run.ID, state.RunStatusFailed, filesLinted, 0, err.Error())
		return "", err
	}
	if err := store.CompleteRun(run.ID, state.RunStatusCompleted, filesLinted, issues, ""); err != nil {
		return "", err
	}
	return run.ID, nil
}

func renderLintResults(r *output.Renderer, results []lintFileResult, filesAnalyzed int) bool {
	mode := r.EffectiveMode()

	// Calculate summary stats
	summary := output.LintSummary{
		FilesAnalyzed: filesAnalyzed,
	}
	for _, res := range results {
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}

	if mode == output.ModeJSON {
		// JSON consumers get a document even for a clean run.
		jsonOutput := output.LintOutput{
			Summary: summary,
			Files:   []output.LintFileResult{},
		}
		for _, res := range results {
			fileResult := output.LintFileResult{
				Path: res.Path,
			}
			for _, d := range res.Diagnostics {
				fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
					RuleID:   d.RuleID,
					Severity: d.Severity.String(),
					Message:  d.Message,
					Line:     d.Pos.Line,
					Column:   d.Pos.Column,
					DocURL:   d.DocumentationURL,
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, fileResult)
		}
		_ = r.JSON(jsonOutput)
		return summary.TotalIssues > 0
	}

	if len(results) == 0 {
		r.Success("No lint issues found")
		return false
	}

	// Text/Markdown output
	for _, res := range results {
		r.Println(r.Styles().FilePath.Render(res.Path))
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
			if d.Pos.Line == 0 {
				loc = "-"
			}
			sevStyle := severityStyle(r, d.Severity)
			r.Printf("  %s  %s  %s  %s\n",
				r.Styles().Muted.Render(fmt.Sprintf("%-5s", loc)),
				sevStyle,
				r.Styles().Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	summaryParts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d hints", summary.Hints))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.FilesAnalyzed)

	return true
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}

// watchAndRelint re-lints the given roots whenever a rule file under
// them changes. It blocks until the command context is cancelled.
func watchAndRelint(cmd *cobra.Command, r *output.Renderer, analyzer *lint.Analyzer, roots []string, opts *LintOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := watchRecursive(watcher, root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	r.Muted("Watching for changes (press Ctrl+C to stop)")

	ctx := cmd.Context()
	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".js" {
				continue
			}
			// Debounce: editors fire several events per save.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				relint(r, analyzer, roots, opts)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.Warning(fmt.Sprintf("Watch error: %v", err))
		}
	}
}

// watchRecursive registers root and every directory below it. A file
// root watches its parent directory instead, since editors replace
// files rather than write them in place.
func watchRecursive(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// relint runs one watch-triggered pass. Failures are reported but do
// not stop the watch loop, and runs are not recorded in history.
func relint(r *output.Renderer, analyzer *lint.Analyzer, roots []string, opts *LintOptions) {
	files, err := discover.RuleFiles(roots...)
	if err != nil {
		r.Warning(fmt.Sprintf("Discovery failed: %v", err))
		return
	}

	results, err := lintFiles(context.Background(), analyzer, files)
	if err != nil {
		r.Warning(fmt.Sprintf("Lint failed: %v", err))
		return
	}
	results = filterBySeverity(results, opts.Severity)

	r.Println("")
	renderLintResults(r, results, len(files))
}
