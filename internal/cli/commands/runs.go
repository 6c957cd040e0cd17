package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/rulelint-dev/rulelint/internal/cli/output"
	"github.com/rulelint-dev/rulelint/internal/state"
)

// RunsOptions holds options for the runs command.
type RunsOptions struct {
	Limit  int
	Format string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	opts := &RunsOptions{}

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show recorded lint runs",
		Long: `List lint runs recorded with 'lint --save', or show one run and its
findings when a run ID is given. The ID "latest" resolves to the most
recent run.`,
		Example: `  # List recent runs
  rulelint runs

  # Show the most recent run with its findings
  rulelint runs latest

  # Show a specific run as JSON
  rulelint runs 5f2b1c7e-9d41-4c8a-b7e3-2f0a6d9c1e84 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runShowRun(cmd, args[0], opts)
			}
			return runListRuns(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format (text, markdown, json)")

	return cmd
}

func runListRuns(cmd *cobra.Command, opts *RunsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	// Don't create the database just to report it is empty.
	if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
		r.Muted("No runs recorded yet. Use 'rulelint lint --save' to record one.")
		return nil
	}

	store, err := openStateStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		r.Muted("No runs recorded yet. Use 'rulelint lint --save' to record one.")
		return nil
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		payload := RunsJSONOutput{Runs: make([]RunSummary, 0, len(runs))}
		for _, run := range runs {
			payload.Runs = append(payload.Runs, newRunSummary(run))
		}
		return r.JSON(payload)
	case output.ModeMarkdown:
		return listRunsMarkdown(r, runs)
	default:
		return listRunsText(r, runs)
	}
}

func runShowRun(cmd *cobra.Command, runID string, opts *RunsOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
		return fmt.Errorf("no runs recorded yet")
	}

	store, err := openStateStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := resolveRun(store, runID)
	if err != nil {
		return err
	}

	findings, err := store.ListFindings(run.ID)
	if err != nil {
		return fmt.Errorf("failed to load findings: %w", err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return showRunJSON(r, run, findings)
	case output.ModeMarkdown:
		return showRunMarkdown(r, run, findings)
	default:
		return showRunText(r, run, findings)
	}
}

// resolveRun loads a run by ID, with "latest" resolving to the most
// recent one.
func resolveRun(store *state.SQLiteStore, runID string) (*state.Run, error) {
	if runID == "latest" {
		run, err := store.LatestRun()
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, fmt.Errorf("no runs recorded yet")
		}
		return run, nil
	}
	return store.GetRun(runID)
}

// RunSummary is the JSON shape of one recorded run.
type RunSummary struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	Duration    string `json:"duration,omitempty"`
	FilesLinted int    `json:"files_linted"`
	Issues      int    `json:"issues"`
	Error       string `json:"error,omitempty"`
}

// RunsJSONOutput is the JSON output structure for the runs listing.
type RunsJSONOutput struct {
	Runs []RunSummary `json:"runs"`
}

// RunDetailOutput is the JSON shape of one run with its findings.
type RunDetailOutput struct {
	Run      RunSummary       `json:"run"`
	Findings []FindingSummary `json:"findings"`
}

// FindingSummary is the JSON shape of one persisted finding.
type FindingSummary struct {
	Path     string `json:"path"`
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

func newRunSummary(run *state.Run) RunSummary {
	s := RunSummary{
		ID:          run.ID,
		Status:      string(run.Status),
		StartedAt:   run.StartedAt.Format(time.RFC3339),
		FilesLinted: run.FilesLinted,
		Issues:      run.Issues,
		Error:       run.Error,
	}
	if run.CompletedAt != nil {
		s.CompletedAt = run.CompletedAt.Format(time.RFC3339)
		s.Duration = formatRunDuration(run)
	}
	return s
}

func formatRunDuration(run *state.Run) string {
	if run.CompletedAt == nil {
		return "-"
	}
	return run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}

func listRunsText(r *output.Renderer, runs []*state.Run) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Runs (%d)", len(runs))))
	r.Println("")

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Status", "Started", "Duration", "Files", "Issues"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.ID,
			runStatusStyle(styles, run.Status).Render(string(run.Status)),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			formatRunDuration(run),
			run.FilesLinted,
			run.Issues,
		})
	}
	t.Render()

	r.Println("")
	r.Println(styles.Muted.Render("Use 'rulelint runs <run-id>' to inspect findings"))
	r.Println("")

	return nil
}

func listRunsMarkdown(r *output.Renderer, runs []*state.Run) error {
	r.Println("# Lint Runs")
	r.Println("")
	r.Println("| Run | Status | Started | Duration | Files | Issues |")
	r.Println("|-----|--------|---------|----------|-------|--------|")
	for _, run := range runs {
		r.Printf("| %s | %s | %s | %s | %d | %d |\n",
			run.ID,
			string(run.Status),
			run.StartedAt.Format(time.RFC3339),
			formatRunDuration(run),
			run.FilesLinted,
			run.Issues,
		)
	}
	r.Println("")
	return nil
}

func showRunText(r *output.Renderer, run *state.Run, findings []state.Finding) error {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Run " + run.ID))
	r.Println("")

	r.Printf("  %s: %s\n", styles.Bold.Render("Status"), runStatusStyle(styles, run.Status).Render(string(run.Status)))
	r.Printf("  %s: %s\n", styles.Bold.Render("Started"), run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	r.Printf("  %s: %s\n", styles.Bold.Render("Duration"), formatRunDuration(run))
	r.Printf("  %s: %d\n", styles.Bold.Render("Files"), run.FilesLinted)
	r.Printf("  %s: %d\n", styles.Bold.Render("Issues"), run.Issues)
	if run.Error != "" {
		r.Printf("  %s: %s\n", styles.Bold.Render("Error"), styles.Error.Render(run.Error))
	}
	r.Println("")

	if len(findings) == 0 {
		r.Success("No findings recorded for this run")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Path", "Location", "Severity", "Rule", "Message"})
	for _, f := range findings {
		t.AppendRow(table.Row{
			f.Path,
			fmt.Sprintf("%d:%d", f.Line, f.Column),
			f.Severity,
			f.RuleID,
			truncateOneLine(f.Message, 60),
		})
	}
	t.Render()
	r.Println("")

	return nil
}

func showRunMarkdown(r *output.Renderer, run *state.Run, findings []state.Finding) error {
	r.Printf("# Run %s\n\n", run.ID)
	r.Printf("- **Status:** %s\n", string(run.Status))
	r.Printf("- **Started:** %s\n", run.StartedAt.Format(time.RFC3339))
	r.Printf("- **Duration:** %s\n", formatRunDuration(run))
	r.Printf("- **Files:** %d\n", run.FilesLinted)
	r.Printf("- **Issues:** %d\n", run.Issues)
	if run.Error != "" {
		r.Printf("- **Error:** %s\n", run.Error)
	}
	r.Println("")

	if len(findings) == 0 {
		r.Println("No findings recorded for this run.")
		return nil
	}

	r.Println("## Findings")
	r.Println("")
	r.Println("| Path | Location | Severity | Rule | Message |")
	r.Println("|------|----------|----------|------|---------|")
	for _, f := range findings {
		r.Printf("| %s | %d:%d | %s | %s | %s |\n",
			f.Path, f.Line, f.Column, f.Severity, f.RuleID, truncateOneLine(f.Message, 60))
	}
	r.Println("")

	return nil
}

func showRunJSON(r *output.Renderer, run *state.Run, findings []state.Finding) error {
	payload := RunDetailOutput{
		Run:      newRunSummary(run),
		Findings: make([]FindingSummary, 0, len(findings)),
	}
	for _, f := range findings {
		payload.Findings = append(payload.Findings, FindingSummary{
			Path:     f.Path,
			RuleID:   f.RuleID,
			Severity: f.Severity,
			Message:  f.Message,
			Line:     f.Line,
			Column:   f.Column,
		})
	}
	return r.JSON(payload)
}

func runStatusStyle(styles *output.Styles, status state.RunStatus) lipgloss.Style {
	switch status {
	case state.RunStatusCompleted:
		return styles.Success
	case state.RunStatusFailed:
		return styles.Error
	default:
		return styles.Info
	}
}
