package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rulelint-dev/rulelint/internal/cli/output"
	"github.com/rulelint-dev/rulelint/internal/discover"
	"github.com/rulelint-dev/rulelint/pkg/lint"
	_ "github.com/rulelint-dev/rulelint/pkg/lint/rules" // register all rules
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Format string
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the health of the rules project",
		Long: `Run every lint rule over the configured rules directory and report a
per-rule health summary with an overall score and recommendations.`,
		Example: `  # Check the project
  rulelint doctor

  # Machine-readable report
  rulelint doctor --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format (text, json)")

	return cmd
}

// DoctorOutput is the JSON structure for doctor output.
type DoctorOutput struct {
	Summary         DoctorSummary `json:"summary"`
	HealthChecks    []HealthCheck `json:"health_checks"`
	Score           int           `json:"score"`
	Recommendations []string      `json:"recommendations"`
	IssueCount      int           `json:"issue_count"`
}

// DoctorSummary captures the project-level counters.
type DoctorSummary struct {
	TotalFiles    int `json:"total_files"`
	ParseFailures int `json:"parse_failures"`
	RulesChecked  int `json:"rules_checked"`
	RulesDisabled int `json:"rules_disabled"`
}

// HealthCheck is the outcome of one rule across the whole project.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // pass, warn, error
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	files, err := discover.RuleFiles(cfg.RulesDir)
	if err != nil {
		return fmt.Errorf("failed to discover rule files: %w", err)
	}
	if len(files) == 0 {
		r.Warning(fmt.Sprintf("No rule files found in %s", cfg.RulesDir))
		return nil
	}

	lintCfg := cfg.LintSettings()
	analyzer := lint.NewAnalyzer(lintCfg)

	results, err := lintFiles(cmd.Context(), analyzer, files)
	if err != nil {
		return err
	}

	doctorOut := buildDoctorOutput(lintCfg, files, results)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(doctorOut)
	}
	return renderDoctorText(r, doctorOut)
}

// buildDoctorOutput folds per-file diagnostics into per-rule health
// checks with an overall score.
func buildDoctorOutput(lintCfg *lint.Config, files []string, results []lintFileResult) *DoctorOutput {
	type ruleStats struct {
		count   int
		details []string
		weight  int
	}
	stats := make(map[string]*ruleStats)
	issueCount := 0
	parseFailures := 0

	for _, res := range results {
		for _, d := range res.Diagnostics {
			issueCount++
			if d.RuleID == "parse" {
				parseFailures++
			}
			st := stats[d.RuleID]
			if st == nil {
				st = &ruleStats{}
				stats[d.RuleID] = st
			}
			st.count++
			st.details = append(st.details, fmt.Sprintf("%s:%d %s", res.Path, d.Pos.Line, d.Message))
			if d.ImpactScore > st.weight {
				st.weight = d.ImpactScore
			}
		}
	}

	var checks []HealthCheck
	disabled := 0
	for _, def := range lint.GetAll() {
		if lintCfg.IsDisabled(def.ID) {
			disabled++
			continue
		}
		check := HealthCheck{
			RuleID: def.ID,
			Name:   def.Name,
			Group:  def.Group,
			Status: "pass",
		}
		if st := stats[def.ID]; st != nil {
			check.IssueCount = st.count
			check.Details = st.details
			check.Status = "warn"
			if lintCfg.GetSeverity(def.ID, def.Severity) == lint.SeverityError {
				check.Status = "error"
			}
		}
		checks = append(checks, check)
	}

	if st := stats["parse"]; st != nil {
		checks = append(checks, HealthCheck{
			RuleID:     "parse",
			Name:       "source.parseable",
			Group:      "source",
			Status:     "error",
			IssueCount: st.count,
			Details:    st.details,
		})
	}

	sort.Slice(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return checks[i].Group < checks[j].Group
		}
		return checks[i].RuleID < checks[j].RuleID
	})

	score := calculateHealthScore(len(files), results)

	return &DoctorOutput{
		Summary: DoctorSummary{
			TotalFiles:    len(files),
			ParseFailures: parseFailures,
			RulesChecked:  lint.Count() - disabled,
			RulesDisabled: disabled,
		},
		HealthChecks:    checks,
		Score:           score,
		Recommendations: buildRecommendations(checks),
		IssueCount:      issueCount,
	}
}

// calculateHealthScore starts at 100 and subtracts an impact-weighted
// penalty per finding. Penalties are scaled down for larger projects
// so one bad file does not tank a big rule set.
func calculateHealthScore(totalFiles int, results []lintFileResult) int {
	penalty := 0.0
	for _, res := range results {
		for _, d := range res.Diagnostics {
			weight := d.ImpactScore
			if d.RuleID == "parse" {
				weight = lint.ImpactCritical.Int()
			}
			penalty += float64(weight) / 10.0
		}
	}

	scale := float64(totalFiles) / 10.0
	if scale < 1 {
		scale = 1
	}
	score := 100 - int(penalty/scale)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// buildRecommendations derives next steps from the failing checks,
// deduplicated and capped so the report stays readable.
func buildRecommendations(checks []HealthCheck) []string {
	const maxRecommendations = 5

	var recs []string
	seen := make(map[string]bool)
	add := func(rec string) {
		if rec == "" || seen[rec] {
			return
		}
		seen[rec] = true
		if len(recs) < maxRecommendations {
			recs = append(recs, rec)
		}
	}

	hasIssues := false
	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}
		hasIssues = true
		if check.RuleID == "parse" {
			add("Fix the parse errors before addressing lint findings.")
			continue
		}
		if def, ok := lint.GetByID(check.RuleID); ok {
			add(def.Fix)
		}
	}

	if hasIssues {
		add("Run 'rulelint lint' for file-by-file diagnostics.")
	}
	return recs
}

func renderDoctorText(r *output.Renderer, doctorOut *DoctorOutput) error {
	styles := r.Styles()
	titleCaser := cases.Title(language.English)

	r.Println("")
	r.Println(styles.Header1.Render(strings.Repeat("=", 55)))
	r.Println(styles.Header1.Render("rulelint Project Health Check"))
	r.Println(styles.Header1.Render(strings.Repeat("=", 55)))
	r.Println("")

	summary := doctorOut.Summary
	r.Printf("Project: %d rule files, %d rules checked", summary.TotalFiles, summary.RulesChecked)
	if summary.RulesDisabled > 0 {
		r.Printf(" (%d disabled)", summary.RulesDisabled)
	}
	r.Println("")
	if summary.ParseFailures > 0 {
		r.Println(styles.Error.Render(fmt.Sprintf("%d files failed to parse", summary.ParseFailures)))
	}
	r.Println("")

	currentGroup := ""
	for _, check := range doctorOut.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Header2.Render(titleCaser.String(currentGroup)))
		}

		var line string
		switch check.Status {
		case "pass":
			line = styles.Success.Render("  ✓ ") + check.Name
		case "warn":
			line = styles.Warning.Render("  ! ") + fmt.Sprintf("%s  %s", check.Name, pluralIssues(check.IssueCount))
		default:
			line = styles.Error.Render("  ✗ ") + fmt.Sprintf("%s  %s", check.Name, pluralIssues(check.IssueCount))
		}
		r.Println(line)

		for i, detail := range check.Details {
			if i == 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("      ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("      " + detail))
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render(strings.Repeat("-", 55)))

	scoreStyle := styles.Success
	if doctorOut.Score < 50 {
		scoreStyle = styles.Error
	} else if doctorOut.Score < 70 {
		scoreStyle = styles.Warning
	}
	r.Printf("Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", doctorOut.Score)))
	r.Println("")

	if len(doctorOut.Recommendations) > 0 {
		r.Println(styles.Bold.Render("Recommendations:"))
		for i, rec := range doctorOut.Recommendations {
			r.Printf("  %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}

func pluralIssues(n int) string {
	if n == 1 {
		return "1 issue"
	}
	return fmt.Sprintf("%d issues", n)
}
