package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulelint-dev/rulelint/internal/cli/config"
	"github.com/rulelint-dev/rulelint/internal/cli/testutil"
	"github.com/rulelint-dev/rulelint/internal/state"
	"github.com/rulelint-dev/rulelint/pkg/lint"
	"github.com/rulelint-dev/rulelint/pkg/token"
)

func executeRuns(t *testing.T, statePath string, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Setenv("RULELINT_STATE_PATH", statePath)

	cmd := NewRunsCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// seedRun records one completed run with a single MT01 finding.
func seedRun(t *testing.T, statePath string) string {
	t.Helper()
	cfg := &config.Config{StatePath: statePath}
	results := []lintFileResult{{
		Path: "rules/no-meta.js",
		Diagnostics: []lint.Diagnostic{{
			RuleID:   "MT01",
			Severity: lint.SeverityError,
			Message:  `missing required property "meta"`,
			Pos:      token.Position{Line: 1, Column: 1},
		}},
	}}
	runID, err := saveRun(cfg, 2, results)
	require.NoError(t, err)
	return runID
}

func TestRunsCommand_EmptyState(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")

	out, err := executeRuns(t, statePath, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet")

	// Reporting an empty state must not create the database.
	assert.NoFileExists(t, statePath)
}

func TestRunsCommand_ListJSON(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")
	runID := seedRun(t, statePath)

	out, err := executeRuns(t, statePath, "--format", "json")
	require.NoError(t, err)

	var payload RunsJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Len(t, payload.Runs, 1)

	run := payload.Runs[0]
	assert.Equal(t, runID, run.ID)
	assert.Equal(t, "completed", run.Status)
	assert.Equal(t, 2, run.FilesLinted)
	assert.Equal(t, 1, run.Issues)
	assert.NotEmpty(t, run.CompletedAt)
	assert.NotEmpty(t, run.Duration)
}

func TestRunsCommand_Limit(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")
	for i := 0; i < 3; i++ {
		seedRun(t, statePath)
	}

	out, err := executeRuns(t, statePath, "--limit", "2", "--format", "json")
	require.NoError(t, err)

	var payload RunsJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Len(t, payload.Runs, 2)
}

func TestRunsCommand_ShowLatest(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")
	runID := seedRun(t, statePath)

	out, err := executeRuns(t, statePath, "latest", "--format", "json")
	require.NoError(t, err)

	var payload RunDetailOutput
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, runID, payload.Run.ID)
	require.Len(t, payload.Findings, 1)

	f := payload.Findings[0]
	assert.Equal(t, "rules/no-meta.js", f.Path)
	assert.Equal(t, "MT01", f.RuleID)
	assert.Equal(t, "error", f.Severity)
	assert.Equal(t, 1, f.Line)
}

func TestRunsCommand_ShowUnknownRun(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")
	seedRun(t, statePath)

	_, err := executeRuns(t, statePath, "no-such-run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestRunsCommand_ShowWithoutState(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")

	_, err := executeRuns(t, statePath, "latest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no runs recorded yet")
}

func TestFormatRunDuration(t *testing.T) {
	started := time.Now()
	assert.Equal(t, "-", formatRunDuration(&state.Run{StartedAt: started}))

	completed := started.Add(1500 * time.Millisecond)
	run := &state.Run{StartedAt: started, CompletedAt: &completed}
	assert.Equal(t, "1.5s", formatRunDuration(run))
}

func TestNewRunSummary(t *testing.T) {
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	completed := started.Add(2 * time.Second)

	s := newRunSummary(&state.Run{
		ID:          "run-1",
		Status:      state.RunStatusCompleted,
		StartedAt:   started,
		CompletedAt: &completed,
		FilesLinted: 4,
		Issues:      2,
	})

	assert.Equal(t, "run-1", s.ID)
	assert.Equal(t, "completed", s.Status)
	assert.Equal(t, "2026-03-14T09:30:00Z", s.StartedAt)
	assert.Equal(t, "2s", s.Duration)
	assert.Equal(t, 4, s.FilesLinted)
	assert.Equal(t, 2, s.Issues)

	running := newRunSummary(&state.Run{ID: "run-2", Status: state.RunStatusRunning, StartedAt: started})
	assert.Empty(t, running.CompletedAt)
	assert.Empty(t, running.Duration)
}

func TestListRunsText(t *testing.T) {
	tr := testutil.NewTestRendererText()
	completed := time.Now()
	runs := []*state.Run{{
		ID:          "5f2b1c7e-9d41-4c8a-b7e3-2f0a6d9c1e84",
		Status:      state.RunStatusCompleted,
		StartedAt:   completed.Add(-2 * time.Second),
		CompletedAt: &completed,
		FilesLinted: 5,
		Issues:      1,
	}}

	require.NoError(t, listRunsText(tr.Renderer, runs))

	out := tr.Output()
	assert.Contains(t, out, "Lint Runs (1)")
	assert.Contains(t, out, "5f2b1c7e-9d41-4c8a-b7e3-2f0a6d9c1e84")
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "Use 'rulelint runs <run-id>' to inspect findings")
}

func TestShowRunMarkdown(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	completed := started.Add(time.Second)
	run := &state.Run{
		ID:          "run-1",
		Status:      state.RunStatusCompleted,
		StartedAt:   started,
		CompletedAt: &completed,
		FilesLinted: 1,
		Issues:      1,
	}
	findings := []state.Finding{{
		Path:     "rules/no-meta.js",
		RuleID:   "MT01",
		Severity: "error",
		Message:  `missing required property "meta"`,
		Line:     1,
		Column:   1,
	}}

	require.NoError(t, showRunMarkdown(tr.Renderer, run, findings))

	out := tr.Output()
	assert.Contains(t, out, "# Run run-1")
	assert.Contains(t, out, "## Findings")
	assert.Contains(t, out, "| rules/no-meta.js | 1:1 | error | MT01 |")
	testutil.AssertValidMarkdown(t, out)
}
