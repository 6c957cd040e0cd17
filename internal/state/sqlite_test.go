package state

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	if err := store.Open(":memory:"); err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return store
}

func TestSQLiteStore_OpenClose(t *testing.T) {
	store := NewSQLiteStore()

	if err := store.Open(":memory:"); err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	// Verify tables exist by querying them
	for _, table := range []string{"runs", "findings"} {
		rows, err := store.db.Query("SELECT 1 FROM " + table + " LIMIT 1")
		if err != nil {
			t.Errorf("table %s does not exist: %v", table, err)
		} else {
			rows.Close()
		}
	}

	version, err := store.GetMigrationVersion()
	if err != nil {
		t.Fatalf("failed to get migration version: %v", err)
	}
	if version < 1 {
		t.Errorf("expected migration version >= 1, got %d", version)
	}
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, store *SQLiteStore) *Run
		operation func(t *testing.T, store *SQLiteStore, run *Run)
	}{
		{
			name: "create run",
			setup: func(t *testing.T, store *SQLiteStore) *Run {
				run, err := store.CreateRun()
				if err != nil {
					t.Fatalf("failed to create run: %v", err)
				}
				return run
			},
			operation: func(t *testing.T, store *SQLiteStore, run *Run) {
				if run.ID == "" {
					t.Error("run ID should not be empty")
				}
				if run.Status != RunStatusRunning {
					t.Errorf("expected status 'running', got %q", run.Status)
				}
				if run.StartedAt.IsZero() {
					t.Error("started_at should be set")
				}
			},
		},
		{
			name: "get run",
			setup: func(t *testing.T, store *SQLiteStore) *Run {
				run, err := store.CreateRun()
				if err != nil {
					t.Fatalf("failed to create run: %v", err)
				}
				return run
			},
			operation: func(t *testing.T, store *SQLiteStore, run *Run) {
				retrieved, err := store.GetRun(run.ID)
				if err != nil {
					t.Fatalf("failed to get run: %v", err)
				}
				if retrieved.ID != run.ID {
					t.Errorf("expected ID %q, got %q", run.ID, retrieved.ID)
				}
				if retrieved.CompletedAt != nil {
					t.Error("completed_at should be nil for a running run")
				}
			},
		},
		{
			name: "get run not found",
			setup: func(t *testing.T, store *SQLiteStore) *Run {
				return nil
			},
			operation: func(t *testing.T, store *SQLiteStore, run *Run) {
				_, err := store.GetRun("nonexistent-id")
				if err == nil {
					t.Error("expected error for nonexistent run")
				}
			},
		},
		{
			name: "complete run",
			setup: func(t *testing.T, store *SQLiteStore) *Run {
				run, _ := store.CreateRun()
				return run
			},
			operation: func(t *testing.T, store *SQLiteStore, run *Run) {
				if err := store.CompleteRun(run.ID, RunStatusCompleted, 12, 3, ""); err != nil {
					t.Fatalf("failed to complete run: %v", err)
				}

				retrieved, err := store.GetRun(run.ID)
				if err != nil {
					t.Fatalf("failed to get run: %v", err)
				}
				if retrieved.Status != RunStatusCompleted {
					t.Errorf("expected status 'completed', got %q", retrieved.Status)
				}
				if retrieved.CompletedAt == nil {
					t.Error("completed_at should be set")
				}
				if retrieved.FilesLinted != 12 {
					t.Errorf("expected 12 files linted, got %d", retrieved.FilesLinted)
				}
				if retrieved.Issues != 3 {
					t.Errorf("expected 3 issues, got %d", retrieved.Issues)
				}
				if retrieved.Error != "" {
					t.Errorf("expected empty error, got %q", retrieved.Error)
				}
			},
		},
		{
			name: "complete run with error",
			setup: func(t *testing.T, store *SQLiteStore) *Run {
				run, _ := store.CreateRun()
				return run
			},
			operation: func(t *testing.T, store *SQLiteStore, run *Run) {
				if err := store.CompleteRun(run.ID, RunStatusFailed, 1, 0, "parse error in rule.js"); err != nil {
					t.Fatalf("failed to complete run: %v", err)
				}

				retrieved, err := store.GetRun(run.ID)
				if err != nil {
					t.Fatalf("failed to get run: %v", err)
				}
				if retrieved.Status != RunStatusFailed {
					t.Errorf("expected status 'failed', got %q", retrieved.Status)
				}
				if retrieved.Error != "parse error in rule.js" {
					t.Errorf("unexpected error message: %q", retrieved.Error)
				}
			},
		},
		{
			name: "complete nonexistent run",
			setup: func(t *testing.T, store *SQLiteStore) *Run {
				return nil
			},
			operation: func(t *testing.T, store *SQLiteStore, run *Run) {
				err := store.CompleteRun("nonexistent-id", RunStatusCompleted, 0, 0, "")
				if err == nil {
					t.Error("expected error for nonexistent run")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			defer store.Close()

			run := tt.setup(t, store)
			tt.operation(t, store, run)
		})
	}
}

func TestSQLiteStore_LatestRun(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	latest, err := store.LatestRun()
	if err != nil {
		t.Fatalf("failed to get latest run: %v", err)
	}
	if latest != nil {
		t.Error("expected nil latest run on empty store")
	}

	first, err := store.CreateRun()
	if err != nil {
		t.Fatalf("failed to create run: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := store.CreateRun()
	if err != nil {
		t.Fatalf("failed to create run: %v", err)
	}

	latest, err = store.LatestRun()
	if err != nil {
		t.Fatalf("failed to get latest run: %v", err)
	}
	if latest == nil || latest.ID != second.ID {
		t.Errorf("expected latest run %q, got %+v", second.ID, latest)
	}
	_ = first
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	var ids []string
	for i := 0; i < 3; i++ {
		run, err := store.CreateRun()
		if err != nil {
			t.Fatalf("failed to create run: %v", err)
		}
		ids = append(ids, run.ID)
		time.Sleep(10 * time.Millisecond)
	}

	runs, err := store.ListRuns(2)
	if err != nil {
		t.Fatalf("failed to list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != ids[2] {
		t.Errorf("expected newest run first, got %q", runs[0].ID)
	}
	if runs[1].ID != ids[1] {
		t.Errorf("expected second newest run, got %q", runs[1].ID)
	}
}

func TestSQLiteStore_Findings(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	run, err := store.CreateRun()
	if err != nil {
		t.Fatalf("failed to create run: %v", err)
	}
	other, err := store.CreateRun()
	if err != nil {
		t.Fatalf("failed to create run: %v", err)
	}

	findings := []Finding{
		{Path: "rules/b.js", RuleID: "SZ01", Severity: "warning", Message: "File must be at most 300 lines long", Line: 1, Column: 1},
		{Path: "rules/a.js", RuleID: "MT01", Severity: "error", Message: "Rule is missing a meta property.", Line: 3, Column: 5},
		{Path: "rules/a.js", RuleID: "SZ01", Severity: "warning", Message: "File must be at most 300 lines long", Line: 1, Column: 1},
	}
	if err := store.InsertFindings(run.ID, findings); err != nil {
		t.Fatalf("failed to insert findings: %v", err)
	}
	if err := store.InsertFindings(other.ID, findings[:1]); err != nil {
		t.Fatalf("failed to insert findings for other run: %v", err)
	}

	got, err := store.ListFindings(run.ID)
	if err != nil {
		t.Fatalf("failed to list findings: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(got))
	}

	// Ordered by path, then line, then column
	if got[0].Path != "rules/a.js" || got[0].Line != 1 {
		t.Errorf("unexpected first finding: %+v", got[0])
	}
	if got[1].Path != "rules/a.js" || got[1].Line != 3 {
		t.Errorf("unexpected second finding: %+v", got[1])
	}
	if got[2].Path != "rules/b.js" {
		t.Errorf("unexpected third finding: %+v", got[2])
	}

	if got[1].RuleID != "MT01" || got[1].Severity != "error" || got[1].Column != 5 {
		t.Errorf("finding fields not preserved: %+v", got[1])
	}
	if got[0].RunID != run.ID {
		t.Errorf("expected run ID %q, got %q", run.ID, got[0].RunID)
	}
}

func TestSQLiteStore_InsertFindingsEmpty(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	run, err := store.CreateRun()
	if err != nil {
		t.Fatalf("failed to create run: %v", err)
	}

	if err := store.InsertFindings(run.ID, nil); err != nil {
		t.Fatalf("inserting zero findings should succeed: %v", err)
	}

	got, err := store.ListFindings(run.ID)
	if err != nil {
		t.Fatalf("failed to list findings: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no findings, got %d", len(got))
	}
}

func TestSQLiteStore_FindingsRequireRun(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	err := store.InsertFindings("missing-run", []Finding{
		{Path: "rules/a.js", RuleID: "SZ01", Severity: "warning", Message: "too long", Line: 1, Column: 1},
	})
	if err == nil {
		t.Error("expected foreign key violation for unknown run ID")
	}
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore()

	if _, err := store.CreateRun(); err == nil {
		t.Error("expected error on unopened store")
	}
	if _, err := store.GetRun("x"); err == nil {
		t.Error("expected error on unopened store")
	}
	if err := store.InsertFindings("x", nil); err == nil {
		t.Error("expected error on unopened store")
	}
	if err := store.Migrate(); err == nil {
		t.Error("expected error on unopened store")
	}
}

func TestSQLiteStore_FileBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	store := NewSQLiteStore()
	if err := store.Open(path); err != nil {
		t.Fatalf("failed to open file-backed store: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	run, err := store.CreateRun()
	if err != nil {
		t.Fatalf("failed to create run: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	// Reopen and verify persistence
	reopened := NewSQLiteStore()
	if err := reopened.Open(path); err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer reopened.Close()

	retrieved, err := reopened.GetRun(run.ID)
	if err != nil {
		t.Fatalf("failed to get run after reopen: %v", err)
	}
	if retrieved.ID != run.ID {
		t.Errorf("expected run %q, got %q", run.ID, retrieved.ID)
	}
}
