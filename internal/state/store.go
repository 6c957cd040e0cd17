// Package state records lint runs and their findings in SQLite.
// Runs are written by `lint --save` and read back by the `runs` command.
package state

import "time"

// RunStatus describes the lifecycle of a recorded lint run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded lint invocation.
type Run struct {
	ID          string
	Status      RunStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	FilesLinted int
	Issues      int
	Error       string
}

// Finding is one diagnostic persisted for a run.
type Finding struct {
	ID       int64
	RunID    string
	Path     string
	RuleID   string
	Severity string
	Message  string
	Line     int
	Column   int
}
