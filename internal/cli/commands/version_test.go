package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "rulelint v1.2.3") {
		t.Errorf("expected version line in output, got %q", got)
	}
	if !strings.Contains(got, "A linter for ESLint-style rule files") {
		t.Errorf("expected description line in output, got %q", got)
	}
}
