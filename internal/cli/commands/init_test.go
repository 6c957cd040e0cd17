package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rulelint-dev/rulelint/internal/cli/config"
	"github.com/rulelint-dev/rulelint/pkg/lint"
)

func executeInit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := NewInitCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitCommand_ScaffoldsProject(t *testing.T) {
	dir := t.TempDir()

	out, err := executeInit(t, dir)
	require.NoError(t, err)

	wantFiles := []string{
		"rulelint.yaml",
		filepath.Join("rules", "no-console.js"),
		".gitignore",
	}
	for _, name := range wantFiles {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	cfgContent, err := os.ReadFile(filepath.Join(dir, "rulelint.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfgContent), "# rulelint configuration")
	assert.Contains(t, string(cfgContent), "rules_dir: rules")
	assert.Contains(t, string(cfgContent), "SZ01")

	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, ".rulelint/\n", string(gitignore))

	assert.Contains(t, out, "rulelint project initialized")
	assert.Contains(t, out, "Next steps:")
}

func TestInitCommand_DefaultDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })

	_, err = executeInit(t)
	require.NoError(t, err)

	assert.FileExists(t, "rulelint.yaml")
	assert.FileExists(t, filepath.Join("rules", "no-console.js"))
}

func TestInitCommand_ExistingConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rulelint.yaml"), []byte("rules_dir: old\n"), 0644))

	_, err := executeInit(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists. Use --force to overwrite")
}

func TestInitCommand_Force(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rulelint.yaml"), []byte("stale\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rules"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules", "no-console.js"), []byte("stale\n"), 0644))

	_, err := executeInit(t, dir, "--force")
	require.NoError(t, err)

	cfgContent, err := os.ReadFile(filepath.Join(dir, "rulelint.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfgContent), "rules_dir: rules")

	ruleContent, err := os.ReadFile(filepath.Join(dir, "rules", "no-console.js"))
	require.NoError(t, err)
	assert.Equal(t, exampleRule, string(ruleContent))
}

func TestInitCommand_KeepsExistingRule(t *testing.T) {
	dir := t.TempDir()
	custom := "module.exports = { create(context) { return {}; } };\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rules"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rules", "no-console.js"), []byte(custom), 0644))

	out, err := executeInit(t, dir)
	require.NoError(t, err)

	ruleContent, err := os.ReadFile(filepath.Join(dir, "rules", "no-console.js"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(ruleContent))
	assert.Contains(t, out, "already exists, skipped")
}

// The scaffolded rule must come out clean, otherwise a new project's first
// lint run starts with findings the user did not write.
func TestExampleRuleLintsClean(t *testing.T) {
	analyzer := lint.NewAnalyzer(nil)

	diags, err := analyzer.AnalyzeSource("no-console.js", exampleRule)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestDefaultConfigYAML(t *testing.T) {
	content, err := defaultConfigYAML()
	require.NoError(t, err)

	var parsed struct {
		RulesDir string `yaml:"rules_dir"`
		Lint     struct {
			Rules map[string]map[string]int `yaml:"rules"`
		} `yaml:"lint"`
	}
	require.NoError(t, yaml.Unmarshal(content, &parsed))
	assert.Equal(t, "rules", parsed.RulesDir)
	assert.Equal(t, 300, parsed.Lint.Rules["SZ01"]["max"])
}
