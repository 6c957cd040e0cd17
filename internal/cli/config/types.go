// Package config provides configuration management for the rulelint CLI.
//
// Configuration is layered: defaults, then a rulelint.yaml config file found
// by upward search, then RULELINT_* environment variables, then explicitly
// set CLI flags.
package config

// LintConfig controls which rules run, their severity and their options.
type LintConfig struct {
	// Disabled lists rule IDs to skip entirely.
	Disabled []string `koanf:"disabled"`

	// Severity overrides the default severity per rule ID.
	Severity map[string]string `koanf:"severity"`

	// Rules holds per-rule options, either a scalar shorthand or an
	// option mapping (e.g. SZ01: 40 or SZ01: {max: 40}).
	Rules map[string]any `koanf:"rules"`
}

// DocsConfig holds rule documentation generation settings.
type DocsConfig struct {
	Dir     string `koanf:"dir"`
	BaseURL string `koanf:"base_url"`
}

// Config holds all CLI configuration options.
type Config struct {
	RulesDir     string      `koanf:"rules_dir"`
	StatePath    string      `koanf:"state_path"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Lint         *LintConfig `koanf:"lint"`
	Docs         *DocsConfig `koanf:"docs"`

	// ProjectRoot is the directory relative paths resolve against.
	// Set during load, never read from the config file.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultRulesDir  = "rules"
	DefaultStateFile = ".rulelint/state.db"
	DefaultDocsDir   = "docs/rules"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
