package config

import (
	"fmt"
	"os"

	"github.com/rulelint-dev/rulelint/pkg/lint"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.RulesDir == "" {
		return fmt.Errorf("rules_dir is required")
	}

	// Only validate directory existence if we're running a command that needs it
	// This allows help commands to work without a valid directory
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.RulesDir); os.IsNotExist(err) {
		return fmt.Errorf("rules directory does not exist: %s\nHint: Create the directory or use --rules-dir to specify a different path", c.RulesDir)
	}
	return nil
}

// ValidateLint checks the lint section against the rule registry: every
// referenced rule ID must exist, severities must parse, and option shapes
// must be usable by the rule they configure.
func (c *Config) ValidateLint() error {
	if c.Lint == nil {
		return nil
	}

	for _, id := range c.Lint.Disabled {
		if _, ok := lint.GetByID(id); !ok {
			return unknownRuleError("lint.disabled", id)
		}
	}

	for id, sev := range c.Lint.Severity {
		if _, ok := lint.GetByID(id); !ok {
			return unknownRuleError("lint.severity", id)
		}
		if _, err := lint.ParseSeverity(sev); err != nil {
			return fmt.Errorf("invalid severity for rule %s: %w", id, err)
		}
	}

	for id, raw := range c.Lint.Rules {
		def, ok := lint.GetByID(id)
		if !ok {
			return unknownRuleError("lint.rules", id)
		}
		if err := validateRuleOptions(def, raw); err != nil {
			return err
		}
	}

	return nil
}

func unknownRuleError(section, id string) error {
	return fmt.Errorf("unknown rule ID in %s: %q\nHint: Run 'rulelint rules' to list available rules", section, id)
}

// validateRuleOptions rejects option values a rule cannot consume.
func validateRuleOptions(def lint.RuleDef, raw any) error {
	if raw == nil {
		return nil
	}
	opts := lint.ExpandOptions(raw, def.ScalarKey)
	if opts == nil {
		return fmt.Errorf("invalid options for rule %s: expected a number or a mapping", def.ID)
	}

	if v, ok := opts["max"]; ok {
		n, isInt := asInt(v)
		if !isInt {
			return fmt.Errorf("invalid max for rule %s: expected an integer, got %T", def.ID, v)
		}
		if n < 0 {
			return fmt.Errorf("invalid max for rule %s: must not be negative, got %d", def.ID, n)
		}
	}

	return nil
}

// asInt converts the numeric types YAML and JSON decoding produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
