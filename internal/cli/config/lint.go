package config

import (
	"github.com/rulelint-dev/rulelint/pkg/lint"
)

// LintSettings converts the lint section of the configuration into the
// analyzer configuration. Values are assumed well-formed: ValidateLint
// runs as part of every load.
func (c *Config) LintSettings() *lint.Config {
	lc := lint.NewConfig()
	if c == nil || c.Lint == nil {
		return lc
	}

	for _, id := range c.Lint.Disabled {
		lc.Disable(id)
	}
	for id, raw := range c.Lint.Severity {
		severity, err := lint.ParseSeverity(raw)
		if err != nil {
			continue
		}
		lc.SetSeverity(id, severity)
	}
	for id, raw := range c.Lint.Rules {
		lc.SetRuleOptions(id, raw)
	}

	return lc
}
