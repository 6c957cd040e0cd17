package docs

import (
	"time"
)

// Manifest is the machine-readable summary of the generated documentation.
// Consumers build navigation from it without parsing the markdown pages.
type Manifest struct {
	GeneratedAt time.Time  `json:"generated_at"`
	NavTree     []NavGroup `json:"nav_tree"`
	Stats       Stats      `json:"stats"`
}

// NavGroup represents one rule group in the navigation tree.
type NavGroup struct {
	Group string    `json:"group"`
	Rules []NavItem `json:"rules"`
}

// NavItem represents a single rule in the navigation tree.
type NavItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Page     string `json:"page"`
}

// Stats contains counts for the overview page.
type Stats struct {
	RuleCount  int `json:"rule_count"`
	GroupCount int `json:"group_count"`
}

// GenerateManifest creates a Manifest for the generator's rules.
func (g *Generator) GenerateManifest() *Manifest {
	groups := g.groups()

	navTree := make([]NavGroup, 0, len(groups))
	for _, group := range groups {
		rules := g.byGroup(group)
		items := make([]NavItem, 0, len(rules))
		for _, rule := range rules {
			items = append(items, NavItem{
				ID:       rule.ID,
				Name:     rule.Name,
				Severity: rule.Severity.String(),
				Page:     PageFileName(rule.ID),
			})
		}
		navTree = append(navTree, NavGroup{Group: group, Rules: items})
	}

	return &Manifest{
		GeneratedAt: time.Now().UTC(),
		NavTree:     navTree,
		Stats: Stats{
			RuleCount:  len(g.rules),
			GroupCount: len(groups),
		},
	}
}
