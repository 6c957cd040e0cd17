package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulelint-dev/rulelint/pkg/lint"
)

func TestGenerateManifest_Empty(t *testing.T) {
	gen := newTestGenerator()

	manifest := gen.GenerateManifest()

	require.NotNil(t, manifest)
	assert.False(t, manifest.GeneratedAt.IsZero())
	assert.Empty(t, manifest.NavTree)
	assert.Equal(t, Stats{RuleCount: 0, GroupCount: 0}, manifest.Stats)
}

func TestGenerateManifest_GroupsSorted(t *testing.T) {
	gen := newTestGenerator(
		newTestRule("SZ01", "size.file-length", "size", lint.SeverityWarning),
		newTestRule("MT01", "meta.required-properties", "meta", lint.SeverityError),
	)

	manifest := gen.GenerateManifest()

	require.Len(t, manifest.NavTree, 2)
	assert.Equal(t, "meta", manifest.NavTree[0].Group)
	assert.Equal(t, "size", manifest.NavTree[1].Group)
}

func TestGenerateManifest_Items(t *testing.T) {
	gen := newTestGenerator(
		newTestRule("SZ01", "size.file-length", "size", lint.SeverityWarning),
	)

	manifest := gen.GenerateManifest()

	require.Len(t, manifest.NavTree, 1)
	require.Len(t, manifest.NavTree[0].Rules, 1)

	item := manifest.NavTree[0].Rules[0]
	assert.Equal(t, "SZ01", item.ID)
	assert.Equal(t, "size.file-length", item.Name)
	assert.Equal(t, "warning", item.Severity)
	assert.Equal(t, "sz01.md", item.Page)
}

func TestGenerateManifest_Stats(t *testing.T) {
	gen := newTestGenerator(
		newTestRule("MT01", "meta.required-properties", "meta", lint.SeverityError),
		newTestRule("SZ01", "size.file-length", "size", lint.SeverityWarning),
		newTestRule("SZ02", "size.function-length", "size", lint.SeverityWarning),
	)

	manifest := gen.GenerateManifest()

	assert.Equal(t, 3, manifest.Stats.RuleCount)
	assert.Equal(t, 2, manifest.Stats.GroupCount)
}

func TestGenerateManifest_JSONShape(t *testing.T) {
	gen := newTestGenerator(
		newTestRule("SZ01", "size.file-length", "size", lint.SeverityWarning),
	)

	data, err := json.Marshal(gen.GenerateManifest())
	require.NoError(t, err)

	payload := string(data)
	assert.Contains(t, payload, `"generated_at"`)
	assert.Contains(t, payload, `"nav_tree"`)
	assert.Contains(t, payload, `"rule_count"`)
	assert.Contains(t, payload, `"group_count"`)
	assert.Contains(t, payload, `"page":"sz01.md"`)
}

func TestGenerateManifest_RegisteredRules(t *testing.T) {
	manifest := NewGenerator().GenerateManifest()

	assert.Equal(t, 2, manifest.Stats.RuleCount)
	assert.Equal(t, 2, manifest.Stats.GroupCount)

	var ids []string
	for _, group := range manifest.NavTree {
		for _, rule := range group.Rules {
			ids = append(ids, rule.ID)
		}
	}
	assert.ElementsMatch(t, []string{"MT01", "SZ01"}, ids)
}
