package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCleanRegistry empties the global registry for one test and restores
// the previous contents afterwards, so tests running later in the same
// binary still see the init-registered rules.
func withCleanRegistry(t *testing.T) {
	t.Helper()
	saved := GetAll()
	Clear()
	t.Cleanup(func() {
		Clear()
		for _, def := range saved {
			Register(def)
		}
	})
}

func mockRule(id, group string) RuleDef {
	return RuleDef{
		ID:          id,
		Name:        "mock." + id,
		Group:       group,
		Description: "A mock rule",
		Severity:    SeverityWarning,
		New:         func(_ *RunContext) Handlers { return Handlers{} },
	}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	withCleanRegistry(t)

	Register(mockRule("ZZ02", "testing"))
	Register(mockRule("AA01", "testing"))

	rules := GetAll()
	require.Len(t, rules, 2)
	assert.Equal(t, "AA01", rules[0].ID, "GetAll is ordered by ID")
	assert.Equal(t, "ZZ02", rules[1].ID)

	found, ok := GetByID("AA01")
	require.True(t, ok)
	assert.Equal(t, "mock.AA01", found.Name)

	_, ok = GetByID("NOTEXIST")
	assert.False(t, ok)

	assert.Equal(t, 2, Count())
}

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	withCleanRegistry(t)

	first := mockRule("DUP01", "testing")
	second := mockRule("DUP01", "testing")
	second.Description = "replacement"

	Register(first)
	Register(second)

	assert.Equal(t, 1, Count())
	found, ok := GetByID("DUP01")
	require.True(t, ok)
	assert.Equal(t, "replacement", found.Description)
}

func TestRegistry_Groups(t *testing.T) {
	withCleanRegistry(t)

	Register(mockRule("GA01", "size"))
	Register(mockRule("GA02", "size"))
	Register(mockRule("GB01", "meta"))

	assert.Equal(t, []string{"meta", "size"}, Groups())

	sizeRules := GetByGroup("size")
	require.Len(t, sizeRules, 2)
	assert.Equal(t, "GA01", sizeRules[0].ID)

	metaRules := GetByGroup("meta")
	require.Len(t, metaRules, 1)
	assert.Equal(t, "GB01", metaRules[0].ID)

	assert.Empty(t, GetByGroup("nope"))
}

func TestGetRuleInfo(t *testing.T) {
	def := RuleDef{
		ID:          "INF01",
		Name:        "info.test",
		Group:       "testing",
		Description: "An informative rule",
		Severity:    SeverityInfo,
		ConfigKeys:  []string{"max", "skipComments"},
		Rationale:   "because",
		BadExample:  "bad();",
		GoodExample: "good();",
		Fix:         "call good instead",
	}

	info := GetRuleInfo(def)

	assert.Equal(t, "INF01", info.ID)
	assert.Equal(t, "info.test", info.Name)
	assert.Equal(t, "testing", info.Group)
	assert.Equal(t, "An informative rule", info.Description)
	assert.Equal(t, SeverityInfo, info.Severity)
	assert.Equal(t, []string{"max", "skipComments"}, info.ConfigKeys)
	assert.Equal(t, "because", info.Rationale)
	assert.Equal(t, "bad();", info.BadExample)
	assert.Equal(t, "good();", info.GoodExample)
	assert.Equal(t, "call good instead", info.Fix)
}
