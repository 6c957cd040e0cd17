package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulelint-dev/rulelint/pkg/lint"
)

func TestGetIntOption(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
		want int
	}{
		{"int value", map[string]any{"max": 200}, 200},
		{"float64 from JSON", map[string]any{"max": float64(200)}, 200},
		{"int64 value", map[string]any{"max": int64(200)}, 200},
		{"zero value present", map[string]any{"max": 0}, 0},
		{"missing key", map[string]any{}, 300},
		{"wrong type", map[string]any{"max": "tall"}, 300},
		{"nil map", nil, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lint.GetIntOption(tt.opts, "max", 300))
		})
	}
}

func TestGetBoolOption(t *testing.T) {
	opts := map[string]any{"on": true, "off": false, "str": "yes"}

	assert.True(t, lint.GetBoolOption(opts, "on", false))
	assert.False(t, lint.GetBoolOption(opts, "off", true))
	assert.True(t, lint.GetBoolOption(opts, "missing", true))
	assert.False(t, lint.GetBoolOption(opts, "str", false))
	assert.False(t, lint.GetBoolOption(nil, "on", false))
}

func TestGetStringOption(t *testing.T) {
	opts := map[string]any{"mode": "strict", "n": 3}

	assert.Equal(t, "strict", lint.GetStringOption(opts, "mode", "loose"))
	assert.Equal(t, "loose", lint.GetStringOption(opts, "missing", "loose"))
	assert.Equal(t, "loose", lint.GetStringOption(opts, "n", "loose"))
}

func TestGetOption(t *testing.T) {
	opts := map[string]any{"names": []string{"a", "b"}}

	assert.Equal(t, []string{"a", "b"}, lint.GetOption(opts, "names", []string(nil)))
	assert.Nil(t, lint.GetOption(opts, "missing", []string(nil)))
}

func TestExpandOptions(t *testing.T) {
	tests := []struct {
		name      string
		raw       any
		scalarKey string
		want      map[string]any
	}{
		{
			name:      "nil stays nil",
			raw:       nil,
			scalarKey: "max",
			want:      nil,
		},
		{
			name:      "string keyed map passes through",
			raw:       map[string]any{"max": 200},
			scalarKey: "max",
			want:      map[string]any{"max": 200},
		},
		{
			name:      "yaml style map is normalized",
			raw:       map[any]any{"max": 200, 7: "dropped"},
			scalarKey: "max",
			want:      map[string]any{"max": 200},
		},
		{
			name:      "scalar binds to the scalar key",
			raw:       200,
			scalarKey: "max",
			want:      map[string]any{"max": 200},
		},
		{
			name:      "scalar without a scalar key is ignored",
			raw:       200,
			scalarKey: "",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lint.ExpandOptions(tt.raw, tt.scalarKey))
		})
	}
}

func TestBuildDocURL(t *testing.T) {
	assert.Equal(t, "https://rulelint.dev/docs/rules/sz01", lint.BuildDocURL("SZ01"))

	lint.SetDocsBaseURL("http://localhost:8080/rules/")
	defer lint.ResetDocsBaseURL()

	assert.Equal(t, "http://localhost:8080/rules/mt01", lint.BuildDocURL("MT01"))
}

func TestImpactLevels(t *testing.T) {
	assert.Less(t, lint.ImpactLow.Int(), lint.ImpactMedium.Int())
	assert.Less(t, lint.ImpactMedium.Int(), lint.ImpactHigh.Int())
	assert.Less(t, lint.ImpactHigh.Int(), lint.ImpactCritical.Int())
}
