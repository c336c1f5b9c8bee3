package engine

import (
	"strings"
	"testing"

	"github.com/ryderdavid/agentsmd/internal/config"
	"github.com/ryderdavid/agentsmd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agentWithLimit(id string, maxChars int) *config.Agent {
	return &config.Agent{Id: id, Name: id, MaxChars: &maxChars}
}

func TestValidate(t *testing.T) {
	t.Run("clean composition is valid", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("core", nil, "core rules").
			Add("addon", []string{"core"}, "addon rules")

		report := Validate(cat, []string{"addon"}, agentWithLimit("claude", 200_000))

		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		assert.Empty(t, report.Warnings)
	})

	t.Run("structural errors are collected for every pack and tagged", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("core", nil, "core").
			Add("addon", []string{"core"}, "addon").
			FailValidation("core", "file not found: rules.md").
			FailValidation("addon", "dependency not found: ghost")

		report := Validate(cat, []string{"addon"}, nil)

		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 2)
		assert.Equal(t, "[core] file not found: rules.md", report.Errors[0])
		assert.Equal(t, "[addon] dependency not found: ghost", report.Errors[1])
	})

	t.Run("structural errors short-circuit the budget check", func(t *testing.T) {
		// Over budget AND structurally broken: only the structural error is
		// reported, because a budget check on known-bad content is wasted.
		cat := testutil.NewCatalog().
			Add("big", nil, strings.Repeat("x", 10_000)).
			FailValidation("big", "file not found: rules.md")

		report := Validate(cat, []string{"big"}, agentWithLimit("copilot", 8_000))

		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "file not found")
	})

	t.Run("over budget yields exactly one budget error", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("big", nil, strings.Repeat("x", 10_000))

		report := Validate(cat, []string{"big"}, agentWithLimit("copilot", 8_000))

		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, "Composition exceeds copilot character limit: 10000 / 8000 (125%)", report.Errors[0])
		assert.Empty(t, report.Warnings)
	})

	t.Run("between 81 and 100 percent warns but stays valid", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("core", nil, strings.Repeat("x", 850))

		report := Validate(cat, []string{"core"}, agentWithLimit("claude", 1000))

		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, "Composition uses 85% of claude character limit", report.Warnings[0])
	})

	t.Run("at exactly 80 percent no warning is emitted", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("core", nil, strings.Repeat("x", 800))

		report := Validate(cat, []string{"core"}, agentWithLimit("claude", 1000))

		assert.True(t, report.Valid)
		assert.Empty(t, report.Warnings)
	})

	t.Run("no profile skips the budget check entirely", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("huge", nil, strings.Repeat("x", 1_000_000))

		report := Validate(cat, []string{"huge"}, nil)

		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
	})

	t.Run("unbounded profile never exceeds its budget", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("huge", nil, strings.Repeat("x", 1_000_000))

		report := Validate(cat, []string{"huge"}, &config.Agent{Id: "warp", Name: "warp"})

		assert.True(t, report.Valid)
		assert.Empty(t, report.Warnings)
	})

	t.Run("resolution failure surfaces as a single report error", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("a", []string{"b"}, "a").
			Add("b", []string{"a"}, "b")

		report := Validate(cat, []string{"a"}, nil)

		assert.False(t, report.Valid)
		require.Len(t, report.Errors, 1)
		assert.Contains(t, report.Errors[0], "circular dependency detected: a -> b -> a")
	})

	t.Run("warnings alone keep the composition valid", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("core", nil, "core").
			WarnValidation("core", "pack has no content")

		report := Validate(cat, []string{"core"}, nil)

		assert.True(t, report.Valid)
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, "[core] pack has no content", report.Warnings[0])
	})
}
