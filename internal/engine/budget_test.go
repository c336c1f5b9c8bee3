package engine

import (
	"strings"
	"testing"

	"github.com/ryderdavid/agentsmd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBudget(t *testing.T) {
	limit := func(v int) *int { return &v }

	t.Run("over-limit composition", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("core", nil, strings.Repeat("x", 500)).
			Add("addon", nil, strings.Repeat("y", 900))

		budget := ComputeBudget(cat, []string{"core", "addon"}, limit(1000))

		assert.Equal(t, 1400, budget.TotalChars)
		require.NotNil(t, budget.Percentage)
		assert.Equal(t, 140, *budget.Percentage)
		assert.False(t, budget.WithinLimit)
	})

	t.Run("unbounded profile is always within limit", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("huge", nil, strings.Repeat("x", 5_000_000))

		budget := ComputeBudget(cat, []string{"huge"}, nil)

		assert.Nil(t, budget.Percentage)
		assert.Nil(t, budget.MaxChars)
		assert.True(t, budget.WithinLimit)
	})

	t.Run("exactly at the limit is within it", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("core", nil, strings.Repeat("x", 1000))

		budget := ComputeBudget(cat, []string{"core"}, limit(1000))

		assert.True(t, budget.WithinLimit)
		require.NotNil(t, budget.Percentage)
		assert.Equal(t, 100, *budget.Percentage)
	})

	t.Run("word totals aggregate across packs", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("a", nil, "one two three").
			Add("b", nil, "four five")

		budget := ComputeBudget(cat, []string{"a", "b"}, nil)

		assert.Equal(t, 5, budget.TotalWords)
	})

	t.Run("breakdown percentages round independently", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("a", nil, strings.Repeat("x", 333)).
			Add("b", nil, strings.Repeat("y", 333)).
			Add("c", nil, strings.Repeat("z", 334))

		budget := ComputeBudget(cat, []string{"a", "b", "c"}, nil)

		require.Len(t, budget.Breakdown, 3)
		assert.Equal(t, 33, budget.Breakdown[0].PercentageOfTotal)
		assert.Equal(t, 33, budget.Breakdown[1].PercentageOfTotal)
		assert.Equal(t, 33, budget.Breakdown[2].PercentageOfTotal)
		// The entries sum to 99; independent rounding is accepted, not
		// corrected.
	})

	t.Run("breakdown preserves composition order", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("core", nil, "core").
			Add("addon", nil, "addon")

		budget := ComputeBudget(cat, []string{"core", "addon"}, nil)

		require.Len(t, budget.Breakdown, 2)
		assert.Equal(t, "core", budget.Breakdown[0].PackId)
		assert.Equal(t, "addon", budget.Breakdown[1].PackId)
	})

	t.Run("empty order short-circuits division by zero", func(t *testing.T) {
		cat := testutil.NewCatalog()

		budget := ComputeBudget(cat, nil, limit(1000))

		assert.Equal(t, 0, budget.TotalChars)
		require.NotNil(t, budget.Percentage)
		assert.Equal(t, 0, *budget.Percentage)
		assert.True(t, budget.WithinLimit)
		assert.Empty(t, budget.Breakdown)
	})

	t.Run("zero-length pack gets zero percent of total", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("empty", nil, "").
			Add("full", nil, "content")

		budget := ComputeBudget(cat, []string{"empty", "full"}, nil)

		require.Len(t, budget.Breakdown, 2)
		assert.Equal(t, 0, budget.Breakdown[0].PercentageOfTotal)
		assert.Equal(t, 100, budget.Breakdown[1].PercentageOfTotal)
	})
}
