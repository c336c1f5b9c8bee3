package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ryderdavid/agentsmd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("single pack with no dependencies", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("core", nil, "core rules")

		res := Resolve(cat, "core")

		require.True(t, res.Success)
		assert.Equal(t, []string{"core"}, res.Order)
		assert.Empty(t, res.Cycle)
	})

	t.Run("dependency appears before dependent", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("core", nil, "core rules").
			Add("addon", []string{"core"}, "addon rules")

		res := Resolve(cat, "addon")

		require.True(t, res.Success)
		assert.Equal(t, []string{"core", "addon"}, res.Order)
	})

	t.Run("diamond graph resolves each pack once", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("base", nil, "base").
			Add("left", []string{"base"}, "left").
			Add("right", []string{"base"}, "right").
			Add("top", []string{"left", "right"}, "top")

		res := Resolve(cat, "top")

		require.True(t, res.Success)
		assert.Equal(t, []string{"base", "left", "right", "top"}, res.Order)

		// Every edge points backwards in the order.
		index := make(map[string]int)
		for i, id := range res.Order {
			index[id] = i
		}
		for _, pair := range [][2]string{{"base", "left"}, {"base", "right"}, {"left", "top"}, {"right", "top"}} {
			assert.Less(t, index[pair[0]], index[pair[1]])
		}
	})

	t.Run("declaration order is preserved", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("a", nil, "a").
			Add("b", nil, "b").
			Add("c", nil, "c").
			Add("root", []string{"c", "a", "b"}, "root")

		res := Resolve(cat, "root")

		require.True(t, res.Success)
		assert.Equal(t, []string{"c", "a", "b", "root"}, res.Order)
	})

	t.Run("is idempotent for a fixed snapshot", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("base", nil, "base").
			Add("mid", []string{"base"}, "mid").
			Add("top", []string{"mid", "base"}, "top")

		first := Resolve(cat, "top")
		second := Resolve(cat, "top")

		require.True(t, first.Success)
		assert.Empty(t, cmp.Diff(first.Order, second.Order))
	})

	t.Run("missing root fails closed", func(t *testing.T) {
		cat := testutil.NewCatalog()

		res := Resolve(cat, "ghost")

		require.False(t, res.Success)
		assert.Contains(t, res.Err, "pack not found: ghost")
		assert.Empty(t, res.Order)
	})

	t.Run("missing dependency fails closed with no partial order", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("addon", []string{"ghost"}, "addon")

		res := Resolve(cat, "addon")

		require.False(t, res.Success)
		assert.Contains(t, res.Err, "pack not found: ghost")
		assert.Empty(t, res.Order)
	})

	t.Run("two-pack cycle reports the full path", func(t *testing.T) {
		cat := testutil.NewCatalog().
			Add("a", []string{"b"}, "a").
			Add("b", []string{"a"}, "b")

		res := Resolve(cat, "a")

		require.False(t, res.Success)
		assert.Equal(t, []string{"a", "b", "a"}, res.Cycle)
		assert.Contains(t, res.Err, "circular dependency")
		assert.Empty(t, res.Order)
	})

	t.Run("self-cycle is detected", func(t *testing.T) {
		cat := testutil.NewCatalog().Add("a", []string{"a"}, "a")

		res := Resolve(cat, "a")

		require.False(t, res.Success)
		assert.Equal(t, []string{"a", "a"}, res.Cycle)
	})

	t.Run("cycle path starts at the repeated pack, not the root", func(t *testing.T) {
		// root -> a -> b -> c -> a: the diagnostic should name a..c..a,
		// because root is not part of the cycle.
		cat := testutil.NewCatalog().
			Add("root", []string{"a"}, "root").
			Add("a", []string{"b"}, "a").
			Add("b", []string{"c"}, "b").
			Add("c", []string{"a"}, "c")

		res := Resolve(cat, "root")

		require.False(t, res.Success)
		assert.Equal(t, []string{"a", "b", "c", "a"}, res.Cycle)
		assert.Equal(t, res.Cycle[0], res.Cycle[len(res.Cycle)-1])
	})

	t.Run("shared dependency off a cycle-free branch still resolves", func(t *testing.T) {
		// done-set membership must not be mistaken for a cycle.
		cat := testutil.NewCatalog().
			Add("base", nil, "base").
			Add("a", []string{"base"}, "a").
			Add("b", []string{"base", "a"}, "b")

		res := Resolve(cat, "b")

		require.True(t, res.Success)
		assert.Equal(t, []string{"base", "a", "b"}, res.Order)
	})
}
