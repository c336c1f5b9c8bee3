package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/ryderdavid/agentsmd/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the command tree against a fixture pack directory and
// returns stdout. Logs go to a discarded stderr buffer.
func execute(t *testing.T, packsDir string, args ...string) (string, error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	root := NewRootCommand(&outBuf, &errBuf)
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(append(args, "--packs", packsDir, "--data-dir", filepath.Join(t.TempDir(), "state")))
	err := root.ExecuteContext(context.Background())
	return outBuf.String(), err
}

// fixtureDir writes a small catalog: core, git -> core, style -> core.
func fixtureDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testutil.WritePack(t, root, testutil.PackFixture{
		Id:    "core",
		Files: map[string]string{"rules.md": "Core rules.\n"},
	})
	testutil.WritePack(t, root, testutil.PackFixture{
		Id:           "git",
		Dependencies: []string{"core"},
		Files:        map[string]string{"rules.md": "Git rules.\n"},
	})
	testutil.WritePack(t, root, testutil.PackFixture{
		Id:           "style",
		Dependencies: []string{"core"},
		Files:        map[string]string{"rules.md": "Style rules.\n"},
	})
	return root
}

func TestListCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, fixtureDir(t), "list", "--agents")

	require.NoError(t, err)
	assert.Contains(t, out, "Rule packs (3):")
	assert.Contains(t, out, "core")
	assert.Contains(t, out, "git")
	assert.Contains(t, out, "claude")
	assert.Contains(t, out, "200000 chars")
}

func TestResolveCommand(t *testing.T) {
	t.Parallel()

	t.Run("prints dependencies before dependents", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, fixtureDir(t), "resolve", "git")

		require.NoError(t, err)
		assert.Equal(t, "1. core\n2. git\n", out)
	})

	t.Run("missing pack is an error", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, fixtureDir(t), "resolve", "ghost")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "pack not found: ghost")
	})

	t.Run("cycle reports the exact path", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		testutil.WritePack(t, root, testutil.PackFixture{Id: "a", Dependencies: []string{"b"}})
		testutil.WritePack(t, root, testutil.PackFixture{Id: "b", Dependencies: []string{"a"}})

		out, err := execute(t, root, "resolve", "a")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "circular dependency detected: a -> b -> a")
		assert.Contains(t, out, "Cycle: a -> b -> a")
	})
}

func TestComposeCommand(t *testing.T) {
	t.Parallel()

	t.Run("merges shared dependencies once", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, fixtureDir(t), "compose", "git", "style", "--order")

		require.NoError(t, err)
		assert.Equal(t, "1. core\n2. git\n3. style\n", out)
	})

	t.Run("emits boundary markers around content", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, fixtureDir(t), "compose", "git")

		require.NoError(t, err)
		assert.Contains(t, out, "<!-- Pack: core v1.0.0 -->\nCore rules.\n")
		assert.Contains(t, out, "<!-- Pack: git v1.0.0 -->\nGit rules.\n")
	})
}

func TestBudgetCommand(t *testing.T) {
	t.Parallel()

	t.Run("prints totals and per-pack breakdown", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, fixtureDir(t), "budget", "git")

		require.NoError(t, err)
		assert.Contains(t, out, "core")
		assert.Contains(t, out, "Total: 23 chars, 4 words")
	})

	t.Run("evaluates against an agent limit", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, fixtureDir(t), "budget", "git", "--agent", "claude")

		require.NoError(t, err)
		assert.Contains(t, out, "Limit (claude): 200000 chars")
	})

	t.Run("unknown agent is an error", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, fixtureDir(t), "budget", "git", "--agent", "emacs")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "agent not found: emacs")
	})
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	t.Run("valid composition passes", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, fixtureDir(t), "validate", "git", "style", "--agent", "claude")

		require.NoError(t, err)
		assert.Contains(t, out, "Composition is valid.")
	})

	t.Run("missing dependency fails", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		testutil.WritePack(t, root, testutil.PackFixture{Id: "broken", Dependencies: []string{"ghost"}})

		out, err := execute(t, root, "validate", "broken")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed with 1 error(s)")
		assert.Contains(t, out, "error: failed to compose broken: pack not found: ghost")
	})
}

func TestDeployCommand_DryRun(t *testing.T) {
	t.Parallel()

	out, err := execute(t, fixtureDir(t), "deploy", "git", "--agent", "claude", "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "claude")
	assert.Contains(t, out, "dry-run")
	assert.Contains(t, out, "CLAUDE.md")
}

func TestHistoryCommand(t *testing.T) {
	t.Parallel()

	t.Run("reports when nothing was deployed", func(t *testing.T) {
		t.Parallel()
		out, err := execute(t, fixtureDir(t), "history", "claude")

		require.NoError(t, err)
		assert.Contains(t, out, "No deployments recorded for claude.")
	})

	t.Run("unknown agent is an error", func(t *testing.T) {
		t.Parallel()
		_, err := execute(t, fixtureDir(t), "history", "emacs")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "agent not found: emacs")
	})
}

func TestRollbackCommand(t *testing.T) {
	t.Parallel()

	_, err := execute(t, fixtureDir(t), "rollback", "claude")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no deployment recorded for agent claude")
}
