package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// PackFixture describes an on-disk pack for loader and snapshot tests.
type PackFixture struct {
	Id           string
	Name         string
	Version      string
	Dependencies []string
	TargetAgents []string
	Files        map[string]string // file name -> content
	Category     string
	Tags         []string
}

// WritePack materializes a pack fixture under root/<id>/ with a
// manifest.hcl and its content files, and returns the pack directory.
func WritePack(t *testing.T, root string, fx PackFixture) string {
	t.Helper()

	packDir := filepath.Join(root, fx.Id)
	require.NoError(t, os.MkdirAll(packDir, 0o755))

	if fx.Name == "" {
		fx.Name = fx.Id
	}
	if fx.Version == "" {
		fx.Version = "1.0.0"
	}
	if len(fx.Files) == 0 {
		fx.Files = map[string]string{"rules.md": "# " + fx.Id + "\n"}
	}

	fileNames := make([]string, 0, len(fx.Files))
	for name, content := range fx.Files {
		fileNames = append(fileNames, name)
		path := filepath.Join(packDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "pack %q {\n", fx.Id)
	fmt.Fprintf(&b, "  name    = %q\n", fx.Name)
	fmt.Fprintf(&b, "  version = %q\n", fx.Version)
	if len(fx.Dependencies) > 0 {
		fmt.Fprintf(&b, "  dependencies = %s\n", hclStringList(fx.Dependencies))
	}
	if len(fx.TargetAgents) > 0 {
		fmt.Fprintf(&b, "  target_agents = %s\n", hclStringList(fx.TargetAgents))
	}
	fmt.Fprintf(&b, "  files = %s\n", hclStringList(fileNames))
	if fx.Category != "" || len(fx.Tags) > 0 {
		b.WriteString("  meta {\n")
		if fx.Category != "" {
			fmt.Fprintf(&b, "    category = %q\n", fx.Category)
		}
		if len(fx.Tags) > 0 {
			fmt.Fprintf(&b, "    tags = %s\n", hclStringList(fx.Tags))
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")

	manifestPath := filepath.Join(packDir, "manifest.hcl")
	require.NoError(t, os.WriteFile(manifestPath, []byte(b.String()), 0o644))
	return packDir
}

func hclStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
