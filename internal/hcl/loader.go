package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/ryderdavid/agentsmd/internal/config"
	"github.com/ryderdavid/agentsmd/internal/ctxlog"
	"github.com/ryderdavid/agentsmd/internal/fsutil"
	"github.com/ryderdavid/agentsmd/internal/schema"
)

// ManifestName is the file name a pack directory must contain to be
// discovered by the loader.
const ManifestName = "manifest.hcl"

// Loader parses HCL pack manifests into the config model.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers every manifest under the given paths, parses it, and
// translates it into the format-agnostic model. A path may be a single
// manifest file or a directory searched recursively.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var manifestPaths []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access packs path %s: %w", path, err)
		}
		if !info.IsDir() {
			manifestPaths = append(manifestPaths, path)
			continue
		}
		found, err := fsutil.FindFilesByName(path, ManifestName)
		if err != nil {
			return nil, fmt.Errorf("failed to walk packs directory %s: %w", path, err)
		}
		manifestPaths = append(manifestPaths, found...)
	}

	if len(manifestPaths) == 0 {
		logger.Warn("No pack manifests found in paths", "paths", paths)
	}

	model := &config.Model{Packs: make(map[string]*config.Pack)}
	parser := hclparse.NewParser()

	for _, manifestPath := range manifestPaths {
		hclFile, diags := parser.ParseHCLFile(manifestPath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", manifestPath, diags)
		}

		pack, err := l.translateManifest(ctx, hclFile, manifestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to process manifest %s: %w", manifestPath, err)
		}

		if existing, ok := model.Packs[pack.Id]; ok {
			return nil, fmt.Errorf("duplicate pack id '%s': declared in both %s and %s",
				pack.Id, existing.ManifestPath, manifestPath)
		}
		model.Packs[pack.Id] = pack
		logger.Debug("Loaded pack manifest.", "id", pack.Id, "file", manifestPath)
	}

	logger.Info("Pack manifests loaded.", "count", len(model.Packs))
	return model, nil
}

// translateManifest decodes a parsed HCL file into the agnostic pack model.
func (l *Loader) translateManifest(ctx context.Context, file *hcl.File, manifestPath string) (*config.Pack, error) {
	var manifest schema.Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, diags
	}
	if manifest.Pack == nil {
		return nil, fmt.Errorf("manifest declares no pack block")
	}
	return l.translatePack(ctx, manifest.Pack, manifestPath)
}
