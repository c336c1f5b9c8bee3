package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ryderdavid/agentsmd/internal/agents"
	"github.com/ryderdavid/agentsmd/internal/config"
	"github.com/ryderdavid/agentsmd/internal/ctxlog"
	"github.com/ryderdavid/agentsmd/internal/engine"
)

// Options controls a deployment run.
type Options struct {
	// DryRun renders and validates but never writes or records anything.
	DryRun bool

	// Workers bounds per-agent concurrency. Zero means a sensible default.
	Workers int
}

// Result is the outcome of deploying to a single agent.
type Result struct {
	AgentId    string
	OutputPath string
	Record     *Record
	Err        error
}

// Deployer writes composed output to agent config paths and records
// deployment state.
type Deployer struct {
	registry *agents.Registry
	store    Store

	// homeDir expands the leading ~ in agent config paths. Overridable in
	// tests.
	homeDir string
}

// NewDeployer creates a deployer backed by the given agent registry and
// state store.
func NewDeployer(registry *agents.Registry, store Store) (*Deployer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("deploy: resolve home dir: %w", err)
	}
	return &Deployer{registry: registry, store: store, homeDir: home}, nil
}

// Deploy validates the requested packs against every target agent and, if
// valid, writes the rendered document to each agent's config path. Agents
// are deployed concurrently with a bounded worker pool; one agent's
// failure never blocks or aborts the others. Results come back in agent
// argument order.
func (d *Deployer) Deploy(ctx context.Context, cat engine.Catalog, rootIds, agentIds []string, opts Options) []Result {
	logger := ctxlog.FromContext(ctx)

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	results := make([]Result, len(agentIds))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, agentId := range agentIds {
		wg.Add(1)
		go func(i int, agentId string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = d.deployOne(ctx, cat, rootIds, agentId, opts)
			if results[i].Err != nil {
				logger.Error("Deployment failed.", "agent", agentId, "error", results[i].Err)
			} else {
				logger.Info("Deployment complete.", "agent", agentId, "path", results[i].OutputPath, "dry_run", opts.DryRun)
			}
		}(i, agentId)
	}

	wg.Wait()
	return results
}

// deployOne runs the full pipeline for a single agent: filter packs by
// target, validate, render, write, record.
func (d *Deployer) deployOne(ctx context.Context, cat engine.Catalog, rootIds []string, agentId string, opts Options) Result {
	result := Result{AgentId: agentId}

	profile, ok := d.registry.Agent(agentId)
	if !ok {
		result.Err = fmt.Errorf("agent not found: %s", agentId)
		return result
	}

	applicable, err := d.filterByTarget(cat, rootIds, profile)
	if err != nil {
		result.Err = err
		return result
	}
	if len(applicable) == 0 {
		result.Err = fmt.Errorf("no requested pack targets agent %s", profile.Id)
		return result
	}

	report := engine.Validate(cat, applicable, profile)
	if !report.Valid {
		result.Err = fmt.Errorf("composition invalid for %s:\n - %s",
			profile.Id, strings.Join(report.Errors, "\n - "))
		return result
	}

	generated, err := Generate(cat, applicable, GenerateOptions{IncludeMetadata: true, InlineContent: true})
	if err != nil {
		result.Err = err
		return result
	}

	outputPath, err := d.expandPath(profile)
	if err != nil {
		result.Err = err
		return result
	}
	result.OutputPath = outputPath

	if opts.DryRun {
		return result
	}

	// Whatever is at the path now becomes the rollback point.
	previous := ""
	if data, err := os.ReadFile(outputPath); err == nil {
		previous = string(data)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		result.Err = fmt.Errorf("deploy: create config dir: %w", err)
		return result
	}
	if err := os.WriteFile(outputPath, []byte(generated.Content), 0o644); err != nil {
		result.Err = fmt.Errorf("deploy: write output: %w", err)
		return result
	}

	rec := &Record{
		Id:              uuid.NewString(),
		AgentId:         profile.Id,
		PackIds:         generated.Order,
		TotalChars:      generated.Budget.TotalChars,
		OutputPath:      outputPath,
		PreviousContent: previous,
		CreatedAt:       time.Now(),
	}
	if err := d.store.Save(rec); err != nil {
		result.Err = err
		return result
	}
	result.Record = rec
	return result
}

// Rollback restores the previous content recorded by the latest (or the
// named) deployment for an agent.
func (d *Deployer) Rollback(ctx context.Context, agentId, deploymentId string) (*Record, error) {
	logger := ctxlog.FromContext(ctx)

	var rec *Record
	var found bool
	var err error
	if deploymentId != "" {
		rec, found, err = d.store.Get(deploymentId)
	} else {
		rec, found, err = d.store.Latest(agentId)
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no deployment recorded for agent %s", agentId)
	}
	if !strings.EqualFold(rec.AgentId, agentId) {
		return nil, fmt.Errorf("deployment %s belongs to agent %s, not %s", rec.Id, rec.AgentId, agentId)
	}

	if rec.PreviousContent == "" {
		if err := os.Remove(rec.OutputPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("deploy: remove output: %w", err)
		}
	} else {
		if err := os.WriteFile(rec.OutputPath, []byte(rec.PreviousContent), 0o644); err != nil {
			return nil, fmt.Errorf("deploy: restore previous content: %w", err)
		}
	}

	logger.Info("Rollback complete.", "agent", agentId, "deployment", rec.Id, "path", rec.OutputPath)
	return rec, nil
}

// filterByTarget keeps the requested packs that apply to the profile,
// preserving request order.
func (d *Deployer) filterByTarget(cat engine.Catalog, rootIds []string, profile *config.Agent) ([]string, error) {
	var applicable []string
	for _, id := range rootIds {
		unit, ok := cat.Unit(id)
		if !ok {
			return nil, &engine.NotFoundError{Id: id}
		}
		if unit.Pack.AppliesTo(profile.Id) {
			applicable = append(applicable, id)
		}
	}
	return applicable, nil
}

// expandPath resolves the profile's first config path, expanding a
// leading ~.
func (d *Deployer) expandPath(profile *config.Agent) (string, error) {
	if len(profile.ConfigPaths) == 0 {
		return "", fmt.Errorf("agent %s has no config paths", profile.Id)
	}
	path := profile.ConfigPaths[0]
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(d.homeDir, path[2:])
	}
	return filepath.Clean(path), nil
}
