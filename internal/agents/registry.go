package agents

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ryderdavid/agentsmd/internal/config"
	"github.com/ryderdavid/agentsmd/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Registry holds all known agent profiles for a single application
// instance, keyed by lowercased id.
type Registry struct {
	agents map[string]*config.Agent
}

// registryFile is the on-disk shape of agents.yaml.
type registryFile struct {
	Agents []*config.Agent `yaml:"agents"`
}

// New creates a registry populated with the builtin agent profiles.
func New() *Registry {
	r := &Registry{agents: make(map[string]*config.Agent)}
	for _, agent := range builtinAgents() {
		r.agents[strings.ToLower(agent.Id)] = agent
	}
	return r
}

// LoadFile merges agent definitions from a YAML registry file over the
// builtin defaults. An entry with a known id replaces the builtin profile
// wholesale; unknown ids add new profiles.
func (r *Registry) LoadFile(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read agent registry %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse agent registry %s: %w", path, err)
	}

	for _, agent := range file.Agents {
		r.agents[strings.ToLower(agent.Id)] = agent
	}

	logger.Info("Agent registry loaded.", "file", path, "agents", len(file.Agents))
	return nil
}

// Agent returns the profile for the given id. Lookup is case-insensitive.
func (r *Registry) Agent(id string) (*config.Agent, bool) {
	agent, ok := r.agents[strings.ToLower(id)]
	return agent, ok
}

// Ids returns all registered agent ids, sorted for stable listings.
func (r *Registry) Ids() []string {
	ids := make([]string, 0, len(r.agents))
	for _, agent := range r.agents {
		ids = append(ids, agent.Id)
	}
	sort.Strings(ids)
	return ids
}

// Validate performs a consistency check over every registered profile and
// reports all problems together rather than stopping at the first.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for key, agent := range r.agents {
		if agent.Id == "" {
			errs = append(errs, fmt.Sprintf("agent '%s': empty id", key))
		}
		if agent.Name == "" {
			errs = append(errs, fmt.Sprintf("agent '%s': empty name", key))
		}
		if len(agent.ConfigPaths) == 0 {
			errs = append(errs, fmt.Sprintf("agent '%s': no config paths", key))
		}
		if agent.MaxChars != nil && *agent.MaxChars <= 0 {
			errs = append(errs, fmt.Sprintf("agent '%s': maxChars must be positive", key))
		}
	}

	if len(errs) > 0 {
		logger.Error("Agent registry validation failed.", "errors", len(errs))
		return fmt.Errorf("agent registry validation failed:\n - %s", strings.Join(errs, "\n - "))
	}

	logger.Debug("Agent registry validation passed.", "agents", len(r.agents))
	return nil
}
