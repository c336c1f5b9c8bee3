package config

// Model is the unified, format-agnostic representation of everything the
// loader found on disk: all pack definitions keyed by id, in a single pass.
type Model struct {
	Packs map[string]*Pack
}

// Pack is the format-agnostic representation of a rule pack manifest.
// Dependencies preserves declaration order; resolution recurses in that
// order, so reordering a manifest's dependencies is an observable change.
type Pack struct {
	Id           string
	Name         string
	Version      string
	Description  string
	Dependencies []string
	TargetAgents []string
	Files        []string
	Category     string
	Tags         []string

	// ManifestPath is the manifest file this pack was loaded from. Content
	// files are resolved relative to its directory.
	ManifestPath string
}

// AppliesTo reports whether the pack targets the given agent id. An empty
// target list or a "*" entry means the pack applies to every agent.
func (p *Pack) AppliesTo(agentId string) bool {
	if len(p.TargetAgents) == 0 {
		return true
	}
	for _, t := range p.TargetAgents {
		if t == "*" || t == agentId {
			return true
		}
	}
	return false
}

// Agent describes a consumer profile: where its configuration lives and how
// much composed content it can accept. MaxChars nil means unbounded.
type Agent struct {
	Id                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	ConfigPaths        []string `yaml:"configPaths"`
	MaxChars           *int     `yaml:"maxChars"`
	DeploymentStrategy string   `yaml:"deploymentStrategy"`
	FileFormat         string   `yaml:"fileFormat"`
	Notes              string   `yaml:"notes"`
}
