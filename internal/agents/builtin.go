package agents

import "github.com/ryderdavid/agentsmd/internal/config"

func intPtr(v int) *int { return &v }

// builtinAgents returns the default profiles for the assistants the tool
// knows out of the box. An agents.yaml entry with the same id overrides
// the corresponding profile.
func builtinAgents() []*config.Agent {
	return []*config.Agent{
		{
			Id:                 "claude",
			Name:               "Claude Code",
			ConfigPaths:        []string{"~/.claude/CLAUDE.md"},
			MaxChars:           intPtr(200_000),
			DeploymentStrategy: "copy",
			FileFormat:         "markdown",
		},
		{
			Id:                 "cursor",
			Name:               "Cursor",
			ConfigPaths:        []string{"~/.cursor/rules/agentsmd.mdc"},
			MaxChars:           intPtr(1_000_000),
			DeploymentStrategy: "copy",
			FileFormat:         "markdown",
		},
		{
			Id:                 "copilot",
			Name:               "GitHub Copilot",
			ConfigPaths:        []string{".github/copilot-instructions.md"},
			MaxChars:           intPtr(8_000),
			DeploymentStrategy: "copy",
			FileFormat:         "markdown",
		},
		{
			Id:                 "gemini",
			Name:               "Gemini CLI",
			ConfigPaths:        []string{"~/.gemini/GEMINI.md"},
			MaxChars:           intPtr(1_000_000),
			DeploymentStrategy: "copy",
			FileFormat:         "markdown",
		},
		{
			Id:                 "codex",
			Name:               "Codex CLI",
			ConfigPaths:        []string{"~/.codex/AGENTS.md"},
			MaxChars:           intPtr(50_000),
			DeploymentStrategy: "copy",
			FileFormat:         "markdown",
		},
	}
}
