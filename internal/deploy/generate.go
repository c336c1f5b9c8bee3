package deploy

import (
	"fmt"
	"strings"

	"github.com/ryderdavid/agentsmd/internal/engine"
)

// GenerateOptions controls how the output document is rendered.
type GenerateOptions struct {
	// IncludeMetadata appends the character-budget footer.
	IncludeMetadata bool

	// InlineContent embeds each pack's content directly. When false, the
	// document references pack files with import lines instead, for agents
	// that resolve @-references themselves.
	InlineContent bool
}

// GenerateResult is a rendered output document plus the budget it was
// rendered under.
type GenerateResult struct {
	Content string
	Order   []string
	Budget  engine.Budget
}

// Generate renders the AGENTS.md-style output document for the requested
// packs: a fixed header, the active pack list, the pack content (inline or
// as imports), and optionally a budget footer.
func Generate(cat engine.Catalog, rootIds []string, opts GenerateOptions) (*GenerateResult, error) {
	comp, err := engine.Compose(cat, rootIds)
	if err != nil {
		return nil, err
	}
	budget := engine.ComputeBudget(cat, comp.Order, nil)

	var lines []string
	lines = append(lines,
		"# AGENTS.md — Mandatory Agent Behavior & Workflow Standards",
		"",
		"Non-negotiable rules for all AI agents. Violations constitute workflow failures.",
		"",
		"---",
		"",
		"## Active Rule Packs",
		"",
	)

	for _, id := range comp.Order {
		unit, _ := cat.Unit(id)
		lines = append(lines, fmt.Sprintf("- **%s** (`rule-packs/%s/`) — %s",
			unit.Pack.Name, unit.Pack.Id, unit.Pack.Description))
	}
	lines = append(lines, "", "---", "")

	if opts.InlineContent {
		// The composed content already carries per-pack boundary markers.
		lines = append(lines, strings.TrimRight(comp.Content, "\n"), "")
	} else {
		lines = append(lines, "<!-- BEGIN PACK IMPORTS -->", "")
		for _, id := range comp.Order {
			unit, _ := cat.Unit(id)
			for _, file := range unit.Files {
				lines = append(lines, fmt.Sprintf("@rule-packs/%s/%s", unit.Pack.Id, file))
			}
			lines = append(lines, "")
		}
		lines = append(lines, "<!-- END PACK IMPORTS -->", "")
	}

	if opts.IncludeMetadata {
		lines = append(lines, "---", "", "## Configuration", "", "**Character Budget:**")
		for _, item := range budget.Breakdown {
			name := item.PackId
			if unit, ok := cat.Unit(item.PackId); ok {
				name = unit.Pack.Name
			}
			lines = append(lines, fmt.Sprintf("- %s: ~%d words (~%d chars)", name, item.Words, item.Chars))
		}
		lines = append(lines, fmt.Sprintf("- **Total:** ~%d words (~%d chars)", budget.TotalWords, budget.TotalChars))
	}

	return &GenerateResult{
		Content: strings.Join(lines, "\n") + "\n",
		Order:   comp.Order,
		Budget:  budget,
	}, nil
}
