package engine

import (
	"fmt"
	"strings"
)

// Composition is the merged result of composing one or more requested
// packs: the deduplicated load order and the concatenated content.
type Composition struct {
	Order   []string
	Content string
}

// Compose resolves each requested root independently and merges the
// resolved orders into one canonical sequence. The merge is first-seen
// wins: walking each root's order left to right, an id keeps the position
// given by whichever root required it first. Requests are small and
// user-ordered, so this deliberate tie-break is preserved over a combined
// topological pass; changing it would reorder deployed output.
//
// If any root fails to resolve, the whole composition fails with that
// root's error. No partial composition is returned: partial output
// silently deployed to an assistant is worse than an explicit failure.
func Compose(cat Catalog, rootIds []string) (*Composition, error) {
	var order []string
	seen := make(map[string]bool)

	for _, rootId := range rootIds {
		rootOrder, err := resolve(cat, rootId)
		if err != nil {
			return nil, fmt.Errorf("failed to compose %s: %w", rootId, err)
		}
		for _, id := range rootOrder {
			if !seen[id] {
				seen[id] = true
				order = append(order, id)
			}
		}
	}

	var b strings.Builder
	for _, id := range order {
		// Every id in order came from a successful resolution against the
		// same snapshot, so the lookup cannot miss.
		unit, _ := cat.Unit(id)
		b.WriteString(fmt.Sprintf("<!-- Pack: %s v%s -->\n", unit.Pack.Id, unit.Pack.Version))
		b.WriteString(unit.Content)
		if !strings.HasSuffix(unit.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return &Composition{Order: order, Content: b.String()}, nil
}
