package engine

import "errors"

// Resolution is the result of resolving one pack's dependency closure.
// On success, Order lists every reachable pack exactly once, dependencies
// strictly before dependents, the root last. On failure no partial order
// is ever returned: a partial order is unsafe to compose or deploy.
type Resolution struct {
	Success bool
	Order   []string
	Err     string
	Cycle   []string
}

// Resolve computes the safe load order for rootId against the given
// catalog snapshot. It is deterministic for a fixed snapshot: traversal
// recurses into dependencies in manifest declaration order, so re-running
// resolution yields an identical order.
func Resolve(cat Catalog, rootId string) Resolution {
	order, err := resolve(cat, rootId)
	if err != nil {
		res := Resolution{Success: false, Err: err.Error()}
		var cycleErr *CycleError
		if errors.As(err, &cycleErr) {
			res.Cycle = cycleErr.Path
		}
		return res
	}
	return Resolution{Success: true, Order: order}
}

// resolve is the error-typed form of Resolve, shared with Compose so a
// failed root propagates its specific error.
func resolve(cat Catalog, rootId string) ([]string, error) {
	var order []string
	visiting := make(map[string]bool)
	done := make(map[string]bool)
	var path []string

	var visit func(id string) error
	visit = func(id string) error {
		if done[id] {
			return nil
		}
		if visiting[id] {
			// The cycle runs from the first entry of this id down the
			// current path and back to it, inclusive. That exact path is
			// the diagnostic a caller needs to know which declared
			// dependency to remove.
			start := 0
			for i, p := range path {
				if p == id {
					start = i
					break
				}
			}
			cycle := append(append([]string{}, path[start:]...), id)
			return &CycleError{Path: cycle}
		}

		unit, ok := cat.Unit(id)
		if !ok {
			return &NotFoundError{Id: id}
		}

		visiting[id] = true
		path = append(path, id)

		for _, depId := range unit.Pack.Dependencies {
			if err := visit(depId); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		delete(visiting, id)
		done[id] = true
		order = append(order, id)
		return nil
	}

	if err := visit(rootId); err != nil {
		return nil, err
	}
	return order, nil
}
