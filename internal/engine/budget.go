package engine

import "math"

// BudgetItem is one pack's share of a composition's budget.
type BudgetItem struct {
	PackId            string
	Chars             int
	Words             int
	PercentageOfTotal int
}

// Budget is the aggregate character/word accounting of a composed order,
// optionally expressed against an agent's character limit. Percentage is
// nil when the limit is unbounded. Breakdown percentages round
// independently per entry and are not constrained to sum to 100.
type Budget struct {
	TotalChars  int
	TotalWords  int
	MaxChars    *int
	Percentage  *int
	WithinLimit bool
	Breakdown   []BudgetItem
}

// ComputeBudget sums the cached metrics of every pack in order and
// expresses the total against maxChars (nil = unbounded). It trusts the
// catalog's precomputed metrics and never re-parses content; recomputing
// stale metrics is the catalog's job.
func ComputeBudget(cat Catalog, order []string, maxChars *int) Budget {
	budget := Budget{
		MaxChars:  maxChars,
		Breakdown: make([]BudgetItem, 0, len(order)),
	}

	for _, id := range order {
		unit, ok := cat.Unit(id)
		if !ok {
			continue
		}
		budget.TotalChars += unit.Metrics.Chars
		budget.TotalWords += unit.Metrics.Words
		budget.Breakdown = append(budget.Breakdown, BudgetItem{
			PackId: id,
			Chars:  unit.Metrics.Chars,
			Words:  unit.Metrics.Words,
		})
	}

	for i := range budget.Breakdown {
		if budget.TotalChars > 0 {
			budget.Breakdown[i].PercentageOfTotal = roundPercent(budget.Breakdown[i].Chars, budget.TotalChars)
		}
	}

	if maxChars != nil {
		pct := roundPercent(budget.TotalChars, *maxChars)
		budget.Percentage = &pct
		budget.WithinLimit = budget.TotalChars <= *maxChars
	} else {
		budget.WithinLimit = true
	}

	return budget
}

func roundPercent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
