package engine

import (
	"fmt"

	"github.com/ryderdavid/agentsmd/internal/config"
)

// Report aggregates a composition's validation outcome. Errors and
// warnings are human-readable, tagged with their source pack id, and
// preserved verbatim to the boundary so a caller can render them directly.
type Report struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate runs structural checks for every pack in the resolved and
// merged order of rootIds, then, if a profile is given and all structural
// checks passed, evaluates the composition's budget against the profile's
// character limit. Structural failures are collected rather than aborting
// so the caller can fix every issue in one pass; they short-circuit the
// budget evaluation, which would be wasted on content already known to be
// wrong. Budget overage is only ever reported, never auto-corrected.
func Validate(cat Catalog, rootIds []string, profile *config.Agent) Report {
	report := Report{}

	comp, err := Compose(cat, rootIds)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		return report
	}

	for _, id := range comp.Order {
		errs, warns := cat.Validate(id)
		for _, msg := range errs {
			report.Errors = append(report.Errors, fmt.Sprintf("[%s] %s", id, msg))
		}
		for _, msg := range warns {
			report.Warnings = append(report.Warnings, fmt.Sprintf("[%s] %s", id, msg))
		}
	}

	if len(report.Errors) == 0 && profile != nil {
		budget := ComputeBudget(cat, comp.Order, profile.MaxChars)
		if !budget.WithinLimit {
			report.Errors = append(report.Errors, fmt.Sprintf(
				"Composition exceeds %s character limit: %d / %d (%d%%)",
				profile.Id, budget.TotalChars, *budget.MaxChars, *budget.Percentage))
		} else if budget.Percentage != nil && *budget.Percentage > 80 {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"Composition uses %d%% of %s character limit",
				*budget.Percentage, profile.Id))
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}
