// Package report shapes pipeline results into the three output sheets.
package report

import (
	"strings"

	"github.com/karhu-labs/wiproll/internal/config"
	"github.com/karhu-labs/wiproll/internal/store"
	"github.com/karhu-labs/wiproll/internal/types"
)

// TransformedHeaders is the column set of the Transformed Data and
// Project Summary sheets.
var TransformedHeaders = []string{"Project", "Who", "Role", "Activity Type", "Hours/Cost", "Phase", "Work Item"}

// Results renders every input row in original order, with the original
// columns followed by the derived activity tag and derived WIP hours.
// The hours cell is populated only for activity tickets that received a
// rollup.
func Results(set *store.Set, cfg *config.Config) [][]any {
	header := make([]any, 0, len(set.Columns)+2)
	for _, col := range set.Columns {
		header = append(header, col)
	}
	header = append(header, cfg.Output.DerivedTagColumn, cfg.Output.DerivedHoursColumn)

	rows := make([][]any, 0, len(set.Tickets)+1)
	rows = append(rows, header)
	for _, t := range set.Tickets {
		row := make([]any, 0, len(set.Columns)+2)
		for _, col := range set.Columns {
			row = append(row, t.Row[col])
		}
		row = append(row, t.ActivityTag)
		if t.HasSumWIP {
			row = append(row, t.SumWIPHours)
		} else {
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	return rows
}

// Transformed renders one row per contributor record with positive
// hours. Zero-hour records are filtered here, not suppressed at source.
func Transformed(records []types.ContributorRecord) [][]any {
	rows := [][]any{headerRow()}
	for _, rec := range records {
		if rec.Hours <= 0 {
			continue
		}
		rows = append(rows, []any{
			rec.Activity, rec.Person, rec.Role, rec.ActivityType,
			rec.Hours, rec.Phase, rec.SourceWorkItem,
		})
	}
	return rows
}

// Summary renders one row per aggregated (activity, person) group; the
// work-item cell is the comma-joined set of contributing tickets.
func Summary(groups []types.ContributorGroup, cfg *config.Config) [][]any {
	rows := [][]any{headerRow()}
	for _, g := range groups {
		activityType := types.ActivityTypeCore
		if g.Activity == cfg.Activity.SupportTag {
			activityType = types.ActivityTypeSupport
		}
		rows = append(rows, []any{
			g.Activity, g.Person, types.RoleEmployee, activityType,
			g.TotalHours, types.PhaseDevelopment, strings.Join(g.WorkItems, ", "),
		})
	}
	return rows
}

func headerRow() []any {
	row := make([]any, len(TransformedHeaders))
	for i, h := range TransformedHeaders {
		row[i] = h
	}
	return row
}
