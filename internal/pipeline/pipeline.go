// Package pipeline runs the processing stages in their required order:
// tag propagation, effort aggregation, contributor resolution. Each
// stage completes before the next starts; any failure aborts the run
// so no partial output can be written.
package pipeline

import (
	"fmt"

	"github.com/karhu-labs/wiproll/internal/aggregate"
	"github.com/karhu-labs/wiproll/internal/config"
	"github.com/karhu-labs/wiproll/internal/contributors"
	"github.com/karhu-labs/wiproll/internal/propagate"
	"github.com/karhu-labs/wiproll/internal/store"
	"github.com/karhu-labs/wiproll/internal/types"
)

// Outcome carries everything the reporting layer needs beyond the
// (annotated) ticket set itself.
type Outcome struct {
	// Records are all emitted contributor records, zero-hour ones
	// included.
	Records []types.ContributorRecord

	// Groups are the (activity, person) aggregates over records with
	// positive hours, in report order.
	Groups []types.ContributorGroup

	// TagsAssigned counts tickets holding a tag after propagation.
	TagsAssigned int

	// ActivitiesRolledUp counts activity tickets that received a WIP
	// rollup.
	ActivitiesRolledUp int
}

// Run executes the three stages over a loaded ticket set, mutating it
// in place (tags, WIP sums) and returning the derived outputs.
func Run(set *store.Set, cfg *config.Config) (*Outcome, error) {
	if err := propagate.Run(set, cfg); err != nil {
		return nil, fmt.Errorf("propagating activity tags: %w", err)
	}

	if err := aggregate.New(set, cfg).Run(); err != nil {
		return nil, fmt.Errorf("aggregating WIP hours: %w", err)
	}

	records, err := contributors.New(set, cfg).Expand()
	if err != nil {
		return nil, fmt.Errorf("resolving contributors: %w", err)
	}

	positive := make([]types.ContributorRecord, 0, len(records))
	for _, rec := range records {
		if rec.Hours > 0 {
			positive = append(positive, rec)
		}
	}

	outcome := &Outcome{
		Records: records,
		Groups:  contributors.Aggregate(positive),
	}
	for _, t := range set.Tickets {
		if t.ActivityTag != "" {
			outcome.TagsAssigned++
		}
		if t.HasSumWIP {
			outcome.ActivitiesRolledUp++
		}
	}
	return outcome, nil
}
