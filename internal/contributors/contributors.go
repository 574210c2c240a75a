// Package contributors expands activity rollups into per-person records
// and aggregates them into the reporting ledger.
package contributors

import (
	"fmt"
	"sort"

	"github.com/karhu-labs/wiproll/internal/aggregate"
	"github.com/karhu-labs/wiproll/internal/config"
	"github.com/karhu-labs/wiproll/internal/effort"
	"github.com/karhu-labs/wiproll/internal/store"
	"github.com/karhu-labs/wiproll/internal/types"
)

// Resolver walks activity rollups and emits one ContributorRecord per
// person per ticket.
type Resolver struct {
	set     *store.Set
	cfg     *config.Config
	scanner *effort.Scanner
	agg     *aggregate.Aggregator
}

// New builds a resolver over a ticket set that has already been through
// tag propagation.
func New(set *store.Set, cfg *config.Config) *Resolver {
	return &Resolver{
		set:     set,
		cfg:     cfg,
		scanner: effort.NewScanner(cfg.Units),
		agg:     aggregate.New(set, cfg),
	}
}

// Expand produces contributor records for every tagged activity ticket,
// in table order. Linked items are included under the same
// double-count exclusion the effort aggregator applies; each included
// item's full child subtree is then walked unconditionally.
//
// Zero-hour records are emitted as-is; consumers filter them.
func (r *Resolver) Expand() ([]types.ContributorRecord, error) {
	var records []types.ContributorRecord

	for _, t := range r.set.Tickets {
		if !t.IsActivity(r.cfg.Activity.WorkType, r.cfg.Activity.KeyPrefix) || t.ActivityTag == "" {
			continue
		}

		linked := r.set.Resolve(t.LinkedRefs)
		covered, err := r.agg.LinkedDescendants(linked)
		if err != nil {
			return nil, fmt.Errorf("resolving contributors of %s: %w", t.Key, err)
		}

		for _, l := range linked {
			if covered[l.Key] {
				continue
			}
			if l.IsActivity(r.cfg.Activity.WorkType, r.cfg.Activity.KeyPrefix) && l.ActivityTag != "" {
				continue
			}
			recs, err := r.expand(l, t.ActivityTag, map[string]bool{})
			if err != nil {
				return nil, fmt.Errorf("resolving contributors of %s: %w", t.Key, err)
			}
			records = append(records, recs...)
		}
	}
	return records, nil
}

// expand emits records for one ticket and recurses into its children.
// Every listed mob member is credited the full logged duration; hours
// are not divided among the mob.
func (r *Resolver) expand(t *types.Ticket, tag string, path map[string]bool) ([]types.ContributorRecord, error) {
	if path[t.Key] {
		return nil, fmt.Errorf("%w: ticket %s", store.ErrCycle, t.Key)
	}
	path[t.Key] = true
	defer delete(path, t.Key)

	activityType := types.ActivityTypeCore
	if tag == r.cfg.Activity.SupportTag {
		activityType = types.ActivityTypeSupport
	}

	hours := r.scanner.Hours(t.DurationRaw)
	var records []types.ContributorRecord
	for _, person := range effort.People(t) {
		records = append(records, types.ContributorRecord{
			Activity:       tag,
			Person:         person,
			Role:           types.RoleEmployee,
			ActivityType:   activityType,
			Hours:          hours,
			Phase:          types.PhaseDevelopment,
			SourceWorkItem: t.Key,
		})
	}

	for _, c := range r.set.Children(t) {
		recs, err := r.expand(c, tag, path)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

// Aggregate folds records into one group per (activity, person),
// summing hours and collecting the contributing work items as a set in
// first-seen order. Groups come back sorted ascending by activity
// (case-sensitive), then by person.
func Aggregate(records []types.ContributorRecord) []types.ContributorGroup {
	type groupKey struct {
		activity string
		person   string
	}

	groups := make(map[groupKey]*types.ContributorGroup)
	seen := make(map[groupKey]map[string]bool)
	var order []groupKey

	for _, rec := range records {
		key := groupKey{rec.Activity, rec.Person}
		g, ok := groups[key]
		if !ok {
			g = &types.ContributorGroup{Activity: rec.Activity, Person: rec.Person}
			groups[key] = g
			seen[key] = make(map[string]bool)
			order = append(order, key)
		}
		g.TotalHours += rec.Hours
		if !seen[key][rec.SourceWorkItem] {
			seen[key][rec.SourceWorkItem] = true
			g.WorkItems = append(g.WorkItems, rec.SourceWorkItem)
		}
	}

	out := make([]types.ContributorGroup, 0, len(order))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Activity != out[j].Activity {
			return out[i].Activity < out[j].Activity
		}
		return out[i].Person < out[j].Person
	})
	return out
}
