// Package aggregate computes per-activity work-in-progress hours:
// bottom-up subtree sums with double-count suppression across the
// linked-item graph.
package aggregate

import (
	"fmt"

	"github.com/karhu-labs/wiproll/internal/config"
	"github.com/karhu-labs/wiproll/internal/effort"
	"github.com/karhu-labs/wiproll/internal/store"
	"github.com/karhu-labs/wiproll/internal/types"
)

// Aggregator rolls WIP hours up to tagged activity tickets.
type Aggregator struct {
	set     *store.Set
	cfg     *config.Config
	scanner *effort.Scanner
}

// New builds an aggregator over a ticket set that has already been
// through tag propagation.
func New(set *store.Set, cfg *config.Config) *Aggregator {
	return &Aggregator{
		set:     set,
		cfg:     cfg,
		scanner: effort.NewScanner(cfg.Units),
	}
}

// Run computes SumWIPHours for every activity ticket that carries a
// tag. Other tickets are left untouched.
func (a *Aggregator) Run() error {
	for _, t := range a.set.Tickets {
		if !t.IsActivity(a.cfg.Activity.WorkType, a.cfg.Activity.KeyPrefix) || t.ActivityTag == "" {
			continue
		}
		total, err := a.rollup(t)
		if err != nil {
			return fmt.Errorf("aggregating %s: %w", t.Key, err)
		}
		t.SumWIPHours = total
		t.HasSumWIP = true
	}
	return nil
}

// rollup sums WIP hours across an activity ticket's linked items.
//
// A linked item that is also a descendant of another non-activity
// linked item would be counted twice (once directly, once inside the
// other item's subtree), so those are collected first and skipped in
// the sum: each ticket's effort is attributed to exactly one linked
// ancestor, the most directly linked one.
func (a *Aggregator) rollup(activity *types.Ticket) (float64, error) {
	linked := a.set.Resolve(activity.LinkedRefs)

	covered, err := a.LinkedDescendants(linked)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, l := range linked {
		if covered[l.Key] {
			continue
		}
		if l.IsActivity(a.cfg.Activity.WorkType, a.cfg.Activity.KeyPrefix) && l.ActivityTag != "" {
			// A tagged activity link is a rollup target of its own,
			// not something to fold into this one.
			continue
		}
		hours, err := a.wipHours(l, map[string]bool{})
		if err != nil {
			return 0, err
		}
		total += hours
	}
	return total, nil
}

// LinkedDescendants returns the key set of all descendants of the
// non-activity tickets in linked. The contributor resolver applies the
// same exclusion before expanding subtrees.
func (a *Aggregator) LinkedDescendants(linked []*types.Ticket) (map[string]bool, error) {
	covered := make(map[string]bool)
	for _, l := range linked {
		if l.IsActivity(a.cfg.Activity.WorkType, a.cfg.Activity.KeyPrefix) {
			continue
		}
		desc, err := a.set.Descendants(l)
		if err != nil {
			return nil, err
		}
		for _, d := range desc {
			covered[d.Key] = true
		}
	}
	return covered, nil
}

// OwnHours is the effort logged directly on a ticket: parsed duration
// times the number of people it is attributed to.
func (a *Aggregator) OwnHours(t *types.Ticket) float64 {
	return a.scanner.Hours(t.DurationRaw) * float64(effort.PeopleCount(t))
}

// wipHours computes a ticket's subtree effort. path guards against
// hierarchy cycles.
func (a *Aggregator) wipHours(t *types.Ticket, path map[string]bool) (float64, error) {
	if path[t.Key] {
		return 0, fmt.Errorf("%w: ticket %s", store.ErrCycle, t.Key)
	}
	path[t.Key] = true
	defer delete(path, t.Key)

	children := a.set.Children(t)
	if len(children) == 0 {
		return a.OwnHours(t), nil
	}

	var childSum float64
	var childPeople int
	childLogged := false
	for _, c := range children {
		hours, err := a.wipHours(c, path)
		if err != nil {
			return 0, err
		}
		childSum += hours
		childPeople += effort.PeopleCount(c)
		if a.scanner.Hours(c.DurationRaw) > 0 {
			childLogged = true
		}
	}

	own := a.scanner.Hours(t.DurationRaw)

	// Time logged once at the parent with the assignees recorded on the
	// children: redistribute the parent's duration across the children's
	// head count.
	if !childLogged && own > 0 && childPeople > effort.PeopleCount(t) {
		return own * float64(childPeople), nil
	}

	// A parent's logged time is never less than what its children
	// logged, but must not be double-counted on top of it either.
	if ownTotal := a.OwnHours(t); ownTotal > childSum {
		return ownTotal, nil
	}
	return childSum, nil
}
