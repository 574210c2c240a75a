// Package propagate assigns activity tags to tickets that lack one,
// sourced from linked activity tickets and swept down through
// descendants.
package propagate

import (
	"github.com/karhu-labs/wiproll/internal/config"
	"github.com/karhu-labs/wiproll/internal/store"
	"github.com/karhu-labs/wiproll/internal/types"
)

// Run performs one propagation pass over the ticket set in table order.
//
// A ticket that already carries a tag is never overwritten, and a
// ticket reached once (directly or via another ticket's descendant
// sweep) is never reprocessed, so repeated runs are idempotent. Tickets
// with no reachable tagged activity ticket are left untagged; that is a
// valid terminal state, not an error.
func Run(set *store.Set, cfg *config.Config) error {
	touched := make(map[string]bool, len(set.Tickets))

	for _, t := range set.Tickets {
		if touched[t.Key] || t.ActivityTag != "" {
			continue
		}
		// Activity tickets carry their tag natively or not at all;
		// they never inherit one through links.
		if t.IsActivity(cfg.Activity.WorkType, cfg.Activity.KeyPrefix) {
			continue
		}

		tag := linkedTag(set, cfg, t)
		if tag == "" {
			continue
		}

		t.ActivityTag = tag
		touched[t.Key] = true

		desc, err := set.Descendants(t)
		if err != nil {
			return err
		}
		for _, d := range desc {
			if d.ActivityTag != "" {
				continue
			}
			d.ActivityTag = tag
			touched[d.Key] = true
		}
	}
	return nil
}

// linkedTag returns the tag of the first linked activity ticket (in
// linked-refs order) that already carries one, or "".
func linkedTag(set *store.Set, cfg *config.Config, t *types.Ticket) string {
	for _, l := range set.Resolve(t.LinkedRefs) {
		if l.IsActivity(cfg.Activity.WorkType, cfg.Activity.KeyPrefix) && l.ActivityTag != "" {
			return l.ActivityTag
		}
	}
	return ""
}
