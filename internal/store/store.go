// Package store holds the in-memory ticket set: the record store built
// from the input table and the hierarchy index derived from it.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/karhu-labs/wiproll/internal/config"
	"github.com/karhu-labs/wiproll/internal/types"
)

// ErrCycle reports a parent/child cycle in the ticket hierarchy. The
// data is assumed acyclic; a cycle is a structural-integrity failure
// that aborts the run rather than looping forever.
var ErrCycle = errors.New("cycle in ticket hierarchy")

// Set is the loaded ticket set. Tickets preserves input row order for
// deterministic output; ByKey indexes tickets by unique key.
type Set struct {
	Columns []string
	Tickets []*types.Ticket
	ByKey   map[string]*types.Ticket

	children map[string][]*types.Ticket
}

// Load builds the ticket set from the input table. The table arrives as
// a header (column names in position order) plus one map per data row;
// missing cells are empty strings.
//
// The parent field stores "KEY rest-of-title", not a bare key. The key
// is extracted once here (first whitespace-delimited token, kept only
// if it names a loaded ticket) and all later child lookups use the
// resolved key. Rows with a blank key and rows duplicating an earlier
// key are kept for pass-through output but not indexed.
func Load(columns []string, rows []map[string]string, cfg *config.Config) (*Set, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("input table has no header row")
	}

	set := &Set{
		Columns: columns,
		Tickets: make([]*types.Ticket, 0, len(rows)),
		ByKey:   make(map[string]*types.Ticket, len(rows)),
	}

	cols := cfg.Columns
	for _, row := range rows {
		t := &types.Ticket{
			Key:         strings.TrimSpace(row[cols.Key]),
			ParentRef:   row[cols.Parent],
			LinkedRefs:  splitRefs(row[cols.Linked]),
			WorkType:    strings.TrimSpace(row[cols.WorkType]),
			ActivityTag: strings.TrimSpace(row[cols.ActivityTag]),
			DurationRaw: row[cols.Duration],
			Assignee:    strings.TrimSpace(row[cols.Assignee]),
			Mob:         row[cols.Mob],
			Row:         row,
			Columns:     columns,
		}
		set.Tickets = append(set.Tickets, t)

		if t.Key == "" {
			continue
		}
		if _, dup := set.ByKey[t.Key]; dup {
			continue // first occurrence wins
		}
		set.ByKey[t.Key] = t
	}

	// Parent resolution needs the full key index, so it runs after all
	// rows are loaded.
	set.children = make(map[string][]*types.Ticket)
	for _, t := range set.Tickets {
		if set.ByKey[t.Key] != t {
			continue // blank or duplicate key: not part of the hierarchy
		}
		key := parentToken(t.ParentRef)
		if key == "" {
			continue
		}
		if _, ok := set.ByKey[key]; !ok {
			continue // missing parent is a data gap, not an error
		}
		t.ParentKey = key
		set.children[key] = append(set.children[key], t)
	}

	return set, nil
}

// Children returns the direct children of a ticket in input order.
func (s *Set) Children(t *types.Ticket) []*types.Ticket {
	return s.children[t.Key]
}

// Descendants returns the transitive closure of Children, depth-first.
// It tracks visited keys and returns ErrCycle instead of recursing
// forever when the hierarchy is corrupt.
func (s *Set) Descendants(t *types.Ticket) ([]*types.Ticket, error) {
	visited := map[string]bool{t.Key: true}
	var out []*types.Ticket

	stack := make([]*types.Ticket, 0, len(s.children[t.Key]))
	stack = append(stack, s.children[t.Key]...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[cur.Key] {
			return nil, fmt.Errorf("%w: ticket %s revisited under %s", ErrCycle, cur.Key, t.Key)
		}
		visited[cur.Key] = true
		out = append(out, cur)
		stack = append(stack, s.children[cur.Key]...)
	}
	return out, nil
}

// Resolve maps linked-item keys to loaded tickets, dropping references
// that do not resolve.
func (s *Set) Resolve(refs []string) []*types.Ticket {
	var out []*types.Ticket
	for _, ref := range refs {
		if t, ok := s.ByKey[ref]; ok {
			out = append(out, t)
		}
	}
	return out
}

// parentToken extracts the candidate parent key from the free-text
// parent field: everything up to the first space.
func parentToken(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if i := strings.IndexByte(ref, ' '); i >= 0 {
		return ref[:i]
	}
	return ref
}

// splitRefs splits a comma-separated key list, trimming whitespace and
// dropping empty entries.
func splitRefs(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var refs []string
	for _, part := range strings.Split(list, ",") {
		if ref := strings.TrimSpace(part); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}
