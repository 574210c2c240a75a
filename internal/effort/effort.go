// Package effort normalizes free-form elapsed-time text into hour counts
// and resolves how many people a ticket's effort is attributed to.
package effort

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/karhu-labs/wiproll/internal/types"
)

// Unassigned is the tracker's placeholder for a missing assignee.
const Unassigned = "Unassigned"

// tokenPattern matches one <number><unit> token, e.g. "1d", "2.5h",
// "30 m". The unit letters are matched broadly; the scanner's unit table
// decides which ones count.
var tokenPattern = regexp.MustCompile(`([0-9]*\.?[0-9]+)\s*([a-zA-Z]+)`)

// Scanner converts duration text into hours using a configurable unit
// table. It is a lenient token scanner, not a strict grammar: tokens may
// appear in any order, unmatched text and unknown units are skipped.
type Scanner struct {
	units map[string]float64
}

// NewScanner builds a scanner from a unit → hour-weight table,
// e.g. {"d": 8, "h": 1, "m": 1.0/60}.
func NewScanner(units map[string]float64) *Scanner {
	table := make(map[string]float64, len(units))
	for unit, weight := range units {
		table[strings.ToLower(unit)] = weight
	}
	return &Scanner{units: table}
}

// Hours sums the recognized duration tokens in text. Empty or
// unparseable input yields 0.
func (s *Scanner) Hours(text string) float64 {
	if text == "" {
		return 0
	}

	var total float64
	for _, match := range tokenPattern.FindAllStringSubmatch(text, -1) {
		weight, ok := s.units[strings.ToLower(match[2])]
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		total += value * weight
	}
	return total
}

// People returns the names a ticket's effort is credited to: the mob
// list when present, otherwise the assignee unless missing or the
// "Unassigned" placeholder.
func People(t *types.Ticket) []string {
	if names := SplitNames(t.Mob); len(names) > 0 {
		return names
	}
	if t.Assignee != "" && t.Assignee != Unassigned {
		return []string{t.Assignee}
	}
	return nil
}

// PeopleCount returns the number of effort-attribution units for a
// ticket. A ticket with no usable names still counts as one unit.
func PeopleCount(t *types.Ticket) int {
	if names := SplitNames(t.Mob); len(names) > 0 {
		return len(names)
	}
	return 1
}

// SplitNames splits a comma-separated name list, trimming whitespace and
// dropping empty entries.
func SplitNames(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(list, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
