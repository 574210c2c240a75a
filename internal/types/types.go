package types

import (
	"fmt"
	"strings"
)

// Ticket represents one row of the tracker export, addressable by key.
type Ticket struct {
	Key         string   `json:"key"`
	ParentRef   string   `json:"parent_ref,omitempty"` // raw field text, e.g. "MAP-12 Rework billing"
	ParentKey   string   `json:"parent_key,omitempty"` // resolved at load time; empty means no parent
	LinkedRefs  []string `json:"linked_refs,omitempty"`
	WorkType    string   `json:"work_type,omitempty"`
	ActivityTag string   `json:"activity_tag,omitempty"`
	DurationRaw string   `json:"duration_raw,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	Mob         string   `json:"mob,omitempty"`

	// SumWIPHours is set by the effort aggregator on activity tickets
	// that carry a tag. HasSumWIP distinguishes "computed zero" from
	// "never computed".
	SumWIPHours float64 `json:"sum_wip_hours,omitempty"`
	HasSumWIP   bool    `json:"has_sum_wip,omitempty"`

	// Row preserves the original input row verbatim for pass-through
	// output. Columns holds the header order at load time.
	Row     map[string]string `json:"-"`
	Columns []string          `json:"-"`
}

// IsActivity reports whether the ticket is a distinguished activity
// ticket: idea-typed with the identifying key prefix. Activity tickets
// own their classification tag rather than inheriting one.
func (t *Ticket) IsActivity(ideaWorkType, keyPrefix string) bool {
	return t.WorkType == ideaWorkType && strings.HasPrefix(t.Key, keyPrefix)
}

// Validate checks the minimal field requirements for an indexed ticket.
func (t *Ticket) Validate() error {
	if strings.TrimSpace(t.Key) == "" {
		return fmt.Errorf("key is required")
	}
	return nil
}

// ContributorRecord is one person's attributed hours against one
// activity, traced from a specific source ticket. Records are transient:
// emitted by the contributor resolver and consumed by reporting.
type ContributorRecord struct {
	Activity       string  `json:"activity"`
	Person         string  `json:"person"`
	Role           string  `json:"role"`
	ActivityType   string  `json:"activity_type"`
	Hours          float64 `json:"hours"`
	Phase          string  `json:"phase"`
	SourceWorkItem string  `json:"source_work_item"`
}

// ContributorGroup is the (activity, person) aggregate of contributor
// records: summed hours plus the set of contributing work items.
type ContributorGroup struct {
	Activity   string   `json:"activity"`
	Person     string   `json:"person"`
	TotalHours float64  `json:"total_hours"`
	WorkItems  []string `json:"work_items"` // first-seen order, no duplicates
}

// Contributor role and phase values used in the transformed output.
const (
	RoleEmployee     = "Employee"
	PhaseDevelopment = "Development"

	ActivityTypeCore    = "Core"
	ActivityTypeSupport = "Support"
)
