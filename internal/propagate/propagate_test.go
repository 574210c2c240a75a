package propagate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karhu-labs/wiproll/internal/config"
	"github.com/karhu-labs/wiproll/internal/store"
)

var testColumns = []string{"Key", "Parent", "Linked Items", "Work Type", "Activity", "Time Spent", "Assignee", "Mob"}

func row(values map[string]string) map[string]string {
	r := make(map[string]string, len(testColumns))
	for _, c := range testColumns {
		r[c] = values[c]
	}
	return r
}

func loadSet(t *testing.T, rows []map[string]string) *store.Set {
	t.Helper()
	set, err := store.Load(testColumns, rows, config.Default())
	require.NoError(t, err)
	return set
}

func TestTagFromLinkedActivity(t *testing.T) {
	set := loadSet(t, []map[string]string{
		row(map[string]string{"Key": "MAP-1", "Work Type": "Idea", "Activity": "Platform"}),
		row(map[string]string{"Key": "TASK-10", "Linked Items": "MAP-1"}),
		row(map[string]string{"Key": "TASK-11", "Parent": "TASK-10 Setup"}),
		row(map[string]string{"Key": "TASK-12", "Parent": "TASK-11 Deeper"}),
	})

	require.NoError(t, Run(set, config.Default()))

	assert.Equal(t, "Platform", set.ByKey["TASK-10"].ActivityTag)
	// Descendant coverage: the whole subtree inherits the tag.
	assert.Equal(t, "Platform", set.ByKey["TASK-11"].ActivityTag)
	assert.Equal(t, "Platform", set.ByKey["TASK-12"].ActivityTag)
}

func TestFirstLinkedActivityWins(t *testing.T) {
	set := loadSet(t, []map[string]string{
		row(map[string]string{"Key": "MAP-1", "Work Type": "Idea", "Activity": "Platform"}),
		row(map[string]string{"Key": "MAP-2", "Work Type": "Idea", "Activity": "Growth"}),
		row(map[string]string{"Key": "MAP-3", "Work Type": "Idea"}), // untagged activity
		row(map[string]string{"Key": "TASK-10", "Linked Items": "MAP-3, MAP-2, MAP-1"}),
	})

	require.NoError(t, Run(set, config.Default()))

	// MAP-3 carries no tag, so the first *tagged* linked activity wins.
	assert.Equal(t, "Growth", set.ByKey["TASK-10"].ActivityTag)
}

func TestNoOverwrite(t *testing.T) {
	set := loadSet(t, []map[string]string{
		row(map[string]string{"Key": "MAP-1", "Work Type": "Idea", "Activity": "Platform"}),
		row(map[string]string{"Key": "TASK-10", "Linked Items": "MAP-1", "Activity": "Handset"}),
		row(map[string]string{"Key": "TASK-11", "Parent": "TASK-10 Setup", "Activity": "Handset"}),
		row(map[string]string{"Key": "TASK-12", "Parent": "TASK-10 Setup"}),
	})

	require.NoError(t, Run(set, config.Default()))

	// Pre-existing tags survive, including on descendants.
	assert.Equal(t, "Handset", set.ByKey["TASK-10"].ActivityTag)
	assert.Equal(t, "Handset", set.ByKey["TASK-11"].ActivityTag)
}

func TestUntaggedDescendantStillSweptFromTaggedParent(t *testing.T) {
	set := loadSet(t, []map[string]string{
		row(map[string]string{"Key": "MAP-1", "Work Type": "Idea", "Activity": "Platform"}),
		row(map[string]string{"Key": "TASK-10", "Linked Items": "MAP-1", "Activity": "Handset"}),
		row(map[string]string{"Key": "TASK-12", "Parent": "TASK-10 Setup"}),
		row(map[string]string{"Key": "TASK-20", "Linked Items": "MAP-1"}),
	})

	require.NoError(t, Run(set, config.Default()))

	// TASK-10 already has a tag so it is skipped entirely; TASK-12 has
	// no link of its own and stays untagged. Not an error.
	assert.Empty(t, set.ByKey["TASK-12"].ActivityTag)
	assert.Equal(t, "Platform", set.ByKey["TASK-20"].ActivityTag)
}

func TestIdempotence(t *testing.T) {
	rows := []map[string]string{
		row(map[string]string{"Key": "MAP-1", "Work Type": "Idea", "Activity": "Platform"}),
		row(map[string]string{"Key": "TASK-10", "Linked Items": "MAP-1"}),
		row(map[string]string{"Key": "TASK-11", "Parent": "TASK-10 Setup"}),
	}

	set := loadSet(t, rows)
	cfg := config.Default()
	require.NoError(t, Run(set, cfg))

	first := make(map[string]string)
	for _, tk := range set.Tickets {
		first[tk.Key] = tk.ActivityTag
	}

	require.NoError(t, Run(set, cfg))
	for _, tk := range set.Tickets {
		assert.Equal(t, first[tk.Key], tk.ActivityTag, "second run changed %s", tk.Key)
	}
}

func TestNoReachableTagIsNotAnError(t *testing.T) {
	set := loadSet(t, []map[string]string{
		row(map[string]string{"Key": "TASK-10", "Linked Items": "GONE-1"}),
		row(map[string]string{"Key": "TASK-11"}),
	})

	require.NoError(t, Run(set, config.Default()))
	assert.Empty(t, set.ByKey["TASK-10"].ActivityTag)
	assert.Empty(t, set.ByKey["TASK-11"].ActivityTag)
}

func TestCycleSurfacesError(t *testing.T) {
	set := loadSet(t, []map[string]string{
		row(map[string]string{"Key": "MAP-1", "Work Type": "Idea", "Activity": "Platform"}),
		row(map[string]string{"Key": "TASK-10", "Linked Items": "MAP-1", "Parent": "TASK-11 loop"}),
		row(map[string]string{"Key": "TASK-11", "Parent": "TASK-10 loop"}),
	})

	err := Run(set, config.Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrCycle)
}
