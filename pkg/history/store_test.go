package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covtools/report-augmenter/pkg/report"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)

	groups := []report.Aggregate{
		{Name: "foo", Covered: 8, Total: 20},
		{Name: "bar", Covered: 18, Total: 20},
	}

	runID, err := store.Record("main", groups)
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	runs, err := store.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "main", runs[0].Label)
	assert.NotEmpty(t, runs[0].RecordedAt)

	// Groups come back in recorded order with their counts intact.
	require.Len(t, runs[0].Groups, 2)
	assert.Equal(t, groups[0], runs[0].Groups[0])
	assert.Equal(t, groups[1], runs[0].Groups[1])
}

func TestDeltas(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Record("main", []report.Aggregate{
		{Name: "foo", Covered: 10, Total: 20},
		{Name: "bar", Covered: 5, Total: 10},
	})
	require.NoError(t, err)

	// A single run has nothing to compare against.
	deltas, err := store.Deltas("main")
	require.NoError(t, err)
	assert.Nil(t, deltas)

	_, err = store.Record("main", []report.Aggregate{
		{Name: "foo", Covered: 15, Total: 20},
		{Name: "new", Covered: 1, Total: 2},
	})
	require.NoError(t, err)

	deltas, err = store.Deltas("main")
	require.NoError(t, err)
	// "new" has no previous run, so only "foo" is comparable.
	require.Len(t, deltas, 1)
	assert.Equal(t, "foo", deltas[0].Group)
	assert.InDelta(t, 0.50, deltas[0].Previous, 1e-9)
	assert.InDelta(t, 0.75, deltas[0].Current, 1e-9)
}

func TestDeltasIgnoreOtherLabels(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Record("main", []report.Aggregate{{Name: "foo", Covered: 1, Total: 2}})
	require.NoError(t, err)
	_, err = store.Record("release", []report.Aggregate{{Name: "foo", Covered: 2, Total: 2}})
	require.NoError(t, err)

	deltas, err := store.Deltas("release")
	require.NoError(t, err)
	assert.Nil(t, deltas)
}
