package movable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckDense(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
		dense   bool
	}{
		{name: "empty", dense: true},
		{name: "dense", entries: abcd(), dense: true},
		{name: "unsorted dense", entries: []Entry{{ID: 2, SortOrder: 2}, {ID: 1, SortOrder: 1}}, dense: true},
		{name: "gap", entries: []Entry{{ID: 1, SortOrder: 1}, {ID: 2, SortOrder: 3}}},
		{name: "duplicate", entries: []Entry{{ID: 1, SortOrder: 1}, {ID: 2, SortOrder: 1}}},
		{name: "zero based", entries: []Entry{{ID: 1, SortOrder: 0}, {ID: 2, SortOrder: 1}}},
		{name: "not starting at one", entries: []Entry{{ID: 1, SortOrder: 2}, {ID: 2, SortOrder: 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckDense(tt.entries)
			if tt.dense {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvariantViolation)
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	report := Inspect([]Entry{
		{ID: 1, SortOrder: 2},
		{ID: 2, SortOrder: 2},
		{ID: 3, SortOrder: 6},
		{ID: 4, SortOrder: -1},
	})
	require.Equal(t, 4, report.Count)
	require.Equal(t, int64(6), report.Max)
	require.Equal(t, []Gap{{Start: 1, End: 1}, {Start: 3, End: 5}}, report.Gaps)
	require.Equal(t, int64(3), report.Gaps[1].Size())
	require.Equal(t, []int64{2}, report.Duplicates)
	require.Equal(t, []int64{4}, report.NonPositive)
	require.False(t, report.Dense())
}
