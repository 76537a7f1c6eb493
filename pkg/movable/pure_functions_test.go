package movable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func abcd() []Entry {
	return []Entry{
		{ID: 1, SortOrder: 1, Label: "A"},
		{ID: 2, SortOrder: 2, Label: "B"},
		{ID: 3, SortOrder: 3, Label: "C"},
		{ID: 4, SortOrder: 4, Label: "D"},
	}
}

func TestNextSortOrder(t *testing.T) {
	t.Parallel()
	require.Equal(t, int64(1), NextSortOrder(0, false))
	require.Equal(t, int64(1), NextSortOrder(0, true))
	require.Equal(t, int64(6), NextSortOrder(5, true))
	// gapped legacy data still appends after the largest rank
	require.Equal(t, int64(13), NextSortOrder(12, true))
}

func TestMoveItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		want     []string
		moved    bool
	}{
		{name: "forward splice", from: 0, to: 2, want: []string{"B", "C", "A", "D"}, moved: true},
		{name: "to last", from: 0, to: 3, want: []string{"B", "C", "D", "A"}, moved: true},
		{name: "backward splice", from: 3, to: 0, want: []string{"D", "A", "B", "C"}, moved: true},
		{name: "adjacent", from: 1, to: 2, want: []string{"A", "C", "B", "D"}, moved: true},
		{name: "same index", from: 2, to: 2, want: []string{"A", "B", "C", "D"}},
		{name: "to out of range", from: 1, to: 4, want: []string{"A", "B", "C", "D"}},
		{name: "negative to", from: 0, to: -1, want: []string{"A", "B", "C", "D"}},
		{name: "from out of range", from: 7, to: 0, want: []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items := abcd()
			got, moved := MoveItem(items, tt.from, tt.to)
			require.Equal(t, tt.moved, moved)
			require.Equal(t, tt.want, labels(got))
			require.Equal(t, []string{"A", "B", "C", "D"}, labels(items), "input must not be mutated")
		})
	}
}

func TestMoveItemEmpty(t *testing.T) {
	t.Parallel()
	got, moved := MoveItem([]Entry(nil), 0, 0)
	require.False(t, moved)
	require.Empty(t, got)
}

func TestCommitPlanFor(t *testing.T) {
	t.Parallel()
	items, _ := MoveItem(abcd(), 3, 1)
	plan := CommitPlanFor(items)
	require.Equal(t, []PositionUpdate{
		{ID: 1, SortOrder: 1},
		{ID: 4, SortOrder: 2},
		{ID: 2, SortOrder: 3},
		{ID: 3, SortOrder: 4},
	}, plan)
}

func TestCascadePlan(t *testing.T) {
	t.Parallel()
	plan := CascadePlan([]Entry{{ID: 4, SortOrder: 4}, {ID: 5, SortOrder: 5}})
	require.Equal(t, []PositionUpdate{{ID: 4, SortOrder: 3}, {ID: 5, SortOrder: 4}}, plan)
	require.Empty(t, CascadePlan(nil))
}

func TestCompactPlan(t *testing.T) {
	t.Parallel()
	plan := CompactPlan([]Entry{{ID: 9, SortOrder: 1}, {ID: 3, SortOrder: 4}, {ID: 5, SortOrder: 10}})
	require.Equal(t, []PositionUpdate{{ID: 3, SortOrder: 2}, {ID: 5, SortOrder: 3}}, plan)
	require.Empty(t, CompactPlan(abcd()))
}

func TestRenumber(t *testing.T) {
	t.Parallel()
	out := Renumber([]Entry{{ID: 1, SortOrder: 7}, {ID: 2, SortOrder: 3}})
	require.Equal(t, int64(1), out[0].SortOrder)
	require.Equal(t, int64(2), out[1].SortOrder)
}
