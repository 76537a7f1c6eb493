package movable

// =============================================================================
// PURE ORDERING FUNCTIONS
// =============================================================================

// NextSortOrder is the position assigned to an appended record: max+1, or 1 when
// the collection is empty.
func NextSortOrder(maxSortOrder int64, found bool) int64 {
	if !found || maxSortOrder < 0 {
		return 1
	}
	return maxSortOrder + 1
}

// MoveItem splices the element at from into position to and returns a new slice.
// Out of range indices and from == to leave the order untouched and report false.
func MoveItem[T any](items []T, from, to int) ([]T, bool) {
	if from == to || from < 0 || to < 0 || from >= len(items) || to >= len(items) {
		return items, false
	}

	moving := items[from]
	result := make([]T, 0, len(items))
	result = append(result, items[:from]...)
	result = append(result, items[from+1:]...)

	result = append(result, moving)
	copy(result[to+1:], result[to:len(result)-1])
	result[to] = moving
	return result, true
}

// Renumber returns a copy with sort orders rewritten to index+1.
func Renumber[T Record[T]](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.WithSortOrder(int64(i + 1))
	}
	return out
}

// CommitPlanFor maps every record to its index+1, whether or not it moved.
func CommitPlanFor[T Record[T]](items []T) []PositionUpdate {
	plan := make([]PositionUpdate, len(items))
	for i, item := range items {
		plan[i] = PositionUpdate{ID: item.GetID(), SortOrder: int64(i + 1)}
	}
	return plan
}

// CascadePlan decrements each record that sat after a removed one by exactly one.
func CascadePlan(after []Entry) []PositionUpdate {
	plan := make([]PositionUpdate, len(after))
	for i, e := range after {
		plan[i] = PositionUpdate{ID: e.ID, SortOrder: e.SortOrder - 1}
	}
	return plan
}

// CompactPlan lists the updates needed to make entries dense in their current order.
func CompactPlan(entries []Entry) []PositionUpdate {
	var plan []PositionUpdate
	for i, e := range entries {
		want := int64(i + 1)
		if e.SortOrder != want {
			plan = append(plan, PositionUpdate{ID: e.ID, SortOrder: want})
		}
	}
	return plan
}
