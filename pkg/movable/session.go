package movable

import (
	"sort"
	"sync"
)

// Committable is what Engine.Commit needs from a staged reorder.
type Committable interface {
	Collection() Collection
	BeginCommit() error
	CommitPlan() []PositionUpdate
	MarkCommitted(plan []PositionUpdate)
	EndCommit()
}

// Session stages a permutation of one collection in memory. Moves never touch
// the store; Commit writes the whole order at once. Safe for concurrent use.
type Session[T Record[T]] struct {
	mu         sync.Mutex
	collection Collection
	baseline   []T
	items      []T
	dirty      bool
	committing bool
}

var _ Committable = (*Session[Entry])(nil)

// NewSession snapshots items in ascending sort order.
func NewSession[T Record[T]](collection Collection, items []T) *Session[T] {
	s := &Session[T]{collection: collection}
	s.rebase(items)
	return s
}

func (s *Session[T]) Collection() Collection {
	return s.collection
}

func (s *Session[T]) rebase(items []T) {
	snapshot := make([]T, len(items))
	copy(snapshot, items)
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].GetSortOrder() < snapshot[j].GetSortOrder()
	})
	s.baseline = snapshot
	s.items = append([]T(nil), snapshot...)
	s.dirty = false
}

// Move splices the item at from into position to. It reports whether the
// staged order changed; invalid indices and from == to are no-ops.
func (s *Session[T]) Move(from, to int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved, ok := MoveItem(s.items, from, to)
	if !ok {
		return false
	}
	s.items = moved
	s.dirty = true
	return true
}

func (s *Session[T]) MoveUp(index int) bool {
	return s.Move(index, index-1)
}

func (s *Session[T]) MoveDown(index int) bool {
	return s.Move(index, index+1)
}

// Reset discards staged moves and restores the last fetched or committed order.
func (s *Session[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]T(nil), s.baseline...)
	s.dirty = false
}

// Rebase replaces the baseline with freshly read items and drops staged moves.
func (s *Session[T]) Rebase(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebase(items)
}

// Items returns the staged order with sort orders as they would be after commit.
func (s *Session[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Renumber(s.items)
}

// Baseline returns the last fetched or committed order.
func (s *Session[T]) Baseline() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.baseline...)
}

func (s *Session[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Session[T]) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Session[T]) CommitPlan() []PositionUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CommitPlanFor(s.items)
}

// MarkCommitted makes the committed plan the new baseline. Moves staged while the
// commit was in flight stay staged and keep the session dirty.
func (s *Session[T]) MarkCommitted(plan []PositionUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[int64]T, len(s.items))
	for _, item := range s.items {
		byID[item.GetID()] = item
	}
	baseline := make([]T, 0, len(plan))
	for _, u := range plan {
		if item, ok := byID[u.ID]; ok {
			baseline = append(baseline, item.WithSortOrder(u.SortOrder))
		}
	}
	s.baseline = baseline
	s.items = Renumber(s.items)

	s.dirty = len(s.items) != len(s.baseline)
	for i := 0; !s.dirty && i < len(s.items); i++ {
		s.dirty = s.items[i].GetID() != s.baseline[i].GetID()
	}
}

// BeginCommit fails with ErrCommitInProgress while another commit holds the session.
func (s *Session[T]) BeginCommit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.committing {
		return ErrCommitInProgress
	}
	s.committing = true
	return nil
}

func (s *Session[T]) EndCommit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committing = false
}
