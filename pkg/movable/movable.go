package movable

import (
	"context"
	"database/sql"
	"time"
)

// Record is anything carrying a stable id and a 1-based sort order.
// WithSortOrder returns a copy, records are treated as values.
type Record[T any] interface {
	GetID() int64
	GetSortOrder() int64
	WithSortOrder(sortOrder int64) T
}

// Entry is the minimal snapshot of an ordered row.
type Entry struct {
	ID        int64  `json:"id"`
	SortOrder int64  `json:"sortOrder"`
	Label     string `json:"label"`
}

func (e Entry) GetID() int64        { return e.ID }
func (e Entry) GetSortOrder() int64 { return e.SortOrder }

func (e Entry) WithSortOrder(sortOrder int64) Entry {
	e.SortOrder = sortOrder
	return e
}

// PositionUpdate assigns SortOrder to the record ID.
type PositionUpdate struct {
	ID        int64 `json:"id"`
	SortOrder int64 `json:"sortOrder"`
}

// SequenceStore is the persistence contract of one ordered collection.
type SequenceStore interface {
	Collection() Collection
	// List returns every record ordered by sort order ascending.
	List(ctx context.Context) ([]Entry, error)
	// ListAfter returns records with a sort order strictly greater than sortOrder, ascending.
	ListAfter(ctx context.Context, sortOrder int64) ([]Entry, error)
	// MaxSortOrder reports found=false for an empty collection.
	MaxSortOrder(ctx context.Context) (maxSortOrder int64, found bool, err error)
	SortOrderOf(ctx context.Context, id int64) (int64, error)
	UpdateSortOrder(ctx context.Context, id, sortOrder int64) error
	UpdateSortOrders(ctx context.Context, updates []PositionUpdate) error
	Remove(ctx context.Context, id int64) error
}

// TransactionAwareStore extends SequenceStore with transaction support
type TransactionAwareStore interface {
	SequenceStore
	// TX returns a store bound to tx
	TX(tx *sql.Tx) SequenceStore
}

// TxBeginner is satisfied by *sql.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// InsertFunc inserts a new record at sortOrder inside tx and returns its id.
type InsertFunc func(ctx context.Context, tx *sql.Tx, sortOrder int64) (int64, error)

// ChangeKind names the mutation an engine applied.
type ChangeKind string

const (
	ChangeAppended  ChangeKind = "appended"
	ChangeUpdated   ChangeKind = "updated"
	ChangeDeleted   ChangeKind = "deleted"
	ChangeReordered ChangeKind = "reordered"
	ChangeCompacted ChangeKind = "compacted"
)

// Change is published after a mutation has been committed.
type Change struct {
	Collection Collection `json:"collection"`
	Kind       ChangeKind `json:"kind"`
	ID         int64      `json:"id,omitempty"`
	// Shifted counts the records whose sort order changed as a side effect.
	Shifted int `json:"shifted,omitempty"`
}

// Observer receives committed changes.
type Observer func(ctx context.Context, changes []Change)

// Recorder is implemented by the metrics layer.
type Recorder interface {
	ObserveOperation(collection, operation string, elapsed time.Duration, err error)
}
