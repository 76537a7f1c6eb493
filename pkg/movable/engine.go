package movable

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	foliodb "github.com/the-dev-tools/folio/db"
	"github.com/the-dev-tools/folio/pkg/txutil"
)

// Engine keeps one collection dense under append, delete, commit and compact.
// Every mutation runs in its own transaction; observers only hear about
// committed changes.
type Engine struct {
	db       TxBeginner
	store    TransactionAwareStore
	logger   *slog.Logger
	observer Observer
	recorder Recorder
	verify   bool
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) { e.observer = observer }
}

func WithRecorder(recorder Recorder) Option {
	return func(e *Engine) { e.recorder = recorder }
}

// WithDensityCheck toggles the in-transaction 1..N check run by Delete, Commit
// and Compact. Enabled by default.
func WithDensityCheck(enabled bool) Option {
	return func(e *Engine) { e.verify = enabled }
}

func NewEngine(db TxBeginner, store TransactionAwareStore, opts ...Option) *Engine {
	e := &Engine{
		db:     db,
		store:  store,
		logger: slog.Default(),
		verify: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Collection() Collection {
	return e.store.Collection()
}

// Snapshot lists the collection outside of any transaction.
func (e *Engine) Snapshot(ctx context.Context) ([]Entry, error) {
	return e.store.List(ctx)
}

// Append inserts a record at max+1. When reading the max fails nothing is written.
func (e *Engine) Append(ctx context.Context, insert InsertFunc) (id, sortOrder int64, err error) {
	if insert == nil {
		return 0, 0, fmt.Errorf("%w: insert func is nil", ErrValidation)
	}
	err = e.withTx(ctx, "append", func(tx *sql.Tx, store SequenceStore, sync *txutil.SyncTx[Change, Collection]) error {
		maxSortOrder, found, err := store.MaxSortOrder(ctx)
		if err != nil {
			return err
		}
		sortOrder = NextSortOrder(maxSortOrder, found)

		id, err = insert(ctx, tx, sortOrder)
		if err != nil {
			return fmt.Errorf("insert %s at %d: %w", e.Collection(), sortOrder, err)
		}
		sync.Track(Change{Collection: e.Collection(), Kind: ChangeAppended, ID: id})
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	e.logger.InfoContext(ctx, "record appended", "collection", e.Collection(), "id", id, "sort_order", sortOrder)
	return id, sortOrder, nil
}

// Update runs a mutation that leaves sort order untouched and publishes it.
func (e *Engine) Update(ctx context.Context, id int64, update func(ctx context.Context, tx *sql.Tx) error) error {
	return e.withTx(ctx, "update", func(tx *sql.Tx, _ SequenceStore, sync *txutil.SyncTx[Change, Collection]) error {
		if err := update(ctx, tx); err != nil {
			return err
		}
		sync.Track(Change{Collection: e.Collection(), Kind: ChangeUpdated, ID: id})
		return nil
	})
}

// Delete removes id and shifts every later record down by one, one record at a
// time. Any failure after the removal rolls the whole cascade back and is
// reported as ErrPartialCascade.
func (e *Engine) Delete(ctx context.Context, id int64) (shifted int, err error) {
	err = e.withTx(ctx, "delete", func(_ *sql.Tx, store SequenceStore, sync *txutil.SyncTx[Change, Collection]) error {
		k, err := store.SortOrderOf(ctx, id)
		if err != nil {
			return err
		}
		if err := store.Remove(ctx, id); err != nil {
			return err
		}

		after, err := store.ListAfter(ctx, k)
		if err != nil {
			return e.partial(id, err)
		}
		for _, u := range CascadePlan(after) {
			if err := store.UpdateSortOrder(ctx, u.ID, u.SortOrder); err != nil {
				return e.partial(id, err)
			}
			shifted++
		}
		if err := e.checkDense(ctx, store); err != nil {
			return e.partial(id, err)
		}
		sync.Track(Change{Collection: e.Collection(), Kind: ChangeDeleted, ID: id, Shifted: shifted})
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPartialCascade) {
			e.logger.ErrorContext(ctx, "delete cascade rolled back", "collection", e.Collection(), "id", id, "error", err)
		}
		return 0, err
	}
	e.logger.InfoContext(ctx, "record deleted", "collection", e.Collection(), "id", id, "shifted", shifted)
	return shifted, nil
}

// Commit writes index+1 for every staged record in one bulk update. On success
// the session takes the committed order as its baseline; on failure it stays dirty.
func (e *Engine) Commit(ctx context.Context, c Committable) error {
	if c.Collection() != e.Collection() {
		return fmt.Errorf("%w: session for %s committed to %s", ErrValidation, c.Collection(), e.Collection())
	}
	if err := c.BeginCommit(); err != nil {
		return err
	}
	defer c.EndCommit()

	plan := c.CommitPlan()
	err := e.withTx(ctx, "commit", func(_ *sql.Tx, store SequenceStore, sync *txutil.SyncTx[Change, Collection]) error {
		if err := store.UpdateSortOrders(ctx, plan); err != nil {
			return err
		}
		if err := e.checkDense(ctx, store); err != nil {
			return err
		}
		sync.Track(Change{Collection: e.Collection(), Kind: ChangeReordered, Shifted: len(plan)})
		return nil
	})
	if err != nil {
		e.logger.WarnContext(ctx, "reorder commit failed", "collection", e.Collection(), "error", err)
		return err
	}
	c.MarkCommitted(plan)
	e.logger.InfoContext(ctx, "reorder committed", "collection", e.Collection(), "records", len(plan))
	return nil
}

// Compact rewrites sort orders to 1..N keeping the current relative order and
// returns how many records changed.
func (e *Engine) Compact(ctx context.Context) (int, error) {
	var changed int
	err := e.withTx(ctx, "compact", func(_ *sql.Tx, store SequenceStore, sync *txutil.SyncTx[Change, Collection]) error {
		entries, err := store.List(ctx)
		if err != nil {
			return err
		}
		plan := CompactPlan(entries)
		if len(plan) == 0 {
			return nil
		}
		if err := store.UpdateSortOrders(ctx, plan); err != nil {
			return err
		}
		if err := e.checkDense(ctx, store); err != nil {
			return err
		}
		changed = len(plan)
		sync.Track(Change{Collection: e.Collection(), Kind: ChangeCompacted, Shifted: changed})
		return nil
	})
	if err != nil {
		return 0, err
	}
	if changed > 0 {
		e.logger.InfoContext(ctx, "collection compacted", "collection", e.Collection(), "changed", changed)
	}
	return changed, nil
}

// OpenSession snapshots the collection into a new reorder session.
func (e *Engine) OpenSession(ctx context.Context) (*Session[Entry], error) {
	entries, err := e.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewSession(e.Collection(), entries), nil
}

// Refresh re-reads the store and rebases s, dropping staged moves.
func (e *Engine) Refresh(ctx context.Context, s *Session[Entry]) error {
	entries, err := e.store.List(ctx)
	if err != nil {
		return err
	}
	s.Rebase(entries)
	return nil
}

func (e *Engine) checkDense(ctx context.Context, store SequenceStore) error {
	if !e.verify {
		return nil
	}
	entries, err := store.List(ctx)
	if err != nil {
		return err
	}
	return CheckDense(entries)
}

func (e *Engine) partial(id int64, err error) error {
	return fmt.Errorf("%w: %s %d: %w", ErrPartialCascade, e.Collection(), id, err)
}

func (e *Engine) withTx(ctx context.Context, op string, fn func(*sql.Tx, SequenceStore, *txutil.SyncTx[Change, Collection]) error) (err error) {
	start := time.Now()
	defer func() {
		if e.recorder != nil {
			e.recorder.ObserveOperation(string(e.Collection()), op, time.Since(start), err)
		}
	}()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %w", ErrStoreUnavailable, op, err)
	}
	defer foliodb.TxnRollback(tx)

	syncTx := txutil.NewSyncTx[Change, Collection](tx, func(c Change) Collection { return c.Collection })
	if err := fn(tx, e.store.TX(tx), syncTx); err != nil {
		return err
	}

	err = syncTx.CommitAndPublish(ctx, func(_ Collection, changes []Change) {
		if e.observer != nil {
			e.observer(ctx, changes)
		}
	})
	if err != nil {
		if op == "delete" {
			return fmt.Errorf("%w: %w", ErrPartialCascade, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
	}
	return nil
}
