package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	foliodb "github.com/the-dev-tools/folio/db"
)

// Runner applies registered migrations against the database.
type Runner struct {
	db       *sql.DB
	store    *Store
	registry *Registry
	logger   *slog.Logger
	nowFunc  func() time.Time
}

func NewRunner(db *sql.DB, registry *Registry, logger *slog.Logger) (*Runner, error) {
	if db == nil {
		return nil, errors.New("migrate: db handle is required")
	}
	if registry == nil {
		return nil, errors.New("migrate: registry is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		db:       db,
		store:    NewStore(db),
		registry: registry,
		logger:   logger,
		nowFunc:  time.Now,
	}, nil
}

// PlanEntry pairs a registered migration with its stored record, if any.
type PlanEntry struct {
	Migration Migration
	Record    *Record
}

// Applied reports whether the migration finished.
func (p PlanEntry) Applied() bool {
	return p.Record != nil && p.Record.Status == StatusFinished
}

// ApplyAll runs every pending migration in order and returns how many ran.
func (r *Runner) ApplyAll(ctx context.Context) (int, error) {
	return r.apply(ctx, "")
}

// ApplyTo runs migrations up to and including targetID.
func (r *Runner) ApplyTo(ctx context.Context, targetID string) (int, error) {
	return r.apply(ctx, targetID)
}

// Plan lists registered migrations with their stored state without applying anything.
func (r *Runner) Plan(ctx context.Context) ([]PlanEntry, error) {
	if err := r.store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	records, err := r.store.Records(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	migrations := r.registry.List()
	out := make([]PlanEntry, 0, len(migrations))
	for _, m := range migrations {
		entry := PlanEntry{Migration: m}
		if rec, ok := byID[m.ID]; ok {
			entry.Record = &rec
		}
		out = append(out, entry)
	}
	return out, nil
}

var processMutex sync.Mutex

func lockProcess() func() {
	processMutex.Lock()
	return processMutex.Unlock
}

func (r *Runner) apply(ctx context.Context, targetID string) (int, error) {
	unlock := lockProcess()
	defer unlock()

	if err := r.store.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	ran := 0
	for _, mig := range r.registry.List() {
		if targetID != "" && mig.ID > targetID {
			break
		}
		rec, err := r.store.GetRecord(ctx, mig.ID)
		if err == nil && rec.Status == StatusFinished {
			if rec.Checksum != mig.Checksum {
				return ran, fmt.Errorf("%w: %s stored=%s new=%s", ErrChecksumMismatch, mig.ID, rec.Checksum, mig.Checksum)
			}
			continue
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return ran, err
		}
		if err := r.runMigration(ctx, mig); err != nil {
			return ran, err
		}
		ran++
	}
	return ran, nil
}

func (r *Runner) runMigration(ctx context.Context, mig Migration) error {
	record, err := r.store.MarkStarted(ctx, mig, r.nowFunc())
	if err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "migration started",
		slog.String("migration_id", mig.ID),
		slog.String("description", mig.Description),
		slog.Int("attempt", record.Attempts),
	)
	execStart := r.nowFunc()

	if err := r.applyTx(ctx, mig); err != nil {
		_ = r.store.SetError(ctx, mig.ID, err)
		r.logger.ErrorContext(ctx, "migration apply failed",
			slog.String("migration_id", mig.ID),
			slog.Int("attempt", record.Attempts),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("migrate: apply %s: %w", mig.ID, err)
	}

	if mig.Validate != nil {
		if err := mig.Validate(ctx, r.db); err != nil {
			_ = r.store.SetError(ctx, mig.ID, err)
			r.logger.ErrorContext(ctx, "migration validate failed",
				slog.String("migration_id", mig.ID),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("migrate: validate %s: %w", mig.ID, err)
		}
	}

	r.logger.InfoContext(ctx, "migration applied",
		slog.String("migration_id", mig.ID),
		slog.Int("attempt", record.Attempts),
		slog.Duration("duration", r.nowFunc().Sub(execStart)),
	)
	return nil
}

func (r *Runner) applyTx(ctx context.Context, mig Migration) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer foliodb.TxnRollback(tx)

	if err := mig.Apply(ctx, tx); err != nil {
		return err
	}
	if err := r.store.MarkFinished(ctx, tx, mig.ID, r.nowFunc()); err != nil {
		return err
	}
	return tx.Commit()
}
