package migrate

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ErrDuplicateID is returned when registering the same migration twice.
var ErrDuplicateID = errors.New("migrate: duplicate migration id")

// Registry holds migrations ordered by their ULID.
type Registry struct {
	mu         sync.RWMutex
	migrations map[string]Migration
}

func NewRegistry() *Registry {
	return &Registry{migrations: make(map[string]Migration)}
}

// Register adds a migration. It enforces ULID ids and the required hooks.
func (r *Registry) Register(m Migration) error {
	if err := validateMigration(m); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.migrations[m.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, m.ID)
	}
	r.migrations[m.ID] = m
	return nil
}

// MustRegister panics on registration errors. For package level migration tables.
func (r *Registry) MustRegister(ms ...Migration) *Registry {
	for _, m := range ms {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
	return r
}

// List returns the registered migrations ordered by ID.
func (r *Registry) List() []Migration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Migration, 0, len(r.migrations))
	for _, m := range r.migrations {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func validateMigration(m Migration) error {
	if m.ID == "" {
		return errors.New("migrate: migration id must not be empty")
	}
	if _, err := ulid.ParseStrict(m.ID); err != nil {
		return fmt.Errorf("migrate: migration id must be ULID string: %w", err)
	}
	if m.Checksum == "" {
		return errors.New("migrate: checksum must not be empty")
	}
	if m.Apply == nil {
		return errors.New("migrate: Apply hook must be provided")
	}
	return nil
}
