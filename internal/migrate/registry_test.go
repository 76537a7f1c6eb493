package migrate

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/oklog/ulid/v2"
)

func newID() string {
	return ulid.Make().String()
}

func noop(context.Context, *sql.Tx) error { return nil }

func TestRegisterValidates(t *testing.T) {
	reg := NewRegistry()

	cases := map[string]Migration{
		"empty id":      {Checksum: "c", Apply: noop},
		"non ulid id":   {ID: "2024-01-01-init", Checksum: "c", Apply: noop},
		"no checksum":   {ID: newID(), Apply: noop},
		"no apply hook": {ID: newID(), Checksum: "c"},
	}
	for name, m := range cases {
		if err := reg.Register(m); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if got := len(reg.List()); got != 0 {
		t.Fatalf("expected empty registry, got %d", got)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	m := Migration{ID: newID(), Checksum: "c", Apply: noop}
	if err := reg.Register(m); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(m); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestListOrdersByID(t *testing.T) {
	reg := NewRegistry()
	ids := []string{
		"01J00000000000000000000003",
		"01J00000000000000000000001",
		"01J00000000000000000000002",
	}
	for _, id := range ids {
		reg.MustRegister(Migration{ID: id, Checksum: "c", Apply: noop})
	}
	got := reg.List()
	for i, want := range []string{ids[1], ids[2], ids[0]} {
		if got[i].ID != want {
			t.Fatalf("position %d: got %s want %s", i, got[i].ID, want)
		}
	}
}

func TestChecksumIgnoresSurroundingWhitespace(t *testing.T) {
	a := Checksum("CREATE TABLE a (id INTEGER)", "CREATE INDEX a_idx ON a (id)")
	b := Checksum("\n  CREATE TABLE a (id INTEGER)  ", "CREATE INDEX a_idx ON a (id)\n")
	if a != b {
		t.Fatalf("checksums differ: %s %s", a, b)
	}
	// statement boundaries are part of the hash
	if a == Checksum("CREATE TABLE a (id INTEGER)CREATE INDEX a_idx ON a (id)") {
		t.Fatal("joined statements must not collide")
	}
}
