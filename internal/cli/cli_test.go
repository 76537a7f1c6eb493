package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/the-dev-tools/folio/db/pkg/sqlitelocal"
	"github.com/the-dev-tools/folio/pkg/movable"
)

type harness struct {
	dir string
}

func newHarness(t *testing.T, titles ...string) *harness {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	db, closeDB, err := sqlitelocal.NewSQLiteLocal(ctx, "folio", dir)
	require.NoError(t, err)
	for i, title := range titles {
		_, err := db.ExecContext(ctx, `INSERT INTO projects (title, sort_order) VALUES (?, ?)`, title, i+1)
		require.NoError(t, err)
	}
	closeDB()
	return &harness{dir: dir}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--config", "", "--db-path", h.dir))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) titles(t *testing.T) []string {
	t.Helper()
	out, err := h.run(t, "", "list", "projects", "--json")
	require.NoError(t, err)
	var entries []movable.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	titles := make([]string, len(entries))
	for i, e := range entries {
		require.Equal(t, int64(i+1), e.SortOrder)
		titles[i] = e.Label
	}
	return titles
}

func TestListAndReorder(t *testing.T) {
	h := newHarness(t, "A", "B", "C", "D")
	require.Equal(t, []string{"A", "B", "C", "D"}, h.titles(t))

	out, err := h.run(t, "", "reorder", "projects", "--move", "4:1", "--dry-run")
	require.NoError(t, err)
	require.Contains(t, out, "D")
	require.Equal(t, []string{"A", "B", "C", "D"}, h.titles(t))

	_, err = h.run(t, "", "reorder", "projects", "--move", "4:1", "--move", "2:3")
	require.NoError(t, err)
	require.Equal(t, []string{"D", "B", "A", "C"}, h.titles(t))

	_, err = h.run(t, "", "reorder", "projects", "--move", "1:9")
	require.ErrorIs(t, err, movable.ErrValidation)

	_, err = h.run(t, "", "reorder", "projects", "--move", "first:last")
	require.ErrorIs(t, err, movable.ErrValidation)

	out, err = h.run(t, "", "reorder", "projects", "--move", "2:2")
	require.NoError(t, err)
	require.Contains(t, out, "order unchanged")
}

func TestDeleteClosesGap(t *testing.T) {
	h := newHarness(t, "A", "B", "C")

	out, err := h.run(t, "", "delete", "projects", "1")
	require.NoError(t, err)
	require.Contains(t, out, "2 records shifted up")
	require.Equal(t, []string{"B", "C"}, h.titles(t))

	_, err = h.run(t, "", "delete", "projects", "99")
	require.ErrorIs(t, err, movable.ErrItemNotFound)

	_, err = h.run(t, "", "delete", "invoices", "1")
	require.ErrorIs(t, err, movable.ErrUnknownCollection)
}

func TestCheckAndRepair(t *testing.T) {
	h := newHarness(t, "A", "B", "C")
	db, closeDB, err := sqlitelocal.NewSQLiteLocal(context.Background(), "folio", h.dir)
	require.NoError(t, err)
	_, err = db.Exec(`UPDATE projects SET sort_order = 7 WHERE title = 'C'`)
	require.NoError(t, err)
	closeDB()

	out, err := h.run(t, "", "check", "projects")
	require.ErrorIs(t, err, movable.ErrInvariantViolation)
	require.Contains(t, out, "NOT DENSE")

	out, err = h.run(t, "", "check", "--repair")
	require.NoError(t, err)
	require.Contains(t, out, "1 records renumbered")
	require.Contains(t, out, "skills")

	_, err = h.run(t, "", "check")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, h.titles(t))
}

func TestMigrate(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "migrate", "--status")
	require.NoError(t, err)
	require.Contains(t, out, "pending")

	out, err = h.run(t, "", "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "2 migration(s) applied")
	require.NotContains(t, out, "pending")

	out, err = h.run(t, "", "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "0 migration(s) applied")
}

func TestHashPassword(t *testing.T) {
	h := &harness{dir: t.TempDir()}

	out, err := h.run(t, "s3cret\n", "hash-password")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("s3cret")))

	_, err = h.run(t, "", "hash-password")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := (&harness{dir: t.TempDir()}).run(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "folioctl "+version+"\n", out)
}

func TestWritingCommandsWarnAboutServerCache(t *testing.T) {
	h := &harness{dir: t.TempDir()}
	for _, cmd := range []string{"reorder", "delete", "check"} {
		out, err := h.run(t, "", cmd, "--help")
		require.NoError(t, err, cmd)
		require.Contains(t, out, "not announced to a running folio server", cmd)
		require.Contains(t, out, "FOLIO_CACHE_TTL", cmd)
	}
}

func TestParseMove(t *testing.T) {
	from, to, err := parseMove(" 3 : 1 ")
	require.NoError(t, err)
	require.Equal(t, 2, from)
	require.Equal(t, 0, to)

	_, _, err = parseMove("3-1")
	require.ErrorIs(t, err, movable.ErrValidation)
}
