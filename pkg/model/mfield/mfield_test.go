package mfield

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/folio/pkg/movable"
)

func TestChecker(t *testing.T) {
	t.Parallel()

	var c Checker
	c.Required("title", "  ")
	c.URL("link", "ftp://example.com")
	c.URL("empty", "")
	c.URL("hash", "#")
	c.Email("email", "not-an-email")
	c.OneOf("status", "gone", "active", "draft")
	c.MaxLen("name", "abcdef", 5)
	c.HexColor("color", "#12345z")

	err := c.Err()
	require.ErrorIs(t, err, movable.ErrValidation)
	for _, field := range []string{"title", "link", "email", "status", "name", "color"} {
		require.Contains(t, err.Error(), field)
	}
	require.NotContains(t, err.Error(), "empty")
	require.NotContains(t, err.Error(), "hash")
}

func TestCheckerAcceptsValidInput(t *testing.T) {
	t.Parallel()

	var c Checker
	c.Required("title", "Folio")
	c.URL("link", "https://example.com/a")
	c.Email("email", "me@example.com")
	c.OneOf("status", "draft", "active", "draft")
	c.MaxLen("name", "héllo", 5)
	c.HexColor("color", "#3b82f6")
	c.HexColor("short", "#fff")
	require.NoError(t, c.Err())
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"Go", "SQL", "React"}, SplitList(" Go, SQL ,, React ,"))
	require.Nil(t, SplitList(""))
	require.Equal(t, "Go, SQL", JoinList([]string{"Go", "SQL"}))
}

func TestJSONList(t *testing.T) {
	t.Parallel()

	require.Equal(t, `["Go","SQLite"]`, EncodeJSONList([]string{"Go", "SQLite"}))
	require.Equal(t, "[]", EncodeJSONList(nil))

	require.Equal(t, []string{"Go", "SQLite"}, DecodeJSONList(`["Go","SQLite"]`))
	require.Equal(t, []string{"Go", "SQLite"}, DecodeJSONList("Go, SQLite"))
	require.Equal(t, []string{}, DecodeJSONList(""))
	require.Equal(t, []string{}, DecodeJSONList("null"))
}
