package movable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCollection(t *testing.T) {
	t.Parallel()

	for _, c := range Collections() {
		got, err := ParseCollection(c.String())
		require.NoError(t, err)
		require.Equal(t, c, got)
	}

	got, err := ParseCollection(" Tech-Stack ")
	require.NoError(t, err)
	require.Equal(t, CollectionTechStack, got)

	for _, bad := range []string{"", "contacts", "profile", "projects; DROP TABLE projects"} {
		_, err := ParseCollection(bad)
		require.ErrorIs(t, err, ErrValidation, bad)
		require.ErrorIs(t, err, ErrUnknownCollection, bad)
	}
}

func TestNewSQLStoreRejectsUnknownCollection(t *testing.T) {
	t.Parallel()
	_, err := NewSQLStore(nil, Collection("contacts"))
	require.ErrorIs(t, err, ErrUnknownCollection)
	require.Panics(t, func() { MustSQLStore(nil, Collection("users")) })
}
