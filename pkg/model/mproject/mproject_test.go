package mproject

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/folio/pkg/movable"
)

func TestNormalizeThenValidate(t *testing.T) {
	t.Parallel()

	p := Project{Title: "Folio"}
	p.Normalize()
	require.Equal(t, TypeWeb, p.ProjectType)
	require.Equal(t, StatusActive, p.Status)
	require.NotNil(t, p.Technologies)
	require.NoError(t, p.Validate())
}

func TestValidateRejectsBadEnums(t *testing.T) {
	t.Parallel()

	p := Project{Title: "Folio", ProjectType: "console", Status: "deleted", Link: "javascript:alert(1)"}
	err := p.Validate()
	require.ErrorIs(t, err, movable.ErrValidation)
	require.Contains(t, err.Error(), "project_type")
	require.Contains(t, err.Error(), "status")
	require.Contains(t, err.Error(), "link")
}

func TestWithSortOrderCopies(t *testing.T) {
	t.Parallel()

	p := Project{ID: 1, SortOrder: 3}
	q := p.WithSortOrder(1)
	require.Equal(t, int64(3), p.SortOrder)
	require.Equal(t, int64(1), q.GetSortOrder())
	require.Equal(t, int64(1), q.GetID())
}
