package rmetrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/pkg/metrics"
)

func TestMetricsEndpoint(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	svc, err := CreateService(reg)
	require.NoError(t, err)

	metrics.ReorderSessions.Set(2)
	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()

	server := httptest.NewServer(api.NewHandler([]api.Service{*svc}, nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + Path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "folio_reorder_sessions_open 2")
	require.Contains(t, string(body), `folio_contact_submissions{result="accepted"}`)
	require.Contains(t, string(body), "go_goroutines")
}
