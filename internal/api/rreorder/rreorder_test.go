package rreorder

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwcodec"
	"github.com/the-dev-tools/folio/pkg/metrics"
	"github.com/the-dev-tools/folio/pkg/model/mskill"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/service/sskill"
	"github.com/the-dev-tools/folio/pkg/testutil"
)

type fixture struct {
	ctx    context.Context
	base   *testutil.BaseDBQueries
	skills sskill.SkillService
	srv    *ReorderServiceRPC
}

func newFixture(t *testing.T, ttl time.Duration, categories ...string) *fixture {
	t.Helper()
	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	s := base.GetBaseServices()
	for _, c := range categories {
		_, err := s.Ss.Create(ctx, mskill.Skill{Category: c, Skills: []string{"x"}})
		require.NoError(t, err)
	}
	srv := New(s.Engines, ttl, base.Logger())
	t.Cleanup(func() {
		srv.Shutdown()
		base.Close()
	})
	return &fixture{ctx: ctx, base: base, skills: s.Ss, srv: srv}
}

func (f *fixture) open(t *testing.T) *SessionResponse {
	t.Helper()
	resp, err := f.srv.Open(f.ctx, connect.NewRequest(&OpenRequest{Collection: "skills"}))
	require.NoError(t, err)
	return resp.Msg
}

func (f *fixture) categories(t *testing.T) []string {
	t.Helper()
	list, err := f.skills.List(f.ctx)
	require.NoError(t, err)
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Category)
	}
	return out
}

func labels(items []movable.Entry) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

func TestMoveAndCommit(t *testing.T) {
	f := newFixture(t, 0, "A", "B", "C", "D")
	sess := f.open(t)
	require.Len(t, sess.Items, 4)
	require.False(t, sess.HasChanges)
	id := sess.SessionID

	moved, err := f.srv.Move(f.ctx, connect.NewRequest(&MoveRequest{SessionID: id, From: 3, To: 0}))
	require.NoError(t, err)
	require.True(t, moved.Msg.Moved)
	require.True(t, moved.Msg.Session.HasChanges)
	require.Equal(t, []string{"D", "A", "B", "C"}, labels(moved.Msg.Session.Items))
	require.Equal(t, int64(1), moved.Msg.Session.Items[0].SortOrder)

	// nothing is written before commit
	require.Equal(t, []string{"A", "B", "C", "D"}, f.categories(t))

	committed, err := f.srv.Commit(f.ctx, connect.NewRequest(&SessionRequest{SessionID: id}))
	require.NoError(t, err)
	require.False(t, committed.Msg.HasChanges)
	require.Equal(t, []string{"D", "A", "B", "C"}, f.categories(t))
	require.Equal(t, testutil.Dense(4), testutil.SortOrders(f.ctx, t, f.base.DB, movable.CollectionSkills))
}

func TestBoundaryMovesAreNoOps(t *testing.T) {
	f := newFixture(t, 0, "A", "B", "C")
	id := f.open(t).SessionID

	up, err := f.srv.MoveUp(f.ctx, connect.NewRequest(&IndexRequest{SessionID: id, Index: 0}))
	require.NoError(t, err)
	require.False(t, up.Msg.Moved)

	down, err := f.srv.MoveDown(f.ctx, connect.NewRequest(&IndexRequest{SessionID: id, Index: 2}))
	require.NoError(t, err)
	require.False(t, down.Msg.Moved)

	out, err := f.srv.Move(f.ctx, connect.NewRequest(&MoveRequest{SessionID: id, From: 0, To: 7}))
	require.NoError(t, err)
	require.False(t, out.Msg.Moved)
	require.False(t, out.Msg.Session.HasChanges)

	down, err = f.srv.MoveDown(f.ctx, connect.NewRequest(&IndexRequest{SessionID: id, Index: 0}))
	require.NoError(t, err)
	require.True(t, down.Msg.Moved)
	require.Equal(t, []string{"B", "A", "C"}, labels(down.Msg.Session.Items))
}

func TestResetRestoresBaseline(t *testing.T) {
	f := newFixture(t, 0, "A", "B", "C")
	id := f.open(t).SessionID

	_, err := f.srv.MoveUp(f.ctx, connect.NewRequest(&IndexRequest{SessionID: id, Index: 2}))
	require.NoError(t, err)

	reset, err := f.srv.Reset(f.ctx, connect.NewRequest(&SessionRequest{SessionID: id}))
	require.NoError(t, err)
	require.False(t, reset.Msg.HasChanges)
	require.Equal(t, []string{"A", "B", "C"}, labels(reset.Msg.Items))
}

func TestRefreshPicksUpNewRecords(t *testing.T) {
	f := newFixture(t, 0, "A", "B")
	id := f.open(t).SessionID

	_, err := f.skills.Create(f.ctx, mskill.Skill{Category: "C", Skills: []string{"x"}})
	require.NoError(t, err)

	got, err := f.srv.Get(f.ctx, connect.NewRequest(&SessionRequest{SessionID: id}))
	require.NoError(t, err)
	require.Len(t, got.Msg.Items, 2)

	refreshed, err := f.srv.Refresh(f.ctx, connect.NewRequest(&SessionRequest{SessionID: id}))
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, labels(refreshed.Msg.Items))
}

func TestUnknownSessionAndCollection(t *testing.T) {
	f := newFixture(t, 0, "A")

	_, err := f.srv.Get(f.ctx, connect.NewRequest(&SessionRequest{SessionID: "missing"}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = f.srv.Open(f.ctx, connect.NewRequest(&OpenRequest{Collection: "invoices"}))
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	id := f.open(t).SessionID
	_, err = f.srv.Close(f.ctx, connect.NewRequest(&SessionRequest{SessionID: id}))
	require.NoError(t, err)
	_, err = f.srv.Commit(f.ctx, connect.NewRequest(&SessionRequest{SessionID: id}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	_, err = f.srv.Close(f.ctx, connect.NewRequest(&SessionRequest{SessionID: id}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestIdleSessionsExpire(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond, "A", "B")
	id := f.open(t).SessionID

	// every call touches the session, so only look once the TTL has passed
	time.Sleep(120 * time.Millisecond)
	_, err := f.srv.Get(f.ctx, connect.NewRequest(&SessionRequest{SessionID: id}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestExpiredSessionsLeaveGauge(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond, "A", "B")
	f.open(t)
	f.open(t)
	require.Equal(t, float64(2), promtestutil.ToFloat64(metrics.ReorderSessions))

	require.Eventually(t, func() bool {
		return promtestutil.ToFloat64(metrics.ReorderSessions) == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestSessionOverHTTP(t *testing.T) {
	f := newFixture(t, 0, "A", "B", "C")
	svc, err := CreateService(f.srv, []connect.HandlerOption{mwcodec.WithJSONCodec()})
	require.NoError(t, err)
	server := httptest.NewServer(api.NewHandler([]api.Service{*svc}, nil))
	t.Cleanup(server.Close)

	open := connect.NewClient[OpenRequest, SessionResponse](server.Client(), server.URL+api.Procedure(ServiceName, "Open"), mwcodec.WithJSONClientCodec())
	move := connect.NewClient[MoveRequest, MoveResponse](server.Client(), server.URL+api.Procedure(ServiceName, "Move"), mwcodec.WithJSONClientCodec())
	commit := connect.NewClient[SessionRequest, SessionResponse](server.Client(), server.URL+api.Procedure(ServiceName, "Commit"), mwcodec.WithJSONClientCodec())

	sess, err := open.CallUnary(f.ctx, connect.NewRequest(&OpenRequest{Collection: "skills"}))
	require.NoError(t, err)
	_, err = move.CallUnary(f.ctx, connect.NewRequest(&MoveRequest{SessionID: sess.Msg.SessionID, From: 0, To: 2}))
	require.NoError(t, err)
	_, err = commit.CallUnary(f.ctx, connect.NewRequest(&SessionRequest{SessionID: sess.Msg.SessionID}))
	require.NoError(t, err)

	require.Equal(t, []string{"B", "C", "A"}, f.categories(t))
}
