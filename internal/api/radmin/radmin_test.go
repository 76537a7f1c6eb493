package radmin

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwauth"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwcodec"
	"github.com/the-dev-tools/folio/pkg/eventstream/memory"
	"github.com/the-dev-tools/folio/pkg/model/mprofile"
	"github.com/the-dev-tools/folio/pkg/model/mproject"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/service/sorder"
	"github.com/the-dev-tools/folio/pkg/service/sprofile"
	"github.com/the-dev-tools/folio/pkg/stoken"
	"github.com/the-dev-tools/folio/pkg/testutil"
)

type fixture struct {
	ctx      context.Context
	base     *testutil.BaseDBQueries
	streamer sorder.Streamer
	srv      *AdminServiceRPC
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	streamer := memory.NewInMemorySyncStreamer[movable.Collection, movable.Change]()
	s := base.GetBaseServices(movable.WithObserver(sorder.PublishTo(streamer)))
	srv := New(Services{
		Engines:      s.Engines,
		Projects:     s.Ps,
		Experiences:  s.Es,
		Testimonials: s.Ts,
		Skills:       s.Ss,
		TechStack:    s.Tss,
		FunFacts:     s.Fs,
		Others:       s.Os,
		Profile:      s.Prs,
	}, streamer, base.Logger())
	t.Cleanup(func() {
		streamer.Shutdown()
		base.Close()
	})
	return &fixture{ctx: ctx, base: base, streamer: streamer, srv: srv}
}

func (f *fixture) create(t *testing.T, col string, item string) int64 {
	t.Helper()
	resp, err := f.srv.Create(f.ctx, connect.NewRequest(&CreateRequest{Collection: col, Item: json.RawMessage(item)}))
	require.NoError(t, err)
	var out struct {
		ID        int64 `json:"id"`
		SortOrder int64 `json:"sortOrder"`
	}
	require.NoError(t, json.Unmarshal(resp.Msg.Item, &out))
	return out.ID
}

func TestCrudKeepsCollectionDense(t *testing.T) {
	f := newFixture(t)

	a := f.create(t, "projects", `{"title":"Alpha","technologies":["Go"]}`)
	b := f.create(t, "projects", `{"title":"Beta","sortOrder":99}`)
	c := f.create(t, "projects", `{"title":"Gamma"}`)
	require.Equal(t, testutil.Dense(3), testutil.SortOrders(f.ctx, t, f.base.DB, movable.CollectionProjects))

	// sort order in the payload is ignored on update too
	_, err := f.srv.Update(f.ctx, connect.NewRequest(&UpdateRequest{
		Collection: "projects",
		ID:         a,
		Item:       json.RawMessage(`{"title":"Alpha 2","sortOrder":3,"status":"draft"}`),
	}))
	require.NoError(t, err)
	got, err := f.srv.Get(f.ctx, connect.NewRequest(&GetRequest{Collection: "projects", ID: a}))
	require.NoError(t, err)
	var p mproject.Project
	require.NoError(t, json.Unmarshal(got.Msg.Item, &p))
	require.Equal(t, "Alpha 2", p.Title)
	require.Equal(t, int64(1), p.SortOrder)
	require.Equal(t, mproject.StatusDraft, p.Status)

	del, err := f.srv.Delete(f.ctx, connect.NewRequest(&DeleteRequest{Collection: "projects", ID: b}))
	require.NoError(t, err)
	require.Equal(t, 1, del.Msg.Shifted)
	require.Equal(t, testutil.Dense(2), testutil.SortOrders(f.ctx, t, f.base.DB, movable.CollectionProjects))

	list, err := f.srv.List(f.ctx, connect.NewRequest(&ListRequest{Collection: "projects"}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Items, 2)

	filtered, err := f.srv.List(f.ctx, connect.NewRequest(&ListRequest{Collection: "projects", Query: "gma"}))
	require.NoError(t, err)
	require.Len(t, filtered.Msg.Items, 1)
	require.NoError(t, json.Unmarshal(filtered.Msg.Items[0], &p))
	require.Equal(t, c, p.ID)
}

func TestErrorsMapToCodes(t *testing.T) {
	f := newFixture(t)

	_, err := f.srv.List(f.ctx, connect.NewRequest(&ListRequest{Collection: "contacts"}))
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = f.srv.Create(f.ctx, connect.NewRequest(&CreateRequest{Collection: "skills", Item: json.RawMessage(`{"category":""}`)}))
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = f.srv.Create(f.ctx, connect.NewRequest(&CreateRequest{Collection: "skills", Item: json.RawMessage(`[1,2]`)}))
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = f.srv.Get(f.ctx, connect.NewRequest(&GetRequest{Collection: "tech-stack", ID: 404}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = f.srv.Delete(f.ctx, connect.NewRequest(&DeleteRequest{Collection: "fun_facts", ID: 404}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestCheckAndCompact(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"Go", "Rust", "Zig"} {
		f.create(t, "tech_stack", `{"techName":"`+name+`"}`)
	}
	// a legacy gap written behind the engine's back
	_, err := f.base.DB.ExecContext(f.ctx, "UPDATE tech_stack SET sort_order = 7 WHERE sort_order = 3")
	require.NoError(t, err)

	check, err := f.srv.Check(f.ctx, connect.NewRequest(&CollectionRequest{Collection: "tech_stack"}))
	require.NoError(t, err)
	require.False(t, check.Msg.Dense)
	require.Equal(t, []movable.Gap{{Start: 3, End: 6}}, check.Msg.Report.Gaps)

	compact, err := f.srv.Compact(f.ctx, connect.NewRequest(&CollectionRequest{Collection: "tech_stack"}))
	require.NoError(t, err)
	require.Equal(t, 1, compact.Msg.Changed)
	require.Equal(t, testutil.Dense(3), testutil.SortOrders(f.ctx, t, f.base.DB, movable.CollectionTechStack))
}

func TestSaveProfilePublishes(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(f.ctx)
	defer cancel()
	events, err := f.streamer.Subscribe(ctx, func(c movable.Collection) bool { return c == sprofile.Topic })
	require.NoError(t, err)

	_, err = f.srv.GetProfile(f.ctx, connect.NewRequest(&ProfileRequest{}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	resp, err := f.srv.SaveProfile(f.ctx, connect.NewRequest(&SaveProfileRequest{Profile: mprofile.Profile{Name: "Ada", Title: "Engineer"}}))
	require.NoError(t, err)
	require.Equal(t, mprofile.DefaultThemeColor, resp.Msg.Profile.ThemeColor)

	select {
	case evt := <-events:
		require.Equal(t, movable.ChangeUpdated, evt.Payload.Kind)
	case <-time.After(time.Second):
		t.Fatal("profile change not published")
	}
}

func TestAdminRequiresToken(t *testing.T) {
	f := newFixture(t)
	secret := []byte("admin-secret")

	options := []connect.HandlerOption{
		mwcodec.WithJSONCodec(),
		connect.WithInterceptors(mwauth.NewAuthInterceptor(secret, f.base.Logger())),
	}
	service, err := CreateService(f.srv, options)
	require.NoError(t, err)
	server := httptest.NewServer(api.NewHandler([]api.Service{*service}, nil))
	defer server.Close()

	client := connect.NewClient[ListRequest, ListResponse](
		server.Client(),
		server.URL+api.Procedure(ServiceName, "List"),
		mwcodec.WithJSONClientCodec(),
	)

	_, err = client.CallUnary(f.ctx, connect.NewRequest(&ListRequest{Collection: "projects"}))
	require.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	token, err := stoken.NewJWT("admin", stoken.AdminToken, time.Hour, secret)
	require.NoError(t, err)
	req := connect.NewRequest(&ListRequest{Collection: "projects"})
	req.Header().Set(mwauth.TokenHeaderKey, "Bearer "+token)
	resp, err := client.CallUnary(f.ctx, req)
	require.NoError(t, err)
	require.Equal(t, movable.CollectionProjects, resp.Msg.Collection)
	require.Empty(t, resp.Msg.Items)
}

func TestAuditRecordsCreatedID(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	f.srv.logger = slog.New(slog.NewJSONHandler(&buf, nil))

	f.create(t, "fun_facts", `{"factText":"first"}`)
	id := f.create(t, "fun_facts", `{"factText":"second"}`)

	var last struct {
		Msg    string `json:"msg"`
		Action string `json:"action"`
		ID     int64  `json:"id"`
	}
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var line struct {
			Msg    string `json:"msg"`
			Action string `json:"action"`
			ID     int64  `json:"id"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		if line.Msg == "admin change" {
			last = line
		}
	}
	require.Equal(t, "created", last.Action)
	require.Equal(t, id, last.ID)
	require.NotZero(t, last.ID)
}
