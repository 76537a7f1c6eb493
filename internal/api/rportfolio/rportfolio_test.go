package rportfolio

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwcodec"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwcompress"
	"github.com/the-dev-tools/folio/pkg/eventstream/memory"
	"github.com/the-dev-tools/folio/pkg/model/mfunfact"
	"github.com/the-dev-tools/folio/pkg/model/mother"
	"github.com/the-dev-tools/folio/pkg/model/mprofile"
	"github.com/the-dev-tools/folio/pkg/model/mproject"
	"github.com/the-dev-tools/folio/pkg/model/mskill"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/service/sorder"
	"github.com/the-dev-tools/folio/pkg/testutil"
)

type fixture struct {
	ctx      context.Context
	base     *testutil.BaseDBQueries
	services testutil.BaseTestServices
	streamer sorder.Streamer
	srv      *PortfolioServiceRPC
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	base := testutil.CreateBaseDB(ctx, t)
	streamer := memory.NewInMemorySyncStreamer[movable.Collection, movable.Change]()
	services := base.GetBaseServices(movable.WithObserver(sorder.PublishTo(streamer)))
	srv := New(Services{
		Projects:     services.Ps,
		Experiences:  services.Es,
		Testimonials: services.Ts,
		Skills:       services.Ss,
		TechStack:    services.Tss,
		FunFacts:     services.Fs,
		Others:       services.Os,
		Profile:      services.Prs,
	}, streamer, time.Minute, base.Logger())
	t.Cleanup(func() {
		srv.Close()
		streamer.Shutdown()
		base.Close()
	})
	return &fixture{ctx: ctx, base: base, services: services, streamer: streamer, srv: srv}
}

func (f *fixture) createProject(t *testing.T, title string, status mproject.Status, featured bool) mproject.Project {
	t.Helper()
	p, err := f.services.Ps.Create(f.ctx, mproject.Project{Title: title, Status: status, IsFeatured: featured})
	require.NoError(t, err)
	return p
}

func TestProjectsAreCachedUntilInvalidated(t *testing.T) {
	f := newFixture(t)
	f.createProject(t, "one", mproject.StatusActive, false)

	resp, err := f.srv.ListProjects(f.ctx, connect.NewRequest(&ListProjectsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Items, 1)

	f.createProject(t, "two", mproject.StatusActive, true)

	// no invalidation loop is running, the cached view is served
	resp, err = f.srv.ListProjects(f.ctx, connect.NewRequest(&ListProjectsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Items, 1)

	f.srv.Invalidate(movable.CollectionProjects)
	resp, err = f.srv.ListProjects(f.ctx, connect.NewRequest(&ListProjectsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Items, 2)

	featured, err := f.srv.ListProjects(f.ctx, connect.NewRequest(&ListProjectsRequest{FeaturedOnly: true}))
	require.NoError(t, err)
	require.Len(t, featured.Msg.Items, 1)
	require.Equal(t, "two", featured.Msg.Items[0].Title)
}

func TestRunInvalidatesOnChanges(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(f.ctx)
	done := make(chan error, 1)
	go func() { done <- f.srv.Run(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	empty, err := f.srv.ListSkills(f.ctx, connect.NewRequest(&ListRequest{}))
	require.NoError(t, err)
	require.Empty(t, empty.Msg.Items)

	_, err = f.services.Ss.Create(f.ctx, mskill.Skill{Category: "Backend", Skills: []string{"Go"}, Highlighted: []string{"Go"}})
	require.NoError(t, err)

	// Run may subscribe after the append was published; nudging with
	// further changes makes the test independent of that race.
	require.Eventually(t, func() bool {
		resp, err := f.srv.ListSkills(f.ctx, connect.NewRequest(&ListRequest{}))
		if err == nil && len(resp.Msg.Items) == 1 {
			return true
		}
		f.streamer.Publish(movable.CollectionSkills, movable.Change{Collection: movable.CollectionSkills, Kind: movable.ChangeUpdated})
		return false
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := f.srv.ListSkills(f.ctx, connect.NewRequest(&ListRequest{}))
	require.NoError(t, err)
	require.Equal(t, []mskill.Tag{{Name: "Go", Highlighted: true}}, resp.Msg.Items[0].Tags)

	// once subscribed, the engine's own change event is enough
	_, err = f.services.Ss.Create(f.ctx, mskill.Skill{Category: "Frontend", Skills: []string{"React"}})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		resp, err := f.srv.ListSkills(f.ctx, connect.NewRequest(&ListRequest{}))
		return err == nil && len(resp.Msg.Items) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGetProjectHidesDrafts(t *testing.T) {
	f := newFixture(t)
	active := f.createProject(t, "live", mproject.StatusActive, false)
	draft := f.createProject(t, "wip", mproject.StatusDraft, false)

	resp, err := f.srv.GetProject(f.ctx, connect.NewRequest(&GetProjectRequest{ID: active.ID}))
	require.NoError(t, err)
	require.Equal(t, "live", resp.Msg.Project.Title)

	_, err = f.srv.GetProject(f.ctx, connect.NewRequest(&GetProjectRequest{ID: draft.ID}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestProfileNotFoundThenSaved(t *testing.T) {
	f := newFixture(t)

	_, err := f.srv.GetProfile(f.ctx, connect.NewRequest(&ListRequest{}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = f.services.Prs.Save(f.ctx, mprofile.Profile{Name: "Ada", Title: "Engineer"})
	require.NoError(t, err)
	f.srv.Invalidate("profile")

	resp, err := f.srv.GetProfile(f.ctx, connect.NewRequest(&ListRequest{}))
	require.NoError(t, err)
	require.Equal(t, "Ada", resp.Msg.Profile.Name)
}

func TestRandomFunFact(t *testing.T) {
	f := newFixture(t)

	_, err := f.srv.RandomFunFact(f.ctx, connect.NewRequest(&ListRequest{}))
	require.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	for _, text := range []string{"a", "b", "c"} {
		_, err := f.services.Fs.Create(f.ctx, mfunfact.FunFact{FactText: text, IsActive: text != "b"})
		require.NoError(t, err)
	}
	f.srv.Invalidate(movable.CollectionFunFacts)
	f.srv.pick = func(n int) int { return n - 1 }

	resp, err := f.srv.RandomFunFact(f.ctx, connect.NewRequest(&ListRequest{}))
	require.NoError(t, err)
	require.Equal(t, "c", resp.Msg.FunFact.FactText)

	list, err := f.srv.ListFunFacts(f.ctx, connect.NewRequest(&ListRequest{}))
	require.NoError(t, err)
	require.Len(t, list.Msg.Items, 2)
}

func TestListOthersCarriesPreviews(t *testing.T) {
	f := newFixture(t)
	_, err := f.services.Os.Create(f.ctx, mother.Item{Title: "Demo", Link: "https://vimeo.com/42", ItemType: mother.TypeResource})
	require.NoError(t, err)

	resp, err := f.srv.ListOthers(f.ctx, connect.NewRequest(&ListRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Items, 1)
	require.Equal(t, "https://player.vimeo.com/video/42", resp.Msg.Items[0].Preview.EmbedURL)
}

func TestWatchChangesOverHTTP(t *testing.T) {
	f := newFixture(t)

	options := append(mwcompress.HandlerOptions(), mwcodec.WithJSONCodec())
	service, err := CreateService(f.srv, options)
	require.NoError(t, err)
	server := httptest.NewServer(api.NewHandler([]api.Service{*service}, nil))
	defer server.Close()

	client := connect.NewClient[WatchChangesRequest, movable.Change](
		server.Client(),
		server.URL+api.Procedure(ServiceName, "WatchChanges"),
		mwcodec.WithJSONClientCodec(),
	)

	ctx, cancel := context.WithTimeout(f.ctx, 5*time.Second)
	defer cancel()
	stream, err := client.CallServerStream(ctx, connect.NewRequest(&WatchChangesRequest{Collections: []string{"skills"}}))
	require.NoError(t, err)
	defer stream.Close()

	require.True(t, stream.Receive(), "ready: %v", stream.Err())
	require.Equal(t, ChangeReady, stream.Msg().Kind)

	// filtered out
	f.createProject(t, "ignored", mproject.StatusActive, false)
	skill, err := f.services.Ss.Create(f.ctx, mskill.Skill{Category: "Ops", Skills: []string{"Docker"}})
	require.NoError(t, err)

	require.True(t, stream.Receive(), "change: %v", stream.Err())
	require.Equal(t, movable.Change{Collection: movable.CollectionSkills, Kind: movable.ChangeAppended, ID: skill.ID}, *stream.Msg())
}

func TestWatchChangesRejectsUnknownCollection(t *testing.T) {
	f := newFixture(t)
	err := f.srv.streamChanges(f.ctx, &WatchChangesRequest{Collections: []string{"contacts"}}, nil)
	require.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
