//nolint:revive // exported
package rportfolio

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"connectrpc.com/connect"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/pkg/errmap"
	"github.com/the-dev-tools/folio/pkg/eventstream"
	"github.com/the-dev-tools/folio/pkg/model/mexperience"
	"github.com/the-dev-tools/folio/pkg/model/mfunfact"
	"github.com/the-dev-tools/folio/pkg/model/mprofile"
	"github.com/the-dev-tools/folio/pkg/model/mproject"
	"github.com/the-dev-tools/folio/pkg/model/mskill"
	"github.com/the-dev-tools/folio/pkg/model/mtechstack"
	"github.com/the-dev-tools/folio/pkg/model/mtestimonial"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/service/sexperience"
	"github.com/the-dev-tools/folio/pkg/service/sfunfact"
	"github.com/the-dev-tools/folio/pkg/service/sorder"
	"github.com/the-dev-tools/folio/pkg/service/sother"
	"github.com/the-dev-tools/folio/pkg/service/sprofile"
	"github.com/the-dev-tools/folio/pkg/service/sproject"
	"github.com/the-dev-tools/folio/pkg/service/sskill"
	"github.com/the-dev-tools/folio/pkg/service/stechstack"
	"github.com/the-dev-tools/folio/pkg/service/stestimonial"
)

const ServiceName = "folio.portfolio.v1.PortfolioService"

// ChangeReady is the first event of every WatchChanges stream. Changes
// committed after it are guaranteed to be delivered.
const ChangeReady movable.ChangeKind = "ready"

const readyTopic movable.Collection = ""

var ErrNoProjectFound = errors.New("project not found")

type Services struct {
	Projects     sproject.ProjectService
	Experiences  sexperience.ExperienceService
	Testimonials stestimonial.TestimonialService
	Skills       sskill.SkillService
	TechStack    stechstack.TechStackService
	FunFacts     sfunfact.FunFactService
	Others       sother.OtherService
	Profile      sprofile.ProfileService
}

type (
	ListRequest struct{}

	ListProjectsRequest struct {
		FeaturedOnly bool `json:"featuredOnly"`
	}
	ListProjectsResponse struct {
		Items []mproject.Project `json:"items"`
	}
	GetProjectRequest struct {
		ID int64 `json:"id"`
	}
	ProjectResponse struct {
		Project mproject.Project `json:"project"`
	}

	ProfileResponse struct {
		Profile mprofile.Profile `json:"profile"`
	}

	ListExperiencesResponse struct {
		Items []mexperience.Experience `json:"items"`
	}

	ListTestimonialsRequest struct {
		FeaturedOnly bool `json:"featuredOnly"`
	}
	ListTestimonialsResponse struct {
		Items []mtestimonial.Testimonial `json:"items"`
	}

	SkillGroup struct {
		mskill.Skill
		Tags []mskill.Tag `json:"tags"`
	}
	ListSkillsResponse struct {
		Items []SkillGroup `json:"items"`
	}

	ListTechStackResponse struct {
		Items []mtechstack.Item `json:"items"`
	}

	ListFunFactsResponse struct {
		Items []mfunfact.FunFact `json:"items"`
	}
	FunFactResponse struct {
		FunFact mfunfact.FunFact `json:"funFact"`
	}

	ListOthersResponse struct {
		Items []sother.WithPreview `json:"items"`
	}

	WatchChangesRequest struct {
		// Collections limits the stream. Empty watches everything, profile included.
		Collections []string `json:"collections"`
	}
)

// PortfolioServiceRPC serves the public, read only views. Views are cached
// per collection and dropped whenever a change for that collection is streamed.
type PortfolioServiceRPC struct {
	svc      Services
	streamer sorder.Streamer
	cache    *viewCache
	pick     func(n int) int
	logger   *slog.Logger
}

func New(svc Services, streamer sorder.Streamer, ttl time.Duration, logger *slog.Logger) *PortfolioServiceRPC {
	if logger == nil {
		logger = slog.Default()
	}
	cols := append(movable.Collections(), sprofile.Topic)
	return &PortfolioServiceRPC{
		svc:      svc,
		streamer: streamer,
		cache:    newViewCache(ttl, cols...),
		pick:     rand.IntN,
		logger:   logger,
	}
}

func CreateService(srv *PortfolioServiceRPC, options []connect.HandlerOption) (*api.Service, error) {
	mux := api.NewServiceMux(ServiceName, options)
	api.HandleUnary(mux, "GetProfile", srv.GetProfile)
	api.HandleUnary(mux, "ListProjects", srv.ListProjects)
	api.HandleUnary(mux, "GetProject", srv.GetProject)
	api.HandleUnary(mux, "ListExperiences", srv.ListExperiences)
	api.HandleUnary(mux, "ListTestimonials", srv.ListTestimonials)
	api.HandleUnary(mux, "ListSkills", srv.ListSkills)
	api.HandleUnary(mux, "ListTechStack", srv.ListTechStack)
	api.HandleUnary(mux, "ListFunFacts", srv.ListFunFacts)
	api.HandleUnary(mux, "RandomFunFact", srv.RandomFunFact)
	api.HandleUnary(mux, "ListOthers", srv.ListOthers)
	api.HandleServerStream(mux, "WatchChanges", srv.WatchChanges)
	return mux.Service(), nil
}

// Run drops cached views as changes arrive, until ctx is done or the streamer shuts down.
func (c *PortfolioServiceRPC) Run(ctx context.Context) error {
	events, err := c.streamer.Subscribe(ctx, nil)
	if err != nil {
		return err
	}
	for {
		select {
		case evt, ok := <-events:
			if !ok {
				return nil
			}
			if c.cache.invalidate(evt.Topic) {
				c.logger.DebugContext(ctx, "portfolio cache invalidated", "collection", evt.Topic, "kind", evt.Payload.Kind)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Invalidate drops the cached views of col immediately.
func (c *PortfolioServiceRPC) Invalidate(col movable.Collection) {
	c.cache.invalidate(col)
}

func (c *PortfolioServiceRPC) Close() {
	c.cache.close()
}

func (c *PortfolioServiceRPC) GetProfile(ctx context.Context, _ *connect.Request[ListRequest]) (*connect.Response[ProfileResponse], error) {
	p, err := cached(ctx, c.cache, sprofile.Topic, "profile", c.svc.Profile.Get)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ProfileResponse{Profile: p}), nil
}

func (c *PortfolioServiceRPC) publishedProjects(ctx context.Context) ([]mproject.Project, error) {
	return cached(ctx, c.cache, movable.CollectionProjects, "published", c.svc.Projects.ListPublished)
}

func (c *PortfolioServiceRPC) ListProjects(ctx context.Context, req *connect.Request[ListProjectsRequest]) (*connect.Response[ListProjectsResponse], error) {
	var (
		items []mproject.Project
		err   error
	)
	if req.Msg.FeaturedOnly {
		items, err = cached(ctx, c.cache, movable.CollectionProjects, "featured", c.svc.Projects.ListFeatured)
	} else {
		items, err = c.publishedProjects(ctx)
	}
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ListProjectsResponse{Items: items}), nil
}

// GetProject only finds published projects. Drafts and archived ones are not found.
func (c *PortfolioServiceRPC) GetProject(ctx context.Context, req *connect.Request[GetProjectRequest]) (*connect.Response[ProjectResponse], error) {
	items, err := c.publishedProjects(ctx)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	for _, p := range items {
		if p.ID == req.Msg.ID {
			return connect.NewResponse(&ProjectResponse{Project: p}), nil
		}
	}
	return nil, connect.NewError(connect.CodeNotFound, ErrNoProjectFound)
}

func (c *PortfolioServiceRPC) ListExperiences(ctx context.Context, _ *connect.Request[ListRequest]) (*connect.Response[ListExperiencesResponse], error) {
	items, err := cached(ctx, c.cache, movable.CollectionExperiences, "all", c.svc.Experiences.List)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ListExperiencesResponse{Items: items}), nil
}

func (c *PortfolioServiceRPC) ListTestimonials(ctx context.Context, req *connect.Request[ListTestimonialsRequest]) (*connect.Response[ListTestimonialsResponse], error) {
	items, err := cached(ctx, c.cache, movable.CollectionTestimonials, "all", c.svc.Testimonials.List)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	if req.Msg.FeaturedOnly {
		featured := make([]mtestimonial.Testimonial, 0, len(items))
		for _, t := range items {
			if t.IsFeatured {
				featured = append(featured, t)
			}
		}
		items = featured
	}
	return connect.NewResponse(&ListTestimonialsResponse{Items: items}), nil
}

func (c *PortfolioServiceRPC) ListSkills(ctx context.Context, _ *connect.Request[ListRequest]) (*connect.Response[ListSkillsResponse], error) {
	groups, err := cached(ctx, c.cache, movable.CollectionSkills, "groups", func(ctx context.Context) ([]SkillGroup, error) {
		skills, err := c.svc.Skills.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]SkillGroup, len(skills))
		for i, s := range skills {
			out[i] = SkillGroup{Skill: s, Tags: s.Tags()}
		}
		return out, nil
	})
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ListSkillsResponse{Items: groups}), nil
}

func (c *PortfolioServiceRPC) ListTechStack(ctx context.Context, _ *connect.Request[ListRequest]) (*connect.Response[ListTechStackResponse], error) {
	items, err := cached(ctx, c.cache, movable.CollectionTechStack, "visible", c.svc.TechStack.ListVisible)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ListTechStackResponse{Items: items}), nil
}

func (c *PortfolioServiceRPC) activeFunFacts(ctx context.Context) ([]mfunfact.FunFact, error) {
	return cached(ctx, c.cache, movable.CollectionFunFacts, "active", c.svc.FunFacts.ListActive)
}

func (c *PortfolioServiceRPC) ListFunFacts(ctx context.Context, _ *connect.Request[ListRequest]) (*connect.Response[ListFunFactsResponse], error) {
	items, err := c.activeFunFacts(ctx)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ListFunFactsResponse{Items: items}), nil
}

func (c *PortfolioServiceRPC) RandomFunFact(ctx context.Context, _ *connect.Request[ListRequest]) (*connect.Response[FunFactResponse], error) {
	items, err := c.activeFunFacts(ctx)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	if len(items) == 0 {
		return nil, errmap.ToConnect(sfunfact.ErrNoFunFactFound)
	}
	return connect.NewResponse(&FunFactResponse{FunFact: items[c.pick(len(items))]}), nil
}

func (c *PortfolioServiceRPC) ListOthers(ctx context.Context, _ *connect.Request[ListRequest]) (*connect.Response[ListOthersResponse], error) {
	items, err := cached(ctx, c.cache, movable.CollectionOthers, "previews", c.svc.Others.ListWithPreviews)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ListOthersResponse{Items: items}), nil
}

func (c *PortfolioServiceRPC) WatchChanges(ctx context.Context, req *connect.Request[WatchChangesRequest], stream *connect.ServerStream[movable.Change]) error {
	return c.streamChanges(ctx, req.Msg, stream)
}

func (c *PortfolioServiceRPC) streamChanges(ctx context.Context, msg *WatchChangesRequest, stream api.ServerStreamAdHoc[movable.Change]) error {
	filter, err := topicFilter(msg.Collections)
	if err != nil {
		return errmap.ToConnect(err)
	}

	ready := func(context.Context) ([]eventstream.Event[movable.Collection, movable.Change], error) {
		return []eventstream.Event[movable.Collection, movable.Change]{
			{Topic: readyTopic, Payload: movable.Change{Kind: ChangeReady}},
		}, nil
	}
	convert := func(evt eventstream.Event[movable.Collection, movable.Change]) *movable.Change {
		change := evt.Payload
		return &change
	}

	c.logger.DebugContext(ctx, "change stream opened", "collections", msg.Collections)
	err = eventstream.StreamToClient(ctx, c.streamer, ready, filter, convert, stream.Send)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func topicFilter(names []string) (eventstream.TopicFilter[movable.Collection], error) {
	if len(names) == 0 {
		return nil, nil
	}
	wanted := make(map[movable.Collection]struct{}, len(names)+1)
	wanted[readyTopic] = struct{}{}
	for _, name := range names {
		if movable.Collection(name) == sprofile.Topic {
			wanted[sprofile.Topic] = struct{}{}
			continue
		}
		col, err := movable.ParseCollection(name)
		if err != nil {
			return nil, err
		}
		wanted[col] = struct{}{}
	}
	return func(col movable.Collection) bool {
		_, ok := wanted[col]
		return ok
	}, nil
}
