//nolint:revive // exported
package radmin

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	json "github.com/goccy/go-json"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwauth"
	"github.com/the-dev-tools/folio/pkg/errmap"
	"github.com/the-dev-tools/folio/pkg/model/mexperience"
	"github.com/the-dev-tools/folio/pkg/model/mfunfact"
	"github.com/the-dev-tools/folio/pkg/model/mother"
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

const ServiceName = "folio.admin.v1.AdminService"

type Services struct {
	Engines      *sorder.Engines
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
	ListRequest struct {
		Collection string `json:"collection"`
		// Query fuzzily filters by title, name or category.
		Query string `json:"query"`
	}
	ListResponse struct {
		Collection movable.Collection `json:"collection"`
		Items      []json.RawMessage  `json:"items"`
	}

	GetRequest struct {
		Collection string `json:"collection"`
		ID         int64  `json:"id"`
	}
	ItemResponse struct {
		Collection movable.Collection `json:"collection"`
		Item       json.RawMessage    `json:"item"`
	}

	CreateRequest struct {
		Collection string          `json:"collection"`
		Item       json.RawMessage `json:"item"`
	}
	UpdateRequest struct {
		Collection string          `json:"collection"`
		ID         int64           `json:"id"`
		Item       json.RawMessage `json:"item"`
	}

	DeleteRequest struct {
		Collection string `json:"collection"`
		ID         int64  `json:"id"`
	}
	DeleteResponse struct {
		// Shifted counts the records that moved up to close the gap.
		Shifted int `json:"shifted"`
	}

	CollectionRequest struct {
		Collection string `json:"collection"`
	}
	CheckResponse struct {
		Collection movable.Collection      `json:"collection"`
		Report     movable.IntegrityReport `json:"report"`
		Dense      bool                    `json:"dense"`
	}
	CompactResponse struct {
		Collection movable.Collection `json:"collection"`
		Changed    int                `json:"changed"`
	}

	ProfileRequest  struct{}
	ProfileResponse struct {
		Profile mprofile.Profile `json:"profile"`
	}
	SaveProfileRequest struct {
		Profile mprofile.Profile `json:"profile"`
	}
)

type AdminServiceRPC struct {
	engines   *sorder.Engines
	resources map[movable.Collection]resource
	profile   sprofile.ProfileService
	streamer  sorder.Streamer
	logger    *slog.Logger
}

// New wires CRUD for every ordered collection. Profile saves are published on
// streamer under sprofile.Topic since they bypass the engines.
func New(svc Services, streamer sorder.Streamer, logger *slog.Logger) *AdminServiceRPC {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminServiceRPC{
		engines:   svc.Engines,
		resources: newResources(svc),
		profile:   svc.Profile,
		streamer:  streamer,
		logger:    logger,
	}
}

func newResources(svc Services) map[movable.Collection]resource {
	return map[movable.Collection]resource{
		movable.CollectionProjects: crud[mproject.Project]{
			list: svc.Projects.List, get: svc.Projects.Get, create: svc.Projects.Create,
			update: svc.Projects.Update, remove: svc.Projects.Delete,
			label:  func(p mproject.Project) string { return p.Title },
			withID: func(p mproject.Project, id int64) mproject.Project { p.ID = id; return p },
		},
		movable.CollectionExperiences: crud[mexperience.Experience]{
			list: svc.Experiences.List, get: svc.Experiences.Get, create: svc.Experiences.Create,
			update: svc.Experiences.Update, remove: svc.Experiences.Delete,
			label:  func(e mexperience.Experience) string { return e.Title + " " + e.Company },
			withID: func(e mexperience.Experience, id int64) mexperience.Experience { e.ID = id; return e },
		},
		movable.CollectionTestimonials: crud[mtestimonial.Testimonial]{
			list: svc.Testimonials.List, get: svc.Testimonials.Get, create: svc.Testimonials.Create,
			update: svc.Testimonials.Update, remove: svc.Testimonials.Delete,
			label:  func(t mtestimonial.Testimonial) string { return t.Name + " " + t.Company },
			withID: func(t mtestimonial.Testimonial, id int64) mtestimonial.Testimonial { t.ID = id; return t },
		},
		movable.CollectionSkills: crud[mskill.Skill]{
			list: svc.Skills.List, get: svc.Skills.Get, create: svc.Skills.Create,
			update: svc.Skills.Update, remove: svc.Skills.Delete,
			label:  func(s mskill.Skill) string { return s.Category },
			withID: func(s mskill.Skill, id int64) mskill.Skill { s.ID = id; return s },
		},
		movable.CollectionTechStack: crud[mtechstack.Item]{
			list: svc.TechStack.List, get: svc.TechStack.Get, create: svc.TechStack.Create,
			update: svc.TechStack.Update, remove: svc.TechStack.Delete,
			label:  func(i mtechstack.Item) string { return i.TechName },
			withID: func(i mtechstack.Item, id int64) mtechstack.Item { i.ID = id; return i },
		},
		movable.CollectionFunFacts: crud[mfunfact.FunFact]{
			list: svc.FunFacts.List, get: svc.FunFacts.Get, create: svc.FunFacts.Create,
			update: svc.FunFacts.Update, remove: svc.FunFacts.Delete,
			label:  func(f mfunfact.FunFact) string { return f.FactText },
			withID: func(f mfunfact.FunFact, id int64) mfunfact.FunFact { f.ID = id; return f },
		},
		movable.CollectionOthers: crud[mother.Item]{
			list: svc.Others.List, get: svc.Others.Get, create: svc.Others.Create,
			update: svc.Others.Update, remove: svc.Others.Delete,
			label:  func(i mother.Item) string { return i.Title },
			withID: func(i mother.Item, id int64) mother.Item { i.ID = id; return i },
		},
	}
}

func CreateService(srv *AdminServiceRPC, options []connect.HandlerOption) (*api.Service, error) {
	mux := api.NewServiceMux(ServiceName, options)
	api.HandleUnary(mux, "List", srv.List)
	api.HandleUnary(mux, "Get", srv.Get)
	api.HandleUnary(mux, "Create", srv.Create)
	api.HandleUnary(mux, "Update", srv.Update)
	api.HandleUnary(mux, "Delete", srv.Delete)
	api.HandleUnary(mux, "Check", srv.Check)
	api.HandleUnary(mux, "Compact", srv.Compact)
	api.HandleUnary(mux, "GetProfile", srv.GetProfile)
	api.HandleUnary(mux, "SaveProfile", srv.SaveProfile)
	return mux.Service(), nil
}

func (c *AdminServiceRPC) resource(name string) (movable.Collection, resource, error) {
	col, err := movable.ParseCollection(name)
	if err != nil {
		return "", nil, errmap.ToConnect(err)
	}
	r, ok := c.resources[col]
	if !ok {
		return "", nil, errmap.ToConnect(movable.ErrUnknownCollection)
	}
	return col, r, nil
}

func (c *AdminServiceRPC) List(ctx context.Context, req *connect.Request[ListRequest]) (*connect.Response[ListResponse], error) {
	col, r, err := c.resource(req.Msg.Collection)
	if err != nil {
		return nil, err
	}
	items, err := r.List(ctx, req.Msg.Query)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ListResponse{Collection: col, Items: items}), nil
}

func (c *AdminServiceRPC) Get(ctx context.Context, req *connect.Request[GetRequest]) (*connect.Response[ItemResponse], error) {
	col, r, err := c.resource(req.Msg.Collection)
	if err != nil {
		return nil, err
	}
	item, err := r.Get(ctx, req.Msg.ID)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ItemResponse{Collection: col, Item: item}), nil
}

func (c *AdminServiceRPC) Create(ctx context.Context, req *connect.Request[CreateRequest]) (*connect.Response[ItemResponse], error) {
	col, r, err := c.resource(req.Msg.Collection)
	if err != nil {
		return nil, err
	}
	id, item, err := r.Create(ctx, req.Msg.Item)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	c.audit(ctx, "created", col, id)
	return connect.NewResponse(&ItemResponse{Collection: col, Item: item}), nil
}

func (c *AdminServiceRPC) Update(ctx context.Context, req *connect.Request[UpdateRequest]) (*connect.Response[ItemResponse], error) {
	col, r, err := c.resource(req.Msg.Collection)
	if err != nil {
		return nil, err
	}
	item, err := r.Update(ctx, req.Msg.ID, req.Msg.Item)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	c.audit(ctx, "updated", col, req.Msg.ID)
	return connect.NewResponse(&ItemResponse{Collection: col, Item: item}), nil
}

func (c *AdminServiceRPC) Delete(ctx context.Context, req *connect.Request[DeleteRequest]) (*connect.Response[DeleteResponse], error) {
	col, r, err := c.resource(req.Msg.Collection)
	if err != nil {
		return nil, err
	}
	shifted, err := r.Delete(ctx, req.Msg.ID)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	c.audit(ctx, "deleted", col, req.Msg.ID)
	return connect.NewResponse(&DeleteResponse{Shifted: shifted}), nil
}

// Check reports gaps and duplicates without touching the collection.
func (c *AdminServiceRPC) Check(ctx context.Context, req *connect.Request[CollectionRequest]) (*connect.Response[CheckResponse], error) {
	engine, err := c.engines.Parse(req.Msg.Collection)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	entries, err := engine.Snapshot(ctx)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	report := movable.Inspect(entries)
	return connect.NewResponse(&CheckResponse{Collection: engine.Collection(), Report: report, Dense: report.Dense()}), nil
}

func (c *AdminServiceRPC) Compact(ctx context.Context, req *connect.Request[CollectionRequest]) (*connect.Response[CompactResponse], error) {
	engine, err := c.engines.Parse(req.Msg.Collection)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	changed, err := engine.Compact(ctx)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	c.audit(ctx, "compacted", engine.Collection(), 0)
	return connect.NewResponse(&CompactResponse{Collection: engine.Collection(), Changed: changed}), nil
}

func (c *AdminServiceRPC) GetProfile(ctx context.Context, _ *connect.Request[ProfileRequest]) (*connect.Response[ProfileResponse], error) {
	p, err := c.profile.Get(ctx)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	return connect.NewResponse(&ProfileResponse{Profile: p}), nil
}

func (c *AdminServiceRPC) SaveProfile(ctx context.Context, req *connect.Request[SaveProfileRequest]) (*connect.Response[ProfileResponse], error) {
	p, err := c.profile.Save(ctx, req.Msg.Profile)
	if err != nil {
		return nil, errmap.ToConnect(err)
	}
	if c.streamer != nil {
		c.streamer.Publish(sprofile.Topic, movable.Change{Collection: sprofile.Topic, Kind: movable.ChangeUpdated, ID: mprofile.SingletonID})
	}
	c.audit(ctx, "updated", sprofile.Topic, mprofile.SingletonID)
	return connect.NewResponse(&ProfileResponse{Profile: p}), nil
}

func (c *AdminServiceRPC) audit(ctx context.Context, action string, col movable.Collection, id int64) {
	subject, _ := mwauth.GetContextSubject(ctx)
	c.logger.InfoContext(ctx, "admin change", "action", action, "collection", col, "id", id, "subject", subject)
}
