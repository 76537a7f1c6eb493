package serverrun

import (
	"database/sql"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/the-dev-tools/folio/internal/api"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwauth"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwcodec"
	"github.com/the-dev-tools/folio/internal/api/middleware/mwcompress"
	"github.com/the-dev-tools/folio/internal/api/radmin"
	"github.com/the-dev-tools/folio/internal/api/rauth"
	"github.com/the-dev-tools/folio/internal/api/rcontact"
	"github.com/the-dev-tools/folio/internal/api/rhealth"
	"github.com/the-dev-tools/folio/internal/api/rmetrics"
	"github.com/the-dev-tools/folio/internal/api/rportfolio"
	"github.com/the-dev-tools/folio/internal/api/rreorder"
	"github.com/the-dev-tools/folio/pkg/config"
	"github.com/the-dev-tools/folio/pkg/eventstream/memory"
	"github.com/the-dev-tools/folio/pkg/metrics"
	"github.com/the-dev-tools/folio/pkg/movable"
	"github.com/the-dev-tools/folio/pkg/service/scontact"
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

// App holds the wired services of one server process.
type App struct {
	Services  []api.Service
	Engines   *sorder.Engines
	Portfolio *rportfolio.PortfolioServiceRPC
	Streamer  sorder.Streamer

	contact *rcontact.ContactServiceRPC
	reorder *rreorder.ReorderServiceRPC
}

// NewApp wires every service over db. The caller runs App.Portfolio.Run for
// cache invalidation and calls Close on shutdown.
func NewApp(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*App, error) {
	proxies, err := cfg.TrustedProxyPrefixes()
	if err != nil {
		return nil, err
	}
	streamer := memory.NewInMemorySyncStreamer[movable.Collection, movable.Change]()
	engines := sorder.New(db,
		movable.WithLogger(logger),
		movable.WithObserver(sorder.PublishTo(streamer)),
		movable.WithRecorder(metrics.StoreRecorder{}),
		movable.WithDensityCheck(cfg.DensityCheckEnabled()),
	)

	ps := sproject.New(db, engines.MustGet(movable.CollectionProjects), logger)
	es := sexperience.New(db, engines.MustGet(movable.CollectionExperiences), logger)
	ts := stestimonial.New(db, engines.MustGet(movable.CollectionTestimonials), logger)
	ss := sskill.New(db, engines.MustGet(movable.CollectionSkills), logger)
	tss := stechstack.New(db, engines.MustGet(movable.CollectionTechStack), logger)
	fs := sfunfact.New(db, engines.MustGet(movable.CollectionFunFacts), logger)
	ots := sother.New(db, engines.MustGet(movable.CollectionOthers), logger)
	prs := sprofile.New(db, logger)
	cs := scontact.New(db, logger)

	secret := []byte(cfg.Auth.JWTSecret)

	optionsCompress := append(mwcompress.HandlerOptions(),
		mwcodec.WithJSONCodec(),
		connect.WithInterceptors(mwauth.NewCrashInterceptor()),
	)
	optionsAuth := append(optionsCompress[:len(optionsCompress):len(optionsCompress)],
		connect.WithInterceptors(mwauth.NewAuthInterceptor(secret, logger)),
	)

	reg, err := rmetrics.NewRegistry()
	if err != nil {
		return nil, err
	}

	portfolioSrv := rportfolio.New(rportfolio.Services{
		Projects:     ps,
		Experiences:  es,
		Testimonials: ts,
		Skills:       ss,
		TechStack:    tss,
		FunFacts:     fs,
		Others:       ots,
		Profile:      prs,
	}, streamer, cfg.Cache.TTL, logger)
	adminSrv := radmin.New(radmin.Services{
		Engines:      engines,
		Projects:     ps,
		Experiences:  es,
		Testimonials: ts,
		Skills:       ss,
		TechStack:    tss,
		FunFacts:     fs,
		Others:       ots,
		Profile:      prs,
	}, streamer, logger)
	contactSrv := rcontact.New(cs, cfg.Contact.RatePerMinute, cfg.Contact.Burst, logger, rcontact.WithTrustedProxies(proxies))
	reorderSrv := rreorder.New(engines, cfg.Reorder.SessionTTL, logger)
	authSrv := rauth.New(cfg.Auth.AdminPasswordHash, secret, cfg.Auth.TokenTTL, logger)

	sm := api.NewServiceManager(10)
	for _, add := range []func() (*api.Service, error){
		func() (*api.Service, error) { return rhealth.CreateService(rhealth.New(db), optionsCompress) },
		func() (*api.Service, error) { return rauth.CreateService(authSrv, optionsCompress) },
		func() (*api.Service, error) { return rportfolio.CreateService(portfolioSrv, optionsCompress) },
		func() (*api.Service, error) { return rcontact.CreateService(contactSrv, optionsCompress) },
		func() (*api.Service, error) { return rcontact.CreateAdminService(contactSrv, optionsAuth) },
		func() (*api.Service, error) { return radmin.CreateService(adminSrv, optionsAuth) },
		func() (*api.Service, error) { return rreorder.CreateService(reorderSrv, optionsAuth) },
		func() (*api.Service, error) { return rmetrics.CreateService(reg) },
	} {
		if err := sm.AddService(add()); err != nil {
			contactSrv.Close()
			reorderSrv.Shutdown()
			portfolioSrv.Close()
			streamer.Shutdown()
			return nil, err
		}
	}

	return &App{
		Services:  sm.GetServices(),
		Engines:   engines,
		Portfolio: portfolioSrv,
		Streamer:  streamer,
		contact:   contactSrv,
		reorder:   reorderSrv,
	}, nil
}

func (a *App) Close() {
	a.contact.Close()
	a.reorder.Shutdown()
	a.Portfolio.Close()
	a.Streamer.Shutdown()
}
