package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/the-dev-tools/folio/db/pkg/dbtest"
	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
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

type BaseDBQueries struct {
	Queries *gen.Queries
	DB      *sql.DB
	t       *testing.T
	ctx     context.Context
}

type BaseTestServices struct {
	DB      *sql.DB
	Engines *sorder.Engines
	Ps      sproject.ProjectService
	Es      sexperience.ExperienceService
	Ts      stestimonial.TestimonialService
	Ss      sskill.SkillService
	Tss     stechstack.TechStackService
	Fs      sfunfact.FunFactService
	Os      sother.OtherService
	Prs     sprofile.ProfileService
	Cs      scontact.ContactService
}

func CreateBaseDB(ctx context.Context, t *testing.T) *BaseDBQueries {
	t.Helper()
	db, queries, err := dbtest.GetTestQueries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	return &BaseDBQueries{Queries: queries, DB: db, t: t, ctx: ctx}
}

// GetBaseServices wires every service over the test database. Engine options
// such as an observer apply to all collections.
func (c BaseDBQueries) GetBaseServices(opts ...movable.Option) BaseTestServices {
	logger := c.Logger()
	opts = append([]movable.Option{movable.WithLogger(logger)}, opts...)
	engines := sorder.New(c.DB, opts...)
	return BaseTestServices{
		DB:      c.DB,
		Engines: engines,
		Ps:      sproject.New(c.DB, engines.MustGet(movable.CollectionProjects), logger),
		Es:      sexperience.New(c.DB, engines.MustGet(movable.CollectionExperiences), logger),
		Ts:      stestimonial.New(c.DB, engines.MustGet(movable.CollectionTestimonials), logger),
		Ss:      sskill.New(c.DB, engines.MustGet(movable.CollectionSkills), logger),
		Tss:     stechstack.New(c.DB, engines.MustGet(movable.CollectionTechStack), logger),
		Fs:      sfunfact.New(c.DB, engines.MustGet(movable.CollectionFunFacts), logger),
		Os:      sother.New(c.DB, engines.MustGet(movable.CollectionOthers), logger),
		Prs:     sprofile.New(c.DB, logger),
		Cs:      scontact.New(c.DB, logger),
	}
}

func (b BaseDBQueries) Close() {
	if err := b.DB.Close(); err != nil {
		b.t.Error(err)
	}
}

func (b BaseDBQueries) Logger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SortOrders returns the stored sort orders of col in display order.
func SortOrders(ctx context.Context, t *testing.T, db *sql.DB, col movable.Collection) []int64 {
	t.Helper()
	store, err := movable.NewSQLStore(db, col)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.SortOrder
	}
	return out
}

// Dense builds 1..n.
func Dense(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i + 1)
	}
	return out
}
