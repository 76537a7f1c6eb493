package sproject

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mproject"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoProjectFound = fmt.Errorf("project %w", movable.ErrItemNotFound)

type ProjectService struct {
	queries *gen.Queries
	engine  *movable.Engine
	logger  *slog.Logger
}

func New(db gen.DBTX, engine *movable.Engine, logger *slog.Logger) ProjectService {
	if logger == nil {
		logger = slog.Default()
	}
	return ProjectService{queries: gen.New(db), engine: engine, logger: logger}
}

func (s ProjectService) Get(ctx context.Context, id int64) (mproject.Project, error) {
	row, err := s.queries.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.DebugContext(ctx, "project not found", "project_id", id)
			return mproject.Project{}, ErrNoProjectFound
		}
		return mproject.Project{}, err
	}
	return ConvertToModelProject(row), nil
}

// List returns every project in display order, drafts and archived included.
func (s ProjectService) List(ctx context.Context) ([]mproject.Project, error) {
	rows, err := s.queries.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(rows), nil
}

// ListPublished returns the active projects in display order.
func (s ProjectService) ListPublished(ctx context.Context) ([]mproject.Project, error) {
	rows, err := s.queries.ListProjectsByStatus(ctx, string(mproject.StatusActive))
	if err != nil {
		return nil, err
	}
	return convertAll(rows), nil
}

func (s ProjectService) ListFeatured(ctx context.Context) ([]mproject.Project, error) {
	rows, err := s.queries.ListFeaturedProjects(ctx, string(mproject.StatusActive))
	if err != nil {
		return nil, err
	}
	return convertAll(rows), nil
}

// Create appends p at the end of the collection. Any sort order on p is ignored.
func (s ProjectService) Create(ctx context.Context, p mproject.Project) (mproject.Project, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return mproject.Project{}, err
	}
	var created gen.Project
	_, _, err := s.engine.Append(ctx, func(ctx context.Context, tx *sql.Tx, sortOrder int64) (int64, error) {
		row, err := s.queries.WithTx(tx).CreateProject(ctx, createParams(p, sortOrder, dbtime.Unix()))
		if err != nil {
			return 0, err
		}
		created = row
		return row.ID, nil
	})
	if err != nil {
		return mproject.Project{}, err
	}
	return ConvertToModelProject(created), nil
}

// Update rewrites every field except the sort order.
func (s ProjectService) Update(ctx context.Context, p mproject.Project) (mproject.Project, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return mproject.Project{}, err
	}
	var updated gen.Project
	err := s.engine.Update(ctx, p.ID, func(ctx context.Context, tx *sql.Tx) error {
		row, err := s.queries.WithTx(tx).UpdateProject(ctx, updateParams(p, dbtime.Unix()))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNoProjectFound
			}
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return mproject.Project{}, err
	}
	return ConvertToModelProject(updated), nil
}

// Delete removes the project and closes the gap it leaves. It returns how many
// projects moved up.
func (s ProjectService) Delete(ctx context.Context, id int64) (int, error) {
	return s.engine.Delete(ctx, id)
}
