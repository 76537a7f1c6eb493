package sexperience

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mexperience"
	"github.com/the-dev-tools/folio/pkg/model/mfield"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoExperienceFound = fmt.Errorf("experience %w", movable.ErrItemNotFound)

type ExperienceService struct {
	queries *gen.Queries
	engine  *movable.Engine
	logger  *slog.Logger
}

func New(db gen.DBTX, engine *movable.Engine, logger *slog.Logger) ExperienceService {
	if logger == nil {
		logger = slog.Default()
	}
	return ExperienceService{queries: gen.New(db), engine: engine, logger: logger}
}

func ConvertToModelExperience(e gen.Experience) mexperience.Experience {
	return mexperience.Experience{
		ID:           e.ID,
		Title:        e.Title,
		Company:      e.Company,
		Period:       e.Period,
		Description:  e.Description,
		Technologies: mfield.DecodeJSONList(e.Technologies),
		CompanyURL:   e.CompanyUrl,
		SortOrder:    e.SortOrder,
		CreatedAt:    dbtime.FromUnix(e.CreatedAt),
		UpdatedAt:    dbtime.FromUnix(e.UpdatedAt),
	}
}

func (s ExperienceService) Get(ctx context.Context, id int64) (mexperience.Experience, error) {
	row, err := s.queries.GetExperience(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mexperience.Experience{}, ErrNoExperienceFound
		}
		return mexperience.Experience{}, err
	}
	return ConvertToModelExperience(row), nil
}

func (s ExperienceService) List(ctx context.Context) ([]mexperience.Experience, error) {
	rows, err := s.queries.ListExperiences(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]mexperience.Experience, len(rows))
	for i, r := range rows {
		out[i] = ConvertToModelExperience(r)
	}
	return out, nil
}

func (s ExperienceService) Create(ctx context.Context, e mexperience.Experience) (mexperience.Experience, error) {
	if err := e.Validate(); err != nil {
		return mexperience.Experience{}, err
	}
	var created gen.Experience
	_, _, err := s.engine.Append(ctx, func(ctx context.Context, tx *sql.Tx, sortOrder int64) (int64, error) {
		now := dbtime.Unix()
		row, err := s.queries.WithTx(tx).CreateExperience(ctx, gen.CreateExperienceParams{
			Title:        e.Title,
			Company:      e.Company,
			Period:       e.Period,
			Description:  e.Description,
			Technologies: mfield.EncodeJSONList(e.Technologies),
			CompanyUrl:   e.CompanyURL,
			SortOrder:    sortOrder,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		created = row
		return row.ID, err
	})
	if err != nil {
		return mexperience.Experience{}, err
	}
	return ConvertToModelExperience(created), nil
}

func (s ExperienceService) Update(ctx context.Context, e mexperience.Experience) (mexperience.Experience, error) {
	if err := e.Validate(); err != nil {
		return mexperience.Experience{}, err
	}
	var updated gen.Experience
	err := s.engine.Update(ctx, e.ID, func(ctx context.Context, tx *sql.Tx) error {
		row, err := s.queries.WithTx(tx).UpdateExperience(ctx, gen.UpdateExperienceParams{
			Title:        e.Title,
			Company:      e.Company,
			Period:       e.Period,
			Description:  e.Description,
			Technologies: mfield.EncodeJSONList(e.Technologies),
			CompanyUrl:   e.CompanyURL,
			UpdatedAt:    dbtime.Unix(),
			ID:           e.ID,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoExperienceFound
		}
		updated = row
		return err
	})
	if err != nil {
		return mexperience.Experience{}, err
	}
	return ConvertToModelExperience(updated), nil
}

func (s ExperienceService) Delete(ctx context.Context, id int64) (int, error) {
	return s.engine.Delete(ctx, id)
}
