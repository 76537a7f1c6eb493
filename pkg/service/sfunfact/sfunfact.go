package sfunfact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mfunfact"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoFunFactFound = fmt.Errorf("fun fact %w", movable.ErrItemNotFound)

type FunFactService struct {
	queries *gen.Queries
	engine  *movable.Engine
	logger  *slog.Logger
	pick    func(n int) int
}

func New(db gen.DBTX, engine *movable.Engine, logger *slog.Logger) FunFactService {
	if logger == nil {
		logger = slog.Default()
	}
	return FunFactService{queries: gen.New(db), engine: engine, logger: logger, pick: rand.IntN}
}

func ConvertToModelFunFact(f gen.FunFact) mfunfact.FunFact {
	return mfunfact.FunFact{
		ID:        f.ID,
		FactText:  f.FactText,
		IsActive:  f.IsActive,
		SortOrder: f.SortOrder,
		CreatedAt: dbtime.FromUnix(f.CreatedAt),
		UpdatedAt: dbtime.FromUnix(f.UpdatedAt),
	}
}

func convertAll(rows []gen.FunFact) []mfunfact.FunFact {
	out := make([]mfunfact.FunFact, len(rows))
	for i, r := range rows {
		out[i] = ConvertToModelFunFact(r)
	}
	return out
}

func (s FunFactService) Get(ctx context.Context, id int64) (mfunfact.FunFact, error) {
	row, err := s.queries.GetFunFact(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mfunfact.FunFact{}, ErrNoFunFactFound
		}
		return mfunfact.FunFact{}, err
	}
	return ConvertToModelFunFact(row), nil
}

func (s FunFactService) List(ctx context.Context) ([]mfunfact.FunFact, error) {
	rows, err := s.queries.ListFunFacts(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(rows), nil
}

func (s FunFactService) ListActive(ctx context.Context) ([]mfunfact.FunFact, error) {
	rows, err := s.queries.ListActiveFunFacts(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(rows), nil
}

// Random picks one active fact. It reports ErrNoFunFactFound when none is active.
func (s FunFactService) Random(ctx context.Context) (mfunfact.FunFact, error) {
	facts, err := s.ListActive(ctx)
	if err != nil {
		return mfunfact.FunFact{}, err
	}
	if len(facts) == 0 {
		return mfunfact.FunFact{}, ErrNoFunFactFound
	}
	return facts[s.pick(len(facts))], nil
}

func (s FunFactService) Create(ctx context.Context, f mfunfact.FunFact) (mfunfact.FunFact, error) {
	if err := f.Validate(); err != nil {
		return mfunfact.FunFact{}, err
	}
	var created gen.FunFact
	_, _, err := s.engine.Append(ctx, func(ctx context.Context, tx *sql.Tx, sortOrder int64) (int64, error) {
		now := dbtime.Unix()
		row, err := s.queries.WithTx(tx).CreateFunFact(ctx, gen.CreateFunFactParams{
			FactText:  f.FactText,
			IsActive:  f.IsActive,
			SortOrder: sortOrder,
			CreatedAt: now,
			UpdatedAt: now,
		})
		created = row
		return row.ID, err
	})
	if err != nil {
		return mfunfact.FunFact{}, err
	}
	return ConvertToModelFunFact(created), nil
}

func (s FunFactService) Update(ctx context.Context, f mfunfact.FunFact) (mfunfact.FunFact, error) {
	if err := f.Validate(); err != nil {
		return mfunfact.FunFact{}, err
	}
	var updated gen.FunFact
	err := s.engine.Update(ctx, f.ID, func(ctx context.Context, tx *sql.Tx) error {
		row, err := s.queries.WithTx(tx).UpdateFunFact(ctx, gen.UpdateFunFactParams{
			FactText:  f.FactText,
			IsActive:  f.IsActive,
			UpdatedAt: dbtime.Unix(),
			ID:        f.ID,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoFunFactFound
		}
		updated = row
		return err
	})
	if err != nil {
		return mfunfact.FunFact{}, err
	}
	return ConvertToModelFunFact(updated), nil
}

func (s FunFactService) Delete(ctx context.Context, id int64) (int, error) {
	return s.engine.Delete(ctx, id)
}
