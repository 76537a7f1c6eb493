package stechstack

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mtechstack"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoTechStackItemFound = fmt.Errorf("tech stack item %w", movable.ErrItemNotFound)

type TechStackService struct {
	queries *gen.Queries
	engine  *movable.Engine
	logger  *slog.Logger
}

func New(db gen.DBTX, engine *movable.Engine, logger *slog.Logger) TechStackService {
	if logger == nil {
		logger = slog.Default()
	}
	return TechStackService{queries: gen.New(db), engine: engine, logger: logger}
}

func ConvertToModelItem(t gen.TechStack) mtechstack.Item {
	return mtechstack.Item{
		ID:        t.ID,
		TechName:  t.TechName,
		IconClass: t.IconClass,
		Color:     t.Color,
		IsVisible: t.IsVisible,
		SortOrder: t.SortOrder,
		CreatedAt: dbtime.FromUnix(t.CreatedAt),
		UpdatedAt: dbtime.FromUnix(t.UpdatedAt),
	}
}

func convertAll(rows []gen.TechStack) []mtechstack.Item {
	out := make([]mtechstack.Item, len(rows))
	for i, r := range rows {
		out[i] = ConvertToModelItem(r)
	}
	return out
}

func (s TechStackService) Get(ctx context.Context, id int64) (mtechstack.Item, error) {
	row, err := s.queries.GetTechStackItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mtechstack.Item{}, ErrNoTechStackItemFound
		}
		return mtechstack.Item{}, err
	}
	return ConvertToModelItem(row), nil
}

func (s TechStackService) List(ctx context.Context) ([]mtechstack.Item, error) {
	rows, err := s.queries.ListTechStack(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(rows), nil
}

// ListVisible is what the public page shows.
func (s TechStackService) ListVisible(ctx context.Context) ([]mtechstack.Item, error) {
	rows, err := s.queries.ListVisibleTechStack(ctx)
	if err != nil {
		return nil, err
	}
	return convertAll(rows), nil
}

func (s TechStackService) Create(ctx context.Context, item mtechstack.Item) (mtechstack.Item, error) {
	if err := item.Validate(); err != nil {
		return mtechstack.Item{}, err
	}
	var created gen.TechStack
	_, _, err := s.engine.Append(ctx, func(ctx context.Context, tx *sql.Tx, sortOrder int64) (int64, error) {
		now := dbtime.Unix()
		row, err := s.queries.WithTx(tx).CreateTechStackItem(ctx, gen.CreateTechStackItemParams{
			TechName:  item.TechName,
			IconClass: item.IconClass,
			Color:     item.Color,
			IsVisible: item.IsVisible,
			SortOrder: sortOrder,
			CreatedAt: now,
			UpdatedAt: now,
		})
		created = row
		return row.ID, err
	})
	if err != nil {
		return mtechstack.Item{}, err
	}
	return ConvertToModelItem(created), nil
}

func (s TechStackService) Update(ctx context.Context, item mtechstack.Item) (mtechstack.Item, error) {
	if err := item.Validate(); err != nil {
		return mtechstack.Item{}, err
	}
	var updated gen.TechStack
	err := s.engine.Update(ctx, item.ID, func(ctx context.Context, tx *sql.Tx) error {
		row, err := s.queries.WithTx(tx).UpdateTechStackItem(ctx, gen.UpdateTechStackItemParams{
			TechName:  item.TechName,
			IconClass: item.IconClass,
			Color:     item.Color,
			IsVisible: item.IsVisible,
			UpdatedAt: dbtime.Unix(),
			ID:        item.ID,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoTechStackItemFound
		}
		updated = row
		return err
	})
	if err != nil {
		return mtechstack.Item{}, err
	}
	return ConvertToModelItem(updated), nil
}

func (s TechStackService) Delete(ctx context.Context, id int64) (int, error) {
	return s.engine.Delete(ctx, id)
}
