package sother

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/linkpreview"
	"github.com/the-dev-tools/folio/pkg/model/mother"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoOtherFound = fmt.Errorf("other item %w", movable.ErrItemNotFound)

// WithPreview is an item together with the preview of its link.
type WithPreview struct {
	mother.Item
	Preview linkpreview.Preview `json:"preview"`
}

type OtherService struct {
	queries *gen.Queries
	engine  *movable.Engine
	logger  *slog.Logger
}

func New(db gen.DBTX, engine *movable.Engine, logger *slog.Logger) OtherService {
	if logger == nil {
		logger = slog.Default()
	}
	return OtherService{queries: gen.New(db), engine: engine, logger: logger}
}

func ConvertToModelItem(o gen.Other) mother.Item {
	return mother.Item{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Link:        o.Link,
		ItemType:    mother.ItemType(o.ItemType),
		SortOrder:   o.SortOrder,
		CreatedAt:   dbtime.FromUnix(o.CreatedAt),
		UpdatedAt:   dbtime.FromUnix(o.UpdatedAt),
	}
}

func (s OtherService) Get(ctx context.Context, id int64) (mother.Item, error) {
	row, err := s.queries.GetOther(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mother.Item{}, ErrNoOtherFound
		}
		return mother.Item{}, err
	}
	return ConvertToModelItem(row), nil
}

func (s OtherService) List(ctx context.Context) ([]mother.Item, error) {
	rows, err := s.queries.ListOthers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]mother.Item, len(rows))
	for i, r := range rows {
		out[i] = ConvertToModelItem(r)
	}
	return out, nil
}

func (s OtherService) ListWithPreviews(ctx context.Context) ([]WithPreview, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]WithPreview, len(items))
	for i, item := range items {
		out[i] = WithPreview{Item: item, Preview: item.Preview()}
	}
	return out, nil
}

func (s OtherService) Create(ctx context.Context, item mother.Item) (mother.Item, error) {
	item.Normalize()
	if err := item.Validate(); err != nil {
		return mother.Item{}, err
	}
	var created gen.Other
	_, _, err := s.engine.Append(ctx, func(ctx context.Context, tx *sql.Tx, sortOrder int64) (int64, error) {
		now := dbtime.Unix()
		row, err := s.queries.WithTx(tx).CreateOther(ctx, gen.CreateOtherParams{
			Title:       item.Title,
			Description: item.Description,
			Link:        item.Link,
			ItemType:    string(item.ItemType),
			SortOrder:   sortOrder,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		created = row
		return row.ID, err
	})
	if err != nil {
		return mother.Item{}, err
	}
	return ConvertToModelItem(created), nil
}

func (s OtherService) Update(ctx context.Context, item mother.Item) (mother.Item, error) {
	item.Normalize()
	if err := item.Validate(); err != nil {
		return mother.Item{}, err
	}
	var updated gen.Other
	err := s.engine.Update(ctx, item.ID, func(ctx context.Context, tx *sql.Tx) error {
		row, err := s.queries.WithTx(tx).UpdateOther(ctx, gen.UpdateOtherParams{
			Title:       item.Title,
			Description: item.Description,
			Link:        item.Link,
			ItemType:    string(item.ItemType),
			UpdatedAt:   dbtime.Unix(),
			ID:          item.ID,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoOtherFound
		}
		updated = row
		return err
	})
	if err != nil {
		return mother.Item{}, err
	}
	return ConvertToModelItem(updated), nil
}

func (s OtherService) Delete(ctx context.Context, id int64) (int, error) {
	return s.engine.Delete(ctx, id)
}
