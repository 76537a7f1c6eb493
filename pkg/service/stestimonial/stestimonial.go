package stestimonial

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mtestimonial"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoTestimonialFound = fmt.Errorf("testimonial %w", movable.ErrItemNotFound)

type TestimonialService struct {
	queries *gen.Queries
	engine  *movable.Engine
	logger  *slog.Logger
}

func New(db gen.DBTX, engine *movable.Engine, logger *slog.Logger) TestimonialService {
	if logger == nil {
		logger = slog.Default()
	}
	return TestimonialService{queries: gen.New(db), engine: engine, logger: logger}
}

func ConvertToModelTestimonial(t gen.Testimonial) mtestimonial.Testimonial {
	return mtestimonial.Testimonial{
		ID:         t.ID,
		Name:       t.Name,
		Occupation: t.Occupation,
		Company:    t.Company,
		Text:       t.Text,
		AvatarURL:  t.AvatarUrl,
		IsFeatured: t.IsFeatured,
		SortOrder:  t.SortOrder,
		CreatedAt:  dbtime.FromUnix(t.CreatedAt),
		UpdatedAt:  dbtime.FromUnix(t.UpdatedAt),
	}
}

func (s TestimonialService) Get(ctx context.Context, id int64) (mtestimonial.Testimonial, error) {
	row, err := s.queries.GetTestimonial(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mtestimonial.Testimonial{}, ErrNoTestimonialFound
		}
		return mtestimonial.Testimonial{}, err
	}
	return ConvertToModelTestimonial(row), nil
}

func (s TestimonialService) List(ctx context.Context) ([]mtestimonial.Testimonial, error) {
	rows, err := s.queries.ListTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]mtestimonial.Testimonial, len(rows))
	for i, r := range rows {
		out[i] = ConvertToModelTestimonial(r)
	}
	return out, nil
}

func (s TestimonialService) Create(ctx context.Context, t mtestimonial.Testimonial) (mtestimonial.Testimonial, error) {
	if err := t.Validate(); err != nil {
		return mtestimonial.Testimonial{}, err
	}
	var created gen.Testimonial
	_, _, err := s.engine.Append(ctx, func(ctx context.Context, tx *sql.Tx, sortOrder int64) (int64, error) {
		now := dbtime.Unix()
		row, err := s.queries.WithTx(tx).CreateTestimonial(ctx, gen.CreateTestimonialParams{
			Name:       t.Name,
			Occupation: t.Occupation,
			Company:    t.Company,
			Text:       t.Text,
			AvatarUrl:  t.AvatarURL,
			IsFeatured: t.IsFeatured,
			SortOrder:  sortOrder,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		created = row
		return row.ID, err
	})
	if err != nil {
		return mtestimonial.Testimonial{}, err
	}
	return ConvertToModelTestimonial(created), nil
}

func (s TestimonialService) Update(ctx context.Context, t mtestimonial.Testimonial) (mtestimonial.Testimonial, error) {
	if err := t.Validate(); err != nil {
		return mtestimonial.Testimonial{}, err
	}
	var updated gen.Testimonial
	err := s.engine.Update(ctx, t.ID, func(ctx context.Context, tx *sql.Tx) error {
		row, err := s.queries.WithTx(tx).UpdateTestimonial(ctx, gen.UpdateTestimonialParams{
			Name:       t.Name,
			Occupation: t.Occupation,
			Company:    t.Company,
			Text:       t.Text,
			AvatarUrl:  t.AvatarURL,
			IsFeatured: t.IsFeatured,
			UpdatedAt:  dbtime.Unix(),
			ID:         t.ID,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoTestimonialFound
		}
		updated = row
		return err
	})
	if err != nil {
		return mtestimonial.Testimonial{}, err
	}
	return ConvertToModelTestimonial(updated), nil
}

func (s TestimonialService) Delete(ctx context.Context, id int64) (int, error) {
	return s.engine.Delete(ctx, id)
}
