package sskill

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mfield"
	"github.com/the-dev-tools/folio/pkg/model/mskill"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoSkillFound = fmt.Errorf("skill %w", movable.ErrItemNotFound)

type SkillService struct {
	queries *gen.Queries
	engine  *movable.Engine
	logger  *slog.Logger
}

func New(db gen.DBTX, engine *movable.Engine, logger *slog.Logger) SkillService {
	if logger == nil {
		logger = slog.Default()
	}
	return SkillService{queries: gen.New(db), engine: engine, logger: logger}
}

// ConvertToModelSkill splits the stored comma lists.
func ConvertToModelSkill(s gen.Skill) mskill.Skill {
	skills, highlighted := mskill.Parse(s.SkillList, s.HighlightedSkills)
	return mskill.Skill{
		ID:          s.ID,
		Category:    s.Category,
		Skills:      skills,
		Highlighted: highlighted,
		SortOrder:   s.SortOrder,
		CreatedAt:   dbtime.FromUnix(s.CreatedAt),
		UpdatedAt:   dbtime.FromUnix(s.UpdatedAt),
	}
}

func (s SkillService) Get(ctx context.Context, id int64) (mskill.Skill, error) {
	row, err := s.queries.GetSkill(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mskill.Skill{}, ErrNoSkillFound
		}
		return mskill.Skill{}, err
	}
	return ConvertToModelSkill(row), nil
}

func (s SkillService) List(ctx context.Context) ([]mskill.Skill, error) {
	rows, err := s.queries.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]mskill.Skill, len(rows))
	for i, r := range rows {
		out[i] = ConvertToModelSkill(r)
	}
	return out, nil
}

func (s SkillService) Create(ctx context.Context, sk mskill.Skill) (mskill.Skill, error) {
	if err := sk.Validate(); err != nil {
		return mskill.Skill{}, err
	}
	var created gen.Skill
	_, _, err := s.engine.Append(ctx, func(ctx context.Context, tx *sql.Tx, sortOrder int64) (int64, error) {
		now := dbtime.Unix()
		row, err := s.queries.WithTx(tx).CreateSkill(ctx, gen.CreateSkillParams{
			Category:          sk.Category,
			SkillList:         mfield.JoinList(sk.Skills),
			HighlightedSkills: mfield.JoinList(sk.Highlighted),
			SortOrder:         sortOrder,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		created = row
		return row.ID, err
	})
	if err != nil {
		return mskill.Skill{}, err
	}
	return ConvertToModelSkill(created), nil
}

func (s SkillService) Update(ctx context.Context, sk mskill.Skill) (mskill.Skill, error) {
	if err := sk.Validate(); err != nil {
		return mskill.Skill{}, err
	}
	var updated gen.Skill
	err := s.engine.Update(ctx, sk.ID, func(ctx context.Context, tx *sql.Tx) error {
		row, err := s.queries.WithTx(tx).UpdateSkill(ctx, gen.UpdateSkillParams{
			Category:          sk.Category,
			SkillList:         mfield.JoinList(sk.Skills),
			HighlightedSkills: mfield.JoinList(sk.Highlighted),
			UpdatedAt:         dbtime.Unix(),
			ID:                sk.ID,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoSkillFound
		}
		updated = row
		return err
	})
	if err != nil {
		return mskill.Skill{}, err
	}
	return ConvertToModelSkill(updated), nil
}

func (s SkillService) Delete(ctx context.Context, id int64) (int, error) {
	return s.engine.Delete(ctx, id)
}
