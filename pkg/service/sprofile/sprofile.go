package sprofile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mprofile"
	"github.com/the-dev-tools/folio/pkg/movable"
)

var ErrNoProfileFound = fmt.Errorf("profile %w", movable.ErrItemNotFound)

// ProfileService reads and writes the singleton profile row. The profile is not ordered.
type ProfileService struct {
	queries *gen.Queries
	logger  *slog.Logger
}

func New(db gen.DBTX, logger *slog.Logger) ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return ProfileService{queries: gen.New(db), logger: logger}
}

func (s ProfileService) TX(tx *sql.Tx) ProfileService {
	return ProfileService{queries: s.queries.WithTx(tx), logger: s.logger}
}

func ConvertToModelProfile(p gen.Profile) mprofile.Profile {
	return mprofile.Profile{
		Name:                 p.Name,
		Title:                p.Title,
		Bio:                  p.Bio,
		Email:                p.Email,
		Phone:                p.Phone,
		Location:             p.Location,
		CVDownloadURL:        p.CvDownloadUrl,
		ProfileImageURL:      p.ProfileImageUrl,
		ProfileImageHoverURL: p.ProfileImageHoverUrl,
		SocialGithub:         p.SocialGithub,
		SocialLinkedin:       p.SocialLinkedin,
		SocialTwitter:        p.SocialTwitter,
		ThemeColor:           p.ThemeColor,
		UpdatedAt:            dbtime.FromUnix(p.UpdatedAt),
	}
}

func (s ProfileService) Get(ctx context.Context) (mprofile.Profile, error) {
	row, err := s.queries.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return mprofile.Profile{}, ErrNoProfileFound
		}
		return mprofile.Profile{}, err
	}
	return ConvertToModelProfile(row), nil
}

// Save creates the profile on first use and overwrites it afterwards.
func (s ProfileService) Save(ctx context.Context, p mprofile.Profile) (mprofile.Profile, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return mprofile.Profile{}, err
	}
	row, err := s.queries.UpsertProfile(ctx, gen.UpsertProfileParams{
		Name:                 p.Name,
		Title:                p.Title,
		Bio:                  p.Bio,
		Email:                p.Email,
		Phone:                p.Phone,
		Location:             p.Location,
		CvDownloadUrl:        p.CVDownloadURL,
		ProfileImageUrl:      p.ProfileImageURL,
		ProfileImageHoverUrl: p.ProfileImageHoverURL,
		SocialGithub:         p.SocialGithub,
		SocialLinkedin:       p.SocialLinkedin,
		SocialTwitter:        p.SocialTwitter,
		ThemeColor:           p.ThemeColor,
		UpdatedAt:            dbtime.Unix(),
	})
	if err != nil {
		return mprofile.Profile{}, err
	}
	s.logger.InfoContext(ctx, "profile saved")
	return ConvertToModelProfile(row), nil
}

// Topic is the change stream topic for profile edits. The profile shares the
// stream with the ordered collections but is never reordered.
const Topic movable.Collection = "profile"
