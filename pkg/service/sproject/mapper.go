package sproject

import (
	"github.com/the-dev-tools/folio/db/pkg/sqlc/gen"
	"github.com/the-dev-tools/folio/pkg/dbtime"
	"github.com/the-dev-tools/folio/pkg/model/mfield"
	"github.com/the-dev-tools/folio/pkg/model/mproject"
)

func ConvertToModelProject(p gen.Project) mproject.Project {
	return mproject.Project{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: mfield.DecodeJSONList(p.Technologies),
		Link:         p.Link,
		DownloadURL:  p.DownloadUrl,
		ImageURL:     p.ImageUrl,
		VideoURL:     p.VideoUrl,
		ProjectType:  mproject.ProjectType(p.ProjectType),
		IsFeatured:   p.IsFeatured,
		SortOrder:    p.SortOrder,
		Status:       mproject.Status(p.Status),
		CreatedAt:    dbtime.FromUnix(p.CreatedAt),
		UpdatedAt:    dbtime.FromUnix(p.UpdatedAt),
	}
}

func convertAll(rows []gen.Project) []mproject.Project {
	out := make([]mproject.Project, len(rows))
	for i, r := range rows {
		out[i] = ConvertToModelProject(r)
	}
	return out
}

func createParams(p mproject.Project, sortOrder, now int64) gen.CreateProjectParams {
	return gen.CreateProjectParams{
		Title:        p.Title,
		Description:  p.Description,
		Technologies: mfield.EncodeJSONList(p.Technologies),
		Link:         p.Link,
		DownloadUrl:  p.DownloadURL,
		ImageUrl:     p.ImageURL,
		VideoUrl:     p.VideoURL,
		ProjectType:  string(p.ProjectType),
		IsFeatured:   p.IsFeatured,
		SortOrder:    sortOrder,
		Status:       string(p.Status),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func updateParams(p mproject.Project, now int64) gen.UpdateProjectParams {
	return gen.UpdateProjectParams{
		Title:        p.Title,
		Description:  p.Description,
		Technologies: mfield.EncodeJSONList(p.Technologies),
		Link:         p.Link,
		DownloadUrl:  p.DownloadURL,
		ImageUrl:     p.ImageURL,
		VideoUrl:     p.VideoURL,
		ProjectType:  string(p.ProjectType),
		IsFeatured:   p.IsFeatured,
		Status:       string(p.Status),
		UpdatedAt:    now,
		ID:           p.ID,
	}
}
