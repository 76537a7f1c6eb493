package mproject

import (
	"time"

	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

type ProjectType string

const (
	TypeWeb     ProjectType = "web"
	TypeMobile  ProjectType = "mobile"
	TypeDesktop ProjectType = "desktop"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusDraft    Status = "draft"
	StatusArchived Status = "archived"
)

type Project struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Technologies []string    `json:"technologies"`
	Link         string      `json:"link"`
	DownloadURL  string      `json:"downloadUrl"`
	ImageURL     string      `json:"imageUrl"`
	VideoURL     string      `json:"videoUrl"`
	ProjectType  ProjectType `json:"projectType"`
	IsFeatured   bool        `json:"isFeatured"`
	SortOrder    int64       `json:"sortOrder"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (p Project) GetID() int64        { return p.ID }
func (p Project) GetSortOrder() int64 { return p.SortOrder }

func (p Project) WithSortOrder(sortOrder int64) Project {
	p.SortOrder = sortOrder
	return p
}

// Normalize fills form defaults for a new project.
func (p *Project) Normalize() {
	if p.ProjectType == "" {
		p.ProjectType = TypeWeb
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
}

func (p Project) Validate() error {
	var c mfield.Checker
	c.Required("title", p.Title)
	c.MaxLen("title", p.Title, 200)
	c.URL("link", p.Link)
	c.URL("download_url", p.DownloadURL)
	c.URL("image_url", p.ImageURL)
	c.URL("video_url", p.VideoURL)
	c.OneOf("project_type", string(p.ProjectType), string(TypeWeb), string(TypeMobile), string(TypeDesktop))
	c.OneOf("status", string(p.Status), string(StatusActive), string(StatusDraft), string(StatusArchived))
	return c.Err()
}
