package mtechstack

import (
	"time"

	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

type Item struct {
	ID        int64     `json:"id"`
	TechName  string    `json:"techName"`
	IconClass string    `json:"iconClass"`
	Color     string    `json:"color"`
	IsVisible bool      `json:"isVisible"`
	SortOrder int64     `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i Item) GetID() int64        { return i.ID }
func (i Item) GetSortOrder() int64 { return i.SortOrder }

func (i Item) WithSortOrder(sortOrder int64) Item {
	i.SortOrder = sortOrder
	return i
}

func (i Item) Validate() error {
	var c mfield.Checker
	c.Required("tech_name", i.TechName)
	c.MaxLen("tech_name", i.TechName, 80)
	c.HexColor("color", i.Color)
	return c.Err()
}
